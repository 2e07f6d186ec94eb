package idgen

import "github.com/google/uuid"

// NewFunc generates identifiers.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new unique identifier.
func New() string { return NewFunc() }

