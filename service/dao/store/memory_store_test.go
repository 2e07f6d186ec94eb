package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/kernel/service/dao"
)

type record struct {
	ID    string
	Value int
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[string, record](func(r *record) string { return r.ID })

	assert.ErrorIs(t, s.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, s.Save(ctx, &record{}), dao.ErrInvalidID)

	r := &record{ID: "a", Value: 1}
	assert.NoError(t, s.Save(ctx, r))
	r.Value = 2 // stored by copy

	loaded, err := s.Load(ctx, "a")
	assert.NoError(t, err)
	assert.Equal(t, 1, loaded.Value)

	_, err = s.Load(ctx, "b")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	assert.NoError(t, s.Save(ctx, &record{ID: "b", Value: 3}))
	all, err := s.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, s.Len())

	assert.NoError(t, s.Delete(ctx, "a"))
	assert.ErrorIs(t, s.Delete(ctx, "a"), dao.ErrNotFound)
	assert.Equal(t, 1, s.Len())
}
