package fs

import (
	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
)

type Option func(s *Service)

// WithFS sets the storage service
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithLogger sets the logger used for skipped records
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}
