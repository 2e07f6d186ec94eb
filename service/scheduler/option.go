package scheduler

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/service/dao"
	"github.com/viant/kernel/service/event"
)

// Option represents scheduler option
type Option func(s *Service)

// WithConfig sets the scheduler configuration
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithMaxProc sets the number of process table slots
func WithMaxProc(n int) Option {
	return func(s *Service) {
		s.config.MaxProc = n
	}
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithContext sets the context used for events, tracing and accounting
func WithContext(ctx context.Context) Option {
	return func(s *Service) {
		s.ctx = ctx
	}
}

// WithRunID sets the identifier stamped on events and exit records
func WithRunID(runID string) Option {
	return func(s *Service) {
		s.runID = runID
	}
}

// WithTestcase sets the entry function init sporks once services are started
func WithTestcase(entry process.Entry, arg interface{}) Option {
	return func(s *Service) {
		s.testcase = entry
		s.testcaseArg = arg
	}
}

// WithServiceStarter registers a hook init runs, in its own context, before
// creating the testcase process.  Hooks may spork service processes.
func WithServiceStarter(starters ...func(s *Service)) Option {
	return func(s *Service) {
		s.starters = append(s.starters, starters...)
	}
}

// WithPublisher sets the lifecycle event publisher
func WithPublisher(publisher *event.Publisher[process.Info]) Option {
	return func(s *Service) {
		s.publisher = publisher
	}
}

// WithExitDAO sets the store receiving an exit record for every joined process
func WithExitDAO(exits dao.Service[string, process.Exit]) Option {
	return func(s *Service) {
		s.exits = exits
	}
}
