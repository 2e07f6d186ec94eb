package kernel

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/viant/kernel/machine"
	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/progress"
	"github.com/viant/kernel/service/dao"
	exitfs "github.com/viant/kernel/service/dao/exit/fs"
	exitmemory "github.com/viant/kernel/service/dao/exit/memory"
	"github.com/viant/kernel/service/event"
	"github.com/viant/kernel/service/messaging"
	"github.com/viant/kernel/service/messaging/memory"
	"github.com/viant/kernel/service/scheduler"
	"github.com/viant/kernel/tracing"
)

// Service builds and runs simulated machines: each Run boots a fresh machine
// and scheduler, runs the testcase and reports how the machine halted.
type Service struct {
	config   *Config
	tracing  *TracingConfig
	logger   logrus.FieldLogger
	console  io.Writer
	listener func(*event.Event[process.Info])
	events   *event.Service
	exits    dao.Service[string, process.Exit]
	starters []func(s *scheduler.Service)

	mux       sync.RWMutex
	machine   *machine.Machine
	scheduler *scheduler.Service
	progress  *progress.Progress
}

// New creates a service from DefaultConfig and the supplied options
func New(options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig()}
	for _, opt := range options {
		opt(ret)
	}
	if err := ret.init(); err != nil {
		return nil, err
	}
	return ret, nil
}

// NewFromConfig creates a service from config; options override its settings
func NewFromConfig(config *Config, options ...Option) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return New(append([]Option{WithConfig(config)}, options...)...)
}

func (s *Service) init() error {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if s.tracing != nil {
		config := *s.config
		config.Tracing = *s.tracing
		s.config = &config
	}
	if s.logger == nil {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		level, _ := logrus.ParseLevel(s.config.Log.Level)
		logger.SetLevel(level)
		s.logger = logger
	}
	if s.console == nil {
		s.console = os.Stdout
	}
	if tc := s.config.Tracing; tc.Enabled {
		if err := tracing.Init(tc.Service, tc.Version, tc.Output); err != nil {
			return fmt.Errorf("failed to initialise tracing: %w", err)
		}
	}
	if s.exits == nil {
		exits, err := s.newExitDAO()
		if err != nil {
			return err
		}
		s.exits = exits
	}
	if s.listener != nil {
		s.config.Events.Enabled = true
		if s.config.Events.Buffer <= 0 {
			s.config.Events.Buffer = DefaultConfig().Events.Buffer
		}
	}
	if s.config.Events.Enabled {
		if s.listener == nil {
			s.listener = s.logEvent
		}
		buffer := s.config.Events.Buffer
		events, err := event.New(messaging.VendorMemory,
			event.WithLogger(s.logger),
			event.WithNewMemoryQueueConfig(func(string) memory.Config {
				config := memory.DefaultConfig()
				config.QueueBuffer = buffer
				return config
			}))
		if err != nil {
			return fmt.Errorf("failed to create event service: %w", err)
		}
		s.events = events
	}
	return nil
}

func (s *Service) newExitDAO() (dao.Service[string, process.Exit], error) {
	switch s.config.Accounting.Vendor {
	case AccountingMemory:
		return exitmemory.New(), nil
	case AccountingFS:
		ret, err := exitfs.New(s.config.Accounting.URL, exitfs.WithLogger(s.logger))
		if err != nil {
			return nil, fmt.Errorf("failed to create exit store: %w", err)
		}
		return ret, nil
	}
	return nil, nil
}

// logEvent is the listener used when events are enabled without a handler.
func (s *Service) logEvent(e *event.Event[process.Info]) {
	s.logger.WithFields(logrus.Fields{
		"runID": e.Context.RunID,
		"pid":   e.Context.PID,
		"name":  e.Data.Name,
		"state": e.Data.StateLabel(),
	}).Debug(e.Context.EventType)
}

// Close stops the event listener.
func (s *Service) Close() {
	if s.events != nil {
		event.StopListenerOf[process.Info](s.events)
	}
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Exits returns the exit record store, or nil when accounting is disabled
func (s *Service) Exits() dao.Service[string, process.Exit] {
	return s.exits
}

// Machine returns the machine of the latest run
func (s *Service) Machine() *machine.Machine {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.machine
}

// Scheduler returns the scheduler of the latest run
func (s *Service) Scheduler() *scheduler.Service {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.scheduler
}

// Progress returns the process counters of the latest run
func (s *Service) Progress() progress.Progress {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.progress.Snapshot()
}
