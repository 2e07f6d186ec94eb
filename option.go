package kernel

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/service/dao"
	"github.com/viant/kernel/service/event"
	"github.com/viant/kernel/service/scheduler"
	"github.com/viant/kernel/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option represents kernel service option
type Option func(s *Service)

// WithConfig sets the configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLogger sets the logger; it takes precedence over log.level
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithConsole sets the machine console writer
func WithConsole(w io.Writer) Option {
	return func(s *Service) {
		s.console = w
	}
}

// WithEventListener enables lifecycle events and delivers them to handler
func WithEventListener(handler func(*event.Event[process.Info])) Option {
	return func(s *Service) {
		s.listener = handler
	}
}

// WithExitDAO sets the exit record store; it takes precedence over accounting settings
func WithExitDAO(exits dao.Service[string, process.Exit]) Option {
	return func(s *Service) {
		s.exits = exits
	}
}

// WithServiceStarter registers hooks init runs before creating the testcase
func WithServiceStarter(starters ...func(s *scheduler.Service)) Option {
	return func(s *Service) {
		s.starters = append(s.starters, starters...)
	}
}

// WithTracing configures OpenTelemetry tracing with the stdout exporter. If
// outputFile is empty traces go to stdout. The first successful
// initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.tracing = &TracingConfig{Enabled: true, Service: serviceName, Version: serviceVersion, Output: outputFile}
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
