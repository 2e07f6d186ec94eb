package kernel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/kernel/machine"
	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/service/scheduler"
	"gopkg.in/yaml.v3"
)

// Accounting vendors.
const (
	AccountingNone   = ""
	AccountingMemory = "memory"
	AccountingFS     = "fs"
)

// Config is a serialisable representation of the kernel configuration. The
// zero value of any section falls back to DefaultConfig when loaded with
// LoadConfig.
type Config struct {
	Machine    MachineConfig    `json:"machine" yaml:"machine"`
	Scheduler  SchedulerConfig  `json:"scheduler" yaml:"scheduler"`
	Log        LogConfig        `json:"log" yaml:"log"`
	Tracing    TracingConfig    `json:"tracing" yaml:"tracing"`
	Accounting AccountingConfig `json:"accounting" yaml:"accounting"`
	Events     EventsConfig     `json:"events" yaml:"events"`
}

type MachineConfig struct {
	MaxProc      int           `json:"maxProc" yaml:"maxProc"`
	MinStack     int           `json:"minStack" yaml:"minStack"`
	TickInterval time.Duration `json:"tickInterval" yaml:"tickInterval"`
}

type SchedulerConfig struct {
	Quantum  time.Duration  `json:"quantum" yaml:"quantum"`
	Testcase TestcaseConfig `json:"testcase" yaml:"testcase"`
}

type TestcaseConfig struct {
	Name      string `json:"name" yaml:"name"`
	Priority  int    `json:"priority" yaml:"priority"`
	StackSize int    `json:"stackSize" yaml:"stackSize"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

type TracingConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Service string `json:"service" yaml:"service"`
	Version string `json:"version" yaml:"version"`
	Output  string `json:"output" yaml:"output"`
}

// AccountingConfig selects where exit records of joined processes go.
type AccountingConfig struct {
	Vendor string `json:"vendor" yaml:"vendor"`
	URL    string `json:"url" yaml:"url"`
}

type EventsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Buffer  int  `json:"buffer" yaml:"buffer"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	sched := scheduler.DefaultConfig()
	mach := machine.DefaultConfig()
	return &Config{
		Machine: MachineConfig{
			MaxProc:      sched.MaxProc,
			MinStack:     sched.MinStack,
			TickInterval: mach.TickInterval,
		},
		Scheduler: SchedulerConfig{
			Quantum: sched.Quantum,
			Testcase: TestcaseConfig{
				Name:      sched.Testcase.Name,
				Priority:  int(sched.Testcase.Priority),
				StackSize: sched.Testcase.StackSize,
			},
		},
		Log:     LogConfig{Level: "info"},
		Tracing: TracingConfig{Service: "kernel", Version: "0.1.0"},
		Events:  EventsConfig{Buffer: 1024},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	sched := c.schedulerConfig()
	if err := sched.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("scheduler: %w", err))
	}
	if c.Machine.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("machine.tickInterval must be > 0"))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Accounting.Vendor {
	case AccountingNone, AccountingMemory:
	case AccountingFS:
		if c.Accounting.URL == "" {
			errs = append(errs, fmt.Errorf("accounting.url is required for the fs vendor"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported accounting vendor: %s", c.Accounting.Vendor))
	}
	if c.Events.Enabled && c.Events.Buffer <= 0 {
		errs = append(errs, fmt.Errorf("events.buffer must be > 0"))
	}
	return errors.Join(errs...)
}

func (c *Config) schedulerConfig() scheduler.Config {
	return scheduler.Config{
		MaxProc:  c.Machine.MaxProc,
		MinStack: c.Machine.MinStack,
		Quantum:  c.Scheduler.Quantum,
		Testcase: scheduler.TestcaseConfig{
			Name:      c.Scheduler.Testcase.Name,
			Priority:  process.Priority(c.Scheduler.Testcase.Priority),
			StackSize: c.Scheduler.Testcase.StackSize,
		},
	}
}

func (c *Config) machineConfig() machine.Config {
	ret := machine.DefaultConfig()
	ret.TickInterval = c.Machine.TickInterval
	return ret
}

// LoadConfig reads a YAML (or JSON) configuration from any afs URL on top of
// DefaultConfig and validates it.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return ret, nil
}
