package machine

import (
	"io"
	"time"
)

// Option represents machine option
type Option func(m *Machine)

// WithConsole sets the diagnostic output writer
func WithConsole(w io.Writer) Option {
	return func(m *Machine) {
		m.console = w
	}
}

// WithMemory sets the stack allocator
func WithMemory(memory *Memory) Option {
	return func(m *Machine) {
		m.memory = memory
	}
}

// WithTickInterval sets the clock interrupt period
func WithTickInterval(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.config.TickInterval = d
		}
	}
}

// WithConfig sets the machine configuration
func WithConfig(config Config) Option {
	return func(m *Machine) {
		m.config = config
	}
}
