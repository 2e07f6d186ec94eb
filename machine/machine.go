package machine

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Config represents machine configuration.
type Config struct {
	// TickInterval is the period of the clock interrupt.
	TickInterval time.Duration
	// StackPoison is the byte written over a stack when it is freed.
	StackPoison byte
}

// DefaultConfig returns the default machine configuration.
func DefaultConfig() Config {
	return Config{
		TickInterval: 20 * time.Millisecond,
		StackPoison:  0xDB,
	}
}

// Halt describes why the machine stopped.
type Halt struct {
	Code   int
	Reason string
}

func (h *Halt) Error() string {
	return fmt.Sprintf("machine halted with code %d: %s", h.Code, h.Reason)
}

// Machine represents a simulated single-CPU host.
type Machine struct {
	config  Config
	psr     atomic.Uint32
	console io.Writer
	conMu   sync.Mutex
	memory  *Memory

	contexts atomic.Int64
	switches atomic.Int64

	ticks atomic.Int32

	halted    chan struct{}
	haltOnce  sync.Once
	halt      *Halt
	onHalt    func(*Halt)
	hookOnce  sync.Once
	closeOnce sync.Once
}

// New creates a machine in kernel mode with interrupts disabled.
func New(options ...Option) *Machine {
	m := &Machine{
		config:  DefaultConfig(),
		console: os.Stdout,
		halted:  make(chan struct{}),
	}
	for _, opt := range options {
		opt(m)
	}
	if m.memory == nil {
		m.memory = NewMemory(m.config.StackPoison)
	}
	m.psr.Store(PSRCurrentMode)
	return m
}

// Config returns the machine configuration.
func (m *Machine) Config() Config {
	return m.config
}

// Memory returns the stack allocator.
func (m *Machine) Memory() *Memory {
	return m.memory
}

// Console writes formatted diagnostic output.
func (m *Machine) Console(format string, args ...interface{}) {
	m.conMu.Lock()
	defer m.conMu.Unlock()
	_, _ = fmt.Fprintf(m.console, format, args...)
}

// Switches returns the number of context switches performed.
func (m *Machine) Switches() int64 {
	return m.switches.Load()
}

// Halt stops the machine and terminates the calling context.  It must be
// called from a running context: the caller never returns.  The halt hook
// runs before waiters are released.
func (m *Machine) Halt(code int, reason string) {
	m.record(code, reason)
	m.runHook()
	m.closeHalted()
	runtime.Goexit()
}

// Stop halts the machine from the host.  Unlike Halt it returns; the running
// context unwinds at its next yield point.  Only the first halt is recorded.
func (m *Machine) Stop(code int, reason string) {
	m.record(code, reason)
	m.closeHalted()
}

// Yield terminates the calling context when the machine has halted.
func (m *Machine) Yield() {
	if m.IsHalted() {
		m.runHook()
		runtime.Goexit()
	}
}

// OnHalt registers fn to run once after the machine halts, on the context
// that held the CPU.  It must be set before the first switch.
func (m *Machine) OnHalt(fn func(*Halt)) {
	m.onHalt = fn
}

func (m *Machine) record(code int, reason string) {
	m.haltOnce.Do(func() {
		m.halt = &Halt{Code: code, Reason: reason}
	})
}

func (m *Machine) runHook() {
	m.hookOnce.Do(func() {
		if m.onHalt != nil {
			m.onHalt(m.halt)
		}
	})
}

func (m *Machine) closeHalted() {
	m.closeOnce.Do(func() { close(m.halted) })
}

// IsHalted reports whether the machine has stopped.
func (m *Machine) IsHalted() bool {
	select {
	case <-m.halted:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the machine halts.
func (m *Machine) Done() <-chan struct{} {
	return m.halted
}

// Wait blocks until the machine halts or ctx is done.
func (m *Machine) Wait(ctx context.Context) (*Halt, error) {
	select {
	case <-m.halted:
		return m.halt, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
