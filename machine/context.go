package machine

import (
	"fmt"
	"runtime"
	"sync"
)

// Context is a suspended execution context bound to a stack and an entry
// function.  Its saved PSR is restored whenever it is switched into.
type Context struct {
	ID      int64
	stack   *Stack
	entry   func()
	psr     uint32
	started bool
	resume  chan struct{}
	dead    chan struct{}
	once    sync.Once
}

// Stack returns the stack the context is bound to.
func (c *Context) Stack() *Stack {
	return c.stack
}

// Release discards the context.  A goroutine parked in it unwinds; the
// context must never be switched into again.
func (c *Context) Release() {
	c.once.Do(func() { close(c.dead) })
}

// NewContext builds a context that starts executing entry, in kernel mode
// with interrupts disabled, the first time it is switched into.
func (m *Machine) NewContext(stack *Stack, entry func()) *Context {
	return &Context{
		ID:     m.contexts.Add(1),
		stack:  stack,
		entry:  entry,
		psr:    PSRCurrentMode,
		resume: make(chan struct{}, 1),
		dead:   make(chan struct{}),
	}
}

// Switch saves the running PSR into from, activates to and parks the caller
// until from is switched into again.  A nil from is used for the very first
// switch, issued by the host: in that case Switch returns immediately and the
// host should Wait for the machine to halt.
func (m *Machine) Switch(from, to *Context) {
	if to == nil {
		m.Fatalf("context switch to a nil context\n")
	}
	m.Yield()
	if from != nil {
		from.psr = m.psr.Load()
	}
	m.psr.Store(to.psr)
	m.switches.Add(1)
	if !to.started {
		to.started = true
		go m.enter(to)
	} else {
		to.resume <- struct{}{}
	}
	if from == nil {
		return
	}
	m.park(from)
}

func (m *Machine) park(c *Context) {
	select {
	case <-c.resume:
	case <-c.dead:
		runtime.Goexit()
	case <-m.halted:
		runtime.Goexit()
	}
}

func (m *Machine) enter(c *Context) {
	c.entry()
	m.Fatalf("context %d returned from its entry function\n", c.ID)
}

// Fatalf writes an ERROR diagnostic to the console and halts with code 1.
func (m *Machine) Fatalf(format string, args ...interface{}) {
	reason := fmt.Sprintf(format, args...)
	m.Console("ERROR: %s", reason)
	m.Halt(1, reason)
}
