package scheduler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/viant/kernel/internal/clock"
	"github.com/viant/kernel/internal/idgen"
	"github.com/viant/kernel/machine"
	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/progress"
	"github.com/viant/kernel/service/dao"
	"github.com/viant/kernel/service/event"
	"github.com/viant/kernel/tracing"
)

// Service is the scheduler of one simulated machine.  It owns the process
// table, the run queues and the reference to the running process.
type Service struct {
	config  Config
	machine *machine.Machine
	table   *table
	queues  *runQueues
	current int
	seq     int64

	testcase    process.Entry
	testcaseArg interface{}
	starters    []func(s *Service)

	ctx       context.Context
	runID     string
	logger    logrus.FieldLogger
	publisher *event.Publisher[process.Info]
	exits     dao.Service[string, process.Exit]
}

// New creates a scheduler for the supplied machine
func New(m *machine.Machine, options ...Option) (*Service, error) {
	if m == nil {
		return nil, fmt.Errorf("machine is required")
	}
	s := &Service{
		config:  DefaultConfig(),
		machine: m,
		current: none,
	}
	for _, opt := range options {
		opt(s)
	}
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scheduler config: %w", err)
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}
	if s.runID == "" {
		s.runID = idgen.New()
	}
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	if span, ok := tracing.SpanFromContext(s.ctx); ok {
		s.logger = s.logger.WithField("traceID", span.TraceID())
	}
	s.table = newTable(s.config.MaxProc)
	s.queues = newRunQueues(s.table)
	m.OnHalt(s.endSpans)
	return s, nil
}

// endSpans ends the span of every process still in the table.
func (s *Service) endSpans(halt *machine.Halt) {
	code := strconv.Itoa(halt.Code)
	for i := range s.table.slots {
		p := &s.table.slots[i]
		if p.isEmpty() || p.span == nil {
			continue
		}
		p.span.WithAttributes(map[string]string{"halt.code": code})
		tracing.EndSpan(p.span, nil)
		p.span = nil
	}
}

// Machine returns the machine the scheduler runs on.
func (s *Service) Machine() *machine.Machine {
	return s.machine
}

// RunID returns the identifier of this machine run.
func (s *Service) RunID() string {
	return s.runID
}

// Init clears the process table and creates init (pid 1, priority 6), READY
// but not running.
func (s *Service) Init() {
	s.table = newTable(s.config.MaxProc)
	s.queues = newRunQueues(s.table)
	s.current = none
	s.seq = 0

	slot := s.table.slotOf(InitPID)
	p := &s.table.slots[slot]
	p.pid = InitPID
	p.name = "init"
	p.priority = process.PriorityInit
	p.entry = s.bootstrap
	p.createdAt = clock.Now()
	p.context = s.machine.NewContext(s.machine.Memory().Alloc(s.config.MinStack), s.trampoline(slot))
	_, p.span = tracing.StartSpan(s.ctx, "process init", "INTERNAL")
	p.span.WithAttributes(map[string]string{"process.pid": "1", "run.id": s.runID})
	p.state = process.StateReady
	s.queues.enqueue(slot)
	s.logger.WithField("runID", s.runID).Debug("scheduler initialised")
}

// Start performs the first dispatch, switching from the host into init.  The
// host must not touch the scheduler afterwards; it should wait for the
// machine to halt.
func (s *Service) Start() error {
	if s.current != none {
		return fmt.Errorf("scheduler already started")
	}
	if s.queues.len() == 0 {
		return fmt.Errorf("scheduler not initialised")
	}
	s.dispatch()
	return nil
}

// GetPID returns the pid of the running process, or -1 before Start.
func (s *Service) GetPID() int {
	if s.current == none {
		return -1
	}
	return s.table.slots[s.current].pid
}

// requireKernel halts the machine when op is invoked from user mode.
func (s *Service) requireKernel(op string) {
	s.machine.Yield()
	if s.machine.Mode() != machine.ModeKernel {
		s.machine.Fatalf("Someone attempted to call %s while in user mode!\n", op)
	}
}

// running returns the block of the calling process.
func (s *Service) running(op string) *pcb {
	if s.current == none {
		s.machine.Fatalf("%s called with no running process\n", op)
	}
	return &s.table.slots[s.current]
}

// trampoline adapts a process entry to a context entry: it enables
// interrupts, runs the entry and quits with its result.
func (s *Service) trampoline(slot int) func() {
	return func() {
		s.machine.EnableInterrupts()
		p := &s.table.slots[slot]
		status := p.entry(p.arg)
		s.Quit(status)
	}
}

// wake moves a blocked process back to its run queue.
func (s *Service) wake(slot int) {
	p := &s.table.slots[slot]
	p.state = process.StateReady
	p.waitReason = process.WaitNone
	s.queues.enqueue(slot)
	s.notify(EventWake, slot)
	s.track(progress.Delta{Blocked: -1})
}

func (s *Service) fields(slot int) logrus.Fields {
	p := &s.table.slots[slot]
	return logrus.Fields{"pid": p.pid, "name": p.name, "priority": p.priority}
}
