package scheduler

import (
	"fmt"
	"strconv"

	"github.com/viant/kernel/internal/clock"
	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/progress"
	"github.com/viant/kernel/tracing"
)

// Spork creates a child of the calling process and returns its pid.  When
// the child is more urgent than the caller, the child runs before Spork
// returns.
func (s *Service) Spork(name string, entry process.Entry, arg interface{}, stackSize int, priority process.Priority) (int, error) {
	s.requireKernel("spork")
	psr := s.machine.DisableInterrupts()
	defer s.machine.RestorePSR(psr)
	parent := s.running("spork")

	if err := s.validateSpork(name, entry, stackSize, priority); err != nil {
		return -1, fmt.Errorf("spork %q: %w", name, err)
	}
	pid, slot, ok := s.table.findFree()
	if !ok {
		return -1, fmt.Errorf("spork %q: %w", name, ErrTableFull)
	}
	s.table.commit(pid)

	child := &s.table.slots[slot]
	child.reset()
	child.pid = pid
	child.name = name
	child.priority = priority
	child.entry = entry
	child.arg = arg
	child.exitStatus = -1
	child.createdAt = clock.Now()
	child.context = s.machine.NewContext(s.machine.Memory().Alloc(stackSize), s.trampoline(slot))

	child.parent = s.current
	child.nextSibling = parent.firstChild
	parent.firstChild = slot

	_, child.span = tracing.StartSpan(tracing.WithSpan(s.ctx, parent.span), "process "+name, "INTERNAL")
	child.span.WithAttributes(map[string]string{
		"process.pid":      strconv.Itoa(pid),
		"process.ppid":     strconv.Itoa(parent.pid),
		"process.priority": strconv.Itoa(int(priority)),
		"run.id":           s.runID,
	})

	child.state = process.StateReady
	s.queues.enqueue(slot)
	s.logger.WithFields(s.fields(slot)).WithField("ppid", parent.pid).Debug("spork")
	s.notify(EventSpork, slot)
	s.track(progress.Delta{Created: 1, Live: 1})

	if priority < parent.priority {
		s.dispatch()
	}
	return pid, nil
}

func (s *Service) validateSpork(name string, entry process.Entry, stackSize int, priority process.Priority) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidArgument)
	case len(name) > MaxName:
		return fmt.Errorf("%w: name longer than %d", ErrInvalidArgument, MaxName)
	case entry == nil:
		return fmt.Errorf("%w: nil entry function", ErrInvalidArgument)
	case !priority.IsValid():
		return fmt.Errorf("%w: priority %d", ErrInvalidArgument, priority)
	case stackSize < s.config.MinStack:
		return fmt.Errorf("%w: %d < %d", ErrStackTooSmall, stackSize, s.config.MinStack)
	}
	return nil
}
