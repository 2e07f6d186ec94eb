package scheduler

import (
	"fmt"

	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/progress"
)

// Block suspends the caller until another process unblocks it.
func (s *Service) Block() {
	s.requireKernel("block")
	psr := s.machine.DisableInterrupts()
	defer s.machine.RestorePSR(psr)
	self := s.current
	p := s.running("block")
	p.state = process.StateBlocked
	p.waitReason = process.WaitBlock
	s.queues.remove(self)
	s.logger.WithFields(s.fields(self)).Debug("block")
	s.notify(EventBlock, self)
	s.track(progress.Delta{Blocked: 1})
	s.dispatch()
}

// Unblock makes a blocked process runnable again.  The unblocked process runs
// before Unblock returns when it is more urgent than the caller.  A process
// woken out of Join or Zap re-checks what it waits for and blocks again when
// it is not satisfied yet.
func (s *Service) Unblock(pid int) error {
	s.requireKernel("unblock")
	psr := s.machine.DisableInterrupts()
	defer s.machine.RestorePSR(psr)
	s.running("unblock")
	slot := s.table.lookup(pid)
	if slot == none {
		return fmt.Errorf("unblock %d: %w", pid, ErrNotBlocked)
	}
	p := &s.table.slots[slot]
	if p.state != process.StateBlocked {
		return fmt.Errorf("unblock %d: state %s: %w", pid, p.state, ErrNotBlocked)
	}
	s.logger.WithFields(s.fields(slot)).Debug("unblock")
	s.wake(slot)
	s.dispatch()
	return nil
}
