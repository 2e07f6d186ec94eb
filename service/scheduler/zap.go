package scheduler

import (
	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/progress"
)

// Zap blocks the caller until the process pid quits.  Any number of
// processes may zap the same target; its quit wakes all of them.  Zapping
// oneself, init, a missing or an already terminated process halts the
// machine.
func (s *Service) Zap(pid int) {
	s.requireKernel("zap")
	psr := s.machine.DisableInterrupts()
	defer s.machine.RestorePSR(psr)
	self := s.current
	p := s.running("zap")

	switch {
	case pid == p.pid:
		s.machine.Fatalf("Attempt to zap() itself.\n")
	case pid == InitPID:
		s.machine.Fatalf("Attempt to zap() init.\n")
	}
	target := s.table.lookup(pid)
	if target == none {
		s.machine.Fatalf("Attempt to zap() a non-existent process %d.\n", pid)
	}
	tp := &s.table.slots[target]
	if !tp.state.IsLive() {
		s.machine.Fatalf("Attempt to zap() a process that is already in the process of dying.\n")
	}

	p.nextZap = tp.zapHead
	tp.zapHead = self
	s.logger.WithFields(s.fields(self)).WithField("target", pid).Debug("zap")
	// the caller stays linked on the target until the target quits
	for s.isLive(pid) {
		p.state = process.StateBlocked
		p.waitReason = process.WaitZap
		s.notify(EventZap, self)
		s.track(progress.Delta{Blocked: 1})
		s.dispatch()
	}
}

// isLive reports whether pid still occupies its slot and has not quit.
func (s *Service) isLive(pid int) bool {
	slot := s.table.lookup(pid)
	return slot != none && s.table.slots[slot].state.IsLive()
}
