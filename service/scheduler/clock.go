package scheduler

import (
	"time"

	"github.com/viant/kernel/internal/clock"
	"github.com/viant/kernel/machine"
	"github.com/viant/kernel/model/process"
)

// Checkpoint is the voluntary yield point: it services pending clock
// interrupts when interrupts are enabled.  A process that has used its
// quantum is moved to the tail of its run queue.  Once the machine has
// halted the calling process is terminated.
func (s *Service) Checkpoint() {
	s.machine.Yield()
	if !s.machine.InterruptsEnabled() {
		return
	}
	ticks := s.machine.TakeTicks()
	if ticks == 0 {
		return
	}
	psr := s.machine.PSR()
	s.machine.SetPSR((psr | machine.PSRCurrentMode) &^ machine.PSRCurrentInt)
	defer s.machine.RestorePSR(psr)
	s.clockHandler(ticks)
}

func (s *Service) clockHandler(ticks int) {
	self := s.current
	p := s.running("clock handler")
	p.timeUsed += time.Duration(ticks) * s.machine.Config().TickInterval
	if p.timeUsed < s.config.Quantum {
		return
	}
	p.timeUsed = 0
	p.state = process.StateReady
	s.queues.enqueue(self)
	s.logger.WithFields(s.fields(self)).Debug("quantum expired")
	s.dispatch()
}

// ReadTime returns the CPU time consumed by the calling process.
func (s *Service) ReadTime() time.Duration {
	p := s.running("readtime")
	return p.cpuTime + clock.Since(p.startedAt)
}
