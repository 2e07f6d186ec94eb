package scheduler

import (
	"strconv"

	"github.com/viant/kernel/internal/clock"
	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/progress"
)

// Quit terminates the calling process with status.  It wakes the parent if
// it is waiting in Join and every process waiting in Zap for the caller.
// Quit never returns.  Quitting with children, joined or not, halts the
// machine.
func (s *Service) Quit(status int) {
	s.requireKernel("quit")
	s.machine.DisableInterrupts()
	self := s.current
	p := s.running("quit")
	if p.firstChild != none {
		s.machine.Fatalf("Process pid %d called quit() while it still had children.\n", p.pid)
	}

	s.seq++
	p.exitStatus = status
	p.state = process.StateFinished
	p.finishedSeq = s.seq
	p.finishedAt = clock.Now()
	s.logger.WithFields(s.fields(self)).WithField("status", status).Debug("quit")
	s.notify(EventQuit, self)
	s.track(progress.Delta{Finished: 1})
	if p.span != nil {
		p.span.WithAttributes(map[string]string{"process.status": strconv.Itoa(status)})
	}

	if p.parent != none {
		parent := &s.table.slots[p.parent]
		if parent.state == process.StateBlocked && parent.waitReason == process.WaitJoin {
			s.wake(p.parent)
		}
	}
	for z := p.zapHead; z != none; {
		zp := &s.table.slots[z]
		next := zp.nextZap
		zp.nextZap = none
		if zp.state == process.StateBlocked && zp.waitReason == process.WaitZap {
			s.wake(z)
		}
		z = next
	}
	p.zapHead = none

	s.dispatch()
	s.machine.Fatalf("finished process %d was switched into\n", p.pid)
}
