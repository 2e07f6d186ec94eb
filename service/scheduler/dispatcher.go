package scheduler

import (
	"github.com/viant/kernel/internal/clock"
	"github.com/viant/kernel/machine"
	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/progress"
)

// dispatch selects the most urgent READY process and switches to it.  The
// caller must have interrupts disabled.
//
// A process that is still RUNNING keeps the CPU unless a strictly more urgent
// level has a READY process, in which case it is requeued at the tail of its
// level.  A caller that already changed the state of the running process
// (READY and requeued, BLOCKED, FINISHED) has performed that transition
// itself.  Control returns to the caller only once it is selected again.
func (s *Service) dispatch() {
	cur := s.current
	if cur != none {
		p := &s.table.slots[cur]
		if p.state == process.StateRunning {
			top := s.queues.highest()
			if top == 0 || top >= p.priority {
				return
			}
			p.state = process.StateReady
			s.queues.enqueue(cur)
		}
	}

	next := s.queues.dequeueHighest()
	if next == none {
		s.machine.Fatalf("no runnable process\n")
	}
	np := &s.table.slots[next]
	np.state = process.StateRunning
	if next == cur {
		return
	}

	now := clock.Now()
	var from *machine.Context
	if cur != none {
		op := &s.table.slots[cur]
		op.cpuTime += now.Sub(op.startedAt)
		from = op.context
	}
	np.timeUsed = 0
	np.startedAt = now
	s.current = next
	s.logger.WithFields(s.fields(next)).Debug("dispatch")
	s.notify(EventDispatch, next)
	s.track(progress.Delta{Switches: 1})
	s.machine.Switch(from, np.context)
}
