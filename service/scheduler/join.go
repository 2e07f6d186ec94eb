package scheduler

import (
	"strconv"

	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/progress"
	"github.com/viant/kernel/tracing"
)

// Join waits for a child of the caller to terminate and reclaims it, returning
// the child's pid and exit status.  Children are reclaimed in the order they
// terminated.  ErrNoChildren is returned when the caller has no children.
func (s *Service) Join() (pid int, status int, err error) {
	s.requireKernel("join")
	psr := s.machine.DisableInterrupts()
	defer s.machine.RestorePSR(psr)
	self := s.current
	p := s.running("join")

	for {
		if p.firstChild == none {
			return -1, 0, ErrNoChildren
		}
		if child := s.finishedChild(self); child != none {
			pid, status = s.reap(self, child)
			return pid, status, nil
		}
		p.state = process.StateBlocked
		p.waitReason = process.WaitJoin
		s.logger.WithFields(s.fields(self)).Debug("join: waiting for a child")
		s.notify(EventBlock, self)
		s.track(progress.Delta{Blocked: 1})
		s.dispatch()
	}
}

// finishedChild returns the earliest terminated child of parent, or none.
func (s *Service) finishedChild(parent int) int {
	ret := none
	for c := s.table.slots[parent].firstChild; c != none; c = s.table.slots[c].nextSibling {
		cp := &s.table.slots[c]
		if cp.state != process.StateFinished {
			continue
		}
		if ret == none || cp.finishedSeq < s.table.slots[ret].finishedSeq {
			ret = c
		}
	}
	return ret
}

// reap detaches a finished child from parent, releases its stack and context,
// records its exit and returns the slot to EMPTY.
func (s *Service) reap(parent, child int) (int, int) {
	cp := &s.table.slots[child]
	pid, status := cp.pid, cp.exitStatus
	s.table.unlinkChild(parent, child)

	exit := &process.Exit{
		RunID:      s.runID,
		PID:        pid,
		ParentPID:  s.table.slots[parent].pid,
		Name:       cp.name,
		Priority:   cp.priority,
		Status:     status,
		CPUTime:    cp.cpuTime,
		CreatedAt:  cp.createdAt,
		FinishedAt: cp.finishedAt,
	}
	if err := s.machine.Memory().Free(cp.context.Stack()); err != nil {
		s.machine.Fatalf("pid %d: %v\n", pid, err)
	}
	cp.context.Release()
	if cp.span != nil {
		cp.span.WithAttributes(map[string]string{"process.joinedBy": strconv.Itoa(exit.ParentPID)})
		tracing.EndSpan(cp.span, nil)
	}
	s.logger.WithFields(s.fields(child)).WithField("status", status).Debug("join: reclaimed")
	s.notify(EventJoin, child)
	s.track(progress.Delta{Reclaimed: 1, Live: -1})
	s.recordExit(exit)
	cp.reset()
	return pid, status
}

func (s *Service) recordExit(exit *process.Exit) {
	if s.exits == nil {
		return
	}
	if err := s.exits.Save(s.ctx, exit); err != nil {
		s.logger.WithError(err).WithField("pid", exit.PID).Warn("failed to save exit record")
	}
}
