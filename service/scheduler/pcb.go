package scheduler

import (
	"time"

	"github.com/viant/kernel/machine"
	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/tracing"
)

// none marks an absent slot reference.
const none = -1

// pcb is a process control block.  Links to other blocks are slot indices
// into the process table, which owns every block.
type pcb struct {
	pid        int
	state      process.State
	waitReason process.WaitReason
	priority   process.Priority
	name       string

	context *machine.Context
	entry   process.Entry
	arg     interface{}

	parent      int
	firstChild  int
	nextSibling int

	// run queue link, valid while queued
	next   int
	queued bool

	// processes waiting in zap for this one, linked through nextZap
	zapHead int
	nextZap int

	exitStatus  int
	finishedSeq int64

	timeUsed   time.Duration
	cpuTime    time.Duration
	startedAt  time.Time
	createdAt  time.Time
	finishedAt time.Time

	span *tracing.Span
}

func (p *pcb) reset() {
	*p = pcb{
		pid:         none,
		state:       process.StateEmpty,
		parent:      none,
		firstChild:  none,
		nextSibling: none,
		next:        none,
		zapHead:     none,
		nextZap:     none,
	}
}

func (p *pcb) isEmpty() bool {
	return p.state == process.StateEmpty
}
