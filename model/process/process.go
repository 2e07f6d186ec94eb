package process

import (
	"fmt"
	"time"
)

// Entry is a process body; its return value becomes the exit status.
type Entry func(arg interface{}) int

// Info is a point-in-time snapshot of one process slot.
type Info struct {
	PID        int           `json:"pid"`
	ParentPID  int           `json:"parentPid"`
	Name       string        `json:"name"`
	Priority   Priority      `json:"priority"`
	State      State         `json:"state"`
	WaitReason WaitReason    `json:"waitReason,omitempty"`
	ExitStatus int           `json:"exitStatus"`
	CPUTime    time.Duration `json:"cpuTime"`
}

// StateLabel renders the state the way the process table dump prints it.
func (i *Info) StateLabel() string {
	switch i.State {
	case StateRunning:
		return "Running"
	case StateReady:
		return "Runnable"
	case StateBlocked:
		if i.WaitReason == WaitNone {
			return "Blocked"
		}
		return fmt.Sprintf("Blocked(%s)", i.WaitReason)
	case StateFinished:
		return fmt.Sprintf("Terminated(%d)", i.ExitStatus)
	}
	return "Unknown"
}

// Exit is the accounting record written when a terminated process is joined.
type Exit struct {
	RunID      string        `json:"runId" yaml:"runId"`
	PID        int           `json:"pid" yaml:"pid"`
	ParentPID  int           `json:"parentPid" yaml:"parentPid"`
	Name       string        `json:"name" yaml:"name"`
	Priority   Priority      `json:"priority" yaml:"priority"`
	Status     int           `json:"status" yaml:"status"`
	CPUTime    time.Duration `json:"cpuTime" yaml:"cpuTime"`
	CreatedAt  time.Time     `json:"createdAt" yaml:"createdAt"`
	FinishedAt time.Time     `json:"finishedAt" yaml:"finishedAt"`
}

// Key returns the storage key of the record.
func (e *Exit) Key() string {
	return fmt.Sprintf("%s/%d", e.RunID, e.PID)
}
