package process

// State represents the scheduling state of a process slot
type State string

const (
	StateEmpty    State = "empty"
	StateReady    State = "ready"
	StateRunning  State = "running"
	StateBlocked  State = "blocked"
	StateFinished State = "finished"
)

// IsLive reports whether the slot holds a process that has not terminated.
func (s State) IsLive() bool {
	return s == StateReady || s == StateRunning || s == StateBlocked
}

// WaitReason explains why a process is blocked
type WaitReason string

const (
	WaitNone WaitReason = ""
	// WaitJoin is set while a parent waits for a child to quit.
	WaitJoin WaitReason = "join"
	// WaitZap is set while a process waits for a zapped target to quit.
	WaitZap WaitReason = "zap"
	// WaitBlock is set by an explicit block call.
	WaitBlock WaitReason = "block"
)
