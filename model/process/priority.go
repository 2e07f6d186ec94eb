package process

// Priority is a scheduling level; a lower value is more urgent.
type Priority int

const (
	// PriorityHighest is the most urgent level.
	PriorityHighest Priority = 1
	// PriorityLowest is the least urgent level available to spork.
	PriorityLowest Priority = 5
	// PriorityInit is reserved for the init process.
	PriorityInit Priority = 6
	// Levels is the number of run queues.
	Levels = 6
)

// IsValid reports whether p may be requested by a caller of spork.
func (p Priority) IsValid() bool {
	return p >= PriorityHighest && p <= PriorityLowest
}

// Index returns the run queue index of p.
func (p Priority) Index() int {
	return int(p) - 1
}
