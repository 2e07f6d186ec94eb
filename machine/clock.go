package machine

import (
	"context"
	"time"
)

// RaiseTick posts a clock interrupt.  It is safe to call from any goroutine;
// the interrupt is serviced at the next yield point of the running context.
func (m *Machine) RaiseTick() {
	m.ticks.Add(1)
}

// TakeTicks returns and clears the number of pending clock interrupts.
func (m *Machine) TakeTicks() int {
	return int(m.ticks.Swap(0))
}

// RunClock raises a tick every TickInterval until ctx is done or the machine
// halts.
func (m *Machine) RunClock(ctx context.Context) {
	ticker := time.NewTicker(m.config.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-m.halted:
			return
		case <-ticker.C:
			m.RaiseTick()
		}
	}
}
