package progress

import (
	"context"
	"sync"
	"time"

	"github.com/viant/kernel/internal/clock"
)

// Delta represents an incremental counter change emitted by the scheduler.
// Fields are signed so a change may decrement a gauge.
type Delta struct {
	Created   int
	Finished  int
	Reclaimed int
	Live      int
	Blocked   int
	Switches  int
}

// Progress aggregates process counters of one machine run. It is safe for
// concurrent use.
type Progress struct {
	RunID     string
	StartedAt time.Time

	Created   int
	Finished  int
	Reclaimed int
	Live      int
	Blocked   int
	Switches  int

	mu       sync.Mutex
	onChange func(Progress)
}

// Update applies d and calls the onChange callback, outside the lock, with a
// copy of the counters.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.Created += d.Created
	p.Finished += d.Finished
	p.Reclaimed += d.Reclaimed
	p.Live += d.Live
	p.Blocked += d.Blocked
	p.Switches += d.Switches
	snapshot := p.copyLocked()
	cb := p.onChange
	p.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.copyLocked()
}

func (p *Progress) copyLocked() Progress {
	return Progress{
		RunID:     p.RunID,
		StartedAt: p.StartedAt,
		Created:   p.Created,
		Finished:  p.Finished,
		Reclaimed: p.Reclaimed,
		Live:      p.Live,
		Blocked:   p.Blocked,
		Switches:  p.Switches,
	}
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker embeds a new tracker for runID in a derived context.
func WithNewTracker(ctx context.Context, runID string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		StartedAt: clock.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext returns the tracker carried by ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies d to the tracker in ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
