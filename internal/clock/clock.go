// Package clock provides the wall clock used for process accounting.
package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now returns NowFunc().
func Now() time.Time { return NowFunc() }

// Since returns the time elapsed since t according to NowFunc.
func Since(t time.Time) time.Duration {
	if t.IsZero() {
		return 0
	}
	return NowFunc().Sub(t)
}
