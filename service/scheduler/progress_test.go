package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/kernel/progress"
)

func TestService_Progress(t *testing.T) {
	ctx, tracker := progress.WithNewTracker(context.Background(), "test", nil)
	var during progress.Progress
	_, halt, _ := run(t, func(k *Service) int {
		waiter, _ := k.Spork("waiter", child(func() int {
			k.Block()
			return 0
		}), nil, MinStack, 2)
		during = tracker.Snapshot()
		assert.NoError(t, k.Unblock(waiter))
		_, _, _ = k.Join()
		return 0
	}, WithContext(ctx))
	assert.Equal(t, 0, halt.Code)
	assert.Equal(t, 2, during.Created)
	assert.Equal(t, 1, during.Blocked)

	final := tracker.Snapshot()
	assert.Equal(t, 2, final.Created)
	assert.Equal(t, 2, final.Finished)
	assert.Equal(t, 2, final.Reclaimed)
	assert.Equal(t, 0, final.Live)
	assert.Equal(t, 0, final.Blocked)
	assert.Greater(t, final.Switches, 4)
}
