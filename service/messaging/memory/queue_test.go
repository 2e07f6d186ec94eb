package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exitNotice struct {
	PID    int
	Status int
}

func TestQueue(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[exitNotice](config)
	ctx := context.Background()

	err := queue.Publish(ctx, &exitNotice{PID: 3, Status: 42})
	require.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, queue.Size())
	assert.NotEmpty(t, message.ID())
	assert.Equal(t, exitNotice{PID: 3, Status: 42}, *message.T())

	assert.NoError(t, message.Ack())
	assert.Error(t, message.Ack())
	assert.Error(t, message.Nack(nil))
}

func TestQueueRetries(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 2
	config.RetryDelay = 5 * time.Millisecond
	queue := NewQueue[exitNotice](config)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, queue.Publish(ctx, &exitNotice{PID: 5}))
	var ids []string
	for i := 0; i <= config.MaxRetries; i++ {
		message, err := queue.Consume(ctx)
		require.NoError(t, err, "attempt %d", i)
		ids = append(ids, message.ID())
		assert.NoError(t, message.Nack(errors.New("handler failed")))
	}
	assert.Equal(t, ids[0], ids[1])
	assert.Equal(t, ids[0], ids[2])

	assert.Eventually(t, func() bool {
		return len(queue.DeadLetters()) == 1
	}, time.Second, 5*time.Millisecond)
	dead := queue.DeadLetters()[0]
	assert.EqualError(t, dead.Err(), "handler failed")
	assert.Equal(t, 0, queue.Size())
}

func TestQueueConcurrency(t *testing.T) {
	queue := NewQueue[exitNotice](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	producers, perProducer := 8, 25
	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func(producer int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				assert.NoError(t, queue.Publish(ctx, &exitNotice{PID: producer*100 + j}))
			}
		}(i)
	}

	seen := map[int]bool{}
	var mu sync.Mutex
	var consumers sync.WaitGroup
	for i := 0; i < producers; i++ {
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			for j := 0; j < perProducer; j++ {
				message, err := queue.Consume(ctx)
				if !assert.NoError(t, err) {
					return
				}
				assert.NoError(t, message.Ack())
				mu.Lock()
				seen[message.T().PID] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	consumers.Wait()
	assert.Len(t, seen, producers*perProducer, fmt.Sprintf("queue size %d", queue.Size()))
}

func TestQueueCancellationAndClose(t *testing.T) {
	queue := NewQueue[exitNotice](DefaultConfig())

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, queue.Publish(cancelled, &exitNotice{}), context.Canceled)

	timeout, cancelTimeout := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelTimeout()
	_, err := queue.Consume(timeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	ctx := context.Background()
	require.NoError(t, queue.Publish(ctx, &exitNotice{PID: 2}))
	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, message.T().PID)

	queue.Close()
	assert.ErrorIs(t, queue.Publish(ctx, &exitNotice{}), ErrClosed)
	_, err = queue.Consume(ctx)
	assert.ErrorIs(t, err, ErrClosed)
}
