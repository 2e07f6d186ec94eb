package kernel_test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/kernel"
	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/service/dao"
	"github.com/viant/kernel/service/event"
	"github.com/viant/kernel/service/scheduler"
)

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestService_Run(t *testing.T) {
	console := &bytes.Buffer{}
	srv, err := kernel.New(kernel.WithConsole(console), kernel.WithLogger(quietLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var arg interface{}
	halt, err := srv.Run(ctx, func(a interface{}) int {
		arg = a
		k := srv.Scheduler()
		_, err := k.Spork("worker", func(interface{}) int { return 7 }, nil, scheduler.MinStack, 4)
		assert.NoError(t, err)
		_, status, err := k.Join()
		assert.NoError(t, err)
		return status
	}, "payload")
	require.NoError(t, err)
	assert.Equal(t, 7, halt.Code)
	assert.Equal(t, "payload", arg)
	assert.Equal(t, "testcase_main() returned 7, simulation will now halt.\n", console.String())
	assert.True(t, srv.Machine().IsHalted())
	assert.Nil(t, srv.Exits())

	stats := srv.Progress()
	assert.Equal(t, srv.Scheduler().RunID(), stats.RunID)
	assert.Equal(t, 2, stats.Created)
	assert.Equal(t, 2, stats.Reclaimed)
	assert.Equal(t, 0, stats.Live)
}

func TestService_RunFatal(t *testing.T) {
	console := &bytes.Buffer{}
	srv, err := kernel.New(kernel.WithConsole(console), kernel.WithLogger(quietLogger()))
	require.NoError(t, err)

	halt, err := srv.Run(context.Background(), func(interface{}) int {
		srv.Scheduler().Zap(scheduler.InitPID)
		return 0
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, halt.Code)
	assert.Equal(t, "ERROR: Attempt to zap() init.\n", console.String())

	_, err = srv.Run(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestService_RunWithConfig(t *testing.T) {
	config := kernel.DefaultConfig()
	config.Scheduler.Testcase.Name = "start1"
	config.Scheduler.Testcase.Priority = 1
	config.Accounting = kernel.AccountingConfig{Vendor: kernel.AccountingFS, URL: "mem://localhost/kernel/exits"}

	var mu sync.Mutex
	var events []string
	console := &bytes.Buffer{}
	srv, err := kernel.NewFromConfig(config,
		kernel.WithConsole(console),
		kernel.WithLogger(quietLogger()),
		kernel.WithEventListener(func(e *event.Event[process.Info]) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e.Data.Name+":"+e.Context.EventType)
		}))
	require.NoError(t, err)
	defer srv.Close()

	ctx := context.Background()
	halt, err := srv.Run(ctx, func(interface{}) int {
		assert.Equal(t, 2, srv.Scheduler().GetPID())
		return 0
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, halt.Code)
	assert.Contains(t, console.String(), "start1() returned 0")

	runID := srv.Scheduler().RunID()
	record, err := srv.Exits().Load(ctx, runID+"/2")
	require.NoError(t, err)
	assert.Equal(t, "start1", record.Name)
	assert.Equal(t, process.Priority(1), record.Priority)
	exists, err := afs.New().Exists(ctx, "mem://localhost/kernel/exits/"+runID+"/2.json")
	assert.NoError(t, err)
	assert.True(t, exists)

	records, err := srv.Exits().List(ctx, dao.NewParameter(dao.ParamRunID, runID))
	require.NoError(t, err)
	assert.Len(t, records, 1)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range events {
			if e == "start1:"+scheduler.EventJoin {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, events, "start1:"+scheduler.EventSpork)
	assert.Contains(t, events, "start1:"+scheduler.EventQuit)
}

func TestService_RunContextCancelled(t *testing.T) {
	srv, err := kernel.New(kernel.WithConsole(io.Discard), kernel.WithLogger(quietLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	release := make(chan struct{})
	defer close(release)
	halt, err := srv.Run(ctx, func(interface{}) int {
		<-release
		return 0
	}, nil)
	assert.Nil(t, halt)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, srv.Machine().IsHalted())
}

func TestService_RunStopsSpinningProcess(t *testing.T) {
	srv, err := kernel.New(kernel.WithConsole(io.Discard), kernel.WithLogger(quietLogger()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	var spins atomic.Int64
	_, err = srv.Run(ctx, func(interface{}) int {
		k := srv.Scheduler()
		for {
			spins.Add(1)
			k.Checkpoint()
		}
	}, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, srv.Machine().IsHalted())
	assert.Eventually(t, func() bool {
		before := spins.Load()
		time.Sleep(10 * time.Millisecond)
		return spins.Load() == before
	}, time.Second, time.Millisecond)
}

func TestNew_NilConfig(t *testing.T) {
	srv, err := kernel.New(kernel.WithConfig(nil), kernel.WithConsole(io.Discard), kernel.WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, kernel.DefaultConfig(), srv.Config())
}

func TestNew_InvalidConfig(t *testing.T) {
	config := kernel.DefaultConfig()
	config.Machine.MaxProc = 0
	_, err := kernel.NewFromConfig(config)
	assert.Error(t, err)
}
