package scheduler

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/kernel/machine"
	"github.com/viant/kernel/model/process"
)

// run boots a machine whose testcase executes body, waits for the halt and
// returns the scheduler, the halt and the console output.
func run(t *testing.T, body func(k *Service) int, options ...Option) (*Service, *machine.Halt, string) {
	t.Helper()
	console := &bytes.Buffer{}
	m := machine.New(machine.WithConsole(console))
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	var srv *Service
	entry := func(interface{}) int { return body(srv) }
	opts := append([]Option{WithTestcase(entry, nil), WithLogger(logger), WithRunID("test")}, options...)
	srv, err := New(m, opts...)
	require.NoError(t, err)
	srv.Init()
	require.NoError(t, srv.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	halt, err := m.Wait(ctx)
	require.NoError(t, err, "machine did not halt")
	return srv, halt, console.String()
}

// child adapts a closure to a process entry.
func child(fn func() int) process.Entry {
	return func(interface{}) int { return fn() }
}

// checkInvariants asserts that exactly one process runs and that READY
// processes are exactly the queued ones.
func checkInvariants(t *testing.T, k *Service) {
	running := 0
	for i := range k.table.slots {
		p := &k.table.slots[i]
		if p.isEmpty() {
			continue
		}
		if p.state == process.StateRunning {
			running++
			assert.Equal(t, i, k.current, "running slot must be current")
		}
		assert.Equal(t, p.state == process.StateReady, p.queued, "pid %d: ready iff queued", p.pid)
	}
	assert.Equal(t, 1, running)
}
