package fs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/service/dao"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	baseURL := "mem://localhost/exits"
	srv, err := New(baseURL, WithFS(fs))
	require.NoError(t, err)

	empty, err := srv.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, empty)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []*process.Exit{
		{RunID: "r1", PID: 3, ParentPID: 2, Name: "a", Priority: 4, Status: 7, CPUTime: 20 * time.Millisecond, FinishedAt: base.Add(time.Second)},
		{RunID: "r1", PID: 2, ParentPID: 1, Name: "testcase_main", Priority: 3, Status: 0, FinishedAt: base.Add(2 * time.Second)},
	}
	for _, record := range records {
		require.NoError(t, srv.Save(ctx, record))
	}
	exists, err := fs.Exists(ctx, baseURL+"/r1/3.json")
	assert.NoError(t, err)
	assert.True(t, exists)

	loaded, err := srv.Load(ctx, "r1/3")
	require.NoError(t, err)
	assert.Equal(t, records[0].Name, loaded.Name)
	assert.Equal(t, records[0].Status, loaded.Status)
	assert.Equal(t, records[0].CPUTime, loaded.CPUTime)
	assert.True(t, records[0].FinishedAt.Equal(loaded.FinishedAt))

	list, err := srv.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 3, list[0].PID)
	assert.Equal(t, 2, list[1].PID)

	list, err = srv.List(ctx, dao.NewParameter(dao.ParamParentPID, "1"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "testcase_main", list[0].Name)

	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, srv.Save(ctx, &process.Exit{PID: 3}), dao.ErrInvalidID)
	_, err = srv.Load(ctx, "bad")
	assert.ErrorIs(t, err, dao.ErrInvalidID)

	require.NoError(t, srv.Delete(ctx, "r1/3"))
	_, err = srv.Load(ctx, "r1/3")
	assert.ErrorIs(t, err, dao.ErrNotFound)
	assert.ErrorIs(t, srv.Delete(ctx, "r1/3"), dao.ErrNotFound)
}
