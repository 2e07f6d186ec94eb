package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/service/dao"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	srv := New()

	records := []*process.Exit{
		{RunID: "r1", PID: 4, ParentPID: 2, Name: "b", Status: 0, FinishedAt: base.Add(2 * time.Second)},
		{RunID: "r1", PID: 3, ParentPID: 2, Name: "a", Status: 7, FinishedAt: base.Add(time.Second)},
		{RunID: "r1", PID: 2, ParentPID: 1, Name: "testcase_main", Status: 0, FinishedAt: base.Add(3 * time.Second)},
	}
	for _, record := range records {
		assert.NoError(t, srv.Save(ctx, record))
	}

	loaded, err := srv.Load(ctx, "r1/3")
	assert.NoError(t, err)
	assert.Equal(t, "a", loaded.Name)

	var testCases = []struct {
		description string
		parameters  []*dao.Parameter
		expect      []int
	}{
		{description: "all ordered by finish time", expect: []int{3, 4, 2}},
		{description: "by parent", parameters: []*dao.Parameter{dao.NewParameter(dao.ParamParentPID, "2")}, expect: []int{3, 4}},
		{description: "by status", parameters: []*dao.Parameter{dao.NewParameter(dao.ParamStatus, "7")}, expect: []int{3}},
		{description: "by name", parameters: []*dao.Parameter{dao.NewParameter(dao.ParamName, "b", "testcase_main")}, expect: []int{4, 2}},
		{description: "other run", parameters: []*dao.Parameter{dao.NewParameter(dao.ParamRunID, "r2")}, expect: []int{}},
	}
	for _, testCase := range testCases {
		list, err := srv.List(ctx, testCase.parameters...)
		assert.NoError(t, err, testCase.description)
		actual := make([]int, 0, len(list))
		for _, item := range list {
			actual = append(actual, item.PID)
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}

	assert.NoError(t, srv.Delete(ctx, "r1/3"))
	_, err = srv.Load(ctx, "r1/3")
	assert.ErrorIs(t, err, dao.ErrNotFound)
}
