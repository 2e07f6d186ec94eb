// Package exit holds helpers shared by the exit record DAOs.
package exit

import (
	"sort"
	"strconv"

	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/service/dao"
	"github.com/viant/kernel/service/dao/criteria"
)

// Matches reports whether the record satisfies the filter parameters.
func Matches(record *process.Exit, parameters []*dao.Parameter) bool {
	return criteria.MatchAll(map[string]string{
		dao.ParamRunID:     record.RunID,
		dao.ParamName:      record.Name,
		dao.ParamParentPID: strconv.Itoa(record.ParentPID),
		dao.ParamStatus:    strconv.Itoa(record.Status),
	}, parameters)
}

// Sort orders records by finish time, then run id and pid.
func Sort(records []*process.Exit) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.FinishedAt.Equal(b.FinishedAt) {
			return a.FinishedAt.Before(b.FinishedAt)
		}
		if a.RunID != b.RunID {
			return a.RunID < b.RunID
		}
		return a.PID < b.PID
	})
}
