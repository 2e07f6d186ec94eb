package memory

import (
	"context"

	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/service/dao"
	"github.com/viant/kernel/service/dao/exit"
	"github.com/viant/kernel/service/dao/store"
)

// Service keeps exit records in memory.
type Service struct {
	*store.MemoryStore[string, process.Exit]
}

var _ dao.Service[string, process.Exit] = (*Service)(nil)

// List returns matching records ordered by finish time.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*process.Exit, error) {
	all, err := s.MemoryStore.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*process.Exit, 0, len(all))
	for _, record := range all {
		if exit.Matches(record, parameters) {
			out = append(out, record)
		}
	}
	exit.Sort(out)
	return out, nil
}

func New() *Service {
	return &Service{MemoryStore: store.NewMemoryStore[string, process.Exit](func(e *process.Exit) string {
		return e.Key()
	})}
}
