package kernel

import (
	"context"
	"fmt"
	"strconv"

	"github.com/viant/kernel/internal/idgen"
	"github.com/viant/kernel/machine"
	"github.com/viant/kernel/model/process"
	"github.com/viant/kernel/progress"
	"github.com/viant/kernel/service/event"
	"github.com/viant/kernel/service/scheduler"
	"github.com/viant/kernel/tracing"
	"golang.org/x/sync/errgroup"
)

// Run boots a fresh machine, runs testcase as the first user process and
// blocks until the machine halts. The returned Halt carries the testcase's
// exit status, or code 1 with the diagnostic when the kernel detected a
// fatal condition. An error is returned when the machine could not be
// booted or ctx ended before the halt; in that case the machine is stopped
// and the running process terminates at its next yield point.
func (s *Service) Run(ctx context.Context, testcase process.Entry, arg interface{}) (*machine.Halt, error) {
	if testcase == nil {
		return nil, fmt.Errorf("testcase entry is required")
	}
	runID := idgen.New()
	ctx, tracker := progress.WithNewTracker(ctx, runID, nil)
	s.mux.Lock()
	s.progress = tracker
	s.mux.Unlock()
	ctx, span := tracing.StartSpan(ctx, "run", "INTERNAL")
	span.WithAttributes(map[string]string{"run.id": runID})

	halt, err := s.run(ctx, runID, testcase, arg)
	switch {
	case err != nil:
		tracing.EndSpan(span, err)
	case halt.Code != 0:
		span.WithAttributes(map[string]string{"halt.code": strconv.Itoa(halt.Code)})
		tracing.EndSpan(span, halt)
	default:
		span.WithAttributes(map[string]string{"halt.code": "0"})
		tracing.EndSpan(span, nil)
	}
	if flushErr := tracing.Flush(ctx); flushErr != nil {
		s.logger.WithError(flushErr).Warn("failed to flush traces")
	}
	return halt, err
}

func (s *Service) run(ctx context.Context, runID string, testcase process.Entry, arg interface{}) (*machine.Halt, error) {
	m := machine.New(machine.WithConfig(s.config.machineConfig()), machine.WithConsole(s.console))
	options := []scheduler.Option{
		scheduler.WithConfig(s.config.schedulerConfig()),
		scheduler.WithLogger(s.logger.WithField("runID", runID)),
		scheduler.WithContext(ctx),
		scheduler.WithRunID(runID),
		scheduler.WithTestcase(testcase, arg),
		scheduler.WithServiceStarter(s.starters...),
	}
	if s.exits != nil {
		options = append(options, scheduler.WithExitDAO(s.exits))
	}
	if s.events != nil {
		publisher, err := event.PublisherOf[process.Info](s.events)
		if err != nil {
			return nil, fmt.Errorf("failed to create event publisher: %w", err)
		}
		if err = event.SetListenerOf[process.Info](s.events, s.listener); err != nil {
			return nil, fmt.Errorf("failed to start event listener: %w", err)
		}
		options = append(options, scheduler.WithPublisher(publisher))
	}
	sched, err := scheduler.New(m, options...)
	if err != nil {
		return nil, err
	}
	s.mux.Lock()
	s.machine, s.scheduler = m, sched
	s.mux.Unlock()

	sched.Init()
	s.logger.WithField("runID", runID).Info("machine starting")
	if err = sched.Start(); err != nil {
		return nil, err
	}

	var halt *machine.Halt
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		m.RunClock(groupCtx)
		return nil
	})
	group.Go(func() error {
		var err error
		halt, err = m.Wait(groupCtx)
		if err != nil {
			m.Stop(1, fmt.Sprintf("run stopped: %v", err))
		}
		return err
	})
	if err = group.Wait(); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	s.logger.WithField("runID", runID).WithField("code", halt.Code).Info("machine halted")
	return halt, nil
}
