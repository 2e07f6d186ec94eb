package scheduler

import (
	"github.com/viant/kernel/progress"
	"github.com/viant/kernel/service/event"
)

// Lifecycle event types.
const (
	EventSpork    = "spork"
	EventDispatch = "dispatch"
	EventBlock    = "block"
	EventWake     = "wake"
	EventZap      = "zap"
	EventQuit     = "quit"
	EventJoin     = "join"
)

// notify records eventType on the process span and publishes a snapshot of
// slot when a publisher is configured.
func (s *Service) notify(eventType string, slot int) {
	info := s.info(slot)
	if span := s.table.slots[slot].span; span != nil {
		span.AddEvent(eventType, map[string]string{"process.state": info.StateLabel()})
	}
	if s.publisher == nil {
		return
	}
	anEvent := event.NewEvent(&event.Context{
		RunID:     s.runID,
		PID:       info.PID,
		EventType: eventType,
	}, info)
	if err := s.publisher.Publish(s.ctx, anEvent); err != nil {
		s.logger.WithError(err).WithField("event", eventType).Warn("failed to publish event")
	}
}

// track applies d to the run's progress tracker, if the context carries one.
func (s *Service) track(d progress.Delta) {
	progress.UpdateCtx(s.ctx, d)
}
