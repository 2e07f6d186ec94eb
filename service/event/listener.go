package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/viant/kernel/service/messaging"
)

// Listener drains a publisher and hands every event to a handler.  A handler
// panic nacks the message so that the queue redelivers it, and dead-letters it
// once its retries are exhausted.
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	logger    logrus.FieldLogger
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewListener[T any](publisher *Publisher[T], handler func(*Event[T]), logger logrus.FieldLogger) *Listener[T] {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// Stop cancels the listener and waits for the consuming goroutine to exit.
func (l *Listener[T]) Stop() {
	l.cancel()
	<-l.done
}

func (l *Listener[T]) Start() {
	go func() {
		defer close(l.done)
		for {
			msg, err := l.publisher.Next(l.ctx)
			if err != nil {
				if l.ctx.Err() != nil || errors.Is(err, context.Canceled) {
					return
				}
				l.logger.WithError(err).Warn("failed to consume event")
				continue
			}
			if msg != nil {
				l.deliver(msg)
			}
		}
	}()
}

func (l *Listener[T]) deliver(msg messaging.Message[Event[T]]) {
	if err := l.handle(msg.T()); err != nil {
		l.logger.WithError(err).WithField("message", msg.ID()).Warn("event handler failed")
		if err = msg.Nack(err); err != nil {
			l.logger.WithError(err).Warn("failed to nack event")
		}
		return
	}
	if err := msg.Ack(); err != nil {
		l.logger.WithError(err).Warn("failed to ack event")
	}
}

func (l *Listener[T]) handle(event *Event[T]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	l.handler(event)
	return nil
}
