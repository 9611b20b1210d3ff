package workers

import (
	"context"
	"log/slog"
	"time"

	"santas-draw/contract"
	"santas-draw/domain/event"
)

// EventFanout broadcasts domain events to multiple in-process consumers.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering, durability, or retries. EventFanout is not a message broker.
//
// It is intended for observability and side effects (emails, logs,
// metrics), not for core domain logic: results are already persisted by
// the time an event reaches a sink.
//
// EventFanout is safe for concurrent use by multiple goroutines.
type EventFanout struct {
	Log         *slog.Logger
	Name        contract.WorkerName
	DomainEvent chan event.DomainEvent
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, domainEvent chan event.DomainEvent, sinkTimeout time.Duration) EventFanout {
	return EventFanout{Log: log, DomainEvent: domainEvent, sinkTimeout: sinkTimeout}
}

func (w EventFanout) Add(sinks ...contract.EventSink) EventFanout {
	w.sinks = append(w.sinks, sinks...)
	return w
}

func (w EventFanout) WithName(name string) contract.Worker {
	w.Name = contract.WorkerName(name)
	return w
}

func (w EventFanout) GetName() contract.WorkerName { return w.Name }

func (w EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.DomainEvent:
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.Log.Debug("Context done, stopping domainEvent send")
			return nil
		}
	}
}

// Fanout delivers one event to every sink. Each sink runs in its own
// goroutine under a per-sink deadline so a slow mailer can never stall
// the event loop or the other sinks.
func (w EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	for _, sink := range w.sinks {
		go func(s contract.EventSink) {
			sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
			defer cancel()

			if err := s.Consume(sinkCtx, evt); err != nil {
				w.Log.Warn("Sink failed to consume event", "draw_id", evt.DrawID(), "error", err)
			}
		}(sink)
	}
}
