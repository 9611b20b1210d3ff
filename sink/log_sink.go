package sink

import (
	"context"
	"log/slog"

	"santas-draw/domain/event"
)

// LogSink writes every draw lifecycle event to the structured log. It is
// the audit trail of the system: cheap, always on, no storage coupling.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.DrawRequested:
		s.log.Info("Draw requested", "draw_id", evt.Draw, "at", evt.At)
	case event.DrawCompleted:
		s.log.Info("Draw completed", "draw_id", evt.Draw, "matches", len(evt.Results), "at", evt.At)
	case event.DrawFailed:
		s.log.Warn("Draw failed", "draw_id", evt.Draw, "infeasible", evt.Infeasible, "reason", evt.Reason, "at", evt.At)
	case event.NotificationSent:
		s.log.Info("Notification processed", "draw_id", evt.Draw, "participant_id", evt.Participant, "delivered", evt.Delivered)
	default:
		s.log.Debug("Unhandled event", "draw_id", e.DrawID())
	}
	return nil
}
