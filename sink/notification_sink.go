package sink

import (
	"context"
	"log/slog"
	"time"

	"santas-draw/domain"
	"santas-draw/domain/event"
	"santas-draw/notify"
	"santas-draw/observability"
	"santas-draw/repositories"
)

// NotificationSink turns a completed draw into one result email per giver.
// Delivery is best effort: a failed email never fails the draw, results
// stay reachable through the API either way.
type NotificationSink struct {
	draws      repositories.IDrawRepository
	mailer     notify.IMailer
	monitoring *observability.MonitoringManager
	events     chan<- event.DomainEvent
	log        *slog.Logger
}

func NewNotificationSink(
	draws repositories.IDrawRepository,
	mailer notify.IMailer,
	monitoring *observability.MonitoringManager,
	events chan<- event.DomainEvent,
	log *slog.Logger,
) *NotificationSink {
	return &NotificationSink{draws: draws, mailer: mailer, monitoring: monitoring, events: events, log: log}
}

// record publishes one NotificationSent outcome back onto the event
// stream for the audit log. Non-blocking: the fan-out loop draining this
// channel may be the one waiting on us.
func (s *NotificationSink) record(e event.NotificationSent) {
	if s.events == nil {
		return
	}
	select {
	case s.events <- e:
	default:
	}
}

func (s *NotificationSink) Consume(ctx context.Context, e event.DomainEvent) error {
	completed, ok := e.(event.DrawCompleted)
	if !ok {
		return nil
	}

	participants, err := s.draws.GetParticipants(completed.Draw)
	if err != nil {
		return err
	}

	byID := make(map[domain.ParticipantID]domain.Participant, len(participants))
	for _, participant := range participants {
		byID[participant.ID] = participant
	}

	for _, result := range completed.Results {
		giver, okGiver := byID[result.GiverID]
		receiver, okReceiver := byID[result.ReceiverID]
		if !okGiver || !okReceiver {
			s.log.Error("Result references unknown participant",
				"draw_id", completed.Draw,
				"giver_id", result.GiverID,
				"receiver_id", result.ReceiverID)
			continue
		}

		err := s.mailer.SendDrawResult(ctx, notify.ResultEmail{
			GiverName:       giver.FullName(),
			GiverEmail:      giver.Email,
			ReceiverName:    receiver.FullName(),
			ReceiverAddress: receiver.Address,
			ReceiverPhone:   receiver.Phone,
		})
		s.record(event.NotificationSent{
			Draw:        completed.Draw,
			Participant: giver.ID,
			Email:       giver.Email,
			Delivered:   err == nil,
			At:          time.Now().UTC(),
		})
		if err != nil {
			s.monitoring.IncrEmailsFailed()
			s.log.Warn("Result email failed",
				"draw_id", completed.Draw,
				"participant_id", giver.ID,
				"error", err)
			continue
		}
		s.monitoring.IncrEmailsSent()
	}

	s.log.Info("Draw notifications processed",
		"draw_id", completed.Draw,
		"results", len(completed.Results),
		"at", time.Now().UTC())
	return nil
}
