package event

import (
	"time"

	"santas-draw/domain"
)

// DomainEvent is anything the workers fan out to sinks: draw lifecycle
// transitions and notification outcomes.
type DomainEvent interface {
	DrawID() domain.DrawID
}

// DrawRequested is emitted when a draw job is enqueued for async execution.
type DrawRequested struct {
	Draw domain.DrawID
	At   time.Time
}

func (e DrawRequested) DrawID() domain.DrawID { return e.Draw }

// DrawCompleted carries the full assignment so the notifier never has to
// re-read storage under a racing cancel.
type DrawCompleted struct {
	Draw    domain.DrawID
	Results []domain.DrawResult
	At      time.Time
}

func (e DrawCompleted) DrawID() domain.DrawID { return e.Draw }

// DrawFailed is emitted for both infeasible constraint sets and internal
// errors; Infeasible distinguishes the two for the organizer-facing message.
type DrawFailed struct {
	Draw       domain.DrawID
	Reason     string
	Infeasible bool
	At         time.Time
}

func (e DrawFailed) DrawID() domain.DrawID { return e.Draw }

// NotificationSent records one delivered (or failed) result email.
type NotificationSent struct {
	Draw        domain.DrawID
	Participant domain.ParticipantID
	Email       string
	Delivered   bool
	At          time.Time
}

func (e NotificationSent) DrawID() domain.DrawID { return e.Draw }
