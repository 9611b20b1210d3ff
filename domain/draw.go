// Package domain contains core concepts of the draw system.
// This file defines the Draw aggregate and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"time"
)

type DrawID string

type DrawStatus string

const (
	StatusActive     DrawStatus = "active"
	StatusInProgress DrawStatus = "in_progress"
	StatusCompleted  DrawStatus = "completed"
	StatusCancelled  DrawStatus = "cancelled"
)

type DrawType string

const (
	TypeAnonymous   DrawType = "anonymous"
	TypeUserCreated DrawType = "user_created"
)

// Draw is a gift exchange event. CreatorID is empty for anonymous draws:
// anyone holding the invite code can join until the draw is executed.
type Draw struct {
	ID             DrawID
	CreatorID      string
	Status         DrawStatus
	Type           DrawType
	InviteCode     string
	RequireAddress bool
	RequirePhone   bool
	DrawDate       *time.Time
	CreatedAt      time.Time
}

// Executable reports whether the draw can still be run.
func (d Draw) Executable() bool {
	return d.Status == StatusActive || d.Status == StatusInProgress
}

type ParticipantID string

// Participant belongs to exactly one draw. Household groups two or more
// participants that must never draw each other; Excludes lists explicit
// must-not-pair participant IDs, symmetrized by the matcher.
type Participant struct {
	ID        ParticipantID
	DrawID    DrawID
	FirstName string
	LastName  string
	Email     string
	Address   string
	Phone     string
	Household string
	Excludes  []ParticipantID
	CreatedAt time.Time
}

func (p Participant) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// DrawResult is one edge of the completed assignment.
type DrawResult struct {
	DrawID     DrawID
	GiverID    ParticipantID
	ReceiverID ParticipantID
	CreatedAt  time.Time
}
