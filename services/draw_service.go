//go:generate go run go.uber.org/mock/mockgen -source=draw_service.go -destination=../mocks/services/mock_draw_service.go -package=servicemocks
package services

import (
	"fmt"
	"log/slog"
	"time"

	"santas-draw/domain"
	"santas-draw/domain/event"
	"santas-draw/errors"
	"santas-draw/matching"
	"santas-draw/repositories"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const minParticipants = 3

type IDrawService interface {
	CreateDraw(req CreateDrawRequest) (domain.Draw, error)
	GetDraw(id domain.DrawID) (domain.Draw, error)
	GetDrawByInviteCode(code string) (domain.Draw, error)
	Join(code string, input ParticipantInput) (domain.Participant, error)
	RequestDraw(id domain.DrawID) error
	Execute(id domain.DrawID) ([]domain.DrawResult, error)
	Cancel(id domain.DrawID) error
	GetResults(id domain.DrawID) ([]domain.DrawResult, error)
	GetParticipantMatch(id domain.DrawID, participantID domain.ParticipantID) (domain.DrawResult, error)
}

// ParticipantInput is the service-level participant payload. Excludes
// references other participants of the same draw by email, which is the
// only identifier the organizer knows before IDs are generated.
type ParticipantInput struct {
	FirstName string
	LastName  string
	Email     string
	Address   string
	Phone     string
	Household string
	Excludes  []string
}

type CreateDrawRequest struct {
	CreatorID      string
	RequireAddress bool
	RequirePhone   bool
	DrawDate       *time.Time
	Participants   []ParticipantInput
}

// DrawService orchestrates the draw lifecycle: creation with invite code,
// joining, async execution through the job queue, and result lookup.
// The matcher factory is injected so tests can force a seeded generator.
type DrawService struct {
	draws      repositories.IDrawRepository
	jobs       repositories.IDrawJobRepository
	invites    *InviteCodeGenerator
	newMatcher func() *matching.Generator
	events     chan<- event.DomainEvent
	log        *slog.Logger
}

func NewDrawService(
	draws repositories.IDrawRepository,
	jobs repositories.IDrawJobRepository,
	invites *InviteCodeGenerator,
	newMatcher func() *matching.Generator,
	events chan<- event.DomainEvent,
	log *slog.Logger,
) IDrawService {
	if newMatcher == nil {
		newMatcher = func() *matching.Generator { return matching.NewGenerator() }
	}
	return &DrawService{
		draws:      draws,
		jobs:       jobs,
		invites:    invites,
		newMatcher: newMatcher,
		events:     events,
		log:        log,
	}
}

// emit publishes a lifecycle event without ever blocking a request:
// a full buffer drops the event, the draw itself is already persisted.
func (s *DrawService) emit(e event.DomainEvent) {
	if s.events == nil {
		return
	}
	select {
	case s.events <- e:
	default:
		s.log.Warn("Event buffer full, dropping event", "draw_id", e.DrawID())
	}
}

func (s *DrawService) CreateDraw(req CreateDrawRequest) (domain.Draw, error) {
	if len(req.Participants) < minParticipants {
		return domain.Draw{}, fmt.Errorf("%w: got %d", errors.ErrInsufficientParticipants, len(req.Participants))
	}

	code, err := s.invites.Generate(s.draws.InviteCodeTaken)
	if err != nil {
		return domain.Draw{}, err
	}

	drawType := domain.TypeAnonymous
	if req.CreatorID != "" {
		drawType = domain.TypeUserCreated
	}

	draw := domain.Draw{
		ID:             domain.DrawID(uuid.New().String()),
		CreatorID:      req.CreatorID,
		Status:         domain.StatusActive,
		Type:           drawType,
		InviteCode:     code,
		RequireAddress: req.RequireAddress,
		RequirePhone:   req.RequirePhone,
		DrawDate:       req.DrawDate,
		CreatedAt:      time.Now().UTC(),
	}

	participants, err := buildParticipants(draw.ID, req.Participants)
	if err != nil {
		return domain.Draw{}, err
	}

	if err := s.draws.CreateDraw(draw, participants); err != nil {
		return domain.Draw{}, err
	}

	s.log.Info("Draw created",
		"draw_id", draw.ID,
		"creator_id", draw.CreatorID,
		"participants", len(participants))
	return draw, nil
}

// buildParticipants assigns IDs and resolves email-based exclusions to
// participant IDs. Unknown exclusion emails are rejected here so the
// matcher only ever sees resolvable constraints.
func buildParticipants(drawID domain.DrawID, inputs []ParticipantInput) ([]domain.Participant, error) {
	idByEmail := make(map[string]domain.ParticipantID, len(inputs))
	participants := make([]domain.Participant, 0, len(inputs))

	for _, input := range inputs {
		if _, dup := idByEmail[input.Email]; dup {
			return nil, fmt.Errorf("duplicate participant email %q", input.Email)
		}
		id := domain.ParticipantID(uuid.New().String())
		idByEmail[input.Email] = id
		participants = append(participants, domain.Participant{
			ID:        id,
			DrawID:    drawID,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Email:     input.Email,
			Address:   input.Address,
			Phone:     input.Phone,
			Household: input.Household,
			CreatedAt: time.Now().UTC(),
		})
	}

	for i, input := range inputs {
		for _, email := range input.Excludes {
			excluded, ok := idByEmail[email]
			if !ok {
				return nil, fmt.Errorf("participant %q excludes unknown email %q", input.Email, email)
			}
			participants[i].Excludes = append(participants[i].Excludes, excluded)
		}
	}
	return participants, nil
}

func (s *DrawService) GetDraw(id domain.DrawID) (domain.Draw, error) {
	return s.draws.GetDraw(id)
}

func (s *DrawService) GetDrawByInviteCode(code string) (domain.Draw, error) {
	return s.draws.GetDrawByInviteCode(code)
}

// Join adds a participant to an active draw through its invite code.
func (s *DrawService) Join(code string, input ParticipantInput) (domain.Participant, error) {
	draw, err := s.draws.GetDrawByInviteCode(code)
	if err != nil {
		return domain.Participant{}, err
	}
	if draw.Status == domain.StatusCompleted {
		return domain.Participant{}, errors.ErrDrawAlreadyCompleted
	}
	if draw.Status == domain.StatusCancelled {
		return domain.Participant{}, errors.ErrDrawCancelled
	}

	existing, err := s.draws.GetParticipants(draw.ID)
	if err != nil {
		return domain.Participant{}, err
	}
	for _, participant := range existing {
		if participant.Email == input.Email {
			return domain.Participant{}, fmt.Errorf("%w: %s", errors.ErrAlreadyJoined, input.Email)
		}
	}

	participant := domain.Participant{
		ID:        domain.ParticipantID(uuid.New().String()),
		DrawID:    draw.ID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Address:   input.Address,
		Phone:     input.Phone,
		Household: input.Household,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.draws.AddParticipant(participant); err != nil {
		return domain.Participant{}, err
	}

	s.log.Info("Participant joined", "draw_id", draw.ID, "participant_id", participant.ID)
	return participant, nil
}

// RequestDraw enqueues the draw for async execution and flips its status
// to in_progress so double submissions are visible immediately.
func (s *DrawService) RequestDraw(id domain.DrawID) error {
	draw, err := s.draws.GetDraw(id)
	if err != nil {
		return err
	}
	if !draw.Executable() {
		if draw.Status == domain.StatusCancelled {
			return errors.ErrDrawCancelled
		}
		return errors.ErrDrawAlreadyCompleted
	}

	participants, err := s.draws.GetParticipants(id)
	if err != nil {
		return err
	}
	if len(participants) < minParticipants {
		return fmt.Errorf("%w: got %d", errors.ErrInsufficientParticipants, len(participants))
	}

	if err := s.draws.UpdateDrawStatus(id, domain.StatusInProgress); err != nil {
		return err
	}

	if err := s.jobs.Enqueue(repositories.DrawJob{
		ID:        uuid.New().String(),
		DrawID:    id,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}

	s.emit(event.DrawRequested{Draw: id, At: time.Now().UTC()})
	return nil
}

// Execute runs the matching synchronously and persists the assignment.
// Called by the draw processor worker, not by HTTP handlers.
func (s *DrawService) Execute(id domain.DrawID) ([]domain.DrawResult, error) {
	draw, err := s.draws.GetDraw(id)
	if err != nil {
		return nil, err
	}
	if !draw.Executable() {
		if draw.Status == domain.StatusCancelled {
			return nil, errors.ErrDrawCancelled
		}
		return nil, errors.ErrDrawAlreadyCompleted
	}

	participants, err := s.draws.GetParticipants(id)
	if err != nil {
		return nil, err
	}
	if len(participants) < minParticipants {
		return nil, fmt.Errorf("%w: got %d", errors.ErrInsufficientParticipants, len(participants))
	}

	candidates := lo.Map(participants, func(p domain.Participant, _ int) matching.Participant {
		return matching.Participant{
			ID:        matching.ID(p.ID),
			Name:      p.FullName(),
			Household: p.Household,
			Excludes: lo.Map(p.Excludes, func(id domain.ParticipantID, _ int) matching.ID {
				return matching.ID(id)
			}),
		}
	})

	assignment, err := s.newMatcher().Generate(candidates, nil, nil)
	if err != nil {
		// ErrInfeasible and ErrInvalidInput both bubble up untouched so
		// the worker can distinguish them when reporting the failure.
		return nil, err
	}

	now := time.Now().UTC()
	results := lo.Map(assignment, func(pair matching.Pair, _ int) domain.DrawResult {
		return domain.DrawResult{
			DrawID:     id,
			GiverID:    domain.ParticipantID(pair.Giver),
			ReceiverID: domain.ParticipantID(pair.Receiver),
			CreatedAt:  now,
		}
	})

	if err := s.draws.SaveResults(id, results); err != nil {
		return nil, err
	}

	s.log.Info("Draw executed",
		"draw_id", id,
		"participants", len(participants),
		"matches", len(results))
	return results, nil
}

func (s *DrawService) Cancel(id domain.DrawID) error {
	draw, err := s.draws.GetDraw(id)
	if err != nil {
		return err
	}
	if draw.Status == domain.StatusCompleted {
		return errors.ErrDrawAlreadyCompleted
	}
	return s.draws.UpdateDrawStatus(id, domain.StatusCancelled)
}

func (s *DrawService) GetResults(id domain.DrawID) ([]domain.DrawResult, error) {
	if _, err := s.draws.GetDraw(id); err != nil {
		return nil, err
	}
	return s.draws.GetResults(id)
}

func (s *DrawService) GetParticipantMatch(id domain.DrawID, participantID domain.ParticipantID) (domain.DrawResult, error) {
	results, err := s.GetResults(id)
	if err != nil {
		return domain.DrawResult{}, err
	}
	for _, result := range results {
		if result.GiverID == participantID {
			return result, nil
		}
	}
	return domain.DrawResult{}, errors.ErrResultNotFound
}
