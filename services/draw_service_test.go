package services

import (
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"santas-draw/domain"
	"santas-draw/domain/event"
	"santas-draw/errors"
	"santas-draw/matching"
	"santas-draw/mocks"
	"santas-draw/repositories"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func seededMatcherFactory(seed int64) func() *matching.Generator {
	return func() *matching.Generator {
		return matching.NewGenerator(matching.WithRand(rand.New(rand.NewSource(seed))))
	}
}

func newTestDrawService(draws repositories.IDrawRepository, jobs repositories.IDrawJobRepository) IDrawService {
	return newTestDrawServiceWithEvents(draws, jobs, nil)
}

func newTestDrawServiceWithEvents(
	draws repositories.IDrawRepository,
	jobs repositories.IDrawJobRepository,
	events chan event.DomainEvent,
) IDrawService {
	invites := NewInviteCodeGenerator(rand.New(rand.NewSource(1)))
	return NewDrawService(draws, jobs, invites, seededMatcherFactory(1), events, slog.Default())
}

func testParticipants(drawID domain.DrawID, n int) []domain.Participant {
	names := []string{"Alice", "Bob", "Clara", "David", "Emma", "Frank"}
	participants := make([]domain.Participant, 0, n)
	for i := 0; i < n; i++ {
		participants = append(participants, domain.Participant{
			ID:        domain.ParticipantID(names[i]),
			DrawID:    drawID,
			FirstName: names[i],
			Email:     names[i] + "@example.com",
			CreatedAt: time.Now().UTC(),
		})
	}
	return participants
}

func TestDrawService_CreateDraw(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDraws := mocks.NewMockIDrawRepository(ctrl)
	mockJobs := mocks.NewMockIDrawJobRepository(ctrl)
	svc := newTestDrawService(mockDraws, mockJobs)

	t.Run("should create an anonymous draw with an invite code", func(t *testing.T) {
		req := require.New(t)

		mockDraws.EXPECT().InviteCodeTaken(gomock.Any()).Return(false, nil).Times(1)
		mockDraws.EXPECT().CreateDraw(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		draw, err := svc.CreateDraw(CreateDrawRequest{
			Participants: []ParticipantInput{
				{FirstName: "Alice", Email: "alice@example.com"},
				{FirstName: "Bob", Email: "bob@example.com"},
				{FirstName: "Clara", Email: "clara@example.com"},
			},
		})

		req.NoError(err)
		req.NotEmpty(draw.ID)
		req.Equal(domain.StatusActive, draw.Status)
		req.Equal(domain.TypeAnonymous, draw.Type)
		req.Regexp(`^[a-z]+-[a-z]+-\d{3}$`, draw.InviteCode)
	})

	t.Run("should mark the draw as user created when a creator is given", func(t *testing.T) {
		req := require.New(t)

		mockDraws.EXPECT().InviteCodeTaken(gomock.Any()).Return(false, nil).Times(1)
		mockDraws.EXPECT().CreateDraw(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		draw, err := svc.CreateDraw(CreateDrawRequest{
			CreatorID: "user-1",
			Participants: []ParticipantInput{
				{FirstName: "Alice", Email: "alice@example.com"},
				{FirstName: "Bob", Email: "bob@example.com"},
				{FirstName: "Clara", Email: "clara@example.com"},
			},
		})

		req.NoError(err)
		req.Equal(domain.TypeUserCreated, draw.Type)
	})

	t.Run("should reject fewer than three participants", func(t *testing.T) {
		req := require.New(t)

		_, err := svc.CreateDraw(CreateDrawRequest{
			Participants: []ParticipantInput{
				{FirstName: "Alice", Email: "alice@example.com"},
				{FirstName: "Bob", Email: "bob@example.com"},
			},
		})

		req.ErrorIs(err, errors.ErrInsufficientParticipants)
	})

	t.Run("should resolve email exclusions to participant IDs", func(t *testing.T) {
		req := require.New(t)

		var saved []domain.Participant
		mockDraws.EXPECT().InviteCodeTaken(gomock.Any()).Return(false, nil).Times(1)
		mockDraws.EXPECT().
			CreateDraw(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ domain.Draw, participants []domain.Participant) error {
				saved = participants
				return nil
			}).
			Times(1)

		_, err := svc.CreateDraw(CreateDrawRequest{
			Participants: []ParticipantInput{
				{FirstName: "Alice", Email: "alice@example.com", Excludes: []string{"bob@example.com"}},
				{FirstName: "Bob", Email: "bob@example.com"},
				{FirstName: "Clara", Email: "clara@example.com"},
			},
		})

		req.NoError(err)
		req.Len(saved, 3)
		req.Len(saved[0].Excludes, 1)
		req.Equal(saved[1].ID, saved[0].Excludes[0])
	})

	t.Run("should reject exclusion of an unknown email", func(t *testing.T) {
		req := require.New(t)

		mockDraws.EXPECT().InviteCodeTaken(gomock.Any()).Return(false, nil).Times(1)

		_, err := svc.CreateDraw(CreateDrawRequest{
			Participants: []ParticipantInput{
				{FirstName: "Alice", Email: "alice@example.com", Excludes: []string{"ghost@example.com"}},
				{FirstName: "Bob", Email: "bob@example.com"},
				{FirstName: "Clara", Email: "clara@example.com"},
			},
		})

		req.Error(err)
		req.Contains(err.Error(), "unknown email")
	})
}

func TestDrawService_Join(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDraws := mocks.NewMockIDrawRepository(ctrl)
	mockJobs := mocks.NewMockIDrawJobRepository(ctrl)
	svc := newTestDrawService(mockDraws, mockJobs)

	drawID := domain.DrawID("draw-1")
	activeDraw := domain.Draw{ID: drawID, Status: domain.StatusActive, InviteCode: "jolly-elf-123"}

	t.Run("should add a participant to an active draw", func(t *testing.T) {
		req := require.New(t)

		mockDraws.EXPECT().GetDrawByInviteCode("jolly-elf-123").Return(activeDraw, nil).Times(1)
		mockDraws.EXPECT().GetParticipants(drawID).Return(testParticipants(drawID, 2), nil).Times(1)
		mockDraws.EXPECT().AddParticipant(gomock.Any()).Return(nil).Times(1)

		participant, err := svc.Join("jolly-elf-123", ParticipantInput{
			FirstName: "Zoe",
			Email:     "zoe@example.com",
		})

		req.NoError(err)
		req.NotEmpty(participant.ID)
		req.Equal(drawID, participant.DrawID)
	})

	t.Run("should reject joining a completed draw", func(t *testing.T) {
		req := require.New(t)

		completed := activeDraw
		completed.Status = domain.StatusCompleted
		mockDraws.EXPECT().GetDrawByInviteCode("jolly-elf-123").Return(completed, nil).Times(1)

		_, err := svc.Join("jolly-elf-123", ParticipantInput{Email: "zoe@example.com"})

		req.ErrorIs(err, errors.ErrDrawAlreadyCompleted)
	})

	t.Run("should reject a duplicate email", func(t *testing.T) {
		req := require.New(t)

		mockDraws.EXPECT().GetDrawByInviteCode("jolly-elf-123").Return(activeDraw, nil).Times(1)
		mockDraws.EXPECT().GetParticipants(drawID).Return(testParticipants(drawID, 2), nil).Times(1)

		_, err := svc.Join("jolly-elf-123", ParticipantInput{Email: "Alice@example.com"})
		req.ErrorIs(err, errors.ErrAlreadyJoined)
	})
}

func TestDrawService_RequestDraw(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDraws := mocks.NewMockIDrawRepository(ctrl)
	mockJobs := mocks.NewMockIDrawJobRepository(ctrl)
	svc := newTestDrawService(mockDraws, mockJobs)

	drawID := domain.DrawID("draw-1")

	t.Run("should enqueue a job and flip status to in progress", func(t *testing.T) {
		req := require.New(t)

		mockDraws.EXPECT().GetDraw(drawID).Return(domain.Draw{ID: drawID, Status: domain.StatusActive}, nil).Times(1)
		mockDraws.EXPECT().GetParticipants(drawID).Return(testParticipants(drawID, 3), nil).Times(1)
		mockDraws.EXPECT().UpdateDrawStatus(drawID, domain.StatusInProgress).Return(nil).Times(1)

		var enqueued repositories.DrawJob
		mockJobs.EXPECT().
			Enqueue(gomock.Any()).
			DoAndReturn(func(job repositories.DrawJob) error {
				enqueued = job
				return nil
			}).
			Times(1)

		req.NoError(svc.RequestDraw(drawID))
		req.Equal(drawID, enqueued.DrawID)
		req.NotEmpty(enqueued.ID)
	})

	t.Run("should publish a requested event once the job is enqueued", func(t *testing.T) {
		req := require.New(t)

		events := make(chan event.DomainEvent, 1)
		eventedSvc := newTestDrawServiceWithEvents(mockDraws, mockJobs, events)

		mockDraws.EXPECT().GetDraw(drawID).Return(domain.Draw{ID: drawID, Status: domain.StatusActive}, nil).Times(1)
		mockDraws.EXPECT().GetParticipants(drawID).Return(testParticipants(drawID, 3), nil).Times(1)
		mockDraws.EXPECT().UpdateDrawStatus(drawID, domain.StatusInProgress).Return(nil).Times(1)
		mockJobs.EXPECT().Enqueue(gomock.Any()).Return(nil).Times(1)

		req.NoError(eventedSvc.RequestDraw(drawID))

		select {
		case e := <-events:
			requested, ok := e.(event.DrawRequested)
			req.True(ok)
			req.Equal(drawID, requested.Draw)
		default:
			req.Fail("expected a DrawRequested event on the stream")
		}
	})

	t.Run("should reject a draw with too few participants", func(t *testing.T) {
		req := require.New(t)

		mockDraws.EXPECT().GetDraw(drawID).Return(domain.Draw{ID: drawID, Status: domain.StatusActive}, nil).Times(1)
		mockDraws.EXPECT().GetParticipants(drawID).Return(testParticipants(drawID, 2), nil).Times(1)

		req.ErrorIs(svc.RequestDraw(drawID), errors.ErrInsufficientParticipants)
	})

	t.Run("should reject a cancelled draw", func(t *testing.T) {
		req := require.New(t)

		mockDraws.EXPECT().GetDraw(drawID).Return(domain.Draw{ID: drawID, Status: domain.StatusCancelled}, nil).Times(1)

		req.ErrorIs(svc.RequestDraw(drawID), errors.ErrDrawCancelled)
	})
}

func TestDrawService_Execute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDraws := mocks.NewMockIDrawRepository(ctrl)
	mockJobs := mocks.NewMockIDrawJobRepository(ctrl)
	svc := newTestDrawService(mockDraws, mockJobs)

	drawID := domain.DrawID("draw-1")
	inProgress := domain.Draw{ID: drawID, Status: domain.StatusInProgress}

	t.Run("should produce a full assignment and persist it", func(t *testing.T) {
		req := require.New(t)
		participants := testParticipants(drawID, 4)

		mockDraws.EXPECT().GetDraw(drawID).Return(inProgress, nil).Times(1)
		mockDraws.EXPECT().GetParticipants(drawID).Return(participants, nil).Times(1)
		mockDraws.EXPECT().SaveResults(drawID, gomock.Any()).Return(nil).Times(1)

		results, err := svc.Execute(drawID)

		req.NoError(err)
		req.Len(results, len(participants))

		givers := make(map[domain.ParticipantID]bool)
		receivers := make(map[domain.ParticipantID]bool)
		for _, result := range results {
			req.Equal(drawID, result.DrawID)
			req.NotEqual(result.GiverID, result.ReceiverID)
			req.False(givers[result.GiverID], "giver appears twice")
			req.False(receivers[result.ReceiverID], "receiver appears twice")
			givers[result.GiverID] = true
			receivers[result.ReceiverID] = true
		}
	})

	t.Run("should honor exclusions when matching", func(t *testing.T) {
		req := require.New(t)
		participants := testParticipants(drawID, 4)
		// Alice and Bob are a couple: never matched in either direction.
		participants[0].Excludes = []domain.ParticipantID{participants[1].ID}

		mockDraws.EXPECT().GetDraw(drawID).Return(inProgress, nil).Times(1)
		mockDraws.EXPECT().GetParticipants(drawID).Return(participants, nil).Times(1)
		mockDraws.EXPECT().SaveResults(drawID, gomock.Any()).Return(nil).Times(1)

		results, err := svc.Execute(drawID)

		req.NoError(err)
		for _, result := range results {
			forbidden := result.GiverID == participants[0].ID && result.ReceiverID == participants[1].ID ||
				result.GiverID == participants[1].ID && result.ReceiverID == participants[0].ID
			req.False(forbidden, "excluded pair was matched")
		}
	})

	t.Run("should report an infeasible draw without saving", func(t *testing.T) {
		req := require.New(t)
		participants := testParticipants(drawID, 3)
		// Alice excludes everyone, so she has no valid receiver.
		participants[0].Excludes = []domain.ParticipantID{participants[1].ID, participants[2].ID}

		mockDraws.EXPECT().GetDraw(drawID).Return(inProgress, nil).Times(1)
		mockDraws.EXPECT().GetParticipants(drawID).Return(participants, nil).Times(1)

		_, err := svc.Execute(drawID)

		req.ErrorIs(err, matching.ErrInfeasible)
	})

	t.Run("should refuse to run a completed draw twice", func(t *testing.T) {
		req := require.New(t)

		mockDraws.EXPECT().GetDraw(drawID).Return(domain.Draw{ID: drawID, Status: domain.StatusCompleted}, nil).Times(1)

		_, err := svc.Execute(drawID)

		req.ErrorIs(err, errors.ErrDrawAlreadyCompleted)
	})
}

func TestDrawService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDraws := mocks.NewMockIDrawRepository(ctrl)
	mockJobs := mocks.NewMockIDrawJobRepository(ctrl)
	svc := newTestDrawService(mockDraws, mockJobs)

	drawID := domain.DrawID("draw-1")

	t.Run("should cancel an active draw", func(t *testing.T) {
		req := require.New(t)

		mockDraws.EXPECT().GetDraw(drawID).Return(domain.Draw{ID: drawID, Status: domain.StatusActive}, nil).Times(1)
		mockDraws.EXPECT().UpdateDrawStatus(drawID, domain.StatusCancelled).Return(nil).Times(1)

		req.NoError(svc.Cancel(drawID))
	})

	t.Run("should refuse to cancel a completed draw", func(t *testing.T) {
		req := require.New(t)

		mockDraws.EXPECT().GetDraw(drawID).Return(domain.Draw{ID: drawID, Status: domain.StatusCompleted}, nil).Times(1)

		req.ErrorIs(svc.Cancel(drawID), errors.ErrDrawAlreadyCompleted)
	})
}

func TestDrawService_GetParticipantMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDraws := mocks.NewMockIDrawRepository(ctrl)
	mockJobs := mocks.NewMockIDrawJobRepository(ctrl)
	svc := newTestDrawService(mockDraws, mockJobs)

	drawID := domain.DrawID("draw-1")
	results := []domain.DrawResult{
		{DrawID: drawID, GiverID: "Alice", ReceiverID: "Bob"},
		{DrawID: drawID, GiverID: "Bob", ReceiverID: "Alice"},
	}

	t.Run("should return the match of a giver", func(t *testing.T) {
		req := require.New(t)

		mockDraws.EXPECT().GetDraw(drawID).Return(domain.Draw{ID: drawID, Status: domain.StatusCompleted}, nil).Times(1)
		mockDraws.EXPECT().GetResults(drawID).Return(results, nil).Times(1)

		result, err := svc.GetParticipantMatch(drawID, "Bob")

		req.NoError(err)
		req.Equal(domain.ParticipantID("Alice"), result.ReceiverID)
	})

	t.Run("should return not found for an unknown giver", func(t *testing.T) {
		req := require.New(t)

		mockDraws.EXPECT().GetDraw(drawID).Return(domain.Draw{ID: drawID, Status: domain.StatusCompleted}, nil).Times(1)
		mockDraws.EXPECT().GetResults(drawID).Return(results, nil).Times(1)

		_, err := svc.GetParticipantMatch(drawID, "Ghost")

		req.ErrorIs(err, errors.ErrResultNotFound)
	})
}
