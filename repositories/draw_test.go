package repositories

import (
	"log/slog"
	"testing"
	"time"

	"santas-draw/domain"
	"santas-draw/errors"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/database"
	"github.com/stretchr/testify/require"
)

func newDraw(code string) (domain.Draw, []domain.Participant) {
	drawID := domain.DrawID(uuid.New().String())
	draw := domain.Draw{
		ID:         drawID,
		Status:     domain.StatusActive,
		Type:       domain.TypeAnonymous,
		InviteCode: code,
		CreatedAt:  time.Now().UTC(),
	}
	participants := []domain.Participant{
		{ID: "p1", DrawID: drawID, FirstName: "Alice", Email: "alice@example.com"},
		{ID: "p2", DrawID: drawID, FirstName: "Bob", Email: "bob@example.com"},
		{ID: "p3", DrawID: drawID, FirstName: "Clara", Email: "clara@example.com"},
	}
	return draw, participants
}

func Test_Create_And_Get_Draw(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repository := NewDrawRepository(badgerDB, slog.Default())
	draw, participants := newDraw("jolly-reindeer-742")

	req.NoError(repository.CreateDraw(draw, participants))

	fetched, err := repository.GetDraw(draw.ID)
	req.NoError(err)
	req.Equal(draw.ID, fetched.ID)
	req.Equal(domain.StatusActive, fetched.Status)
	req.Equal("jolly-reindeer-742", fetched.InviteCode)

	byCode, err := repository.GetDrawByInviteCode("jolly-reindeer-742")
	req.NoError(err)
	req.Equal(draw.ID, byCode.ID)

	taken, err := repository.InviteCodeTaken("jolly-reindeer-742")
	req.NoError(err)
	req.True(taken)

	free, err := repository.InviteCodeTaken("frosty-elf-123")
	req.NoError(err)
	req.False(free)

	stored, err := repository.GetParticipants(draw.ID)
	req.NoError(err)
	req.Len(stored, len(participants))
}

func Test_Get_Unknown_Draw(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repository := NewDrawRepository(badgerDB, slog.Default())

	_, err = repository.GetDraw("missing")
	req.ErrorIs(err, errors.ErrDrawNotFound)

	_, err = repository.GetDrawByInviteCode("no-such-code-000")
	req.ErrorIs(err, errors.ErrInviteCodeNotFound)
}

func Test_Duplicate_Invite_Code_Rejected(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repository := NewDrawRepository(badgerDB, slog.Default())
	first, firstParticipants := newDraw("merry-sleigh-555")
	second, secondParticipants := newDraw("merry-sleigh-555")

	req.NoError(repository.CreateDraw(first, firstParticipants))
	req.ErrorIs(repository.CreateDraw(second, secondParticipants), errors.ErrInviteCodeExhausted)
}

func Test_Add_Participant_And_Isolation_Between_Draws(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repository := NewDrawRepository(badgerDB, slog.Default())
	first, firstParticipants := newDraw("bright-star-101")
	second, secondParticipants := newDraw("cozy-wreath-202")
	req.NoError(repository.CreateDraw(first, firstParticipants))
	req.NoError(repository.CreateDraw(second, secondParticipants))

	late := domain.Participant{ID: "p4", DrawID: first.ID, FirstName: "David", Email: "david@example.com"}
	req.NoError(repository.AddParticipant(late))

	stored, err := repository.GetParticipants(first.ID)
	req.NoError(err)
	req.Len(stored, 4)

	others, err := repository.GetParticipants(second.ID)
	req.NoError(err)
	req.Len(others, 3)

	orphan := domain.Participant{ID: "px", DrawID: "missing", FirstName: "Ghost"}
	req.ErrorIs(repository.AddParticipant(orphan), errors.ErrDrawNotFound)
}

func Test_Save_Results_Completes_Draw_Atomically(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repository := NewDrawRepository(badgerDB, slog.Default())
	draw, participants := newDraw("magical-gift-303")
	req.NoError(repository.CreateDraw(draw, participants))

	now := time.Now().UTC()
	results := []domain.DrawResult{
		{DrawID: draw.ID, GiverID: "p1", ReceiverID: "p2", CreatedAt: now},
		{DrawID: draw.ID, GiverID: "p2", ReceiverID: "p3", CreatedAt: now},
		{DrawID: draw.ID, GiverID: "p3", ReceiverID: "p1", CreatedAt: now},
	}
	req.NoError(repository.SaveResults(draw.ID, results))

	completed, err := repository.GetDraw(draw.ID)
	req.NoError(err)
	req.Equal(domain.StatusCompleted, completed.Status)

	fetched, err := repository.GetResults(draw.ID)
	req.NoError(err)
	req.Len(fetched, 3)

	givers := make(map[domain.ParticipantID]struct{})
	for _, result := range fetched {
		givers[result.GiverID] = struct{}{}
	}
	req.Len(givers, 3)
}

func Test_Update_Draw_Status(t *testing.T) {
	req := require.New(t)
	_, _, badgerDB, blugeWriter, err := database.SetupBenchmark(database.DefaultPath)
	req.NoError(err)
	defer database.CleanupDB(badgerDB, blugeWriter)

	repository := NewDrawRepository(badgerDB, slog.Default())
	draw, participants := newDraw("sparkly-bell-404")
	req.NoError(repository.CreateDraw(draw, participants))

	req.NoError(repository.UpdateDrawStatus(draw.ID, domain.StatusCancelled))

	cancelled, err := repository.GetDraw(draw.ID)
	req.NoError(err)
	req.Equal(domain.StatusCancelled, cancelled.Status)

	req.ErrorIs(repository.UpdateDrawStatus("missing", domain.StatusCancelled), errors.ErrDrawNotFound)
}
