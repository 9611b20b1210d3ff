package sink

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"santas-draw/domain"
	"santas-draw/domain/event"
	"santas-draw/mocks"
	"santas-draw/notify"
	"santas-draw/observability"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func completedEvent(drawID domain.DrawID) (event.DrawCompleted, []domain.Participant) {
	participants := []domain.Participant{
		{ID: "alice", DrawID: drawID, FirstName: "Alice", Email: "alice@example.com", Address: "1 North Pole"},
		{ID: "bob", DrawID: drawID, FirstName: "Bob", Email: "bob@example.com"},
		{ID: "clara", DrawID: drawID, FirstName: "Clara", Email: "clara@example.com"},
	}
	evt := event.DrawCompleted{
		Draw: drawID,
		Results: []domain.DrawResult{
			{DrawID: drawID, GiverID: "alice", ReceiverID: "bob"},
			{DrawID: drawID, GiverID: "bob", ReceiverID: "clara"},
			{DrawID: drawID, GiverID: "clara", ReceiverID: "alice"},
		},
		At: time.Now().UTC(),
	}
	return evt, participants
}

func TestNotificationSink_SendsOneEmailPerGiver(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDraws := mocks.NewMockIDrawRepository(ctrl)
	mockMailer := mocks.NewMockIMailer(ctrl)
	monitoring := observability.NewMonitoringManager(slog.Default())
	s := NewNotificationSink(mockDraws, mockMailer, monitoring, nil, slog.Default())

	evt, participants := completedEvent("draw-1")
	mockDraws.EXPECT().GetParticipants(domain.DrawID("draw-1")).Return(participants, nil).Times(1)

	sent := make([]notify.ResultEmail, 0, 3)
	mockMailer.EXPECT().
		SendDrawResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, email notify.ResultEmail) error {
			sent = append(sent, email)
			return nil
		}).
		Times(3)

	req.NoError(s.Consume(context.Background(), evt))
	req.Len(sent, 3)

	// Clara gives to Alice, so Clara's email carries Alice's address.
	for _, email := range sent {
		if email.GiverEmail == "clara@example.com" {
			req.Equal("Alice", email.ReceiverName)
			req.Equal("1 North Pole", email.ReceiverAddress)
		}
	}
}

func TestNotificationSink_FailedEmailDoesNotStopOthers(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDraws := mocks.NewMockIDrawRepository(ctrl)
	mockMailer := mocks.NewMockIMailer(ctrl)
	monitoring := observability.NewMonitoringManager(slog.Default())
	s := NewNotificationSink(mockDraws, mockMailer, monitoring, nil, slog.Default())

	evt, participants := completedEvent("draw-1")
	mockDraws.EXPECT().GetParticipants(domain.DrawID("draw-1")).Return(participants, nil).Times(1)

	calls := 0
	mockMailer.EXPECT().
		SendDrawResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ notify.ResultEmail) error {
			calls++
			if calls == 1 {
				return fmt.Errorf("smtp unavailable")
			}
			return nil
		}).
		Times(3)

	req.NoError(s.Consume(context.Background(), evt))
	req.Equal(3, calls)
}

func TestNotificationSink_RecordsOneOutcomePerEmail(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDraws := mocks.NewMockIDrawRepository(ctrl)
	mockMailer := mocks.NewMockIMailer(ctrl)
	monitoring := observability.NewMonitoringManager(slog.Default())
	events := make(chan event.DomainEvent, 8)
	s := NewNotificationSink(mockDraws, mockMailer, monitoring, events, slog.Default())

	evt, participants := completedEvent("draw-1")
	mockDraws.EXPECT().GetParticipants(domain.DrawID("draw-1")).Return(participants, nil).Times(1)

	mockMailer.EXPECT().
		SendDrawResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, email notify.ResultEmail) error {
			if email.GiverEmail == "bob@example.com" {
				return fmt.Errorf("smtp unavailable")
			}
			return nil
		}).
		Times(3)

	req.NoError(s.Consume(context.Background(), evt))
	close(events)

	delivered := make(map[string]bool)
	for e := range events {
		outcome, ok := e.(event.NotificationSent)
		req.True(ok, "only notification outcomes expected on the stream")
		req.Equal(domain.DrawID("draw-1"), outcome.Draw)
		delivered[outcome.Email] = outcome.Delivered
	}

	req.Len(delivered, 3)
	req.True(delivered["alice@example.com"])
	req.False(delivered["bob@example.com"])
	req.True(delivered["clara@example.com"])
}

func TestNotificationSink_IgnoresOtherEvents(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDraws := mocks.NewMockIDrawRepository(ctrl)
	mockMailer := mocks.NewMockIMailer(ctrl)
	monitoring := observability.NewMonitoringManager(slog.Default())
	s := NewNotificationSink(mockDraws, mockMailer, monitoring, nil, slog.Default())

	// No repository or mailer call for a failure event.
	req.NoError(s.Consume(context.Background(), event.DrawFailed{Draw: "draw-1", Reason: "infeasible"}))
}
