package workers

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"santas-draw/domain"
	"santas-draw/domain/event"
	"santas-draw/errors"
	"santas-draw/matching"
	"santas-draw/mocks"
	servicemocks "santas-draw/mocks/services"
	"santas-draw/observability"
	"santas-draw/repositories"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestProcessor(t *testing.T) (*DrawProcessor, *mocks.MockIDrawJobRepository, *mocks.MockIDrawRepository, *servicemocks.MockIDrawService, chan event.DomainEvent) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	jobs := mocks.NewMockIDrawJobRepository(ctrl)
	draws := mocks.NewMockIDrawRepository(ctrl)
	service := servicemocks.NewMockIDrawService(ctrl)
	events := make(chan event.DomainEvent, 8)
	monitoring := observability.NewMonitoringManager(slog.Default())

	processor := NewDrawProcessor(slog.Default(), jobs, draws, service, monitoring, events, 10*time.Millisecond, 5)
	return processor, jobs, draws, service, events
}

func TestDrawProcessor_CompletesDraw(t *testing.T) {
	req := require.New(t)
	processor, jobs, _, service, events := newTestProcessor(t)

	job := repositories.DrawJob{ID: "job-1", DrawID: "draw-1", CreatedAt: time.Now()}
	results := []domain.DrawResult{
		{DrawID: "draw-1", GiverID: "a", ReceiverID: "b"},
		{DrawID: "draw-1", GiverID: "b", ReceiverID: "a"},
	}

	jobs.EXPECT().NextBatch(5).Return([]repositories.DrawJob{job}, nil).Times(1)
	jobs.EXPECT().MarkAsProcessing(job).Return(nil).Times(1)
	service.EXPECT().Execute(domain.DrawID("draw-1")).Return(results, nil).Times(1)
	jobs.EXPECT().MarkAsDone(job).Return(nil).Times(1)

	req.NoError(processor.drainPending(context.Background()))

	select {
	case evt := <-events:
		completed, ok := evt.(event.DrawCompleted)
		req.True(ok, "expected a DrawCompleted event, got %T", evt)
		req.Equal(domain.DrawID("draw-1"), completed.Draw)
		req.Len(completed.Results, 2)
	default:
		req.Fail("No event emitted")
	}
}

func TestDrawProcessor_InfeasibleDraw(t *testing.T) {
	req := require.New(t)
	processor, jobs, draws, service, events := newTestProcessor(t)

	job := repositories.DrawJob{ID: "job-1", DrawID: "draw-1", CreatedAt: time.Now()}
	infeasible := fmt.Errorf("wrapped: %w", matching.ErrInfeasible)

	jobs.EXPECT().NextBatch(5).Return([]repositories.DrawJob{job}, nil).Times(1)
	jobs.EXPECT().MarkAsProcessing(job).Return(nil).Times(1)
	service.EXPECT().Execute(domain.DrawID("draw-1")).Return(nil, infeasible).Times(1)
	// The draw goes back to active so the organizer can relax constraints.
	draws.EXPECT().UpdateDrawStatus(domain.DrawID("draw-1"), domain.StatusActive).Return(nil).Times(1)
	// Infeasible draws are done, never retried.
	jobs.EXPECT().MarkAsDone(job).Return(nil).Times(1)

	req.NoError(processor.drainPending(context.Background()))

	select {
	case evt := <-events:
		failed, ok := evt.(event.DrawFailed)
		req.True(ok, "expected a DrawFailed event, got %T", evt)
		req.True(failed.Infeasible)
	default:
		req.Fail("No event emitted")
	}
}

func TestDrawProcessor_SkipsClaimedJob(t *testing.T) {
	req := require.New(t)
	processor, jobs, _, service, _ := newTestProcessor(t)

	job := repositories.DrawJob{ID: "job-1", DrawID: "draw-1", CreatedAt: time.Now()}

	jobs.EXPECT().NextBatch(5).Return([]repositories.DrawJob{job}, nil).Times(1)
	jobs.EXPECT().MarkAsProcessing(job).Return(fmt.Errorf("job job-1 is no longer pending")).Times(1)
	// Execute is never reached for a job someone else claimed.
	service.EXPECT().Execute(gomock.Any()).Times(0)

	req.NoError(processor.drainPending(context.Background()))
}

func TestDrawProcessor_StaleJobIsDiscarded(t *testing.T) {
	req := require.New(t)
	processor, jobs, _, service, events := newTestProcessor(t)

	job := repositories.DrawJob{ID: "job-1", DrawID: "draw-1", CreatedAt: time.Now()}

	jobs.EXPECT().NextBatch(5).Return([]repositories.DrawJob{job}, nil).Times(1)
	jobs.EXPECT().MarkAsProcessing(job).Return(nil).Times(1)
	service.EXPECT().Execute(domain.DrawID("draw-1")).Return(nil, errors.ErrDrawAlreadyCompleted).Times(1)
	jobs.EXPECT().MarkAsDone(job).Return(nil).Times(1)

	req.NoError(processor.drainPending(context.Background()))

	select {
	case evt := <-events:
		req.Fail("No event expected for a stale job", "got %T", evt)
	default:
	}
}

func TestDrawProcessor_RunStopsOnContextCancel(t *testing.T) {
	req := require.New(t)
	processor, jobs, _, _, _ := newTestProcessor(t)

	jobs.EXPECT().NextBatch(gomock.Any()).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- processor.Run(ctx)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		req.ErrorIs(err, context.Canceled)
	case <-time.After(500 * time.Millisecond):
		req.Fail("Processor should stop when context is canceled")
	}
}
