package workers

import (
	"context"
	"log/slog"
	"time"

	"santas-draw/domain"
	"santas-draw/domain/event"
	"santas-draw/errors"
	"santas-draw/matching"
	"santas-draw/observability"
	"santas-draw/repositories"
	"santas-draw/services"
)

// DrawProcessor polls the persistent job queue and executes pending draws.
// It is the only writer of draw results: HTTP handlers enqueue, this
// worker matches. A draw that cannot be matched is never retried, since
// feasibility does not change for identical constraints.
type DrawProcessor struct {
	log        *slog.Logger
	jobs       repositories.IDrawJobRepository
	draws      repositories.IDrawRepository
	service    services.IDrawService
	monitoring *observability.MonitoringManager
	events     chan<- event.DomainEvent

	pollInterval time.Duration
	batchSize    int
}

func NewDrawProcessor(
	log *slog.Logger,
	jobs repositories.IDrawJobRepository,
	draws repositories.IDrawRepository,
	service services.IDrawService,
	monitoring *observability.MonitoringManager,
	events chan<- event.DomainEvent,
	pollInterval time.Duration,
	batchSize int,
) *DrawProcessor {
	return &DrawProcessor{
		log:          log,
		jobs:         jobs,
		draws:        draws,
		service:      service,
		monitoring:   monitoring,
		events:       events,
		pollInterval: pollInterval,
		batchSize:    batchSize,
	}
}

func (w *DrawProcessor) Run(ctx context.Context) error {
	w.log.Info("Starting draw processor", "poll_interval", w.pollInterval, "batch_size", w.batchSize)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.drainPending(ctx); err != nil {
				w.log.Error("Job poll cycle failed", "error", err)
			}
		}
	}
}

func (w *DrawProcessor) drainPending(ctx context.Context) error {
	batch, err := w.jobs.NextBatch(w.batchSize)
	if err != nil {
		return err
	}
	w.monitoring.UpdateQueue(len(batch))

	for _, job := range batch {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Claiming can fail when a concurrent cycle already took the job;
		// that is not an error, just skip.
		if err := w.jobs.MarkAsProcessing(job); err != nil {
			w.log.Debug("Job already claimed", "job_id", job.ID)
			continue
		}
		w.process(ctx, job)
	}
	return nil
}

func (w *DrawProcessor) process(ctx context.Context, job repositories.DrawJob) {
	results, err := w.service.Execute(job.DrawID)
	switch {
	case err == nil:
		w.monitoring.IncrDrawsExecuted()
		w.monitoring.RecordDraw(string(job.DrawID), string(domain.StatusCompleted), len(results))
		w.emit(ctx, event.DrawCompleted{Draw: job.DrawID, Results: results, At: time.Now().UTC()})

	case errors.Is(err, matching.ErrInfeasible):
		// Put the draw back in the organizer's hands: they can relax
		// exclusions and request again.
		w.failDraw(ctx, job.DrawID, err, true)

	case errors.Is(err, errors.ErrDrawAlreadyCompleted), errors.Is(err, errors.ErrDrawCancelled):
		w.log.Info("Skipping stale draw job", "draw_id", job.DrawID, "reason", err)

	default:
		w.failDraw(ctx, job.DrawID, err, false)
	}

	if err := w.jobs.MarkAsDone(job); err != nil {
		w.log.Error("Failed to finalize job", "job_id", job.ID, "error", err)
	}
}

func (w *DrawProcessor) failDraw(ctx context.Context, drawID domain.DrawID, cause error, infeasible bool) {
	w.log.Warn("Draw execution failed", "draw_id", drawID, "infeasible", infeasible, "error", cause)
	w.monitoring.IncrDrawsFailed()
	w.monitoring.RecordDraw(string(drawID), "failed", 0)

	if err := w.draws.UpdateDrawStatus(drawID, domain.StatusActive); err != nil {
		w.log.Error("Failed to revert draw status", "draw_id", drawID, "error", err)
	}

	w.emit(ctx, event.DrawFailed{
		Draw:       drawID,
		Reason:     cause.Error(),
		Infeasible: infeasible,
		At:         time.Now().UTC(),
	})
}

func (w *DrawProcessor) emit(ctx context.Context, evt event.DomainEvent) {
	select {
	case w.events <- evt:
	case <-ctx.Done():
	}
}
