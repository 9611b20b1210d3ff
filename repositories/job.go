//go:generate go run go.uber.org/mock/mockgen -source=job.go -destination=../mocks/mock_job_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"santas-draw/domain"

	"github.com/dgraph-io/badger/v4"
)

// DrawJob is a unit of async work: one draw waiting to be executed.
// It is stored in BadgerDB so a restart never loses a requested draw.
type DrawJob struct {
	ID         string        `json:"id"`
	DrawID     domain.DrawID `json:"draw_id"`
	CreatedAt  time.Time     `json:"created_at"`
	RetryCount int           `json:"retry_count"`
}

type IDrawJobRepository interface {
	Enqueue(job DrawJob) error
	NextBatch(limit int) ([]DrawJob, error)
	MarkAsProcessing(job DrawJob) error
	MarkAsDone(job DrawJob) error
}

type DrawJobRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewDrawJobRepository(db *badger.DB, log *slog.Logger) IDrawJobRepository {
	return &DrawJobRepository{db: db, log: log}
}

func pendingJobKey(job DrawJob) []byte {
	// Nanosecond timestamp first so lexicographic iteration is FIFO; the
	// job ID disambiguates two jobs enqueued in the same nanosecond.
	return []byte(fmt.Sprintf("job:pending:%019d:%s", job.CreatedAt.UnixNano(), job.ID))
}

func processingJobKey(job DrawJob) []byte {
	return []byte("job:processing:" + job.ID)
}

// Enqueue persists a new draw job with a time-ordered key.
func (r DrawJobRepository) Enqueue(job DrawJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(pendingJobKey(job), data)
	})
}

// NextBatch retrieves up to limit pending jobs in enqueue order.
func (r DrawJobRepository) NextBatch(limit int) ([]DrawJob, error) {
	var jobs []DrawJob
	prefix := []byte("job:pending:")

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.PrefetchSize = limit

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(jobs) < limit; it.Next() {
			err := it.Item().Value(func(v []byte) error {
				var job DrawJob
				if err := json.Unmarshal(v, &job); err != nil {
					return fmt.Errorf("unmarshal job: %w", err)
				}
				jobs = append(jobs, job)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("error during batch fetch: %w", err)
	}
	return jobs, nil
}

// MarkAsProcessing moves a job from pending to processing atomically, so
// two poll cycles can never pick up the same draw.
func (r DrawJobRepository) MarkAsProcessing(job DrawJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		pending := pendingJobKey(job)
		if _, err := txn.Get(pending); err != nil {
			return fmt.Errorf("job %s is no longer pending", job.ID)
		}
		if err := txn.Delete(pending); err != nil {
			return err
		}
		return txn.Set(processingJobKey(job), data)
	})
}

// MarkAsDone removes a finished job. Failed draws are done too: feasibility
// cannot change by retrying identical constraints, so there is no retry
// path for infeasible results.
func (r DrawJobRepository) MarkAsDone(job DrawJob) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(processingJobKey(job))
	})
}
