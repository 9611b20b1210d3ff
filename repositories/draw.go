//go:generate go run go.uber.org/mock/mockgen -source=draw.go -destination=../mocks/mock_draw_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"santas-draw/domain"
	"santas-draw/errors"

	"github.com/dgraph-io/badger/v4"
)

type IDrawRepository interface {
	CreateDraw(draw domain.Draw, participants []domain.Participant) error
	GetDraw(id domain.DrawID) (domain.Draw, error)
	GetDrawByInviteCode(code string) (domain.Draw, error)
	UpdateDrawStatus(id domain.DrawID, status domain.DrawStatus) error
	InviteCodeTaken(code string) (bool, error)

	AddParticipant(participant domain.Participant) error
	GetParticipants(id domain.DrawID) ([]domain.Participant, error)

	SaveResults(id domain.DrawID, results []domain.DrawResult) error
	GetResults(id domain.DrawID) ([]domain.DrawResult, error)
}

// DrawRepository stores the whole draw aggregate in BadgerDB.
//
// Key layout:
//
//	draw:{draw_id}                      the Draw record
//	draw:{draw_id}:participant:{p_id}   one record per participant
//	draw:{draw_id}:result:{giver_id}    one record per assignment edge
//	invite:{code}                       invite code -> draw id
//
// The participant and result prefixes share the draw prefix so one scan
// cannot cross draws, and per-participant match lookup is a single Get.
type DrawRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewDrawRepository(db *badger.DB, log *slog.Logger) IDrawRepository {
	return &DrawRepository{db: db, log: log}
}

func drawKey(id domain.DrawID) []byte {
	return []byte("draw:" + string(id))
}

func participantKey(drawID domain.DrawID, id domain.ParticipantID) []byte {
	return []byte(fmt.Sprintf("draw:%s:participant:%s", drawID, id))
}

func resultKey(drawID domain.DrawID, giver domain.ParticipantID) []byte {
	return []byte(fmt.Sprintf("draw:%s:result:%s", drawID, giver))
}

func inviteKey(code string) []byte {
	return []byte("invite:" + code)
}

// CreateDraw writes the draw, its invite code index and the initial
// participant list in one transaction so a crash can never leave an
// invite code pointing at a missing draw.
func (r DrawRepository) CreateDraw(draw domain.Draw, participants []domain.Participant) error {
	drawData, err := json.Marshal(draw)
	if err != nil {
		return fmt.Errorf("marshal draw: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		if draw.InviteCode != "" {
			if _, err := txn.Get(inviteKey(draw.InviteCode)); err == nil {
				return errors.ErrInviteCodeExhausted
			}
			if err := txn.Set(inviteKey(draw.InviteCode), []byte(draw.ID)); err != nil {
				return err
			}
		}
		if err := txn.Set(drawKey(draw.ID), drawData); err != nil {
			return err
		}
		for _, participant := range participants {
			data, err := json.Marshal(participant)
			if err != nil {
				return fmt.Errorf("marshal participant: %w", err)
			}
			if err := txn.Set(participantKey(draw.ID, participant.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r DrawRepository) GetDraw(id domain.DrawID) (domain.Draw, error) {
	var draw domain.Draw
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(drawKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &draw)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Draw{}, errors.ErrDrawNotFound
	}
	return draw, err
}

func (r DrawRepository) GetDrawByInviteCode(code string) (domain.Draw, error) {
	var drawID domain.DrawID
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(inviteKey(code))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			drawID = domain.DrawID(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Draw{}, errors.ErrInviteCodeNotFound
	}
	if err != nil {
		return domain.Draw{}, err
	}
	return r.GetDraw(drawID)
}

func (r DrawRepository) InviteCodeTaken(code string) (bool, error) {
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(inviteKey(code))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r DrawRepository) UpdateDrawStatus(id domain.DrawID, status domain.DrawStatus) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(drawKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrDrawNotFound
		}
		if err != nil {
			return err
		}

		var draw domain.Draw
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &draw)
		}); err != nil {
			return err
		}

		draw.Status = status
		data, err := json.Marshal(draw)
		if err != nil {
			return err
		}
		r.log.Debug("Draw status updated", "draw_id", id, "status", status)
		return txn.Set(drawKey(id), data)
	})
}

func (r DrawRepository) AddParticipant(participant domain.Participant) error {
	data, err := json.Marshal(participant)
	if err != nil {
		return fmt.Errorf("marshal participant: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(drawKey(participant.DrawID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errors.ErrDrawNotFound
			}
			return err
		}
		return txn.Set(participantKey(participant.DrawID, participant.ID), data)
	})
}

func (r DrawRepository) GetParticipants(id domain.DrawID) ([]domain.Participant, error) {
	var participants []domain.Participant
	prefix := []byte(fmt.Sprintf("draw:%s:participant:", id))

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var participant domain.Participant
				if err := json.Unmarshal(val, &participant); err != nil {
					return fmt.Errorf("unmarshal participant: %w", err)
				}
				participants = append(participants, participant)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return participants, err
}

// SaveResults persists the full assignment and flips the draw to completed
// in one transaction: collaborators never observe a completed draw with a
// partial result set.
func (r DrawRepository) SaveResults(id domain.DrawID, results []domain.DrawResult) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(drawKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrDrawNotFound
		}
		if err != nil {
			return err
		}

		var draw domain.Draw
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &draw)
		}); err != nil {
			return err
		}

		for _, result := range results {
			data, err := json.Marshal(result)
			if err != nil {
				return err
			}
			if err := txn.Set(resultKey(id, result.GiverID), data); err != nil {
				return err
			}
		}

		draw.Status = domain.StatusCompleted
		data, err := json.Marshal(draw)
		if err != nil {
			return err
		}
		return txn.Set(drawKey(id), data)
	})
}

func (r DrawRepository) GetResults(id domain.DrawID) ([]domain.DrawResult, error) {
	var results []domain.DrawResult
	prefix := []byte(fmt.Sprintf("draw:%s:result:", id))

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var result domain.DrawResult
				if err := json.Unmarshal(val, &result); err != nil {
					return fmt.Errorf("unmarshal result: %w", err)
				}
				results = append(results, result)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return results, err
}
