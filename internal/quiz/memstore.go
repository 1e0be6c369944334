package quiz

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/KonchadaBhuvan/my-pro/internal/models"
)

// MemStore is an in-memory AttemptStore for tests and DB-less development.
type MemStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]*models.AttemptRecord
}

func NewMemStore() *MemStore {
	return &MemStore{
		nextID:  1,
		records: make(map[int64]*models.AttemptRecord),
	}
}

func (s *MemStore) Save(ctx context.Context, userID int64, topics []string, quiz []models.Question, answers models.AnswerMap, score int) (*models.AttemptRecord, error) {
	if len(quiz) == 0 {
		return nil, models.NewInvalidRequest("cannot save an attempt with no questions")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := &models.AttemptRecord{
		ID:           s.nextID,
		UserID:       userID,
		Topics:       append([]string{}, topics...),
		Quiz:         append([]models.Question{}, quiz...),
		UserAnswers:  models.AnswerMap{},
		Score:        score,
		NumQuestions: len(quiz),
		CreatedAt:    time.Now().UTC(),
	}
	for k, v := range answers {
		record.UserAnswers[k] = v
	}

	s.nextID++
	s.records[record.ID] = record
	return record, nil
}

func (s *MemStore) ListByOwner(ctx context.Context, userID int64) ([]models.AttemptSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var attempts []models.AttemptSummary
	for _, r := range s.records {
		if r.UserID != userID {
			continue
		}
		attempts = append(attempts, models.AttemptSummary{
			ID:           r.ID,
			Topics:       r.Topics,
			Score:        r.Score,
			NumQuestions: r.NumQuestions,
			CreatedAt:    r.CreatedAt,
		})
	}

	// newest first, matching the SQL ordering; IDs break creation-time ties
	sort.Slice(attempts, func(i, j int) bool {
		if attempts[i].CreatedAt.Equal(attempts[j].CreatedAt) {
			return attempts[i].ID > attempts[j].ID
		}
		return attempts[i].CreatedAt.After(attempts[j].CreatedAt)
	})
	return attempts, nil
}

func (s *MemStore) GetByID(ctx context.Context, id int64) (*models.AttemptRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, models.NewNotFound("attempt not found")
	}
	rec := *record
	return &rec, nil
}
