package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/KonchadaBhuvan/my-pro/internal/models"
)

// AttemptStore persists completed quiz attempts. Records are written once
// and never updated.
type AttemptStore interface {
	Save(ctx context.Context, userID int64, topics []string, quiz []models.Question, answers models.AnswerMap, score int) (*models.AttemptRecord, error)
	ListByOwner(ctx context.Context, userID int64) ([]models.AttemptSummary, error)
	GetByID(ctx context.Context, id int64) (*models.AttemptRecord, error)
}

// PostgresStore keeps attempts in the quiz_attempts table. The question set
// and answers are stored as JSONB so the record is a self-contained snapshot
// of what the user saw.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, userID int64, topics []string, quiz []models.Question, answers models.AnswerMap, score int) (*models.AttemptRecord, error) {
	if len(quiz) == 0 {
		return nil, models.NewInvalidRequest("cannot save an attempt with no questions")
	}
	if topics == nil {
		topics = []string{}
	}
	if answers == nil {
		answers = models.AnswerMap{}
	}

	topicsJSON, err := json.Marshal(topics)
	if err != nil {
		return nil, fmt.Errorf("marshal topics: %w", err)
	}
	quizJSON, err := json.Marshal(quiz)
	if err != nil {
		return nil, fmt.Errorf("marshal quiz: %w", err)
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}

	record := &models.AttemptRecord{
		UserID:       userID,
		Topics:       topics,
		Quiz:         quiz,
		UserAnswers:  answers,
		Score:        score,
		NumQuestions: len(quiz),
	}

	err = s.db.QueryRowContext(ctx,
		`INSERT INTO quiz_attempts (user_id, topics, quiz, user_answers, score, num_questions)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		userID, topicsJSON, quizJSON, answersJSON, score, len(quiz),
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert attempt: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, userID int64) ([]models.AttemptSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topics, score, num_questions, created_at
		 FROM quiz_attempts
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.AttemptSummary
	for rows.Next() {
		var a models.AttemptSummary
		var topicsJSON []byte
		if err := rows.Scan(&a.ID, &topicsJSON, &a.Score, &a.NumQuestions, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if err := json.Unmarshal(topicsJSON, &a.Topics); err != nil {
			return nil, fmt.Errorf("unmarshal topics: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*models.AttemptRecord, error) {
	var record models.AttemptRecord
	var topicsJSON, quizJSON, answersJSON []byte

	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, topics, quiz, user_answers, score, num_questions, created_at
		 FROM quiz_attempts WHERE id = $1`,
		id,
	).Scan(&record.ID, &record.UserID, &topicsJSON, &quizJSON, &answersJSON,
		&record.Score, &record.NumQuestions, &record.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.NewNotFound("attempt not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}

	if err := json.Unmarshal(topicsJSON, &record.Topics); err != nil {
		return nil, fmt.Errorf("unmarshal topics: %w", err)
	}
	if err := json.Unmarshal(quizJSON, &record.Quiz); err != nil {
		return nil, fmt.Errorf("unmarshal quiz: %w", err)
	}
	if err := json.Unmarshal(answersJSON, &record.UserAnswers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	return &record, nil
}
