package quiz

import (
	"context"
	"log"
	"time"

	"github.com/KonchadaBhuvan/my-pro/internal/generator"
	"github.com/KonchadaBhuvan/my-pro/internal/models"
	"github.com/KonchadaBhuvan/my-pro/internal/session"
)

// Service coordinates generation, the per-user draft state machine, and the
// attempt history. Submitted scores are always recomputed server-side; the
// stored score is the count of matching answers, never what the client sent.
type Service struct {
	gen                 *generator.Generator
	store               AttemptStore
	drafts              *session.Manager
	defaultNumQuestions int
}

func NewService(gen *generator.Generator, store AttemptStore, drafts *session.Manager, defaultNumQuestions int) *Service {
	if defaultNumQuestions <= 0 {
		defaultNumQuestions = 10
	}
	s := &Service{
		gen:                 gen,
		store:               store,
		drafts:              drafts,
		defaultNumQuestions: defaultNumQuestions,
	}
	drafts.SetExpireFunc(s.expireDraft)
	return s
}

// ── Stateless API ───────────────────────────────────────

// Generate produces a question set without touching draft state. Used by
// clients that track the quiz themselves.
func (s *Service) Generate(ctx context.Context, req models.GenerateQuizRequest) ([]models.Question, error) {
	if req.NumQuestions == 0 {
		req.NumQuestions = s.defaultNumQuestions
	}
	if req.Difficulty == "" {
		req.Difficulty = models.DifficultyMedium
	}
	return s.gen.GenerateQuiz(ctx, req.Topics, req.NumQuestions, req.Difficulty)
}

// Submit records a completed quiz. The score field in the request is
// ignored; the stored score is recomputed from the quiz and answers.
func (s *Service) Submit(ctx context.Context, userID int64, req models.SubmitQuizRequest) (*models.AttemptRecord, error) {
	if len(req.Quiz) == 0 {
		return nil, models.NewInvalidRequest("quiz is required")
	}
	for _, q := range req.Quiz {
		if !q.Valid() {
			return nil, models.NewInvalidRequest("quiz contains a malformed question")
		}
	}

	score := Score(req.Quiz, req.UserAnswers)
	return s.store.Save(ctx, userID, req.Topics, req.Quiz, req.UserAnswers, score)
}

// ListAttempts returns the caller's attempt history, newest first.
func (s *Service) ListAttempts(ctx context.Context, userID int64) ([]models.AttemptSummary, error) {
	return s.store.ListByOwner(ctx, userID)
}

// GetAttempt returns one attempt in full. Requesting another user's attempt
// is forbidden regardless of whether it exists.
func (s *Service) GetAttempt(ctx context.Context, userID, attemptID int64) (*models.AttemptRecord, error) {
	record, err := s.store.GetByID(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if record.UserID != userID {
		return nil, models.NewForbidden("attempt belongs to another user")
	}
	return record, nil
}

// Topics returns the study-type catalog shown at selection time.
func (s *Service) Topics() []models.TopicOption {
	return models.DefaultTopics
}

// ── Draft Flow ──────────────────────────────────────────

func (s *Service) DraftView(userID int64) *models.DraftView {
	return s.drafts.View(userID)
}

func (s *Service) DraftToggleTopic(userID int64, topic string) (*models.DraftView, error) {
	return s.drafts.ToggleTopic(userID, topic)
}

// DraftGenerate generates a quiz for the draft's selected topics and starts
// the attempt. On generation failure the draft returns to topic selection
// with its topics intact.
func (s *Service) DraftGenerate(ctx context.Context, userID int64, req models.DraftGenerateRequest) (*models.DraftView, error) {
	if req.NumQuestions == 0 {
		req.NumQuestions = s.defaultNumQuestions
	}
	if req.Difficulty == "" {
		req.Difficulty = models.DifficultyMedium
	}

	topics, err := s.drafts.BeginGenerate(userID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.gen.GenerateQuiz(ctx, topics, req.NumQuestions, req.Difficulty)
	if err != nil {
		s.drafts.FailGenerate(userID)
		return nil, err
	}

	return s.drafts.CompleteGenerate(userID, quiz)
}

func (s *Service) DraftSelectAnswer(userID int64, option int) (*models.DraftView, error) {
	return s.drafts.SelectAnswer(userID, option)
}

func (s *Service) DraftAdvance(userID int64) (*models.DraftView, error) {
	return s.drafts.Advance(userID)
}

func (s *Service) DraftRetreat(userID int64) (*models.DraftView, error) {
	return s.drafts.Retreat(userID)
}

// DraftSubmit scores the in-progress draft, records the attempt, and
// destroys the draft. If saving fails the draft stays in progress so the
// user can retry.
func (s *Service) DraftSubmit(ctx context.Context, userID int64) (*models.AttemptRecord, error) {
	draft, err := s.drafts.TakeForSubmit(userID)
	if err != nil {
		return nil, err
	}

	score := Score(draft.Quiz, draft.Answers)
	record, err := s.store.Save(ctx, userID, draft.Topics, draft.Quiz, draft.Answers, score)
	if err != nil {
		s.drafts.AbortSubmit(userID)
		return nil, err
	}

	s.drafts.FinishSubmit(userID)
	return record, nil
}

// DraftExit abandons the draft. Nothing is recorded.
func (s *Service) DraftExit(userID int64) {
	s.drafts.Exit(userID)
}

// expireDraft auto-submits whatever answers were selected when the countdown
// ran out. Runs on the countdown goroutine.
func (s *Service) expireDraft(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record, err := s.DraftSubmit(ctx, userID)
	if err != nil {
		log.Printf("[quiz] auto-submit on expiry failed for user %d: %v", userID, err)
		return
	}
	log.Printf("[quiz] time expired for user %d, auto-submitted attempt %d (score %d/%d)",
		userID, record.ID, record.Score, record.NumQuestions)
}
