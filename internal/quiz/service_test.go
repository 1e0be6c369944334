package quiz

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/KonchadaBhuvan/my-pro/internal/generator"
	"github.com/KonchadaBhuvan/my-pro/internal/models"
	"github.com/KonchadaBhuvan/my-pro/internal/session"
)

type stubLLM struct {
	out string
	err error
}

func (s stubLLM) Generate(ctx context.Context, prompt string) (string, error) {
	return s.out, s.err
}

func quizJSON(t *testing.T, answers ...int) string {
	t.Helper()
	data, err := json.Marshal(fixedQuiz(answers...))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func newTestService(t *testing.T, llmOutput string, secondsPerQuestion int) (*Service, *MemStore) {
	t.Helper()
	gen := generator.NewGeneratorWithClient(stubLLM{out: llmOutput}, "stub")
	store := NewMemStore()
	drafts := session.NewManager(session.NewMemoryStore(), secondsPerQuestion)
	return NewService(gen, store, drafts, 10), store
}

func TestService_GenerateAppliesDefaults(t *testing.T) {
	svc, _ := newTestService(t, quizJSON(t, 0, 1, 2), 0)

	quiz, err := svc.Generate(context.Background(), models.GenerateQuizRequest{
		Topics: []string{"Aptitude"},
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(quiz) != 3 {
		t.Errorf("expected 3 questions, got %d", len(quiz))
	}
}

func TestService_SubmitRecomputesScore(t *testing.T) {
	svc, _ := newTestService(t, "", 0)

	record, err := svc.Submit(context.Background(), 1, models.SubmitQuizRequest{
		Topics:      []string{"Quant"},
		Quiz:        fixedQuiz(0, 1, 2),
		UserAnswers: models.AnswerMap{0: 0, 1: 1, 2: 0},
		Score:       3, // client-claimed score is ignored
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if record.Score != 2 {
		t.Errorf("expected recomputed score 2, got %d", record.Score)
	}
	if record.NumQuestions != 3 {
		t.Errorf("expected numQuestions 3, got %d", record.NumQuestions)
	}
}

func TestService_SubmitRejectsEmptyQuiz(t *testing.T) {
	svc, store := newTestService(t, "", 0)

	_, err := svc.Submit(context.Background(), 1, models.SubmitQuizRequest{})
	if models.KindOf(err) != models.KindInvalidRequest {
		t.Errorf("expected invalid_request, got %q", models.KindOf(err))
	}

	attempts, _ := store.ListByOwner(context.Background(), 1)
	if len(attempts) != 0 {
		t.Errorf("expected no attempts saved, got %d", len(attempts))
	}
}

func TestService_SubmitRejectsMalformedQuestion(t *testing.T) {
	svc, _ := newTestService(t, "", 0)

	quiz := fixedQuiz(0, 1)
	quiz[1].CorrectAnswer = 9

	_, err := svc.Submit(context.Background(), 1, models.SubmitQuizRequest{Quiz: quiz})
	if models.KindOf(err) != models.KindInvalidRequest {
		t.Errorf("expected invalid_request, got %q", models.KindOf(err))
	}
}

func TestService_AttemptOwnership(t *testing.T) {
	svc, _ := newTestService(t, "", 0)
	ctx := context.Background()

	record, err := svc.Submit(ctx, 1, models.SubmitQuizRequest{Quiz: fixedQuiz(0)})
	if err != nil {
		t.Fatal(err)
	}

	// owner sees the full record
	got, err := svc.GetAttempt(ctx, 1, record.ID)
	if err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if len(got.Quiz) != 1 {
		t.Errorf("expected full quiz payload, got %d questions", len(got.Quiz))
	}

	// rescoring the stored snapshot reproduces the stored score
	if rescored := Score(got.Quiz, got.UserAnswers); rescored != got.Score {
		t.Errorf("rescored %d != stored %d", rescored, got.Score)
	}

	// anyone else is forbidden
	_, err = svc.GetAttempt(ctx, 2, record.ID)
	if models.KindOf(err) != models.KindForbidden {
		t.Errorf("expected forbidden, got %q", models.KindOf(err))
	}

	// a missing attempt is not_found
	_, err = svc.GetAttempt(ctx, 1, 9999)
	if models.KindOf(err) != models.KindNotFound {
		t.Errorf("expected not_found, got %q", models.KindOf(err))
	}
}

func TestService_ListAttemptsNewestFirstPerUser(t *testing.T) {
	svc, _ := newTestService(t, "", 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(ctx, 1, models.SubmitQuizRequest{Quiz: fixedQuiz(0)}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.Submit(ctx, 2, models.SubmitQuizRequest{Quiz: fixedQuiz(0)}); err != nil {
		t.Fatal(err)
	}

	attempts, err := svc.ListAttempts(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(attempts) != 3 {
		t.Fatalf("expected 3 attempts for user 1, got %d", len(attempts))
	}
	for i := 1; i < len(attempts); i++ {
		if attempts[i-1].ID < attempts[i].ID {
			t.Errorf("attempts not newest-first: %d before %d", attempts[i-1].ID, attempts[i].ID)
		}
	}
}

func TestService_DraftFullFlow(t *testing.T) {
	svc, _ := newTestService(t, quizJSON(t, 1, 2), 0)
	ctx := context.Background()

	if _, err := svc.DraftToggleTopic(1, "Programming"); err != nil {
		t.Fatal(err)
	}

	view, err := svc.DraftGenerate(ctx, 1, models.DraftGenerateRequest{NumQuestions: 2})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if view.State != "in_progress" {
		t.Fatalf("expected in_progress, got %q", view.State)
	}

	// answer Q1 correctly, move on, answer Q2 incorrectly
	if _, err := svc.DraftSelectAnswer(1, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.DraftAdvance(1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.DraftSelectAnswer(1, 0); err != nil {
		t.Fatal(err)
	}

	record, err := svc.DraftSubmit(ctx, 1)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if record.Score != 1 {
		t.Errorf("expected score 1, got %d", record.Score)
	}

	// draft is gone; a second submit has nothing to act on
	_, err = svc.DraftSubmit(ctx, 1)
	if models.KindOf(err) != models.KindInvalidState {
		t.Errorf("expected invalid_state on repeat submit, got %q", models.KindOf(err))
	}
	if state := svc.DraftView(1).State; state != "selecting" {
		t.Errorf("expected fresh selecting draft, got %q", state)
	}
}

func TestService_DraftGenerateWithoutTopics(t *testing.T) {
	svc, _ := newTestService(t, quizJSON(t, 0), 0)

	_, err := svc.DraftGenerate(context.Background(), 1, models.DraftGenerateRequest{})
	if models.KindOf(err) != models.KindInvalidRequest {
		t.Errorf("expected invalid_request, got %q", models.KindOf(err))
	}
	if state := svc.DraftView(1).State; state != "selecting" {
		t.Errorf("expected selecting after rejected generate, got %q", state)
	}
}

func TestService_DraftGenerateRefusalLeavesNoTrace(t *testing.T) {
	svc, store := newTestService(t, "Sorry, I cannot help.", 0)
	ctx := context.Background()

	if _, err := svc.DraftToggleTopic(1, "Reasoning"); err != nil {
		t.Fatal(err)
	}

	_, err := svc.DraftGenerate(ctx, 1, models.DraftGenerateRequest{})
	if models.KindOf(err) != models.KindGenerationParse {
		t.Fatalf("expected generation_parse, got %q", models.KindOf(err))
	}

	// no attempt recorded, draft back at selection with topics intact
	attempts, _ := store.ListByOwner(ctx, 1)
	if len(attempts) != 0 {
		t.Errorf("expected no attempts, got %d", len(attempts))
	}
	view := svc.DraftView(1)
	if view.State != "selecting" {
		t.Errorf("expected selecting, got %q", view.State)
	}
	if len(view.Topics) != 1 || view.Topics[0] != "Reasoning" {
		t.Errorf("expected topics preserved, got %v", view.Topics)
	}
}

func TestService_ExpiryAutoSubmitsPartialAnswers(t *testing.T) {
	svc, store := newTestService(t, quizJSON(t, 1, 1), 1)
	ctx := context.Background()

	if _, err := svc.DraftToggleTopic(1, "Quant"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.DraftGenerate(ctx, 1, models.DraftGenerateRequest{NumQuestions: 2}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.DraftSelectAnswer(1, 1); err != nil {
		t.Fatal(err)
	}

	// countdown hit zero
	svc.expireDraft(1)

	attempts, err := store.ListByOwner(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(attempts) != 1 {
		t.Fatalf("expected 1 auto-submitted attempt, got %d", len(attempts))
	}
	if attempts[0].Score != 1 {
		t.Errorf("expected score 1 from the single answered question, got %d", attempts[0].Score)
	}
	if state := svc.DraftView(1).State; state != "selecting" {
		t.Errorf("expected draft destroyed after expiry, got %q", state)
	}
}

func TestService_DraftExitRecordsNothing(t *testing.T) {
	svc, store := newTestService(t, quizJSON(t, 0, 0), 0)
	ctx := context.Background()

	if _, err := svc.DraftToggleTopic(1, "Aptitude"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.DraftGenerate(ctx, 1, models.DraftGenerateRequest{}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.DraftSelectAnswer(1, 0); err != nil {
		t.Fatal(err)
	}

	svc.DraftExit(1)

	attempts, _ := store.ListByOwner(ctx, 1)
	if len(attempts) != 0 {
		t.Errorf("expected no attempts after exit, got %d", len(attempts))
	}
	view := svc.DraftView(1)
	if view.State != "selecting" || len(view.Topics) != 0 {
		t.Errorf("expected a fresh draft after exit, got state %q topics %v", view.State, view.Topics)
	}
}
