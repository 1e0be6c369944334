package quiz

import (
	"context"
	"testing"

	"github.com/KonchadaBhuvan/my-pro/internal/models"
)

func TestMemStore_SaveRejectsEmptyQuiz(t *testing.T) {
	store := NewMemStore()

	_, err := store.Save(context.Background(), 1, nil, nil, nil, 0)
	if models.KindOf(err) != models.KindInvalidRequest {
		t.Errorf("expected invalid_request, got %q", models.KindOf(err))
	}
}

func TestMemStore_RecordsAreImmutableSnapshots(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	topics := []string{"Aptitude"}
	answers := models.AnswerMap{0: 0}
	record, err := store.Save(ctx, 1, topics, fixedQuiz(0), answers, 1)
	if err != nil {
		t.Fatal(err)
	}

	// mutating the caller's inputs must not affect the stored record
	topics[0] = "mutated"
	answers[0] = 3

	got, err := store.GetByID(ctx, record.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Topics[0] != "Aptitude" {
		t.Errorf("stored topics mutated: %v", got.Topics)
	}
	if got.UserAnswers[0] != 0 {
		t.Errorf("stored answers mutated: %v", got.UserAnswers)
	}
}

func TestMemStore_GetByIDNotFound(t *testing.T) {
	store := NewMemStore()

	_, err := store.GetByID(context.Background(), 42)
	if models.KindOf(err) != models.KindNotFound {
		t.Errorf("expected not_found, got %q", models.KindOf(err))
	}
}

func TestMemStore_ListByOwnerFiltersAndOrders(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := store.Save(ctx, 1, nil, fixedQuiz(0), nil, 0); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := store.Save(ctx, 2, nil, fixedQuiz(0), nil, 0); err != nil {
		t.Fatal(err)
	}

	attempts, err := store.ListByOwner(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}
	if attempts[0].ID < attempts[1].ID {
		t.Errorf("expected newest first, got IDs %d, %d", attempts[0].ID, attempts[1].ID)
	}
}
