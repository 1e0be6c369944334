package generator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/KonchadaBhuvan/my-pro/internal/models"
)

func validQuizJSON(count int) string {
	questions := make([]models.Question, count)
	for i := 0; i < count; i++ {
		questions[i] = models.Question{
			Question:      "Which data structure offers O(1) average lookup?",
			Options:       []string{"Linked list", "Hash table", "Binary tree", "Stack"},
			CorrectAnswer: i % 4,
			Explanation:   "Hash tables provide constant-time average lookup.",
		}
	}
	data, _ := json.Marshal(questions)
	return string(data)
}

func TestParseQuestions_ValidJSON(t *testing.T) {
	input := validQuizJSON(10)

	questions, err := ParseQuestions(input)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(questions) != 10 {
		t.Errorf("expected 10 questions, got %d", len(questions))
	}

	for i, q := range questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d: expected 4 options, got %d", i+1, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			t.Errorf("question %d: correctAnswer %d out of range", i+1, q.CorrectAnswer)
		}
	}
}

func TestParseQuestions_MarkdownFences(t *testing.T) {
	input := "```json\n" + validQuizJSON(3) + "\n```"

	questions, err := ParseQuestions(input)
	if err != nil {
		t.Fatalf("expected no error with markdown fences, got: %v", err)
	}

	if len(questions) != 3 {
		t.Errorf("expected 3 questions, got %d", len(questions))
	}
}

func TestParseQuestions_SurroundingCommentary(t *testing.T) {
	input := "Sure! Here is your quiz:\n\n" + validQuizJSON(2) + "\n\nGood luck with your studies!"

	questions, err := ParseQuestions(input)
	if err != nil {
		t.Fatalf("expected no error with commentary around the array, got: %v", err)
	}

	if len(questions) != 2 {
		t.Errorf("expected 2 questions, got %d", len(questions))
	}
}

func TestParseQuestions_BracketsInsideStrings(t *testing.T) {
	input := `[{"question":"What does arr[0] evaluate to for arr = [1, 2]?","options":["1","2","[1]","error"],"correctAnswer":0,"explanation":"Index 0 holds the first element [by definition]."}]`

	questions, err := ParseQuestions(input)
	if err != nil {
		t.Fatalf("expected no error with brackets inside strings, got: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].Options[2] != "[1]" {
		t.Errorf("expected option to survive intact, got %q", questions[0].Options[2])
	}
}

func TestParseQuestions_Refusal(t *testing.T) {
	_, err := ParseQuestions("Sorry, I cannot help.")
	if err == nil {
		t.Fatal("expected error for refusal text")
	}

	if models.KindOf(err) != models.KindGenerationParse {
		t.Errorf("expected generation_parse kind, got %q", models.KindOf(err))
	}
	if snip := models.SnippetOf(err); !strings.Contains(snip, "Sorry") {
		t.Errorf("expected snippet to carry raw output, got %q", snip)
	}
}

func TestParseQuestions_SnippetTruncated(t *testing.T) {
	long := strings.Repeat("no json here ", 100)

	_, err := ParseQuestions(long)
	if err == nil {
		t.Fatal("expected error")
	}
	if snip := models.SnippetOf(err); len(snip) > snippetLimit {
		t.Errorf("expected snippet capped at %d chars, got %d", snippetLimit, len(snip))
	}
}

func TestParseQuestions_MalformedArray(t *testing.T) {
	_, err := ParseQuestions(`[{"question": "unterminated`)
	if err == nil {
		t.Fatal("expected error for unterminated array")
	}
	if models.KindOf(err) != models.KindGenerationParse {
		t.Errorf("expected generation_parse kind, got %q", models.KindOf(err))
	}
}

func TestParseQuestions_DropsMalformedEntries(t *testing.T) {
	questions := []models.Question{
		{
			Question:      "A valid question?",
			Options:       []string{"yes", "no", "maybe", "unclear"},
			CorrectAnswer: 0,
			Explanation:   "Yes.",
		},
		{
			// correctAnswer out of range — dropped, not clamped
			Question:      "A broken question?",
			Options:       []string{"a", "b"},
			CorrectAnswer: 5,
			Explanation:   "n/a",
		},
		{
			// no options — dropped
			Question:      "Another broken question?",
			CorrectAnswer: 0,
		},
	}
	data, _ := json.Marshal(questions)

	parsed, err := ParseQuestions(string(data))
	if err != nil {
		t.Fatalf("expected surviving questions, got error: %v", err)
	}
	if len(parsed) != 1 {
		t.Fatalf("expected 1 surviving question, got %d", len(parsed))
	}
	if parsed[0].Question != "A valid question?" {
		t.Errorf("wrong question survived: %q", parsed[0].Question)
	}
}

func TestParseQuestions_AllMalformedFails(t *testing.T) {
	data := `[{"question":"","options":[],"correctAnswer":0,"explanation":""}]`

	_, err := ParseQuestions(data)
	if err == nil {
		t.Fatal("expected error when no question survives validation")
	}
	if models.KindOf(err) != models.KindGenerationParse {
		t.Errorf("expected generation_parse kind, got %q", models.KindOf(err))
	}
}
