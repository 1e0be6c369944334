package generator

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/KonchadaBhuvan/my-pro/internal/models"
)

const snippetLimit = 200

// ParseQuestions extracts and validates a question set from raw provider
// output. The text may carry commentary or markdown fences around the JSON
// array; anything that doesn't contain a parseable array fails with a
// generation_parse error — never an empty quiz.
func ParseQuestions(raw string) ([]models.Question, error) {
	cleaned := stripCodeFences(raw)

	arr, ok := extractArray(cleaned)
	if !ok {
		return nil, models.NewGenerationParse("no question array found in response", snippet(raw))
	}

	var parsed []models.Question
	if err := json.Unmarshal([]byte(arr), &parsed); err != nil {
		return nil, models.NewGenerationParse("failed to parse quiz data from response", snippet(raw))
	}

	questions := make([]models.Question, 0, len(parsed))
	for i, q := range parsed {
		q.Question = strings.TrimSpace(q.Question)
		q.Explanation = strings.TrimSpace(q.Explanation)
		for j := range q.Options {
			q.Options[j] = strings.TrimSpace(q.Options[j])
		}
		if !q.Valid() {
			log.Printf("[gen] dropping malformed question %d (options=%d correctAnswer=%d)",
				i+1, len(q.Options), q.CorrectAnswer)
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, models.NewGenerationParse("no usable questions in response", snippet(raw))
	}

	return questions, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```json"))
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

// extractArray returns the first top-level JSON array literal in s. The scan
// is string-aware so brackets inside quoted values don't confuse the depth
// count.
func extractArray(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > snippetLimit {
		return s[:snippetLimit]
	}
	return s
}
