package generator

import (
	"fmt"
	"strings"

	"github.com/KonchadaBhuvan/my-pro/internal/models"
)

// BuildQuizPrompt constructs the generation instruction: a fixed JSON shape
// so the parser has a stable contract to extract against.
func BuildQuizPrompt(topics []string, numQuestions int, difficulty models.Difficulty) string {
	topicsList := strings.Join(topics, ", ")

	return fmt.Sprintf(`Generate %d multiple choice quiz questions on the following topics: %s.
Difficulty level: %s.

Format the response as a JSON array with this structure:
[
  {
    "question": "Question text here?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": 0,
    "explanation": "Explanation of the correct answer"
  }
]

Each question must have exactly 4 options, and correctAnswer must be the
0-based index of the right option. Make sure the JSON is valid and properly
formatted. Return ONLY the JSON array, no additional text.`, numQuestions, topicsList, difficulty)
}
