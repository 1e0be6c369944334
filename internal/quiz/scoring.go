package quiz

import "github.com/KonchadaBhuvan/my-pro/internal/models"

// Score counts the questions whose selected option matches the correct one.
// Unanswered and out-of-range indices count as incorrect. Pure: no I/O, no
// mutation, deterministic.
func Score(quiz []models.Question, answers models.AnswerMap) int {
	score := 0
	for i, q := range quiz {
		selected, ok := answers[i]
		if ok && selected == q.CorrectAnswer {
			score++
		}
	}
	return score
}
