package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// ── Core Structs ───────────────────────────────────────

// Question is one multiple-choice item exactly as the generator produced it.
// CorrectAnswer indexes into Options.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Valid reports whether the question satisfies the structural invariant:
// non-blank prompt, non-empty options, correct answer in range.
func (q Question) Valid() bool {
	return q.Question != "" && len(q.Options) > 0 &&
		q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options)
}

// AnswerMap maps question index to the selected option index. Unanswered
// questions are simply absent.
type AnswerMap map[int]int

// AttemptRecord is a completed quiz attempt. It embeds a full denormalized
// copy of the question set and answers so historical review always reflects
// exactly what was shown, and is never mutated after creation.
type AttemptRecord struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	Topics       []string   `json:"topics"`
	Quiz         []Question `json:"quiz"`
	UserAnswers  AnswerMap  `json:"userAnswers"`
	Score        int        `json:"score"`
	NumQuestions int        `json:"numQuestions"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// AttemptSummary is the list view of an attempt: no question or answer payload.
type AttemptSummary struct {
	ID           int64     `json:"id"`
	Topics       []string  `json:"topics"`
	Score        int       `json:"score"`
	NumQuestions int       `json:"numQuestions"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ── Topic Catalog ─────────────────────────────────────

// TopicOption is one entry of the study-type catalog shown at selection time.
type TopicOption struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var DefaultTopics = []TopicOption{
	{ID: "gate", Label: "GATE (Engineering)", Description: "Technical questions for engineering grads"},
	{ID: "aptitude", Label: "Aptitude", Description: "Numerical & mental ability problems"},
	{ID: "communication", Label: "Communication", Description: "Verbal & soft-skills practice"},
	{ID: "programming", Label: "Programming", Description: "Coding concepts & MCQs"},
	{ID: "reasoning", Label: "Logical Reasoning", Description: "Puzzles and logical problems"},
	{ID: "quant", Label: "Quantitative Ability", Description: "Maths, algebra & geometry"},
}

// ── Request Types ─────────────────────────────────────

type GenerateQuizRequest struct {
	Topics       []string   `json:"topics"`
	NumQuestions int        `json:"numQuestions"`
	Difficulty   Difficulty `json:"difficulty"`
}

type SubmitQuizRequest struct {
	Topics      []string   `json:"topics"`
	Quiz        []Question `json:"quiz"`
	UserAnswers AnswerMap  `json:"userAnswers"`
	Score       int        `json:"score"`
}

type ToggleTopicRequest struct {
	Topic string `json:"topic"`
}

type DraftGenerateRequest struct {
	NumQuestions int        `json:"numQuestions"`
	Difficulty   Difficulty `json:"difficulty"`
}

type SelectAnswerRequest struct {
	Option int `json:"option"`
}

// ── Response Types ────────────────────────────────────

type GenerateQuizResponse struct {
	Quiz []Question `json:"quiz"`
}

type SubmitQuizResponse struct {
	AttemptID int64 `json:"attemptId"`
	Score     int   `json:"score"`
}

type AttemptListResponse struct {
	Attempts []AttemptSummary `json:"attempts"`
}

type TopicListResponse struct {
	Topics []TopicOption `json:"topics"`
}

// DraftView is the API projection of the in-progress draft.
type DraftView struct {
	State            string     `json:"state"`
	Topics           []string   `json:"topics"`
	Quiz             []Question `json:"quiz,omitempty"`
	CurrentIndex     int        `json:"currentIndex"`
	UserAnswers      AnswerMap  `json:"userAnswers"`
	RemainingSeconds *int       `json:"remainingSeconds,omitempty"`
}
