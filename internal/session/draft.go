package session

import (
	"github.com/KonchadaBhuvan/my-pro/internal/models"
)

// State is the lifecycle position of a quiz draft.
type State string

const (
	StateSelecting  State = "selecting"
	StateGenerating State = "generating"
	StateInProgress State = "in_progress"
	StateSubmitting State = "submitting"
)

// Draft is the transient state of one user's quiz before submission: the
// generated question set, the current question pointer, partial answers and
// the optional countdown. It is owned by exactly one session and destroyed
// on submit, exit, or timeout. Callers must serialize access (the Manager
// does).
type Draft struct {
	UserID           int64             `json:"userId"`
	State            State             `json:"state"`
	Topics           []string          `json:"topics"`
	Quiz             []models.Question `json:"quiz,omitempty"`
	CurrentIndex     int               `json:"currentIndex"`
	Answers          models.AnswerMap  `json:"answers"`
	RemainingSeconds *int              `json:"remainingSeconds,omitempty"`
}

func NewDraft(userID int64) *Draft {
	return &Draft{
		UserID:  userID,
		State:   StateSelecting,
		Answers: models.AnswerMap{},
	}
}

// ToggleTopic flips membership of topic in the selection set: present becomes
// absent, absent becomes present.
func (d *Draft) ToggleTopic(topic string) error {
	if d.State != StateSelecting {
		return models.NewInvalidState("topics can only be changed before generating")
	}
	if topic == "" {
		return models.NewInvalidRequest("topic must be a non-empty string")
	}

	for i, t := range d.Topics {
		if t == topic {
			d.Topics = append(d.Topics[:i], d.Topics[i+1:]...)
			return nil
		}
	}
	d.Topics = append(d.Topics, topic)
	return nil
}

// BeginGenerate moves the draft into the generating state. A draft that is
// already in progress must be exited or submitted first.
func (d *Draft) BeginGenerate() error {
	switch d.State {
	case StateSelecting:
	case StateInProgress, StateSubmitting:
		return models.NewInvalidState("a quiz is already in progress; exit or submit it first")
	default:
		return models.NewInvalidState("cannot generate in state " + string(d.State))
	}
	if len(d.Topics) == 0 {
		return models.NewInvalidRequest("select at least one topic")
	}
	d.State = StateGenerating
	return nil
}

// FailGenerate returns the draft to topic selection, keeping the selection.
func (d *Draft) FailGenerate() {
	if d.State == StateGenerating {
		d.State = StateSelecting
	}
}

// StartQuiz installs the generated question set and begins the attempt.
func (d *Draft) StartQuiz(quiz []models.Question, secondsPerQuestion int) error {
	if d.State != StateGenerating {
		return models.NewInvalidState("cannot start a quiz in state " + string(d.State))
	}
	if len(quiz) == 0 {
		return models.NewInvalidRequest("quiz must have at least one question")
	}

	d.State = StateInProgress
	d.Quiz = quiz
	d.CurrentIndex = 0
	d.Answers = models.AnswerMap{}
	if secondsPerQuestion > 0 {
		remaining := len(quiz) * secondsPerQuestion
		d.RemainingSeconds = &remaining
	}
	return nil
}

// SelectAnswer records option for the current question, overwriting any
// previous selection. One answer per question, never appended.
func (d *Draft) SelectAnswer(option int) error {
	if d.State != StateInProgress {
		return models.NewInvalidState("no quiz in progress")
	}
	if option < 0 || option >= len(d.Quiz[d.CurrentIndex].Options) {
		return models.NewInvalidRequest("option index out of range")
	}
	d.Answers[d.CurrentIndex] = option
	return nil
}

// Advance moves to the next question; a no-op at the last question.
func (d *Draft) Advance() error {
	if d.State != StateInProgress {
		return models.NewInvalidState("no quiz in progress")
	}
	if d.CurrentIndex < len(d.Quiz)-1 {
		d.CurrentIndex++
	}
	return nil
}

// Retreat moves to the previous question; a no-op at the first question.
func (d *Draft) Retreat() error {
	if d.State != StateInProgress {
		return models.NewInvalidState("no quiz in progress")
	}
	if d.CurrentIndex > 0 {
		d.CurrentIndex--
	}
	return nil
}

// Tick decrements the countdown by one second and reports whether it has
// reached zero. Drafts without a countdown never expire.
func (d *Draft) Tick() bool {
	if d.State != StateInProgress || d.RemainingSeconds == nil {
		return false
	}
	if *d.RemainingSeconds > 0 {
		*d.RemainingSeconds--
	}
	return *d.RemainingSeconds <= 0
}

// BeginSubmit guards the submit transition. The submit itself happens in the
// service; on storage failure AbortSubmit restores the in-progress state.
func (d *Draft) BeginSubmit() error {
	if d.State != StateInProgress {
		return models.NewInvalidState("no quiz in progress to submit")
	}
	d.State = StateSubmitting
	return nil
}

// AbortSubmit rolls a failed submit back so no partial transition is
// observable.
func (d *Draft) AbortSubmit() {
	if d.State == StateSubmitting {
		d.State = StateInProgress
	}
}

// View projects the draft for API responses.
func (d *Draft) View() *models.DraftView {
	topics := make([]string, len(d.Topics))
	copy(topics, d.Topics)

	answers := models.AnswerMap{}
	for k, v := range d.Answers {
		answers[k] = v
	}

	view := &models.DraftView{
		State:        string(d.State),
		Topics:       topics,
		Quiz:         d.Quiz,
		CurrentIndex: d.CurrentIndex,
		UserAnswers:  answers,
	}
	if d.RemainingSeconds != nil {
		remaining := *d.RemainingSeconds
		view.RemainingSeconds = &remaining
	}
	return view
}
