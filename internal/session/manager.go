package session

import (
	"context"
	"sync"
	"time"

	"github.com/KonchadaBhuvan/my-pro/internal/models"
)

// Manager serializes all transitions on each user's draft and runs the
// countdown for timed quizzes. One draft per user; starting a new quiz
// requires the previous one to be submitted or exited first.
type Manager struct {
	store              DraftStore
	secondsPerQuestion int

	mu       sync.Mutex
	timers   map[int64]context.CancelFunc
	onExpire func(userID int64)
}

func NewManager(store DraftStore, secondsPerQuestion int) *Manager {
	return &Manager{
		store:              store,
		secondsPerQuestion: secondsPerQuestion,
		timers:             make(map[int64]context.CancelFunc),
	}
}

// SetExpireFunc registers the callback invoked when a countdown reaches
// zero. Must be called before the manager starts handling requests.
func (m *Manager) SetExpireFunc(fn func(userID int64)) {
	m.onExpire = fn
}

// View returns the user's current draft, or a fresh topic-selection view if
// none exists. A fresh view is not persisted until the user acts on it.
func (m *Manager) View(userID int64) *models.DraftView {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.getLocked(userID)
	if !ok {
		return NewDraft(userID).View()
	}
	return d.View()
}

// ToggleTopic flips a topic in the selection set, creating the draft on
// first use.
func (m *Manager) ToggleTopic(userID int64, topic string) (*models.DraftView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.getLocked(userID)
	if !ok {
		d = NewDraft(userID)
	}
	if err := d.ToggleTopic(topic); err != nil {
		return nil, err
	}
	m.store.Put(d)
	return d.View(), nil
}

// BeginGenerate moves the draft to the generating state and returns the
// selected topics for the caller to generate against. On error the draft is
// unchanged.
func (m *Manager) BeginGenerate(userID int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.getLocked(userID)
	if !ok {
		return nil, models.NewInvalidRequest("select at least one topic")
	}
	if err := d.BeginGenerate(); err != nil {
		return nil, err
	}
	m.store.Put(d)

	topics := make([]string, len(d.Topics))
	copy(topics, d.Topics)
	return topics, nil
}

// CompleteGenerate installs the generated quiz, starts the attempt, and
// kicks off the countdown if one is configured.
func (m *Manager) CompleteGenerate(userID int64, quiz []models.Question) (*models.DraftView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.store.Get(userID)
	if !ok {
		return nil, models.NewInvalidState("no quiz generation in progress")
	}
	if err := d.StartQuiz(quiz, m.secondsPerQuestion); err != nil {
		return nil, err
	}
	m.store.Put(d)

	if d.RemainingSeconds != nil {
		m.startCountdownLocked(userID)
	}
	return d.View(), nil
}

// FailGenerate returns the draft to topic selection after a generation
// failure, keeping the selected topics.
func (m *Manager) FailGenerate(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.store.Get(userID)
	if !ok {
		return
	}
	d.FailGenerate()
	m.store.Put(d)
}

func (m *Manager) SelectAnswer(userID int64, option int) (*models.DraftView, error) {
	return m.update(userID, func(d *Draft) error { return d.SelectAnswer(option) })
}

func (m *Manager) Advance(userID int64) (*models.DraftView, error) {
	return m.update(userID, func(d *Draft) error { return d.Advance() })
}

func (m *Manager) Retreat(userID int64) (*models.DraftView, error) {
	return m.update(userID, func(d *Draft) error { return d.Retreat() })
}

func (m *Manager) update(userID int64, fn func(*Draft) error) (*models.DraftView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.getLocked(userID)
	if !ok {
		return nil, models.NewInvalidState("no quiz in progress")
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	m.store.Put(d)
	return d.View(), nil
}

// TakeForSubmit marks the draft as submitting and returns it. While marked,
// no other transition can touch it, so the caller may read its fields
// without holding the manager lock. The caller must finish with either
// FinishSubmit or AbortSubmit.
func (m *Manager) TakeForSubmit(userID int64) (*Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.getLocked(userID)
	if !ok {
		return nil, models.NewInvalidState("no quiz in progress to submit")
	}
	if err := d.BeginSubmit(); err != nil {
		return nil, err
	}
	m.store.Put(d)
	m.cancelTimerLocked(userID)
	return d, nil
}

// FinishSubmit destroys the draft after a successful submit.
func (m *Manager) FinishSubmit(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelTimerLocked(userID)
	m.store.Delete(userID)
}

// AbortSubmit rolls a failed submit back to in-progress so the user can
// retry. The countdown does not resume; remaining time is preserved.
func (m *Manager) AbortSubmit(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.store.Get(userID)
	if !ok {
		return
	}
	d.AbortSubmit()
	m.store.Put(d)
	if d.State == StateInProgress && d.RemainingSeconds != nil {
		m.startCountdownLocked(userID)
	}
}

// Exit abandons the draft entirely. Nothing is recorded.
func (m *Manager) Exit(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelTimerLocked(userID)
	m.store.Delete(userID)
}

// getLocked fetches the draft and restarts the countdown for an in-progress
// timed draft recovered from a cold store (e.g. Redis after a restart).
func (m *Manager) getLocked(userID int64) (*Draft, bool) {
	d, ok := m.store.Get(userID)
	if !ok {
		return nil, false
	}
	if d.State == StateInProgress && d.RemainingSeconds != nil {
		if _, running := m.timers[userID]; !running {
			m.startCountdownLocked(userID)
		}
	}
	return d, true
}

func (m *Manager) startCountdownLocked(userID int64) {
	if _, running := m.timers[userID]; running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.timers[userID] = cancel
	go m.runCountdown(ctx, userID)
}

func (m *Manager) cancelTimerLocked(userID int64) {
	if cancel, ok := m.timers[userID]; ok {
		cancel()
		delete(m.timers, userID)
	}
}

func (m *Manager) runCountdown(ctx context.Context, userID int64) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if m.tick(userID) {
				return
			}
		}
	}
}

// tick advances the countdown by one second; returns true when the ticker
// should stop. The expiry callback runs outside the manager lock.
func (m *Manager) tick(userID int64) bool {
	m.mu.Lock()
	d, ok := m.store.Get(userID)
	if !ok || d.State != StateInProgress {
		m.cancelTimerLocked(userID)
		m.mu.Unlock()
		return true
	}
	expired := d.Tick()
	m.store.Put(d)
	if expired {
		m.cancelTimerLocked(userID)
	}
	m.mu.Unlock()

	if expired && m.onExpire != nil {
		m.onExpire(userID)
	}
	return expired
}
