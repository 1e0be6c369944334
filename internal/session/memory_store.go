package session

import "sync"

// MemoryStore keeps drafts in process memory. Suitable for single-instance
// deployments and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[int64]*Draft
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[int64]*Draft)}
}

func (s *MemoryStore) Get(userID int64) (*Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[userID]
	return d, ok
}

func (s *MemoryStore) Put(d *Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.UserID] = d
}

func (s *MemoryStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
}
