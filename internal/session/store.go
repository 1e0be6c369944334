package session

// DraftStore holds at most one draft per user. Implementations must be safe
// for concurrent use.
type DraftStore interface {
	Get(userID int64) (*Draft, bool)
	Put(d *Draft)
	Delete(userID int64)
}
