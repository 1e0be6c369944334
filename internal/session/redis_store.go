package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const draftTTL = 2 * time.Hour

// RedisStore keeps drafts in process memory and mirrors each write to Redis
// with a TTL, so an in-flight quiz survives a process restart. Redis errors
// are logged, not fatal: the local copy stays authoritative while the
// process lives.
type RedisStore struct {
	local *MemoryStore
	rdb   *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{
		local: NewMemoryStore(),
		rdb:   rdb,
	}
}

func draftKey(userID int64) string {
	return fmt.Sprintf("quiz:draft:%d", userID)
}

func (s *RedisStore) Get(userID int64) (*Draft, bool) {
	if d, ok := s.local.Get(userID); ok {
		return d, true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := s.rdb.Get(ctx, draftKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[session] redis get failed for user %d: %v", userID, err)
		}
		return nil, false
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		log.Printf("[session] discarding corrupt draft for user %d: %v", userID, err)
		s.Delete(userID)
		return nil, false
	}

	s.local.Put(&d)
	return &d, true
}

func (s *RedisStore) Put(d *Draft) {
	s.local.Put(d)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := json.Marshal(d)
	if err != nil {
		log.Printf("[session] failed to marshal draft for user %d: %v", d.UserID, err)
		return
	}
	if err := s.rdb.Set(ctx, draftKey(d.UserID), data, draftTTL).Err(); err != nil {
		log.Printf("[session] redis set failed for user %d: %v", d.UserID, err)
	}
}

func (s *RedisStore) Delete(userID int64) {
	s.local.Delete(userID)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.rdb.Del(ctx, draftKey(userID)).Err(); err != nil {
		log.Printf("[session] redis del failed for user %d: %v", userID, err)
	}
}
