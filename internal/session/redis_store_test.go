package session

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KonchadaBhuvan/my-pro/internal/models"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb), mr
}

func TestRedisStore_PutGetDelete(t *testing.T) {
	store, _ := newTestRedisStore(t)

	d := NewDraft(42)
	require.NoError(t, d.ToggleTopic("Reasoning"))
	store.Put(d)

	got, ok := store.Get(42)
	require.True(t, ok)
	assert.Equal(t, []string{"Reasoning"}, got.Topics)

	store.Delete(42)
	_, ok = store.Get(42)
	assert.False(t, ok)
}

func TestRedisStore_SurvivesLocalLoss(t *testing.T) {
	store, mr := newTestRedisStore(t)

	d := startedDraft(t, 2, 30)
	d.Answers[0] = 1
	store.Put(d)

	// simulate a restart: the local map is gone, Redis still has the draft
	store.local = NewMemoryStore()

	got, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, StateInProgress, got.State)
	assert.Equal(t, models.AnswerMap{0: 1}, got.Answers)
	require.NotNil(t, got.RemainingSeconds)
	assert.Equal(t, 60, *got.RemainingSeconds)

	assert.True(t, mr.Exists("quiz:draft:1"))
}

func TestRedisStore_CorruptEntryDiscarded(t *testing.T) {
	store, mr := newTestRedisStore(t)

	require.NoError(t, mr.Set("quiz:draft:9", "{not json"))

	_, ok := store.Get(9)
	assert.False(t, ok)
	assert.False(t, mr.Exists("quiz:draft:9"))
}

func TestRedisStore_DeleteClearsRedis(t *testing.T) {
	store, mr := newTestRedisStore(t)

	store.Put(NewDraft(5))
	require.True(t, mr.Exists("quiz:draft:5"))

	store.Delete(5)
	assert.False(t, mr.Exists("quiz:draft:5"))
}
