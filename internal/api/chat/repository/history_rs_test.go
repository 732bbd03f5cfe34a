package chatRepository

import (
	"VoiceBot/internal/entity"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	mu      sync.Mutex
	lists   map[string][]string
	ttls    map[string]time.Duration
	failErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		lists: map[string][]string{},
		ttls:  map[string]time.Duration{},
	}
}

func (f *fakeRedis) PushCapped(_ context.Context, key string, value string, max int64, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	list := append(f.lists[key], value)
	if int64(len(list)) > max {
		list = list[int64(len(list))-max:]
	}
	f.lists[key] = list
	f.ttls[key] = ttl
	return nil
}

func (f *fakeRedis) Range(_ context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	return append([]string(nil), f.lists[key]...), nil
}

func (f *fakeRedis) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	delete(f.lists, key)
	return nil
}

func (f *fakeRedis) Ping(context.Context) error { return f.failErr }

func (f *fakeRedis) Close() error { return nil }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestHistoryRepository_SaveAndGet(t *testing.T) {
	client := newFakeRedis()
	repo := New(client, quietLogger(), Options{MaxTurns: 3, TTL: time.Hour})
	ctx := context.Background()

	for _, text := range []string{"a", "b", "c", "d"} {
		require.NoError(t, repo.SaveTurn(ctx, "s1", entity.ConversationTurn{
			UserInput:   text,
			BotResponse: "reply " + text,
			Intent:      "fallback",
			Timestamp:   "2024-03-01T10:30:00Z",
		}))
	}

	turns, err := repo.GetTurns(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "b", turns[0].UserInput)
	assert.Equal(t, "reply d", turns[2].BotResponse)
	assert.Equal(t, time.Hour, client.ttls[sessionKey("s1")])
	assert.True(t, repo.Enabled())
}

func TestHistoryRepository_SkipsMalformed(t *testing.T) {
	client := newFakeRedis()
	client.lists[sessionKey("s1")] = []string{"{not json", `{"user_input":"hi","bot_response":"hello","intent":"greeting","timestamp":"t"}`}
	repo := New(client, quietLogger(), Options{})

	turns, err := repo.GetTurns(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "hi", turns[0].UserInput)
}

func TestHistoryRepository_Delete(t *testing.T) {
	client := newFakeRedis()
	repo := New(client, quietLogger(), Options{})
	ctx := context.Background()

	require.NoError(t, repo.SaveTurn(ctx, "s1", entity.ConversationTurn{UserInput: "x"}))
	require.NoError(t, repo.DeleteSession(ctx, "s1"))

	turns, err := repo.GetTurns(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestHistoryRepository_PropagatesErrors(t *testing.T) {
	client := newFakeRedis()
	client.failErr = errors.New("connection refused")
	repo := New(client, quietLogger(), Options{})
	ctx := context.Background()

	assert.Error(t, repo.SaveTurn(ctx, "s1", entity.ConversationTurn{}))
	_, err := repo.GetTurns(ctx, "s1")
	assert.Error(t, err)
	assert.Error(t, repo.DeleteSession(ctx, "s1"))
}

func TestNoopRepository(t *testing.T) {
	repo := New(nil, quietLogger(), Options{})
	ctx := context.Background()

	assert.False(t, repo.Enabled())
	assert.NoError(t, repo.SaveTurn(ctx, "s1", entity.ConversationTurn{}))
	turns, err := repo.GetTurns(ctx, "s1")
	assert.NoError(t, err)
	assert.Empty(t, turns)
	assert.NoError(t, repo.DeleteSession(ctx, "s1"))
}
