package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session := Session{UserID: "u1", IssuedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, store.Put(ctx, "hash-1", session))

	got, err := store.Get(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, session, got)

	_, err = store.Get(ctx, "hash-2")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSessionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisSessionStore(client)
	ctx := context.Background()

	session := Session{UserID: "u3", IssuedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, store.Put(ctx, "hash-1", session))

	got, err := store.Get(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, session, got)

	_, err = store.Get(ctx, "hash-2")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Sessions are written without TTL.
	assert.Equal(t, time.Duration(0), mr.TTL(redisSessionKeyPrefix+"hash-1"))
}

func TestRedisSessionStoreKeyPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisSessionStore(client)
	require.NoError(t, store.Put(context.Background(), "abc", Session{UserID: "u1"}))

	assert.True(t, mr.Exists("coachdesk:session:abc"))
}
