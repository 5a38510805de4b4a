package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotFound is returned when a token hash has no session.
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side record behind an issued token. Sessions never
// expire; the only revocation is client-side token deletion.
type Session struct {
	UserID   string    `json:"user_id"`
	IssuedAt time.Time `json:"issued_at"`
}

// SessionStore maps token hashes to sessions.
type SessionStore interface {
	Put(ctx context.Context, tokenHash string, session Session) error
	Get(ctx context.Context, tokenHash string) (Session, error)
}

// MemorySessionStore keeps sessions in process memory. Safe for concurrent
// use.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]Session),
	}
}

// Put stores a session under the token hash.
func (s *MemorySessionStore) Put(_ context.Context, tokenHash string, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[tokenHash] = session
	return nil
}

// Get returns the session for a token hash.
func (s *MemorySessionStore) Get(_ context.Context, tokenHash string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[tokenHash]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

const redisSessionKeyPrefix = "coachdesk:session:"

// RedisSessionStore keeps sessions in Redis so multiple instances can share
// them. Entries are written without TTL to match the no-expiry contract.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// Put stores a session under the token hash.
func (s *RedisSessionStore) Put(ctx context.Context, tokenHash string, session Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, redisSessionKeyPrefix+tokenHash, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get returns the session for a token hash.
func (s *RedisSessionStore) Get(ctx context.Context, tokenHash string) (Session, error) {
	payload, err := s.client.Get(ctx, redisSessionKeyPrefix+tokenHash).Bytes()
	if err == redis.Nil {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session, nil
}
