// File: dialog/store.go
package dialog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/rahul-s-rajput/voyageur-nest-sub004/models"
)

const sessionKeyPrefix = "resv:session:"

// SessionStore persists one in-progress dialogue per conversation identifier.
// Get returns (nil, nil) when no session exists. A single conversation sends
// inputs serially, so last-writer-wins per sessionID is acceptable.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.GuestSession, error)
	Save(ctx context.Context, sess *models.GuestSession) error
	Delete(ctx context.Context, sessionID string) error
}

// redisSessionStore keeps sessions as JSON in Redis with a rolling TTL, so an
// abandoned dialogue simply expires instead of being swept.
type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore constructs a Redis-backed SessionStore.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func (s *redisSessionStore) Get(ctx context.Context, sessionID string) (*models.GuestSession, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	var sess models.GuestSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", sessionID, err)
	}
	return &sess, nil
}

func (s *redisSessionStore) Save(ctx context.Context, sess *models.GuestSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", sess.SessionID, err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+sess.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session %s: %w", sess.SessionID, err)
	}
	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}

// memorySessionStore is an in-memory SessionStore for local development and
// tests.
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.GuestSession
}

// NewMemorySessionStore constructs an in-memory SessionStore.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]models.GuestSession)}
}

func (s *memorySessionStore) Get(ctx context.Context, sessionID string) (*models.GuestSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	out := sess
	out.Data.RoomsOffered = append([]models.RoomOption(nil), sess.Data.RoomsOffered...)
	return &out, nil
}

func (s *memorySessionStore) Save(ctx context.Context, sess *models.GuestSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *sess
	stored.Data.RoomsOffered = append([]models.RoomOption(nil), sess.Data.RoomsOffered...)
	s.sessions[sess.SessionID] = stored
	return nil
}

func (s *memorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
