// In file: internal/agent/store.go
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dileep-u-k/voice-tool-gateway/internal/llm"
	"github.com/dileep-u-k/voice-tool-gateway/internal/version"
)

// ErrSessionNotFound is returned for ids that never existed, expired, or ended.
var ErrSessionNotFound = errors.New("session not found")

// Session is the stored state of one call.
type Session struct {
	ID        string        `json:"id"`
	Variant   string        `json:"variant"`
	Messages  []llm.Message `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// SessionStore persists conversation histories between turns.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore keeps each session as a JSON blob with a sliding TTL.
type RedisSessionStore struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

var _ SessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore expires idle sessions after ttl. A zero ttl means one hour.
func NewRedisSessionStore(rdb redis.UniversalClient, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(variant, id string) string {
	return version.GenerateVersionedKey("session", variant, id)
}

// indexKey maps a bare session id to its versioned key, so callers only need the id.
func indexKey(id string) string {
	return fmt.Sprintf("session-index:%s", id)
}

// Save writes the session and refreshes its TTL.
func (s *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", session.ID, err)
	}
	key := sessionKey(session.Variant, session.ID)
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, s.ttl)
		pipe.Set(ctx, indexKey(session.ID), key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", session.ID, err)
	}
	return nil
}

// Load returns ErrSessionNotFound when the session is gone, including when it
// was written under an older prompt or tool version.
func (s *RedisSessionStore) Load(ctx context.Context, id string) (*Session, error) {
	key, err := s.rdb.Get(ctx, indexKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up session %s: %w", id, err)
	}

	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	if key != sessionKey(session.Variant, session.ID) {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// Delete removes the session. Deleting an unknown id returns ErrSessionNotFound.
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	key, err := s.rdb.Get(ctx, indexKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up session %s: %w", id, err)
	}
	if err := s.rdb.Del(ctx, key, indexKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}
