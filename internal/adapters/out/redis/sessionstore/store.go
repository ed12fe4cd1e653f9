// Package sessionstore keeps sessions in Redis, one JSON document per user.
// Expiry is left to Redis: every save refreshes the key's TTL.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ordering/internal/core/domain/model/session"
	"ordering/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "ordering:session:"

type RedisSessionStore struct {
	client       redis.Cmdable
	keyPrefix    string
	ttl          time.Duration
	historyLimit int
}

// NewRedisSessionStore uses DefaultKeyPrefix when keyPrefix is empty. A zero
// ttl stores keys without expiry.
func NewRedisSessionStore(client redis.Cmdable, keyPrefix string, ttl time.Duration, historyLimit int) *RedisSessionStore {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisSessionStore{
		client:       client,
		keyPrefix:    keyPrefix,
		ttl:          ttl,
		historyLimit: historyLimit,
	}
}

func (s *RedisSessionStore) key(userID int64) string {
	return s.keyPrefix + strconv.FormatInt(userID, 10)
}

func (s *RedisSessionStore) Load(ctx context.Context, userID int64) (session.Session, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.Session{}, ports.ErrSessionNotFound
		}
		return session.Session{}, fmt.Errorf("load session of user %d: %w", userID, err)
	}

	var doc session.Document
	if err = json.Unmarshal(data, &doc); err != nil {
		return session.Session{}, fmt.Errorf("decode session of user %d: %w", userID, err)
	}

	return session.FromDocument(doc, s.historyLimit)
}

func (s *RedisSessionStore) Save(ctx context.Context, userID int64, sess session.Session) error {
	data, err := json.Marshal(sess.Document())
	if err != nil {
		return fmt.Errorf("encode session of user %d: %w", userID, err)
	}

	if err = s.client.Set(ctx, s.key(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session of user %d: %w", userID, err)
	}
	return nil
}
