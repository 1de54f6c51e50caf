package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"landtitle/internal/auth/models"
	id "landtitle/pkg/domain"
	"landtitle/pkg/platform/sentinel"
)

const sessionKeyPrefix = "session:"

// RedisStore persists sessions as JSON with a TTL matching their expiry, so
// Redis reclaims them without a sweeper.
type RedisStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(sessionID id.SessionID) string {
	return sessionKeyPrefix + uuid.UUID(sessionID).String()
}

func (s *RedisStore) Create(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	created, err := s.client.SetNX(ctx, sessionKey(session.ID), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if !created {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

// RevokeSessionIfActive uses WATCH so concurrent revocations resolve to one
// success; losers see redis.TxFailedErr or ErrSessionRevoked. The key TTL is kept.
func (s *RedisStore) RevokeSessionIfActive(ctx context.Context, sessionID id.SessionID, now time.Time) error {
	key := sessionKey(sessionID)
	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return sentinel.ErrNotFound
		}
		if err != nil {
			return err
		}
		var sess models.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			return fmt.Errorf("unmarshal session: %w", err)
		}
		if sess.CanRevoke() != nil {
			return ErrSessionRevoked
		}
		sess.ApplyRevocation(now)
		updated, err := json.Marshal(&sess)
		if err != nil {
			return fmt.Errorf("marshal session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, redis.KeepTTL)
			return nil
		})
		return err
	}, key)
}
