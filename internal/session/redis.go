package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// redisKeyPrefix namespaces session keys in redis.
const redisKeyPrefix = "admin_session:"

// RedisStore persists sessions in redis so they survive process restarts and
// are shared across replicas.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a RedisStore from a client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get returns the stored session. A missing key or an unreadable record
// yields (nil, nil); a corrupt record is deleted on the way out.
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, errGet := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errGet != nil {
		if errors.Is(errGet, redis.Nil) {
			return nil, nil
		}
		return nil, errGet
	}

	var sess Session
	if errUnmarshal := json.Unmarshal(raw, &sess); errUnmarshal != nil {
		log.Warnf("session: dropping corrupt record %s: %v", id, errUnmarshal)
		_ = s.client.Del(ctx, redisKeyPrefix+id).Err()
		return nil, nil
	}
	return &sess, nil
}

// Set stores a session under id with the given time-to-live.
func (s *RedisStore) Set(ctx context.Context, id string, sess *Session, ttl time.Duration) error {
	raw, errMarshal := json.Marshal(sess)
	if errMarshal != nil {
		return errMarshal
	}
	return s.client.Set(ctx, redisKeyPrefix+id, raw, ttl).Err()
}

// Remove deletes the session under id, if any.
func (s *RedisStore) Remove(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKeyPrefix+id).Err()
}

// Available reports whether redis answers a ping.
func (s *RedisStore) Available(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(pingCtx).Err() == nil
}
