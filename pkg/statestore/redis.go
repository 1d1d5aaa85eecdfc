package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a Redis backend. Values have no TTL; the
// reflection state lives until the user overwrites it.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis by URL and verifies the connection.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, key string, dst interface{}) bool {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		log.Printf("statestore: read %s failed: %v", key, err)
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		// Corrupted entry: drop it so the next load starts clean.
		log.Printf("statestore: corrupted value at %s, resetting: %v", key, err)
		s.Delete(ctx, key)
		return false
	}
	return true
}

func (s *RedisStore) LoadRaw(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("statestore: read %s failed: %v", key, err)
		return nil, false
	}
	return data, true
}

func (s *RedisStore) Save(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("statestore: marshal for %s failed: %v", key, err)
		return
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		log.Printf("statestore: write %s failed: %v", key, err)
	}
}

func (s *RedisStore) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		log.Printf("statestore: delete %s failed: %v", key, err)
	}
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
