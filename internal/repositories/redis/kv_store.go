package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArowuTest/gaspay-backend/internal/repositories"
	goredis "github.com/redis/go-redis/v9"
)

var _ repositories.Store = (*KVStore)(nil)

const keyPrefix = "gaspay"

// KVStore keeps account state as plain redis strings under gaspay:<msisdn>:<key>
type KVStore struct {
	client goredis.UniversalClient
}

// NewKVStore creates a KVStore on top of client
func NewKVStore(client goredis.UniversalClient) *KVStore {
	return &KVStore{client: client}
}

func redisKey(scope, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, scope, key)
}

func (s *KVStore) Get(ctx context.Context, scope, key string) (string, error) {
	value, err := s.client.Get(ctx, redisKey(scope, key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", repositories.ErrNotFound
	}
	return value, err
}

func (s *KVStore) Set(ctx context.Context, scope, key, value string) error {
	return s.client.Set(ctx, redisKey(scope, key), value, 0).Err()
}

func (s *KVStore) Delete(ctx context.Context, scope, key string) error {
	return s.client.Del(ctx, redisKey(scope, key)).Err()
}

// Clear deletes every key matching gaspay:<scope>:*
func (s *KVStore) Clear(ctx context.Context, scope string) error {
	pattern := fmt.Sprintf("%s:%s:*", keyPrefix, scope)
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
