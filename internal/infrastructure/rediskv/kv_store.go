package rediskv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/gym-membership-directory/internal/infrastructure/kvstore"
	"github.com/oksasatya/gym-membership-directory/pkg/helpers"
)

const (
	scanCount = 200
	mgetBatch = 200
)

// KVStore implements kvstore.Store on plain Redis strings. Keys are stored
// without expiry.
type KVStore struct {
	rdb *redis.Client
}

var _ kvstore.Store = (*KVStore)(nil)

func NewKVStore(rdb *redis.Client) *KVStore {
	return &KVStore{rdb: rdb}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// ScanPrefix walks the keyspace with SCAN and fetches values with MGET. Keys
// deleted between the two steps are skipped.
func (s *KVStore) ScanPrefix(ctx context.Context, prefix string) ([]kvstore.Entry, error) {
	pattern := helpers.EscapeRedisGlob(prefix) + "*"

	seen := make(map[string]struct{})
	keys := make([]string, 0)
	iter := s.rdb.Scan(ctx, 0, pattern, scanCount).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		// SCAN may return the same key more than once.
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	out := make([]kvstore.Entry, 0, len(keys))
	for start := 0; start < len(keys); start += mgetBatch {
		end := min(start+mgetBatch, len(keys))
		batch := keys[start:end]
		vals, err := s.rdb.MGet(ctx, batch...).Result()
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			str, ok := v.(string)
			if !ok {
				continue
			}
			out = append(out, kvstore.Entry{Key: batch[i], Value: []byte(str)})
		}
	}
	return out, nil
}
