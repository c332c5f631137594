// README: Geocode cache: in-process go-cache in front of an optional Redis.
package location

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"travelapi/internal/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const redisKeyPrefix = "travelapi:geocode:"

type CacheResult string

const (
	CacheHitLocal CacheResult = "hit_local"
	CacheHitRedis CacheResult = "hit_redis"
	CacheMiss     CacheResult = "miss"
)

type Store struct {
	local *cache.Cache
	redis *redis.Client
	ttl   time.Duration
}

// NewStore builds the cache. rdb may be nil.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{
		local: cache.New(ttl, ttl/2),
		redis: rdb,
		ttl:   ttl,
	}
}

func Key(namespace, name string) string {
	return namespace + ":" + strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func (s *Store) Get(ctx context.Context, key string) (types.Point, CacheResult, error) {
	if v, ok := s.local.Get(key); ok {
		return v.(types.Point), CacheHitLocal, nil //nolint:forcetypeassert
	}
	if s.redis == nil {
		return types.Point{}, CacheMiss, nil
	}

	raw, err := s.redis.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.Point{}, CacheMiss, nil
	}
	if err != nil {
		return types.Point{}, CacheMiss, fmt.Errorf("redis get: %w", err)
	}

	var p types.Point
	if err := json.Unmarshal(raw, &p); err != nil {
		return types.Point{}, CacheMiss, fmt.Errorf("json.Unmarshal: %w", err)
	}
	s.local.Set(key, p, cache.DefaultExpiration)
	return p, CacheHitRedis, nil
}

func (s *Store) Set(ctx context.Context, key string, p types.Point) error {
	s.local.Set(key, p, cache.DefaultExpiration)
	if s.redis == nil {
		return nil
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}
	if err := s.redis.Set(ctx, redisKeyPrefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
