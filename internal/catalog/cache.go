// Package catalog caches and seeds the workout catalog.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned by Cache.Get when the key is absent or expired.
var ErrMiss = errors.New("catalog cache miss")

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// LocalCache keeps entries in process memory. freecache refuses entries larger
// than 1/1024 of its size, so values are split into chunks that fit and a
// small header records where they live.
type LocalCache struct {
	cache    *freecache.Cache
	maxChunk int
	gen      atomic.Uint64
}

const (
	minLocalCacheBytes = 512 * 1024 // freecache's own floor
	// room for the chunk key and freecache's entry header
	chunkOverhead = 256
)

func NewLocalCache(sizeBytes int) *LocalCache {
	return newLocalCache(sizeBytes, nil)
}

func newLocalCache(sizeBytes int, timer freecache.Timer) *LocalCache {
	if sizeBytes < minLocalCacheBytes {
		sizeBytes = minLocalCacheBytes
	}
	c := &LocalCache{maxChunk: sizeBytes/1024 - chunkOverhead}
	if timer != nil {
		c.cache = freecache.NewCacheCustomTimer(sizeBytes, timer)
	} else {
		c.cache = freecache.NewCache(sizeBytes)
	}
	return c
}

func (l *LocalCache) Get(_ context.Context, key string) ([]byte, error) {
	gen, chunks, err := l.header(key)
	if err != nil {
		return nil, err
	}
	var value []byte
	for i := 0; i < chunks; i++ {
		part, err := l.cache.Get(chunkKey(key, gen, i))
		if errors.Is(err, freecache.ErrNotFound) {
			// a chunk was evicted before its header
			return nil, ErrMiss
		}
		if err != nil {
			return nil, fmt.Errorf("local cache get: %w", err)
		}
		value = append(value, part...)
	}
	return value, nil
}

// Set writes the chunks under a fresh generation before the header, so a
// concurrent Get sees either the old value or the new one.
func (l *LocalCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	expire := expireSeconds(ttl)
	gen := l.gen.Add(1)
	chunks := 0
	for off := 0; off < len(value) || chunks == 0; off += l.maxChunk {
		end := min(off+l.maxChunk, len(value))
		if err := l.cache.Set(chunkKey(key, gen, chunks), value[off:end], expire); err != nil {
			return fmt.Errorf("local cache set: %w", err)
		}
		chunks++
	}
	header := strconv.FormatUint(gen, 10) + "/" + strconv.Itoa(chunks)
	if err := l.cache.Set([]byte(key), []byte(header), expire); err != nil {
		return fmt.Errorf("local cache set: %w", err)
	}
	return nil
}

func (l *LocalCache) Delete(_ context.Context, key string) error {
	gen, chunks, err := l.header(key)
	l.cache.Del([]byte(key))
	if err != nil {
		return nil
	}
	for i := 0; i < chunks; i++ {
		l.cache.Del(chunkKey(key, gen, i))
	}
	return nil
}

func (l *LocalCache) header(key string) (uint64, int, error) {
	raw, err := l.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return 0, 0, ErrMiss
	}
	if err != nil {
		return 0, 0, fmt.Errorf("local cache get: %w", err)
	}
	genText, countText, ok := strings.Cut(string(raw), "/")
	gen, genErr := strconv.ParseUint(genText, 10, 64)
	chunks, countErr := strconv.Atoi(countText)
	if !ok || genErr != nil || countErr != nil || chunks < 1 {
		return 0, 0, ErrMiss
	}
	return gen, chunks, nil
}

func chunkKey(key string, gen uint64, i int) []byte {
	return []byte(key + "#" + strconv.FormatUint(gen, 10) + "#" + strconv.Itoa(i))
}

// expireSeconds rounds up: freecache counts whole seconds and treats 0 as
// never expiring.
func expireSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	return int((ttl + time.Second - 1) / time.Second)
}

// RedisCache shares entries between instances.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// DialRedis parses a redis:// URL and verifies the server answers.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
