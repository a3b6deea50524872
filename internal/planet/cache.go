package planet

import (
	"container/list"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	goredis "github.com/redis/go-redis/v9"

	"planet-designer/internal/shared/redis"
)

const reportKeyPrefix = "planet:report:"

// ReportCache stores evaluated reports by request key
type ReportCache interface {
	Get(ctx context.Context, key string) (*Report, bool, error)
	Set(ctx context.Context, key string, report *Report) error
}

// CacheKey hashes the canonical JSON of the request. Gas order is part of the key
// because it decides dominant-gas ties.
func CacheKey(req EvaluateRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}
	return fmt.Sprintf("%s%016x", reportKeyPrefix, xxhash.Sum64(data)), nil
}

// MemoryCache is a bounded in-process cache that evicts the oldest entry first
type MemoryCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

type memoryEntry struct {
	key    string
	report *Report
}

func NewMemoryCache(capacity int) *MemoryCache {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*Report, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	return el.Value.(*memoryEntry).report, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, report *Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*memoryEntry).report = report
		return nil
	}

	c.entries[key] = c.order.PushBack(&memoryEntry{key: key, report: report})
	for c.order.Len() > c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*memoryEntry).key)
	}
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// RedisCache shares reports between server instances
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	logger.Debug("Initializing redis report cache", "ttl", ttl)

	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Report, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	return c.readReport(key, data, err)
}

// readReport turns a GET reply into a cache result. A missing key and an entry that no
// longer decodes into a valid report are both misses.
func (c *RedisCache) readReport(key string, data []byte, err error) (*Report, bool, error) {
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached report: %w", err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		// stale or foreign entry; treat as a miss so it gets overwritten
		c.logger.Warn("Discarding undecodable cached report", "key", key, "error", err)
		return nil, false, nil
	}
	return &report, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, report *Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}
