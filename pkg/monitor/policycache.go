package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/covenantproto/covenant/pkg/ccl"
)

// PolicyCache shares a covenant's parsed CCL source across monitor
// instances, keyed by covenant ID. A single in-process Monitor never
// needs one (its own parseOnce already memoizes); it matters when several
// monitor processes enforce the same covenant and want to skip
// re-parsing on every process's first evaluation.
type PolicyCache interface {
	Get(ctx context.Context, covenantID string) (source string, ok bool, err error)
	Set(ctx context.Context, covenantID, source string) error
}

// InMemoryPolicyCache is a process-local PolicyCache, useful for tests and
// single-process deployments.
type InMemoryPolicyCache struct {
	mu      sync.RWMutex
	sources map[string]string
}

// NewInMemoryPolicyCache returns an empty in-memory cache.
func NewInMemoryPolicyCache() *InMemoryPolicyCache {
	return &InMemoryPolicyCache{sources: make(map[string]string)}
}

func (c *InMemoryPolicyCache) Get(_ context.Context, covenantID string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	src, ok := c.sources[covenantID]
	return src, ok, nil
}

func (c *InMemoryPolicyCache) Set(_ context.Context, covenantID, source string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[covenantID] = source
	return nil
}

// RedisPolicyCache backs PolicyCache with a shared Redis instance so
// multiple monitor processes enforcing the same covenant can skip
// re-parsing its CCL source after the first process has done so.
type RedisPolicyCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisPolicyCache wraps an already-configured redis client. ttl of 0
// means entries never expire.
func NewRedisPolicyCache(client *redis.Client, ttl time.Duration) *RedisPolicyCache {
	return &RedisPolicyCache{client: client, ttl: ttl, prefix: "covenant:policy:"}
}

func (c *RedisPolicyCache) Get(ctx context.Context, covenantID string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+covenantID).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisPolicyCache) Set(ctx context.Context, covenantID, source string) error {
	return c.client.Set(ctx, c.prefix+covenantID, source, c.ttl).Err()
}

// cachedPolicy parses a CCL source and remembers it in cache so other
// monitor instances for the same covenant can retrieve the same source
// verbatim (and skip any sort of network fetch of it) on their own first
// parse. It does not cache the *parsed* ccl.Policy itself — only the
// source text exactly as given — since ccl.Policy holds compiled CEL programs
// that are process-local.
func cachedPolicy(ctx context.Context, cache PolicyCache, covenantID, source string) (*ccl.Policy, error) {
	if cache != nil {
		if cached, ok, err := cache.Get(ctx, covenantID); err == nil && ok {
			source = cached
		}
		_ = cache.Set(ctx, covenantID, source)
	}
	return ccl.Parse(source)
}
