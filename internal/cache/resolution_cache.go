// Package cache provides a read-through redis cache for routing
// decisions. Routing is pure, so cached entries never go stale for a
// given rule chain; the TTL only bounds memory after deploys change
// the chain.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"checkroute/internal/domain/method"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Decision is the cached outcome of one routing lookup
type Decision struct {
	WidgetKind string `json:"widget_kind"`
	Rule       string `json:"rule"`
	Matched    bool   `json:"matched"`
}

// ResolutionCache caches selector decisions keyed by descriptor
type ResolutionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResolutionCache creates a cache over an existing redis client
func NewResolutionCache(client *redis.Client, ttl time.Duration) *ResolutionCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ResolutionCache{client: client, ttl: ttl}
}

// Get returns a cached decision, ok=false on miss. Redis failures are
// logged and treated as misses; the selector is cheap to re-run.
func (c *ResolutionCache) Get(ctx context.Context, d method.Descriptor) (Decision, bool) {
	val, err := c.client.Get(ctx, key(d)).Bytes()
	if err == redis.Nil {
		return Decision{}, false
	}
	if err != nil {
		log.Warn().Err(err).Str("method_id", d.ID).Msg("resolution cache read failed")
		return Decision{}, false
	}

	var dec Decision
	if err := json.Unmarshal(val, &dec); err != nil {
		log.Warn().Err(err).Str("method_id", d.ID).Msg("resolution cache entry corrupt")
		return Decision{}, false
	}
	return dec, true
}

// Set stores a decision; failures are logged, never surfaced
func (c *ResolutionCache) Set(ctx context.Context, d method.Descriptor, dec Decision) {
	val, err := json.Marshal(dec)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(d), val, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("method_id", d.ID).Msg("resolution cache write failed")
	}
}

func key(d method.Descriptor) string {
	h := sha256.Sum256([]byte(d.UniqueKey()))
	return "resolve:" + hex.EncodeToString(h[:])
}
