package posting

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedFetcher keeps parsed postings in Redis so repeated imports of the
// same URL skip the network.
type CachedFetcher struct {
	next   Fetcher
	client *redis.Client
	ttl    time.Duration
}

func NewCachedFetcher(next Fetcher, client *redis.Client, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{next: next, client: client, ttl: ttl}
}

func (c *CachedFetcher) Fetch(ctx context.Context, rawURL string) (*Posting, error) {
	if c.client == nil || c.ttl <= 0 {
		return c.next.Fetch(ctx, rawURL)
	}
	key := cacheKey(rawURL)
	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var cached Posting
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}
	p, err := c.next.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(p); err == nil {
		_ = c.client.Set(ctx, key, data, c.ttl).Err()
	}
	return p, nil
}

func cacheKey(rawURL string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(rawURL)))
	return fmt.Sprintf("jobtracker:posting:%x", hash[:12])
}
