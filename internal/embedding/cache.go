package embedding

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cached wraps an Embedder with an in-process TTL cache. Article identity
// strings repeat across synchronization passes, so repeat texts skip the
// model call entirely. Failed embeddings are not cached.
type Cached struct {
	inner Embedder
	cache *gocache.Cache
}

func NewCached(inner Embedder, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *Cached) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if v, ok := c.cache.Get(text); ok {
		return v.([]float32), nil
	}
	vector, err := c.inner.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Set(text, vector, gocache.DefaultExpiration)
	return vector, nil
}
