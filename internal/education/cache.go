package education

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// contentCache keeps recently served content in memory so repeat requests
// skip the database while the farm state is unchanged.
type contentCache struct {
	lru *expirable.LRU[string, *domain.EducationalContent]
}

func newContentCache(size int, ttl time.Duration) *contentCache {
	return &contentCache{
		lru: expirable.NewLRU[string, *domain.EducationalContent](size, nil, ttl),
	}
}

// Get returns the cached content only when its hash still matches the
// current farm state.
func (c *contentCache) Get(userID, contentHash string) (*domain.EducationalContent, bool) {
	entry, found := c.lru.Get(userID)
	if !found {
		return nil, false
	}
	if entry.ContentHash != contentHash {
		c.lru.Remove(userID)
		return nil, false
	}
	return entry, true
}

func (c *contentCache) Set(userID string, content *domain.EducationalContent) {
	c.lru.Add(userID, content)
}

func (c *contentCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}
