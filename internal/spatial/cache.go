package spatial

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultCacheSize = 64
	defaultCacheTTL  = time.Hour
)

// GraphCache - процессный LRU-кэш результатов построения графа по отпечатку набора регионов
type GraphCache struct {
	lru *expirable.LRU[string, *BuildResult]
}

// NewGraphCache создает кэш; size <= 0 и ttl <= 0 заменяются значениями по умолчанию
func NewGraphCache(size int, ttl time.Duration) *GraphCache {
	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &GraphCache{lru: expirable.NewLRU[string, *BuildResult](size, nil, ttl)}
}

func (c *GraphCache) Get(fingerprint string) (*BuildResult, bool) {
	return c.lru.Get(fingerprint)
}

func (c *GraphCache) Add(r *BuildResult) {
	c.lru.Add(r.Graph.Fingerprint(), r)
}

func (c *GraphCache) Len() int { return c.lru.Len() }

func (c *GraphCache) Purge() { c.lru.Purge() }
