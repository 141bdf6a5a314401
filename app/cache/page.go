package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/vibast-solutions/ms-go-pricing/app/service"
)

const minEntries = 2

type pageMetrics interface {
	RecordCacheHit()
	RecordCacheMiss()
}

type noopMetrics struct{}

func (noopMetrics) RecordCacheHit()  {}
func (noopMetrics) RecordCacheMiss() {}

// PageCache keeps rendered pages per page state. The catalog never changes
// while the process runs, so a state always renders to the same bytes.
type PageCache struct {
	cache   *lru.LRU[string, []byte]
	metrics pageMetrics
}

func NewPageCache(size int, ttl time.Duration, metrics pageMetrics) *PageCache {
	if size < minEntries {
		size = minEntries
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &PageCache{
		cache:   lru.NewLRU[string, []byte](size, nil, ttl),
		metrics: metrics,
	}
}

func (c *PageCache) Get(state service.PageState) ([]byte, bool) {
	page, ok := c.cache.Get(key(state))
	if !ok {
		c.metrics.RecordCacheMiss()
		return nil, false
	}
	c.metrics.RecordCacheHit()
	return page, true
}

func (c *PageCache) Set(state service.PageState, page []byte) {
	c.cache.Add(key(state), page)
}

// GetOrRender returns the cached page or renders and stores it.
func (c *PageCache) GetOrRender(state service.PageState, render func() ([]byte, error)) ([]byte, error) {
	if page, ok := c.Get(state); ok {
		return page, nil
	}
	page, err := render()
	if err != nil {
		return nil, err
	}
	c.Set(state, page)
	return page, nil
}

func (c *PageCache) Len() int {
	return c.cache.Len()
}

func (c *PageCache) Purge() {
	c.cache.Purge()
}

func key(state service.PageState) string {
	return fmt.Sprintf("%s:%s", state.Period, state.Theme)
}
