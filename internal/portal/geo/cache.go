package geo

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"
)

// CachedGeocoder wraps a Geocoder with a bounded LRU cache so repeated
// map views of the same job sites do not hammer the upstream service.
// Entries expire after a TTL; "address not found" answers are cached
// too, since they are just as stable as hits. The cache is an explicit
// object handed to whoever needs it, never process-global state.
type CachedGeocoder struct {
	inner   Geocoder
	maxSize int
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

type cacheEntry struct {
	key       string
	coords    Coordinates
	notFound  bool
	expiresAt time.Time
}

func NewCachedGeocoder(inner Geocoder, maxSize int, ttl time.Duration) *CachedGeocoder {
	if maxSize < 1 {
		maxSize = 1
	}
	return &CachedGeocoder{
		inner:   inner,
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (Coordinates, error) {
	if coords, notFound, ok := c.lookup(address); ok {
		if notFound {
			return Coordinates{}, ErrNoResult
		}
		return coords, nil
	}

	coords, err := c.inner.Geocode(ctx, address)
	switch {
	case err == nil:
		c.store(address, coords, false)
	case errors.Is(err, ErrNoResult):
		c.store(address, Coordinates{}, true)
	}
	return coords, err
}

// Len reports the number of live entries, expired ones included until
// they are touched or evicted.
func (c *CachedGeocoder) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *CachedGeocoder) lookup(key string) (coords Coordinates, notFound, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.entries[key]
	if !exists {
		return Coordinates{}, false, false
	}
	entry := elem.Value.(*cacheEntry)
	if c.now().After(entry.expiresAt) {
		c.order.Remove(elem)
		delete(c.entries, key)
		return Coordinates{}, false, false
	}
	c.order.MoveToFront(elem)
	return entry.coords, entry.notFound, true
}

func (c *CachedGeocoder) store(key string, coords Coordinates, notFound bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &cacheEntry{
		key:       key,
		coords:    coords,
		notFound:  notFound,
		expiresAt: c.now().Add(c.ttl),
	}
	if elem, exists := c.entries[key]; exists {
		elem.Value = entry
		c.order.MoveToFront(elem)
		return
	}

	c.entries[key] = c.order.PushFront(entry)
	if len(c.entries) > c.maxSize {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}
