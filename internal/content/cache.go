package content

import (
	"context"
	"sync"
	"time"

	"ipschool.org/internal/obs"
)

// Snapshotter fetches the full remote section list.
type Snapshotter interface {
	GetAllContentSections(ctx context.Context) ([]Section, error)
}

// Cache holds the latest fetched remote snapshot. Mutation call sites
// invalidate it after a successful write; reads refetch when the snapshot is
// stale or invalidated. A fetch failure falls back to the last good snapshot
// so public pages keep rendering, and to an empty snapshot (pure defaults)
// when nothing was ever fetched.
type Cache struct {
	src Snapshotter
	ttl time.Duration

	mu        sync.Mutex
	snap      []Section
	fetchedAt time.Time
	haveSnap  bool
	dirty     bool
}

// NewCache wraps src with a snapshot held for at most ttl.
func NewCache(src Snapshotter, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{src: src, ttl: ttl, dirty: true}
}

// Sections returns the current snapshot, refetching if needed. The returned
// slice must be treated as read-only.
func (c *Cache) Sections(ctx context.Context) ([]Section, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.haveSnap && !c.dirty && time.Since(c.fetchedAt) < c.ttl {
		return c.snap, nil
	}

	snap, err := c.src.GetAllContentSections(ctx)
	if err != nil {
		obs.ObserveContentRefresh("error")
		if c.haveSnap {
			return c.snap, nil
		}
		return nil, err
	}
	obs.ObserveContentRefresh("ok")
	c.snap = snap
	c.fetchedAt = time.Now()
	c.haveSnap = true
	c.dirty = false
	return c.snap, nil
}

// Invalidate forces the next read to refetch. Call it only after a mutation
// succeeds; failed writes leave the snapshot as is.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}
