// Package querycache memoizes collection fetches by query key for the whole
// application session. Entries are marked stale by Invalidate and refetched on
// the next read; there is no TTL and nothing survives a restart.
package querycache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"storedash/internal/metrics"
)

type entry struct {
	value     any
	stale     bool
	seq       uint64
	fetchedAt time.Time
}

type keyState struct {
	entry      *entry
	dispatched uint64
	generation uint64
}

type Cache struct {
	mu    sync.Mutex
	keys  map[string]*keyState
	group singleflight.Group
	now   func() time.Time
}

func New() *Cache {
	return &Cache{keys: map[string]*keyState{}, now: time.Now}
}

// Snapshot describes a key without triggering a fetch.
type Snapshot struct {
	Present   bool
	Stale     bool
	Seq       uint64
	FetchedAt time.Time
}

func (c *Cache) Peek(key string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	ks, ok := c.keys[key]
	if !ok || ks.entry == nil {
		return Snapshot{}
	}
	return Snapshot{Present: true, Stale: ks.entry.stale, Seq: ks.entry.seq, FetchedAt: ks.entry.fetchedAt}
}

// Invalidate marks key stale so the next read refetches. Fetches already in
// flight for key can still land but are committed as stale.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ks := c.state(key)
	ks.generation++
	if ks.entry != nil {
		ks.entry.stale = true
	}
	metrics.CacheEvents.WithLabelValues(key, "invalidate").Inc()
}

// Fetch returns the fresh cached value for key, or runs fn and caches its
// result. Concurrent callers at the same generation share one fn call.
// Errors are returned as-is and never cached.
//
// The shared call runs with the values of the first caller's ctx (its bearer
// token included) but not its cancellation, so joiners are not failed by a
// request that went away. Keys are not scoped per session: the cache assumes
// the single store owner the dashboard serves.
func Fetch[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := c.fresh(key); ok {
		if t, ok := v.(T); ok {
			metrics.CacheEvents.WithLabelValues(key, "hit").Inc()
			return t, nil
		}
	}
	metrics.CacheEvents.WithLabelValues(key, "miss").Inc()

	gen := c.generation(key)
	v, err, _ := c.group.Do(key+"#"+strconv.FormatUint(gen, 10), func() (any, error) {
		seq := c.dispatch(key)
		val, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		return c.commit(key, seq, gen, val), nil
	})
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("querycache: key %q holds %T", key, v)
	}
	return t, nil
}

// Refetch invalidates key and fetches it again. Used by manual retry.
func Refetch[T any](ctx context.Context, c *Cache, key string, fn func(context.Context) (T, error)) (T, error) {
	c.Invalidate(key)
	return Fetch(ctx, c, key, fn)
}

func (c *Cache) state(key string) *keyState {
	ks, ok := c.keys[key]
	if !ok {
		ks = &keyState{}
		c.keys[key] = ks
	}
	return ks
}

func (c *Cache) fresh(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ks, ok := c.keys[key]
	if !ok || ks.entry == nil || ks.entry.stale {
		return nil, false
	}
	return ks.entry.value, true
}

func (c *Cache) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state(key).generation
}

func (c *Cache) dispatch(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ks := c.state(key)
	ks.dispatched++
	return ks.dispatched
}

// commit stores val unless a later fetch for key has been dispatched since
// seq. A discarded response is still handed back to its own caller unless a
// newer value has already been committed, in which case that one wins.
func (c *Cache) commit(key string, seq, gen uint64, val any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	ks := c.state(key)
	if seq < ks.dispatched {
		metrics.CacheEvents.WithLabelValues(key, "discard").Inc()
		if ks.entry != nil && ks.entry.seq > seq {
			return ks.entry.value
		}
		return val
	}
	ks.entry = &entry{
		value:     val,
		stale:     gen < ks.generation,
		seq:       seq,
		fetchedAt: c.now(),
	}
	return val
}
