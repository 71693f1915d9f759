// Package cache memoizes upstream list responses for a freshness window.
package cache

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 5 * time.Minute

const (
	EventHit         = "hit"
	EventMiss        = "miss"
	EventShared      = "shared"
	EventExpired     = "expired"
	EventInvalidated = "invalidated"
)

// Key identifies one cached request. Tag groups keys for invalidation and is
// the resource name for list requests.
type Key struct {
	Tag    string
	Params url.Values
}

// String is the canonical form of the key; query parameters are sorted.
func (k Key) String() string {
	return k.Tag + "?" + k.Params.Encode()
}

// Observer receives cache events, e.g. a metrics registry.
type Observer interface {
	CacheEvent(tag, event string)
}

type noopObserver struct{}

func (noopObserver) CacheEvent(string, string) {}

type entry struct {
	value    any
	storedAt time.Time
}

// TTL is a keyed store whose entries expire after a fixed duration. Concurrent
// lookups of a missing key share one fetch. Failed fetches are not cached.
type TTL struct {
	ttl      time.Duration
	now      func() time.Time
	observer Observer

	mu      sync.Mutex
	entries map[string]entry
	// tags maps a tag to every key stored or in flight under it.
	tags map[string]map[string]struct{}
	// gens is bumped on invalidation so a fetch started earlier is not stored.
	gens  map[string]uint64
	epoch uint64

	group singleflight.Group
}

type Option func(*TTL)

func WithTTL(ttl time.Duration) Option {
	return func(c *TTL) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *TTL) { c.now = now }
}

func WithObserver(o Observer) Option {
	return func(c *TTL) {
		if o != nil {
			c.observer = o
		}
	}
}

func New(opts ...Option) *TTL {
	c := &TTL{
		ttl:      DefaultTTL,
		now:      time.Now,
		observer: noopObserver{},
		entries:  make(map[string]entry),
		tags:     make(map[string]map[string]struct{}),
		gens:     make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrFetch returns the fresh value for key, or runs fetch once for all
// concurrent callers of the same key. fetch runs detached from the caller's
// cancellation so other waiters still get the result; a caller whose ctx ends
// stops waiting.
func (c *TTL) GetOrFetch(ctx context.Context, key Key, fetch func(ctx context.Context) (any, error)) (any, error) {
	k := key.String()

	c.mu.Lock()
	if e, ok := c.entries[k]; ok {
		if c.now().Sub(e.storedAt) < c.ttl {
			c.mu.Unlock()
			c.observer.CacheEvent(key.Tag, EventHit)
			return e.value, nil
		}
		delete(c.entries, k)
		c.observer.CacheEvent(key.Tag, EventExpired)
	}
	gen, epoch := c.gens[k], c.epoch
	c.tagLocked(key.Tag, k)
	c.mu.Unlock()

	c.observer.CacheEvent(key.Tag, EventMiss)
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(k, func() (any, error) {
		v, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gens[k] == gen && c.epoch == epoch {
			c.entries[k] = entry{value: v, storedAt: c.now()}
			c.tagLocked(key.Tag, k)
		}
		c.mu.Unlock()
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.observer.CacheEvent(key.Tag, EventShared)
		}
		return res.Val, res.Err
	}
}

// Fetch is GetOrFetch with a typed value.
func Fetch[V any](ctx context.Context, c *TTL, key Key, fetch func(ctx context.Context) (V, error)) (V, error) {
	var zero V
	v, err := c.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(V)
	if !ok {
		return zero, fmt.Errorf("cache: value for %s has type %T, want %T", key, v, zero)
	}
	return typed, nil
}

// Invalidate drops one key. An in-flight fetch for it is not stored.
func (c *TTL) Invalidate(key Key) {
	k := key.String()

	c.mu.Lock()
	c.dropLocked(k)
	if keys, ok := c.tags[key.Tag]; ok {
		delete(keys, k)
	}
	c.mu.Unlock()

	c.group.Forget(k)
	c.observer.CacheEvent(key.Tag, EventInvalidated)
}

// InvalidateTag drops every key under tag and returns how many there were.
func (c *TTL) InvalidateTag(tag string) int {
	c.mu.Lock()
	keys := c.tags[tag]
	delete(c.tags, tag)
	for k := range keys {
		c.dropLocked(k)
	}
	c.mu.Unlock()

	for k := range keys {
		c.group.Forget(k)
	}
	c.observer.CacheEvent(tag, EventInvalidated)
	return len(keys)
}

// Clear drops everything.
func (c *TTL) Clear() {
	c.mu.Lock()
	tags := c.tags
	c.entries = make(map[string]entry)
	c.tags = make(map[string]map[string]struct{})
	c.epoch++
	c.mu.Unlock()

	for _, keys := range tags {
		for k := range keys {
			c.group.Forget(k)
		}
	}
}

// Len counts the stored entries, including expired ones not yet evicted.
func (c *TTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *TTL) tagLocked(tag, k string) {
	keys, ok := c.tags[tag]
	if !ok {
		keys = make(map[string]struct{})
		c.tags[tag] = keys
	}
	keys[k] = struct{}{}
}

func (c *TTL) dropLocked(k string) {
	delete(c.entries, k)
	c.gens[k]++
}
