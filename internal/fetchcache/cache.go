package fetchcache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/raphi011/brewlog/internal/log"
)

// DefaultTTL is used when Options.TTL is zero.
const DefaultTTL = 30 * time.Second

// ErrCanceled is returned to a caller whose context ended before the shared
// fetch finished.
var ErrCanceled = errors.New("request canceled")

// FetchFunc performs the network call for a key and returns the raw body.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Options control a single Get.
type Options struct {
	// TTL is how long a successful result stays fresh. Zero means DefaultTTL.
	TTL time.Duration
	// Bypass skips a fresh cache entry and forces a fetch.
	Bypass bool
}

// Stats counts how Get calls were served.
type Stats struct {
	Hits   int
	Misses int
	Shared int
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Cache is a TTL response cache with in-flight deduplication.
// The zero value is not usable; use New.
type Cache struct {
	clock   clockwork.Clock
	timeout time.Duration
	group   singleflight.Group

	mu      sync.Mutex
	entries map[string]entry
	// gen is bumped by invalidation so fetches started before it do not
	// store stale results.
	gen   uint64
	stats Stats
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock sets the clock used for expiry.
func WithClock(c clockwork.Clock) Option {
	return func(cache *Cache) { cache.clock = c }
}

// WithFetchTimeout bounds each shared fetch. Zero disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(cache *Cache) { cache.timeout = d }
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		clock:   clockwork.NewRealClock(),
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the cache key for a GET of url.
func Key(url string) string {
	return "GET " + url
}

// Get returns the body for url, from the cache when fresh or else from a
// fetch shared with every concurrent caller for the same url.
func (c *Cache) Get(ctx context.Context, url string, opts Options, fetch FetchFunc) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCanceled, err)
	}

	key := Key(url)
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	l := log.FromContext(ctx)

	if !opts.Bypass {
		if data, ok := c.lookup(key); ok {
			l.Debug("cache hit", "key", key)
			return data, nil
		}
	}

	ch := c.group.DoChan(key, func() (any, error) {
		c.mu.Lock()
		gen := c.gen
		c.stats.Misses++
		c.mu.Unlock()

		l.Debug("cache miss", "key", key, "bypass", opts.Bypass)

		fctx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(fctx, c.timeout)
			defer cancel()
		}

		data, err := fetch(fctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gen == gen {
			c.entries[key] = entry{data: data, expiresAt: c.clock.Now().Add(ttl)}
		}
		c.mu.Unlock()
		return data, nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			c.mu.Lock()
			c.stats.Shared++
			c.mu.Unlock()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
	}
}

func (c *Cache) lookup(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	c.stats.Hits++
	return e.data, true
}

// Invalidate drops the entry for url.
func (c *Cache) Invalidate(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, Key(url))
	c.gen++
}

// InvalidatePrefix drops every entry whose url starts with prefix.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := Key(prefix)
	for k := range c.entries {
		if strings.HasPrefix(k, p) {
			delete(c.entries, k)
		}
	}
	c.gen++
}

// Clear drops every entry. Fetches in flight still complete for their
// callers but their results are not stored.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.gen++
}

// Len returns the number of stored entries, including expired ones not yet
// read.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the hit and miss counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
