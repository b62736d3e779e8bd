package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"nexttrain/internal/metrics"
)

// DefaultTTL is how long a snapshot is served without touching upstream.
const DefaultTTL = 15 * time.Second

// FetchFunc retrieves and decodes one feed snapshot.
type FetchFunc func(ctx context.Context) (*gtfs.FeedMessage, error)

// pending is one in-flight refresh, shared by every caller that arrives while
// it is outstanding. Its fields are written once, before done is closed.
type pending struct {
	done chan struct{}
	feed *gtfs.FeedMessage
	at   time.Time
	err  error
}

// Cache holds the single most recent feed snapshot and bounds upstream load:
// a fresh snapshot is served without I/O, and at most one refresh is
// outstanding at any instant — concurrent callers join it rather than fetch.
type Cache struct {
	fetch   FetchFunc
	ttl     time.Duration
	timeout time.Duration
	mets    *metrics.Collector
	logger  *slog.Logger

	mu        sync.Mutex
	snapshot  *gtfs.FeedMessage
	fetchedAt time.Time
	inflight  *pending
}

// NewCache creates a snapshot cache around fetch. The timeout bounds each
// refresh; mets may be nil.
func NewCache(fetch FetchFunc, ttl, timeout time.Duration, mets *metrics.Collector, logger *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		fetch:   fetch,
		ttl:     ttl,
		timeout: timeout,
		mets:    mets,
		logger:  logger,
	}
}

// Get returns the current snapshot and its fetch time, refreshing from
// upstream when stale. Callers that arrive during a refresh all observe the
// same result, success or failure. A failed refresh leaves any previously
// cached snapshot in place, and the next Get after it starts a new fetch.
func (c *Cache) Get(ctx context.Context) (*gtfs.FeedMessage, time.Time, error) {
	c.mu.Lock()
	if c.snapshot != nil && time.Since(c.fetchedAt) < c.ttl {
		snap, at := c.snapshot, c.fetchedAt
		c.mu.Unlock()
		if c.mets != nil {
			c.mets.CacheHits.Inc()
		}
		return snap, at, nil
	}
	p := c.inflight
	if p == nil {
		p = &pending{done: make(chan struct{})}
		c.inflight = p
		go c.refresh(p)
	} else if c.mets != nil {
		c.mets.FetchWaitersJoined.Inc()
	}
	c.mu.Unlock()

	select {
	case <-p.done:
		return p.feed, p.at, p.err
	case <-ctx.Done():
		return nil, time.Time{}, ctx.Err()
	}
}

// refresh runs in its own goroutine with its own deadline, so a caller
// cancelling mid-flight never poisons the shared result. Once started it
// always resolves the pending handle.
func (c *Cache) refresh(p *pending) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	msg, err := c.fetch(ctx)
	now := time.Now()

	c.mu.Lock()
	if err == nil {
		c.snapshot = msg
		c.fetchedAt = now
	}
	c.inflight = nil
	c.mu.Unlock()

	if err != nil {
		p.err = err
		if c.mets != nil {
			c.mets.FeedFetchErrors.Inc()
		}
		c.logger.Warn("feed refresh failed", "error", err)
	} else {
		p.feed, p.at = msg, now
		if c.mets != nil {
			c.mets.FeedFetches.Inc()
		}
	}
	close(p.done)
}
