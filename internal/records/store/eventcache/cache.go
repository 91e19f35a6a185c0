// Package eventcache caches event start dates in Redis in front of any
// event start resolver. Start dates are immutable once an event exists, so
// entries only expire by TTL.
package eventcache

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	id "eventcare/pkg/domain"
)

const keyPrefix = "eventcare:event_start:"

// Origin resolves event start dates on a cache miss.
type Origin interface {
	ResolveEventStart(ctx context.Context, eventID id.EventID) (time.Time, error)
}

type Cache struct {
	client redis.Cmdable
	origin Origin
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*Cache)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func New(client redis.Cmdable, origin Origin, opts ...Option) *Cache {
	c := &Cache{client: client, origin: origin, ttl: 10 * time.Minute, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveEventStart reads through the cache. Redis failures fall back to
// the origin; origin errors, including not found, are never cached.
func (c *Cache) ResolveEventStart(ctx context.Context, eventID id.EventID) (time.Time, error) {
	key := keyPrefix + eventID.String()

	raw, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if nanos, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
			return time.Unix(0, nanos).UTC(), nil
		}
		c.logger.WarnContext(ctx, "discarding malformed event start cache entry", "event_id", eventID.String())
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "event start cache read failed", "event_id", eventID.String(), "error", err)
	}

	start, err := c.origin.ResolveEventStart(ctx, eventID)
	if err != nil {
		return time.Time{}, err
	}
	if err := c.client.Set(ctx, key, strconv.FormatInt(start.UnixNano(), 10), c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "event start cache write failed", "event_id", eventID.String(), "error", err)
	}
	return start.UTC(), nil
}

// Invalidate drops eventID's entry.
func (c *Cache) Invalidate(ctx context.Context, eventID id.EventID) error {
	return c.client.Del(ctx, keyPrefix+eventID.String()).Err()
}
