package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/chainblog-backend/metrics"
)

// Key prefixes of the cached list endpoints
const (
	PrefixPosts      = "posts:"
	PrefixCategories = "categories"
	PrefixTags       = "tags:"
)

// Client is a cache-aside helper over Redis. A nil *Client is valid and caches nothing.
type Client struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// New connects to the Redis server at url (redis://host:port/db) and checks it answers
func New(url string, ttl time.Duration) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewFromRedis(rdb, ttl), nil
}

func NewFromRedis(rdb *redis.Client, ttl time.Duration) *Client {
	return &Client{
		rdb:    rdb,
		ttl:    ttl,
		logger: log.With().Str("component", "cache").Logger(),
	}
}

// Key joins parts into a cache key
func Key(parts ...interface{}) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprint(p)
	}
	return strings.Join(s, ":")
}

// Aside returns the cached value of key in dest. On a miss fetch must fill dest,
// which is then stored with the client TTL. Redis failures fall through to fetch.
func (c *Client) Aside(ctx context.Context, key string, dest interface{}, fetch func() error) error {
	if c == nil {
		return fetch()
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, dest); jsonErr == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return nil
		}
		metrics.CacheLookups.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed")
	}

	if err := fetch(); err != nil {
		return err
	}

	payload, err := json.Marshal(dest)
	if err != nil {
		return nil
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
	return nil
}

// Invalidate deletes every key starting with one of prefixes
func (c *Client) Invalidate(ctx context.Context, prefixes ...string) {
	if c == nil {
		return
	}
	for _, prefix := range prefixes {
		iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			c.logger.Warn().Err(err).Str("prefix", prefix).Msg("Cache scan failed")
			continue
		}
		if len(keys) == 0 {
			continue
		}
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn().Err(err).Str("prefix", prefix).Msg("Cache invalidation failed")
		}
	}
}

func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
