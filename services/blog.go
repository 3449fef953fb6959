package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/chainblog-backend/cache"
	"github.com/rpupo63/chainblog-backend/database"
	"github.com/rpupo63/chainblog-backend/errs"
)

// Blog holds the write paths that span more than one repository: denormalized
// counters, like and follow conflicts, chain publishing and creator analytics.
// It also fronts the cached list reads.
type Blog struct {
	db     database.Database
	cache  *cache.Client
	now    func() time.Time
	logger zerolog.Logger
}

type Option func(*Blog)

func WithClock(now func() time.Time) Option {
	return func(b *Blog) { b.now = now }
}

// WithCache enables cache-aside for the hot list reads. A nil client disables it.
func WithCache(c *cache.Client) Option {
	return func(b *Blog) { b.cache = c }
}

func NewBlog(db database.Database, opts ...Option) *Blog {
	b := &Blog{
		db:     db,
		now:    time.Now,
		logger: log.With().Str("service", "blog").Logger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Blog) DB() database.Database {
	return b.db
}

// Cache returns the cache client, nil when caching is disabled
func (b *Blog) Cache() *cache.Client {
	return b.cache
}

// invalidate drops cached lists after a write. Post writes also change tag and
// category counters, so the default is everything.
func (b *Blog) invalidate(ctx context.Context, prefixes ...string) {
	if len(prefixes) == 0 {
		prefixes = []string{cache.PrefixPosts, cache.PrefixCategories, cache.PrefixTags}
	}
	b.cache.Invalidate(ctx, prefixes...)
}

// counterFailed logs a denormalized counter update that could not be applied.
// The primary write has already happened, so the request still succeeds.
func (b *Blog) counterFailed(err error, counter, id string) {
	if err == nil {
		return
	}
	b.logger.Warn().Err(err).Str("counter", counter).Str("id", id).Msg("Failed to adjust counter")
}

func dbErr(operation, entity string, err error) error {
	return errs.NewDatabaseError(operation, entity, err)
}
