package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/chainblog-backend/models"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// testClock hands out strictly increasing timestamps, one step per call
type testClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newTestClock() *testClock {
	return &testClock{now: baseTime, step: time.Second}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// forEachBackend runs fn once against the in-memory store and once against gorm on SQLite
func forEachBackend(t *testing.T, fn func(t *testing.T, db Database, clock *testClock)) {
	t.Run("memory", func(t *testing.T) {
		clock := newTestClock()
		fn(t, NewMemory(WithClock(clock.Now)), clock)
	})
	t.Run("sqlite", func(t *testing.T) {
		clock := newTestClock()
		fn(t, NewGorm(newSQLiteDB(t), WithClock(clock.Now)), clock)
	})
}

func ptr[T any](v T) *T { return &v }

func addPost(t *testing.T, db Database, in models.InsertBlogPost) models.BlogPost {
	t.Helper()
	if in.Title == "" {
		in.Title = "Untitled"
	}
	if in.Content == "" {
		in.Content = "Body"
	}
	if in.Excerpt == "" {
		in.Excerpt = "Excerpt"
	}
	if in.Author == "" {
		in.Author = "0x1234567890abcdef1234567890abcdef12345678"
	}
	if in.ChainID == "" {
		in.ChainID = "1"
	}
	post, err := db.BlogPostRepo().Add(context.Background(), in)
	require.NoError(t, err)
	return post
}

func ids(posts []models.BlogPost) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}
