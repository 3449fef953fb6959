package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rpupo63/chainblog-backend/errs"
	"github.com/rpupo63/chainblog-backend/models"
	"github.com/shopspring/decimal"
)

// Uniqueness violations. Both wrap errs.ErrAlreadyExists.
var (
	ErrNameTaken     = fmt.Errorf("name or slug %w", errs.ErrAlreadyExists)
	ErrUsernameTaken = fmt.Errorf("username %w", errs.ErrAlreadyExists)
)

// Lookups return nil (or an empty slice) when nothing matches. Errors are
// reserved for storage failures and uniqueness violations.

type BlogPostRepository interface {
	FindAll(ctx context.Context, q PostQuery) ([]models.BlogPost, error)
	FindByID(ctx context.Context, id string) (*models.BlogPost, error)
	FindByAuthor(ctx context.Context, author string, limit int) ([]models.BlogPost, error)
	FindByCategory(ctx context.Context, category string, limit int) ([]models.BlogPost, error)
	FindByTag(ctx context.Context, tag string, limit int) ([]models.BlogPost, error)
	FindByCreator(ctx context.Context, userID, wallet string) ([]models.BlogPost, error)
	FindTrending(ctx context.Context, limit int) ([]models.BlogPost, error)
	FindFeatured(ctx context.Context, limit int) ([]models.BlogPost, error)
	Search(ctx context.Context, query string, limit int) ([]models.BlogPost, error)
	Recommend(ctx context.Context, userID string, limit int) ([]models.BlogPost, error)
	Add(ctx context.Context, in models.InsertBlogPost) (models.BlogPost, error)
	Update(ctx context.Context, id string, patch models.BlogPostPatch) (*models.BlogPost, error)
	Delete(ctx context.Context, id string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
	AdjustEngagement(ctx context.Context, id string, delta models.Engagement) error
	UpdateTrendingScores(ctx context.Context) (int, error)
}

type CategoryRepository interface {
	All(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id string) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Add(ctx context.Context, in models.InsertCategory) (models.Category, error)
	Update(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, id string) (bool, error)
	AdjustPostCount(ctx context.Context, name string, delta int) error
}

type TagRepository interface {
	All(ctx context.Context) ([]models.Tag, error)
	Trending(ctx context.Context, limit int) ([]models.Tag, error)
	FindByID(ctx context.Context, id string) (*models.Tag, error)
	FindBySlug(ctx context.Context, slug string) (*models.Tag, error)
	Add(ctx context.Context, in models.InsertTag) (models.Tag, error)
	Update(ctx context.Context, id string, patch models.TagPatch) (*models.Tag, error)
	Delete(ctx context.Context, id string) (bool, error)
	AdjustPostCount(ctx context.Context, name string, delta int) error
}

type CommentRepository interface {
	FindByPost(ctx context.Context, postID string) ([]models.Comment, error)
	FindByID(ctx context.Context, id string) (*models.Comment, error)
	Add(ctx context.Context, in models.InsertComment) (models.Comment, error)
	Update(ctx context.Context, id string, patch models.CommentPatch) (*models.Comment, error)
	Delete(ctx context.Context, id string) (bool, error)
	AdjustLikes(ctx context.Context, id string, delta int) error
}

type LikeRepository interface {
	FindLike(ctx context.Context, q models.LikeQuery) (*models.Like, error)
	FindByID(ctx context.Context, id string) (*models.Like, error)
	FindByPost(ctx context.Context, postID string) ([]models.Like, error)
	// Add always inserts, even when an equal like exists
	Add(ctx context.Context, in models.InsertLike) (models.Like, error)
	// FindOrAdd returns the existing like for the same identity or inserts a new one.
	// created is false when an existing like was found.
	FindOrAdd(ctx context.Context, in models.InsertLike) (like models.Like, created bool, err error)
	Delete(ctx context.Context, id string) (bool, error)
}

type FollowRepository interface {
	FindByID(ctx context.Context, id string) (*models.Follow, error)
	Find(ctx context.Context, followerID, followingID string) (*models.Follow, error)
	Followers(ctx context.Context, userID string) ([]models.Follow, error)
	Following(ctx context.Context, userID string) ([]models.Follow, error)
	FindOrAdd(ctx context.Context, in models.InsertFollow) (follow models.Follow, created bool, err error)
	Delete(ctx context.Context, id string) (bool, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByWallet(ctx context.Context, wallet string) (*models.User, error)
	Add(ctx context.Context, in models.InsertUser) (models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	AdjustCounters(ctx context.Context, id string, delta models.UserCounters) error
}

type UserAnalyticsRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.UserAnalytics, error)
	// Upsert replaces the computed totals of the user's snapshot. Earnings are preserved.
	Upsert(ctx context.Context, snapshot models.UserAnalytics) (models.UserAnalytics, error)
	RecordEarnings(ctx context.Context, userID string, amount decimal.Decimal, at time.Time) (models.UserAnalytics, error)
}
