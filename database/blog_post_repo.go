package database

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/chainblog-backend/models"
)

// BlogPostRepo stores posts in a SQL database through gorm
type BlogPostRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBlogPostRepo(db *gorm.DB, now func() time.Time) *BlogPostRepo {
	return &BlogPostRepo{db: db, now: now}
}

func (r *BlogPostRepo) posts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.BlogPost{})
}

func newestOrder(tx *gorm.DB) *gorm.DB {
	return tx.Order("created_at DESC").Order("id ASC")
}

// FindAll filters in SQL where the column allows it. Tag membership is
// confirmed in Go, so pagination moves to Go whenever tags are filtered.
func (r *BlogPostRepo) FindAll(ctx context.Context, q PostQuery) ([]models.BlogPost, error) {
	tx := r.posts(ctx)
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Author != "" {
		tx = tx.Where("author = ?", q.Author)
	}
	if q.Featured {
		tx = tx.Where("is_featured = ?", true)
	}
	if q.Trending {
		tx = tx.Where("trending_score > ?", models.TrendingThreshold).
			Order("trending_score DESC").Order("id ASC")
	} else {
		tx = newestOrder(tx)
	}

	if len(q.Tags) == 0 {
		if q.Offset > 0 {
			tx = tx.Offset(q.Offset)
		}
		if q.Limit > 0 {
			tx = tx.Limit(q.Limit)
		}
		posts := []models.BlogPost{}
		err := tx.Find(&posts).Error
		return posts, err
	}

	if r.allPrefilterable(q.Tags) {
		cond := r.db.Session(&gorm.Session{NewDB: true})
		for _, tag := range q.Tags {
			cond = cond.Or(`CAST(tags AS TEXT) LIKE ? ESCAPE '\'`, containsPattern(tag))
		}
		tx = tx.Where(cond)
	}

	var candidates []models.BlogPost
	if err := tx.Find(&candidates).Error; err != nil {
		return nil, err
	}
	matched := slices.DeleteFunc(candidates, func(p models.BlogPost) bool { return !q.Matches(p) })
	return paginate(matched, q.Offset, q.Limit), nil
}

func (r *BlogPostRepo) allPrefilterable(values []string) bool {
	for _, v := range values {
		if !prefilterable(v) {
			return false
		}
	}
	return true
}

func (r *BlogPostRepo) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	return firstOrNil[models.BlogPost](ctx, r.db, "id = ?", id)
}

func (r *BlogPostRepo) findNewest(tx *gorm.DB, limit int) ([]models.BlogPost, error) {
	tx = newestOrder(tx)
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	posts := []models.BlogPost{}
	err := tx.Find(&posts).Error
	return posts, err
}

func (r *BlogPostRepo) FindByAuthor(ctx context.Context, author string, limit int) ([]models.BlogPost, error) {
	return r.findNewest(r.posts(ctx).Where("author = ?", author), limit)
}

func (r *BlogPostRepo) FindByCategory(ctx context.Context, category string, limit int) ([]models.BlogPost, error) {
	return r.findNewest(r.posts(ctx).Where("category = ?", category), limit)
}

func (r *BlogPostRepo) FindByTag(ctx context.Context, tag string, limit int) ([]models.BlogPost, error) {
	return r.FindAll(ctx, PostQuery{Tags: []string{tag}, Limit: limit})
}

func (r *BlogPostRepo) FindByCreator(ctx context.Context, userID, wallet string) ([]models.BlogPost, error) {
	tx := r.posts(ctx)
	switch {
	case userID != "" && wallet != "":
		tx = tx.Where("author_id = ? OR LOWER(author) = LOWER(?)", userID, wallet)
	case userID != "":
		tx = tx.Where("author_id = ?", userID)
	case wallet != "":
		tx = tx.Where("LOWER(author) = LOWER(?)", wallet)
	default:
		return []models.BlogPost{}, nil
	}
	return r.findNewest(tx, 0)
}

func (r *BlogPostRepo) FindTrending(ctx context.Context, limit int) ([]models.BlogPost, error) {
	tx := r.posts(ctx).Where("trending_score > ?", 0).Order("trending_score DESC").Order("id ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	posts := []models.BlogPost{}
	err := tx.Find(&posts).Error
	return posts, err
}

func (r *BlogPostRepo) FindFeatured(ctx context.Context, limit int) ([]models.BlogPost, error) {
	return r.findNewest(r.posts(ctx).Where("is_featured = ?", true), limit)
}

func (r *BlogPostRepo) Search(ctx context.Context, query string, limit int) ([]models.BlogPost, error) {
	needle := strings.ToLower(query)
	tx := r.posts(ctx)
	if prefilterable(needle) {
		pattern := containsPattern(needle)
		tx = tx.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\' OR LOWER(excerpt) LIKE ? ESCAPE '\' OR LOWER(CAST(tags AS TEXT)) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern)
	}

	var candidates []models.BlogPost
	if err := newestOrder(tx).Find(&candidates).Error; err != nil {
		return nil, err
	}
	matched := slices.DeleteFunc(candidates, func(p models.BlogPost) bool { return !matchesSearch(p, needle) })
	return paginate(matched, 0, limit), nil
}

// Recommend ranks in Go because the score mixes integer and fractional terms
func (r *BlogPostRepo) Recommend(ctx context.Context, _ string, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := r.posts(ctx).Where("is_published = ?", true).Find(&posts).Error; err != nil {
		return nil, err
	}
	slices.SortFunc(posts, highestRecommendationFirst)
	return paginate(posts, 0, limit), nil
}

func (r *BlogPostRepo) Add(ctx context.Context, in models.InsertBlogPost) (models.BlogPost, error) {
	post := in.Build(uuid.NewString(), r.now())
	if err := r.db.WithContext(ctx).Create(&post).Error; err != nil {
		return models.BlogPost{}, err
	}
	return post, nil
}

func (r *BlogPostRepo) Update(ctx context.Context, id string, patch models.BlogPostPatch) (*models.BlogPost, error) {
	var updated *models.BlogPost
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := firstOrNil[models.BlogPost](ctx, tx, "id = ?", id)
		if err != nil || post == nil {
			return err
		}
		patch.Apply(post, r.now())
		updated, err = updateColumns(ctx, tx, id, post, patch.Columns())
		return err
	})
	return updated, err
}

func (r *BlogPostRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID[models.BlogPost](ctx, r.db, id)
}

func (r *BlogPostRepo) IncrementViews(ctx context.Context, id string) error {
	return r.posts(ctx).Where("id = ?", id).UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *BlogPostRepo) AdjustEngagement(ctx context.Context, id string, delta models.Engagement) error {
	columns := map[string]interface{}{}
	if delta.Likes != 0 {
		columns["likes"] = clampExpr("likes", delta.Likes)
	}
	if delta.Comments != 0 {
		columns["comments"] = clampExpr("comments", delta.Comments)
	}
	if delta.Shares != 0 {
		columns["shares"] = clampExpr("shares", delta.Shares)
	}
	if len(columns) == 0 {
		return nil
	}
	return r.posts(ctx).Where("id = ?", id).UpdateColumns(columns).Error
}

// UpdateTrendingScores recomputes every score inside one transaction
func (r *BlogPostRepo) UpdateTrendingScores(ctx context.Context) (int, error) {
	var swept int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var posts []models.BlogPost
		if err := tx.Select("id", "likes", "comments", "shares", "views", "trending_score", "created_at").
			Find(&posts).Error; err != nil {
			return err
		}

		now := r.now()
		for _, p := range posts {
			score := models.TrendingScore(p, now)
			if score == p.TrendingScore {
				continue
			}
			if err := tx.Model(&models.BlogPost{}).Where("id = ?", p.ID).
				UpdateColumn("trending_score", score).Error; err != nil {
				return err
			}
		}
		swept = len(posts)
		return nil
	})
	return swept, err
}
