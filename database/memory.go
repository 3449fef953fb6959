package database

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rpupo63/chainblog-backend/models"
)

// memTable is a map guarded by its own lock. Rows are cloned on the way in and out.
type memTable[T any] struct {
	mu    sync.RWMutex
	rows  map[string]T
	clone func(T) T
}

func newMemTable[T any](clone func(T) T) *memTable[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &memTable[T]{rows: make(map[string]T), clone: clone}
}

func (t *memTable[T]) get(id string) *T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return nil
	}
	out := t.clone(row)
	return &out
}

// findLocked expects the caller to hold the lock
func (t *memTable[T]) findLocked(keep func(T) bool) *T {
	for _, row := range t.rows {
		if keep(row) {
			out := t.clone(row)
			return &out
		}
	}
	return nil
}

func (t *memTable[T]) find(keep func(T) bool) *T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.findLocked(keep)
}

func (t *memTable[T]) scan(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if keep == nil || keep(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

func (t *memTable[T]) insert(id string, row T) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[id] = t.clone(row)
	return t.clone(row)
}

// update runs fn on the stored row under the write lock and returns a copy of the result
func (t *memTable[T]) update(id string, fn func(*T)) *T {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		return nil
	}
	fn(&row)
	t.rows[id] = row
	out := t.clone(row)
	return &out
}

func (t *memTable[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// Blog posts

type memBlogPostRepo struct {
	table *memTable[models.BlogPost]
	now   func() time.Time
}

func newMemBlogPostRepo(now func() time.Time) *memBlogPostRepo {
	return &memBlogPostRepo{table: newMemTable(models.BlogPost.Clone), now: now}
}

func (r *memBlogPostRepo) FindAll(_ context.Context, q PostQuery) ([]models.BlogPost, error) {
	posts := r.table.scan(q.Matches)
	sortPosts(posts, q.Trending)
	return paginate(posts, q.Offset, q.Limit), nil
}

func (r *memBlogPostRepo) FindByID(_ context.Context, id string) (*models.BlogPost, error) {
	return r.table.get(id), nil
}

func (r *memBlogPostRepo) newest(keep func(models.BlogPost) bool, limit int) []models.BlogPost {
	posts := r.table.scan(keep)
	slices.SortFunc(posts, newestFirst)
	return paginate(posts, 0, limit)
}

func (r *memBlogPostRepo) FindByAuthor(_ context.Context, author string, limit int) ([]models.BlogPost, error) {
	return r.newest(func(p models.BlogPost) bool { return p.Author == author }, limit), nil
}

func (r *memBlogPostRepo) FindByCategory(_ context.Context, category string, limit int) ([]models.BlogPost, error) {
	return r.newest(func(p models.BlogPost) bool { return p.InCategory(category) }, limit), nil
}

func (r *memBlogPostRepo) FindByTag(_ context.Context, tag string, limit int) ([]models.BlogPost, error) {
	return r.newest(func(p models.BlogPost) bool { return p.HasTag(tag) }, limit), nil
}

func (r *memBlogPostRepo) FindByCreator(_ context.Context, userID, wallet string) ([]models.BlogPost, error) {
	return r.newest(byCreator(userID, wallet), 0), nil
}

func (r *memBlogPostRepo) FindTrending(_ context.Context, limit int) ([]models.BlogPost, error) {
	posts := r.table.scan(func(p models.BlogPost) bool { return p.TrendingScore > 0 })
	slices.SortFunc(posts, highestTrendingFirst)
	return paginate(posts, 0, limit), nil
}

func (r *memBlogPostRepo) FindFeatured(_ context.Context, limit int) ([]models.BlogPost, error) {
	return r.newest(func(p models.BlogPost) bool { return p.IsFeatured }, limit), nil
}

func (r *memBlogPostRepo) Search(_ context.Context, query string, limit int) ([]models.BlogPost, error) {
	needle := strings.ToLower(query)
	return r.newest(func(p models.BlogPost) bool { return matchesSearch(p, needle) }, limit), nil
}

func (r *memBlogPostRepo) Recommend(_ context.Context, _ string, limit int) ([]models.BlogPost, error) {
	posts := r.table.scan(func(p models.BlogPost) bool { return p.IsPublished })
	slices.SortFunc(posts, highestRecommendationFirst)
	return paginate(posts, 0, limit), nil
}

func (r *memBlogPostRepo) Add(_ context.Context, in models.InsertBlogPost) (models.BlogPost, error) {
	post := in.Build(uuid.NewString(), r.now())
	return r.table.insert(post.ID, post), nil
}

func (r *memBlogPostRepo) Update(_ context.Context, id string, patch models.BlogPostPatch) (*models.BlogPost, error) {
	now := r.now()
	return r.table.update(id, func(p *models.BlogPost) { patch.Apply(p, now) }), nil
}

func (r *memBlogPostRepo) Delete(_ context.Context, id string) (bool, error) {
	return r.table.remove(id), nil
}

func (r *memBlogPostRepo) IncrementViews(_ context.Context, id string) error {
	r.table.update(id, func(p *models.BlogPost) { p.Views++ })
	return nil
}

func (r *memBlogPostRepo) AdjustEngagement(_ context.Context, id string, delta models.Engagement) error {
	r.table.update(id, func(p *models.BlogPost) {
		p.Likes = clampAdd(p.Likes, delta.Likes)
		p.Comments = clampAdd(p.Comments, delta.Comments)
		p.Shares = clampAdd(p.Shares, delta.Shares)
	})
	return nil
}

func (r *memBlogPostRepo) UpdateTrendingScores(_ context.Context) (int, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	now := r.now()
	for id, p := range r.table.rows {
		p.TrendingScore = models.TrendingScore(p, now)
		r.table.rows[id] = p
	}
	return len(r.table.rows), nil
}

// Categories

type memCategoryRepo struct {
	table *memTable[models.Category]
	now   func() time.Time
}

func (r *memCategoryRepo) All(_ context.Context) ([]models.Category, error) {
	categories := r.table.scan(nil)
	slices.SortFunc(categories, categoriesByName)
	return categories, nil
}

func (r *memCategoryRepo) FindByID(_ context.Context, id string) (*models.Category, error) {
	return r.table.get(id), nil
}

func (r *memCategoryRepo) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	return r.table.find(func(c models.Category) bool { return c.Slug == slug }), nil
}

func (r *memCategoryRepo) Add(_ context.Context, in models.InsertCategory) (models.Category, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	if r.table.findLocked(func(c models.Category) bool { return c.Name == in.Name || c.Slug == in.Slug }) != nil {
		return models.Category{}, ErrNameTaken
	}
	category := in.Build(uuid.NewString(), r.now())
	r.table.rows[category.ID] = category
	return category, nil
}

func (r *memCategoryRepo) Update(_ context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	category, ok := r.table.rows[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&category)
	clash := r.table.findLocked(func(c models.Category) bool {
		return c.ID != id && (c.Name == category.Name || c.Slug == category.Slug)
	})
	if clash != nil {
		return nil, ErrNameTaken
	}
	r.table.rows[id] = category
	return &category, nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id string) (bool, error) {
	return r.table.remove(id), nil
}

func (r *memCategoryRepo) AdjustPostCount(_ context.Context, name string, delta int) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()
	for id, c := range r.table.rows {
		if c.Name == name {
			c.PostCount = clampAdd(c.PostCount, delta)
			r.table.rows[id] = c
		}
	}
	return nil
}

// Tags

type memTagRepo struct {
	table *memTable[models.Tag]
	now   func() time.Time
}

func (r *memTagRepo) All(_ context.Context) ([]models.Tag, error) {
	tags := r.table.scan(nil)
	slices.SortFunc(tags, tagsByPostCount)
	return tags, nil
}

func (r *memTagRepo) Trending(ctx context.Context, limit int) ([]models.Tag, error) {
	tags, _ := r.All(ctx)
	return paginate(tags, 0, limit), nil
}

func (r *memTagRepo) FindByID(_ context.Context, id string) (*models.Tag, error) {
	return r.table.get(id), nil
}

func (r *memTagRepo) FindBySlug(_ context.Context, slug string) (*models.Tag, error) {
	return r.table.find(func(t models.Tag) bool { return t.Slug == slug }), nil
}

func (r *memTagRepo) Add(_ context.Context, in models.InsertTag) (models.Tag, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	if r.table.findLocked(func(t models.Tag) bool { return t.Name == in.Name || t.Slug == in.Slug }) != nil {
		return models.Tag{}, ErrNameTaken
	}
	tag := in.Build(uuid.NewString(), r.now())
	r.table.rows[tag.ID] = tag
	return tag, nil
}

func (r *memTagRepo) Update(_ context.Context, id string, patch models.TagPatch) (*models.Tag, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	tag, ok := r.table.rows[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&tag)
	clash := r.table.findLocked(func(t models.Tag) bool {
		return t.ID != id && (t.Name == tag.Name || t.Slug == tag.Slug)
	})
	if clash != nil {
		return nil, ErrNameTaken
	}
	r.table.rows[id] = tag
	return &tag, nil
}

func (r *memTagRepo) Delete(_ context.Context, id string) (bool, error) {
	return r.table.remove(id), nil
}

func (r *memTagRepo) AdjustPostCount(_ context.Context, name string, delta int) error {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()
	for id, t := range r.table.rows {
		if t.Name == name {
			t.PostCount = clampAdd(t.PostCount, delta)
			r.table.rows[id] = t
		}
	}
	return nil
}

// Comments

type memCommentRepo struct {
	table *memTable[models.Comment]
	now   func() time.Time
}

func (r *memCommentRepo) FindByPost(_ context.Context, postID string) ([]models.Comment, error) {
	comments := r.table.scan(func(c models.Comment) bool { return c.PostID == postID })
	slices.SortFunc(comments, commentsNewestFirst)
	return comments, nil
}

func (r *memCommentRepo) FindByID(_ context.Context, id string) (*models.Comment, error) {
	return r.table.get(id), nil
}

func (r *memCommentRepo) Add(_ context.Context, in models.InsertComment) (models.Comment, error) {
	comment := in.Build(uuid.NewString(), r.now())
	return r.table.insert(comment.ID, comment), nil
}

func (r *memCommentRepo) Update(_ context.Context, id string, patch models.CommentPatch) (*models.Comment, error) {
	now := r.now()
	return r.table.update(id, func(c *models.Comment) { patch.Apply(c, now) }), nil
}

func (r *memCommentRepo) Delete(_ context.Context, id string) (bool, error) {
	return r.table.remove(id), nil
}

func (r *memCommentRepo) AdjustLikes(_ context.Context, id string, delta int) error {
	r.table.update(id, func(c *models.Comment) { c.Likes = clampAdd(c.Likes, delta) })
	return nil
}

// Likes

type memLikeRepo struct {
	table *memTable[models.Like]
	now   func() time.Time
}

func (r *memLikeRepo) FindLike(_ context.Context, q models.LikeQuery) (*models.Like, error) {
	return r.table.find(q.Matches), nil
}

func (r *memLikeRepo) FindByID(_ context.Context, id string) (*models.Like, error) {
	return r.table.get(id), nil
}

func (r *memLikeRepo) FindByPost(_ context.Context, postID string) ([]models.Like, error) {
	likes := r.table.scan(models.LikeQuery{PostID: postID}.Matches)
	slices.SortFunc(likes, likesOldestFirst)
	return likes, nil
}

func (r *memLikeRepo) Add(_ context.Context, in models.InsertLike) (models.Like, error) {
	like := in.Build(uuid.NewString(), r.now())
	return r.table.insert(like.ID, like), nil
}

func (r *memLikeRepo) FindOrAdd(_ context.Context, in models.InsertLike) (models.Like, bool, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	if existing := r.table.findLocked(in.Identity().Matches); existing != nil {
		return *existing, false, nil
	}
	like := in.Build(uuid.NewString(), r.now())
	r.table.rows[like.ID] = like
	return like, true, nil
}

func (r *memLikeRepo) Delete(_ context.Context, id string) (bool, error) {
	return r.table.remove(id), nil
}

// Follows

type memFollowRepo struct {
	table *memTable[models.Follow]
	now   func() time.Time
}

func (r *memFollowRepo) FindByID(_ context.Context, id string) (*models.Follow, error) {
	return r.table.get(id), nil
}

func (r *memFollowRepo) Find(_ context.Context, followerID, followingID string) (*models.Follow, error) {
	return r.table.find(func(f models.Follow) bool {
		return f.FollowerID == followerID && f.FollowingID == followingID
	}), nil
}

func (r *memFollowRepo) Followers(_ context.Context, userID string) ([]models.Follow, error) {
	follows := r.table.scan(func(f models.Follow) bool { return f.FollowingID == userID })
	slices.SortFunc(follows, followsOldestFirst)
	return follows, nil
}

func (r *memFollowRepo) Following(_ context.Context, userID string) ([]models.Follow, error) {
	follows := r.table.scan(func(f models.Follow) bool { return f.FollowerID == userID })
	slices.SortFunc(follows, followsOldestFirst)
	return follows, nil
}

func (r *memFollowRepo) FindOrAdd(_ context.Context, in models.InsertFollow) (models.Follow, bool, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	existing := r.table.findLocked(func(f models.Follow) bool {
		return f.FollowerID == in.FollowerID && f.FollowingID == in.FollowingID
	})
	if existing != nil {
		return *existing, false, nil
	}
	follow := in.Build(uuid.NewString(), r.now())
	r.table.rows[follow.ID] = follow
	return follow, true, nil
}

func (r *memFollowRepo) Delete(_ context.Context, id string) (bool, error) {
	return r.table.remove(id), nil
}

// Users

type memUserRepo struct {
	table *memTable[models.User]
	now   func() time.Time
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	return r.table.get(id), nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return r.table.find(func(u models.User) bool { return u.Username == username }), nil
}

func (r *memUserRepo) FindByWallet(_ context.Context, wallet string) (*models.User, error) {
	return r.table.find(func(u models.User) bool {
		return u.WalletAddress != nil && strings.EqualFold(*u.WalletAddress, wallet)
	}), nil
}

func (r *memUserRepo) Add(_ context.Context, in models.InsertUser) (models.User, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	if r.table.findLocked(func(u models.User) bool { return u.Username == in.Username }) != nil {
		return models.User{}, ErrUsernameTaken
	}
	user := in.Build(uuid.NewString(), r.now())
	r.table.rows[user.ID] = user
	return user, nil
}

func (r *memUserRepo) Update(_ context.Context, id string, patch models.UserPatch) (*models.User, error) {
	now := r.now()
	return r.table.update(id, func(u *models.User) { patch.Apply(u, now) }), nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) (bool, error) {
	return r.table.remove(id), nil
}

func (r *memUserRepo) AdjustCounters(_ context.Context, id string, delta models.UserCounters) error {
	r.table.update(id, func(u *models.User) {
		u.TotalPosts = clampAdd(u.TotalPosts, delta.TotalPosts)
		u.TotalLikes = clampAdd(u.TotalLikes, delta.TotalLikes)
		u.Followers = clampAdd(u.Followers, delta.Followers)
		u.Following = clampAdd(u.Following, delta.Following)
	})
	return nil
}

// User analytics

type memUserAnalyticsRepo struct {
	table *memTable[models.UserAnalytics]
	now   func() time.Time
}

func (r *memUserAnalyticsRepo) findLocked(userID string) (models.UserAnalytics, bool) {
	for _, a := range r.table.rows {
		if a.UserID == userID {
			return a, true
		}
	}
	return models.UserAnalytics{}, false
}

func (r *memUserAnalyticsRepo) blank(userID string, now time.Time) models.UserAnalytics {
	return models.UserAnalytics{
		ID:              uuid.NewString(),
		UserID:          userID,
		TotalEarnings:   decimal.Zero,
		MonthlyViews:    map[string]int{},
		MonthlyEarnings: map[string]decimal.Decimal{},
		TopPosts:        []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (r *memUserAnalyticsRepo) FindByUserID(_ context.Context, userID string) (*models.UserAnalytics, error) {
	return r.table.find(func(a models.UserAnalytics) bool { return a.UserID == userID }), nil
}

func (r *memUserAnalyticsRepo) Upsert(_ context.Context, snapshot models.UserAnalytics) (models.UserAnalytics, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	now := r.now()
	current, ok := r.findLocked(snapshot.UserID)
	if !ok {
		current = r.blank(snapshot.UserID, now)
	}
	current.TotalViews = snapshot.TotalViews
	current.TotalLikes = snapshot.TotalLikes
	current.TotalComments = snapshot.TotalComments
	current.TotalShares = snapshot.TotalShares
	current.MonthlyViews = snapshot.MonthlyViews
	current.TopPosts = snapshot.TopPosts
	current.UpdatedAt = now

	r.table.rows[current.ID] = current.Clone()
	return current.Clone(), nil
}

func (r *memUserAnalyticsRepo) RecordEarnings(_ context.Context, userID string, amount decimal.Decimal, at time.Time) (models.UserAnalytics, error) {
	r.table.mu.Lock()
	defer r.table.mu.Unlock()

	now := r.now()
	current, ok := r.findLocked(userID)
	if !ok {
		current = r.blank(userID, now)
	}
	current = current.Clone()
	current.AddEarnings(amount, at)
	current.UpdatedAt = now

	r.table.rows[current.ID] = current
	return current.Clone(), nil
}
