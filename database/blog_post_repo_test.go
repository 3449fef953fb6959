package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rpupo63/chainblog-backend/models"
)

func TestBlogPostAddAssignsDistinctIDs(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database, _ *testClock) {
		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			p := addPost(t, db, models.InsertBlogPost{})
			assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
			seen[p.ID] = true
		}
	})
}

func TestBlogPostCreateFetchRoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database, _ *testClock) {
		ctx := context.Background()
		created := addPost(t, db, models.InsertBlogPost{
			Title:      "Rollups",
			Tags:       []string{"ethereum", "l2"},
			Category:   ptr("Web3"),
			CoverImage: ptr("https://img.example/rollups.png"),
		})

		got, err := db.BlogPostRepo().FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, "Rollups", got.Title)
		assert.Equal(t, []string{"ethereum", "l2"}, []string(got.Tags))
		assert.Equal(t, "Web3", *got.Category)
		assert.Equal(t, "https://img.example/rollups.png", *got.CoverImage)
		assert.True(t, got.IsPublished)
		assert.Equal(t, 1, got.ReadingTime)
		assert.Zero(t, got.Likes)
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

		missing, err := db.BlogPostRepo().FindByID(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestBlogPostIncrementViews(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database, _ *testClock) {
		ctx := context.Background()
		post := addPost(t, db, models.InsertBlogPost{})
		repo := db.BlogPostRepo()

		const n = 25
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, repo.IncrementViews(ctx, post.ID))
			}()
		}
		wg.Wait()

		got, err := repo.FindByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, n, got.Views)
		assert.Zero(t, got.Likes)

		assert.NoError(t, repo.IncrementViews(ctx, "missing"))
	})
}

func TestBlogPostFindAllFilters(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database, _ *testClock) {
		ctx := context.Background()
		defi := addPost(t, db, models.InsertBlogPost{Category: ptr("DeFi"), Tags: []string{"defi", "ethereum"}, Author: "0xaaa"})
		nft := addPost(t, db, models.InsertBlogPost{Category: ptr("NFTs"), Tags: []string{"nft"}, IsFeatured: true})
		plain := addPost(t, db, models.InsertBlogPost{Tags: []string{"web3"}, Author: "0xaaa"})
		repo := db.BlogPostRepo()

		tests := []struct {
			name string
			q    PostQuery
			want []string
		}{
			{"no filters newest first", PostQuery{}, []string{plain.ID, nft.ID, defi.ID}},
			{"category", PostQuery{Category: "DeFi"}, []string{defi.ID}},
			{"tags intersect", PostQuery{Tags: []string{"nft", "web3"}}, []string{plain.ID, nft.ID}},
			{"tag is exact", PostQuery{Tags: []string{"eth"}}, []string{}},
			{"author", PostQuery{Author: "0xaaa"}, []string{plain.ID, defi.ID}},
			{"featured", PostQuery{Featured: true}, []string{nft.ID}},
			{"combined", PostQuery{Author: "0xaaa", Tags: []string{"defi"}}, []string{defi.ID}},
			{"unknown category", PostQuery{Category: "Gaming"}, []string{}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := repo.FindAll(ctx, tt.q)
				require.NoError(t, err)
				assert.Equal(t, tt.want, ids(got))
			})
		}

		byCategory, err := repo.FindByCategory(ctx, "NFTs", 10)
		require.NoError(t, err)
		assert.Equal(t, []string{nft.ID}, ids(byCategory))

		byTag, err := repo.FindByTag(ctx, "ethereum", 10)
		require.NoError(t, err)
		assert.Equal(t, []string{defi.ID}, ids(byTag))

		byAuthor, err := repo.FindByAuthor(ctx, "0xaaa", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{plain.ID}, ids(byAuthor))
	})
}

func TestBlogPostPagination(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database, _ *testClock) {
		ctx := context.Background()
		var created []models.BlogPost
		for i := 0; i < 5; i++ {
			created = append(created, addPost(t, db, models.InsertBlogPost{}))
		}
		repo := db.BlogPostRepo()

		page, err := repo.FindAll(ctx, PostQuery{Limit: 2, Offset: 1})
		require.NoError(t, err)
		// newest first: created[4] is rank #1
		assert.Equal(t, []string{created[3].ID, created[2].ID}, ids(page))

		all, err := repo.FindAll(ctx, PostQuery{})
		require.NoError(t, err)
		assert.Len(t, all, 5)

		past, err := repo.FindAll(ctx, PostQuery{Offset: 10})
		require.NoError(t, err)
		assert.Empty(t, past)
	})
}

func TestBlogPostTrendingSweep(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database, clock *testClock) {
		ctx := context.Background()
		repo := db.BlogPostRepo()

		clock.Set(baseTime)
		hot := addPost(t, db, models.InsertBlogPost{Title: "hot"})
		cold := addPost(t, db, models.InsertBlogPost{Title: "cold"})

		require.NoError(t, repo.AdjustEngagement(ctx, hot.ID, models.Engagement{Likes: 10, Comments: 5, Shares: 2}))
		for i := 0; i < 1000; i++ {
			require.NoError(t, repo.IncrementViews(ctx, hot.ID))
		}

		clock.Set(hot.CreatedAt)
		swept, err := repo.UpdateTrendingScores(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, swept)

		got, err := repo.FindByID(ctx, hot.ID)
		require.NoError(t, err)
		assert.Equal(t, 36, got.TrendingScore)

		trending, err := repo.FindTrending(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{hot.ID}, ids(trending), "zero scores are not trending")

		aboveThreshold, err := repo.FindAll(ctx, PostQuery{Trending: true})
		require.NoError(t, err)
		assert.Empty(t, aboveThreshold)

		clock.Set(hot.CreatedAt.Add(30 * 24 * time.Hour))
		_, err = repo.UpdateTrendingScores(ctx)
		require.NoError(t, err)

		got, err = repo.FindByID(ctx, hot.ID)
		require.NoError(t, err)
		assert.Zero(t, got.TrendingScore)

		stillCold, err := repo.FindByID(ctx, cold.ID)
		require.NoError(t, err)
		assert.Zero(t, stillCold.TrendingScore)
	})
}

func TestBlogPostSearch(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database, _ *testClock) {
		ctx := context.Background()
		title := addPost(t, db, models.InsertBlogPost{Title: "Understanding DeFi Lending"})
		body := addPost(t, db, models.InsertBlogPost{Content: "how DEFI protocols settle"})
		tagged := addPost(t, db, models.InsertBlogPost{Tags: []string{"DeFi-Summer"}})
		addPost(t, db, models.InsertBlogPost{Title: "NFT art"})
		repo := db.BlogPostRepo()

		got, err := repo.Search(ctx, "defi", 20)
		require.NoError(t, err)
		assert.Equal(t, []string{tagged.ID, body.ID, title.ID}, ids(got))

		got, err = repo.Search(ctx, "DeFi", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{tagged.ID}, ids(got))

		got, err = repo.Search(ctx, "solana", 20)
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = repo.Search(ctx, "100%", 20)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestBlogPostFeaturedAndRecommend(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database, _ *testClock) {
		ctx := context.Background()
		repo := db.BlogPostRepo()
		featured := addPost(t, db, models.InsertBlogPost{IsFeatured: true})
		popular := addPost(t, db, models.InsertBlogPost{})
		draft := addPost(t, db, models.InsertBlogPost{IsPublished: ptr(false)})

		require.NoError(t, repo.AdjustEngagement(ctx, popular.ID, models.Engagement{Likes: 5}))
		require.NoError(t, repo.AdjustEngagement(ctx, draft.ID, models.Engagement{Likes: 50}))

		got, err := repo.FindFeatured(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{featured.ID}, ids(got))

		recommended, err := repo.Recommend(ctx, "ignored-user", 5)
		require.NoError(t, err)
		assert.Equal(t, []string{popular.ID, featured.ID}, ids(recommended))
	})
}

func TestBlogPostUpdateAndDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database, _ *testClock) {
		ctx := context.Background()
		repo := db.BlogPostRepo()
		post := addPost(t, db, models.InsertBlogPost{Title: "draft"})

		updated, err := repo.Update(ctx, post.ID, models.BlogPostPatch{Title: ptr("final"), Tags: &[]string{"defi"}})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "final", updated.Title)
		assert.Equal(t, []string{"defi"}, []string(updated.Tags))
		assert.True(t, updated.UpdatedAt.After(post.UpdatedAt))
		assert.True(t, updated.CreatedAt.Equal(post.CreatedAt))

		none, err := repo.Update(ctx, "missing", models.BlogPostPatch{Title: ptr("x")})
		require.NoError(t, err)
		assert.Nil(t, none)

		deleted, err := repo.Delete(ctx, post.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, post.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestBlogPostUpdateKeepsConcurrentCounters(t *testing.T) {
	sqlDB := newSQLiteDB(t)
	db := NewGorm(sqlDB, WithClock(newTestClock().Now))
	ctx := context.Background()
	post := addPost(t, db, models.InsertBlogPost{Title: "draft"})

	// a view lands after Update has read the row and before it writes
	bumped := false
	require.NoError(t, sqlDB.Callback().Update().Before("gorm:update").Register("test:view_mid_update", func(tx *gorm.DB) {
		if bumped || tx.Statement.Table != "blog_posts" {
			return
		}
		bumped = true
		require.NoError(t, tx.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE blog_posts SET views = views + 1 WHERE id = ?", post.ID).Error)
	}))

	updated, err := db.BlogPostRepo().Update(ctx, post.ID, models.BlogPostPatch{Title: ptr("final")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.True(t, bumped)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, 1, updated.Views)

	stored, err := db.BlogPostRepo().FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Views)
	assert.Equal(t, "final", stored.Title)
}

func TestBlogPostReadsDoNotAliasStoredFields(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database, _ *testClock) {
		ctx := context.Background()
		post := addPost(t, db, models.InsertBlogPost{Category: ptr("DeFi"), SEOTitle: ptr("seo")})

		got, err := db.BlogPostRepo().FindByID(ctx, post.ID)
		require.NoError(t, err)
		*got.Category = "NFTs"
		*got.SEOTitle = "changed"
		*post.Category = "Web3"

		again, err := db.BlogPostRepo().FindByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "DeFi", *again.Category)
		assert.Equal(t, "seo", *again.SEOTitle)
	})
}

func TestBlogPostEngagementNeverNegative(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database, _ *testClock) {
		ctx := context.Background()
		repo := db.BlogPostRepo()
		post := addPost(t, db, models.InsertBlogPost{})

		require.NoError(t, repo.AdjustEngagement(ctx, post.ID, models.Engagement{Likes: 1, Shares: 2}))
		require.NoError(t, repo.AdjustEngagement(ctx, post.ID, models.Engagement{Likes: -3, Comments: -1, Shares: -1}))

		got, err := repo.FindByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Zero(t, got.Likes)
		assert.Zero(t, got.Comments)
		assert.Equal(t, 1, got.Shares)
	})
}

func TestBlogPostFindByCreator(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database, _ *testClock) {
		ctx := context.Background()
		byID := addPost(t, db, models.InsertBlogPost{AuthorID: ptr("user-1"), Author: "0xother"})
		byWallet := addPost(t, db, models.InsertBlogPost{Author: "0xABCDEF"})
		addPost(t, db, models.InsertBlogPost{Author: "0xsomeone"})

		got, err := db.BlogPostRepo().FindByCreator(ctx, "user-1", "0xabcdef")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{byID.ID, byWallet.ID}, ids(got))
	})
}
