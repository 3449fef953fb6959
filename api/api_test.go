package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/chainblog-backend/config"
	"github.com/rpupo63/chainblog-backend/database"
	"github.com/rpupo63/chainblog-backend/models"
	"github.com/rpupo63/chainblog-backend/services"
)

const testWallet = "0x742d35Cc6634C0532925a3b8D4C9db96C4b4d8b6"

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type testAPI struct {
	t      *testing.T
	router http.Handler
	db     database.Database
}

func newTestAPI(t *testing.T, env map[string]string) *testAPI {
	t.Helper()
	clock := func() time.Time { return baseTime }
	db := database.NewMemory(database.WithClock(clock))
	blog := services.NewBlog(db, services.WithClock(clock))
	return &testAPI{
		t:      t,
		router: NewRouter(config.Load(env), blog, baseTime),
		db:     db,
	}
}

func (a *testAPI) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (a *testAPI) createPost(title string, mutate ...func(*models.InsertBlogPost)) services.CreatedPost {
	a.t.Helper()
	in := models.InsertBlogPost{
		Title:   title,
		Content: "Layer two networks settle on Ethereum",
		Excerpt: "Layer two networks",
		Author:  testWallet,
		ChainID: "8453",
		Tags:    []string{"ethereum"},
	}
	for _, m := range mutate {
		m(&in)
	}
	rec := a.do(http.MethodPost, "/api/blog-posts", in)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[services.CreatedPost](a.t, rec)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, nil)
	rec := api.do(http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[HealthResponse](t, rec)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "memory", health.Database)
	assert.Equal(t, "disabled", health.Cache)
}

func TestMetricsEndpoint(t *testing.T) {
	api := newTestAPI(t, nil)
	api.do(http.MethodGet, "/api/blog-posts", nil)

	rec := api.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chainblog_http_requests_total")
	assert.Contains(t, rec.Body.String(), `route="/api/blog-posts`)
}

func TestCreateAndFetchBlogPost(t *testing.T) {
	api := newTestAPI(t, nil)
	created := api.createPost("Base in practice")

	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.TransactionHash)
	require.Len(t, created.Publications, 1)
	assert.Equal(t, "Base", created.Publications[0].ChainName)
	assert.Equal(t, 1, created.ReadingTime)
	assert.Equal(t, "application/json; charset=utf-8", api.do(http.MethodGet, "/api/blog-posts", nil).Header().Get("Content-Type"))

	first := api.do(http.MethodGet, "/api/blog-posts/"+created.ID, nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 0, decode[models.BlogPost](t, first).Views)

	second := api.do(http.MethodGet, "/api/blog-posts/"+created.ID, nil)
	assert.Equal(t, 1, decode[models.BlogPost](t, second).Views)
}

func TestCreateBlogPostOnSeveralChains(t *testing.T) {
	api := newTestAPI(t, nil)
	in := models.InsertBlogPost{
		Title: "Everywhere", Content: "c", Excerpt: "e", Author: testWallet, ChainID: "1",
	}
	rec := api.do(http.MethodPost, "/api/blog-posts?chains=1,137,999", in)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[services.CreatedPost](t, rec)
	require.Len(t, created.Publications, 3)
	assert.Equal(t, "Polygon", created.Publications[1].ChainName)
	assert.Equal(t, "unsupported chain", created.Publications[2].Error)
}

func TestCreateBlogPostValidation(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(http.MethodPost, "/api/blog-posts", map[string]any{"title": "No content"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[ErrorResponse](t, rec)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "author", body.Field)

	req := httptest.NewRequest(http.MethodPost, "/api/blog-posts", bytes.NewBufferString("{not json"))
	raw := httptest.NewRecorder()
	api.router.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)
}

func TestGetMissingBlogPost(t *testing.T) {
	api := newTestAPI(t, nil)
	rec := api.do(http.MethodGet, "/api/blog-posts/does-not-exist", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Blog post not found", decode[ErrorResponse](t, rec).Error)
}

func TestListBlogPostsFiltersAndPaginates(t *testing.T) {
	api := newTestAPI(t, nil)
	for _, title := range []string{"one", "two", "three"} {
		api.createPost(title, func(in *models.InsertBlogPost) {
			if title == "two" {
				in.Tags = []string{"nft"}
				in.IsFeatured = true
			}
		})
	}

	rec := api.do(http.MethodGet, "/api/blog-posts?tags=nft,defi", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	posts := decode[[]models.BlogPost](t, rec)
	require.Len(t, posts, 1)
	assert.Equal(t, "two", posts[0].Title)

	rec = api.do(http.MethodGet, "/api/blog-posts?featured=true", nil)
	assert.Len(t, decode[[]models.BlogPost](t, rec), 1)

	rec = api.do(http.MethodGet, "/api/blog-posts?limit=1&offset=1", nil)
	assert.Len(t, decode[[]models.BlogPost](t, rec), 1)

	rec = api.do(http.MethodGet, "/api/blog-posts?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "limit", decode[ErrorResponse](t, rec).Field)
}

func TestSearchRequiresQuery(t *testing.T) {
	api := newTestAPI(t, nil)
	api.createPost("Zero knowledge proofs")

	rec := api.do(http.MethodGet, "/api/blog-posts/search", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Search query is required", decode[ErrorResponse](t, rec).Error)

	rec = api.do(http.MethodGet, "/api/blog-posts/search?q=KNOWLEDGE", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.BlogPost](t, rec), 1)

	rec = api.do(http.MethodGet, "/api/blog-posts/search?q=nothing-matches", nil)
	assert.Empty(t, decode[[]models.BlogPost](t, rec))
}

func TestPostsByAuthorCategoryAndTag(t *testing.T) {
	api := newTestAPI(t, nil)
	api.createPost("Categorised", func(in *models.InsertBlogPost) { in.Category = ptr("DeFi") })

	rec := api.do(http.MethodGet, "/api/blog-posts/author/"+testWallet, nil)
	assert.Len(t, decode[[]models.BlogPost](t, rec), 1)

	rec = api.do(http.MethodGet, "/api/blog-posts/category/DeFi", nil)
	assert.Len(t, decode[[]models.BlogPost](t, rec), 1)

	rec = api.do(http.MethodGet, "/api/blog-posts/tag/ethereum?limit=5", nil)
	assert.Len(t, decode[[]models.BlogPost](t, rec), 1)

	rec = api.do(http.MethodGet, "/api/blog-posts/tag/solana", nil)
	assert.Empty(t, decode[[]models.BlogPost](t, rec))
}

func TestUpdateShareAndDeleteBlogPost(t *testing.T) {
	api := newTestAPI(t, nil)
	created := api.createPost("Draft")

	rec := api.do(http.MethodPut, "/api/blog-posts/"+created.ID, map[string]any{"title": "Final"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Final", decode[models.BlogPost](t, rec).Title)

	rec = api.do(http.MethodPost, "/api/blog-posts/"+created.ID+"/share", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[models.BlogPost](t, rec).Shares)

	rec = api.do(http.MethodDelete, "/api/blog-posts/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Blog post deleted successfully", decode[MessageResponse](t, rec).Message)

	rec = api.do(http.MethodDelete, "/api/blog-posts/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = api.do(http.MethodPut, "/api/blog-posts/"+created.ID, map[string]any{"title": "Gone"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoriesAndTags(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(http.MethodPost, "/api/categories", models.InsertCategory{Name: "Web3"})
	require.Equal(t, http.StatusCreated, rec.Code)
	category := decode[models.Category](t, rec)
	assert.Equal(t, "web3", category.Slug)

	rec = api.do(http.MethodPost, "/api/categories", models.InsertCategory{Name: "Web3"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodPut, "/api/categories/"+category.ID, map[string]any{"color": "#10B981"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "#10B981", decode[models.Category](t, rec).Color)

	rec = api.do(http.MethodGet, "/api/categories/"+category.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(http.MethodGet, "/api/categories/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/api/categories", nil)
	assert.Len(t, decode[[]models.Category](t, rec), 1)

	for _, name := range []string{"ethereum", "nft"} {
		rec = api.do(http.MethodPost, "/api/tags", models.InsertTag{Name: name})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	api.createPost("Tagged")

	rec = api.do(http.MethodGet, "/api/tags/trending?limit=1", nil)
	tags := decode[[]models.Tag](t, rec)
	require.Len(t, tags, 1)
	assert.Equal(t, "ethereum", tags[0].Name)
	assert.Equal(t, 1, tags[0].PostCount)

	rec = api.do(http.MethodGet, "/api/tags", nil)
	assert.Len(t, decode[[]models.Tag](t, rec), 2)
}

func TestTaxonomyBySlug(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(http.MethodPost, "/api/categories", models.InsertCategory{Name: "Layer 2"})
	require.Equal(t, http.StatusCreated, rec.Code)
	category := decode[models.Category](t, rec)

	rec = api.do(http.MethodGet, "/api/categories/slug/layer-2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, category.ID, decode[models.Category](t, rec).ID)

	rec = api.do(http.MethodGet, "/api/categories/slug/layer-3", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Category not found", decode[ErrorResponse](t, rec).Error)

	rec = api.do(http.MethodPost, "/api/tags", models.InsertTag{Name: "Zero Knowledge"})
	require.Equal(t, http.StatusCreated, rec.Code)
	tag := decode[models.Tag](t, rec)

	rec = api.do(http.MethodGet, "/api/tags/slug/zero-knowledge", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tag.ID, decode[models.Tag](t, rec).ID)

	rec = api.do(http.MethodGet, "/api/tags/slug/rollups", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Tag not found", decode[ErrorResponse](t, rec).Error)
}

func TestSupportedChains(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(http.MethodGet, "/api/chains", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	chains := decode[[]services.Chain](t, rec)
	assert.Equal(t, services.SupportedChains(), chains)
	assert.Contains(t, chains, services.Chain{ID: "8453", Name: "Base", Explorer: "https://basescan.org"})
}

func TestZeroLimitReturnsNothing(t *testing.T) {
	api := newTestAPI(t, nil)
	api.createPost("Rollups", func(in *models.InsertBlogPost) {
		in.Category = ptr("Layer 2")
		in.IsFeatured = true
	})
	api.createPost("Bridges", func(in *models.InsertBlogPost) { in.Category = ptr("Layer 2") })

	paths := []string{
		"/api/blog-posts/trending?limit=0",
		"/api/blog-posts/featured?limit=0",
		"/api/blog-posts/search?q=layer&limit=0",
		"/api/blog-posts/category/Layer%202?limit=0",
		"/api/blog-posts/tag/ethereum?limit=0",
		"/api/recommendations?limit=0",
		"/api/tags/trending?limit=0",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := api.do(http.MethodGet, path, nil)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, "[]", rec.Body.String())
		})
	}

	rec := api.do(http.MethodGet, "/api/blog-posts/category/Layer%202", nil)
	assert.Len(t, decode[[]models.BlogPost](t, rec), 2)
	rec = api.do(http.MethodGet, "/api/blog-posts?limit=0", nil)
	assert.Len(t, decode[[]models.BlogPost](t, rec), 2)
}

func TestCommentsUseConnectedWallet(t *testing.T) {
	api := newTestAPI(t, nil)
	post := api.createPost("Discuss")

	rec := api.do(http.MethodPost, "/api/comments",
		map[string]any{"postId": post.ID, "content": "gm"},
		walletAddressHeader, testWallet)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	comment := decode[models.Comment](t, rec)
	assert.Equal(t, testWallet, comment.AuthorWallet)

	rec = api.do(http.MethodGet, "/api/comments/post/"+post.ID, nil)
	assert.Len(t, decode[[]models.Comment](t, rec), 1)

	rec = api.do(http.MethodPut, "/api/comments/"+comment.ID, map[string]any{"isHighlighted": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.Comment](t, rec).IsHighlighted)

	rec = api.do(http.MethodDelete, "/api/comments/"+comment.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMalformedWalletHeaderRejected(t *testing.T) {
	api := newTestAPI(t, nil)
	rec := api.do(http.MethodGet, "/api/blog-posts", nil, walletAddressHeader, "not-a-wallet")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, walletAddressHeader, decode[ErrorResponse](t, rec).Field)
}

func TestLikeTwiceConflicts(t *testing.T) {
	api := newTestAPI(t, nil)
	post := api.createPost("Like me")
	body := map[string]any{"postId": post.ID}

	rec := api.do(http.MethodPost, "/api/likes", body, walletAddressHeader, testWallet)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	like := decode[models.Like](t, rec)

	rec = api.do(http.MethodPost, "/api/likes", body, walletAddressHeader, testWallet)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Already liked", decode[ErrorResponse](t, rec).Error)

	rec = api.do(http.MethodGet, "/api/likes/post/"+post.ID, nil)
	assert.Len(t, decode[[]models.Like](t, rec), 1)

	rec = api.do(http.MethodDelete, "/api/likes/"+like.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(http.MethodGet, "/api/likes/post/"+post.ID, nil)
	assert.Empty(t, decode[[]models.Like](t, rec))
}

func TestUsersAndFollows(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(http.MethodPost, "/api/users", map[string]any{
		"username": "alice", "password": "hunter22", "walletAddress": testWallet,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "hunter22")
	assert.NotContains(t, rec.Body.String(), "password")
	alice := decode[models.User](t, rec)

	rec = api.do(http.MethodPost, "/api/users", map[string]any{"username": "bob", "password": "hunter23"})
	require.Equal(t, http.StatusCreated, rec.Code)
	bob := decode[models.User](t, rec)

	rec = api.do(http.MethodPost, "/api/users", map[string]any{"username": "bob", "password": "hunter23"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodGet, "/api/users/wallet/"+testWallet, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, alice.ID, decode[models.User](t, rec).ID)

	rec = api.do(http.MethodPut, "/api/users/"+alice.ID, map[string]any{"bio": "builder"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "builder", *decode[models.User](t, rec).Bio)

	rec = api.do(http.MethodPost, "/api/follows", models.InsertFollow{FollowerID: alice.ID, FollowingID: alice.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/follows", models.InsertFollow{FollowerID: alice.ID, FollowingID: bob.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	follow := decode[models.Follow](t, rec)

	rec = api.do(http.MethodPost, "/api/follows", models.InsertFollow{FollowerID: alice.ID, FollowingID: bob.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = api.do(http.MethodGet, "/api/users/"+bob.ID+"/followers", nil)
	assert.Len(t, decode[[]models.Follow](t, rec), 1)
	rec = api.do(http.MethodGet, "/api/users/"+alice.ID+"/following", nil)
	assert.Len(t, decode[[]models.Follow](t, rec), 1)

	rec = api.do(http.MethodGet, "/api/users/"+bob.ID, nil)
	assert.Equal(t, 1, decode[models.User](t, rec).Followers)

	rec = api.do(http.MethodDelete, "/api/follows/"+follow.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = api.do(http.MethodGet, "/api/users/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecommendationsAndLists(t *testing.T) {
	api := newTestAPI(t, nil)
	for _, title := range []string{"a", "b", "c", "d", "e", "f"} {
		api.createPost(title, func(in *models.InsertBlogPost) { in.IsFeatured = true })
	}

	rec := api.do(http.MethodGet, "/api/recommendations?userId=u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.BlogPost](t, rec), 5)

	rec = api.do(http.MethodGet, "/api/blog-posts/featured?limit=2", nil)
	assert.Len(t, decode[[]models.BlogPost](t, rec), 2)

	rec = api.do(http.MethodGet, "/api/blog-posts/trending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.BlogPost](t, rec), "no post has been scored yet")
}

func TestAnalytics(t *testing.T) {
	api := newTestAPI(t, nil)
	rec := api.do(http.MethodPost, "/api/users", map[string]any{
		"username": "creator", "password": "hunter22", "walletAddress": testWallet,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	user := decode[models.User](t, rec)
	post := api.createPost("Mine")
	api.do(http.MethodGet, "/api/blog-posts/"+post.ID, nil)

	rec = api.do(http.MethodGet, "/api/analytics/creator/"+user.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snapshot := decode[models.UserAnalytics](t, rec)
	assert.Equal(t, 1, snapshot.TotalViews)
	assert.Equal(t, []string{post.ID}, []string(snapshot.TopPosts))

	rec = api.do(http.MethodPost, "/api/analytics/earnings", map[string]any{"userId": user.ID, "amount": "1000000000000000000"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "1000000000000000000", decode[models.UserAnalytics](t, rec).TotalEarnings.String())

	rec = api.do(http.MethodPost, "/api/analytics/earnings", map[string]any{"userId": user.ID, "amount": "0"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/analytics/creator/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTrending(t *testing.T) {
	t.Run("open without admin token", func(t *testing.T) {
		api := newTestAPI(t, nil)
		post := api.createPost("Hot")
		require.NoError(t, api.db.BlogPostRepo().AdjustEngagement(context.Background(), post.ID,
			models.Engagement{Likes: 10, Comments: 5, Shares: 2}))

		rec := api.do(http.MethodPost, "/api/analytics/update-trending", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Trending scores updated successfully", decode[MessageResponse](t, rec).Message)

		stored, err := api.db.BlogPostRepo().FindByID(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Equal(t, 26, stored.TrendingScore)
	})

	t.Run("admin token enforced", func(t *testing.T) {
		api := newTestAPI(t, map[string]string{"ADMIN_TOKEN": "s3cret"})

		rec := api.do(http.MethodPost, "/api/analytics/update-trending", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = api.do(http.MethodPost, "/api/analytics/update-trending", nil, adminTokenHeader, "wrong")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = api.do(http.MethodPost, "/api/analytics/update-trending", nil, adminTokenHeader, "s3cret")
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = api.do(http.MethodPost, "/api/analytics/update-trending", nil, "Authorization", "Bearer s3cret")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCORSPreflight(t *testing.T) {
	api := newTestAPI(t, map[string]string{"ACCEPTED_ORIGINS": "https://chainblog.xyz"})

	rec := api.do(http.MethodOptions, "/api/blog-posts", nil,
		"Origin", "https://chainblog.xyz",
		"Access-Control-Request-Method", "POST")
	assert.Equal(t, "https://chainblog.xyz", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = api.do(http.MethodOptions, "/api/blog-posts", nil,
		"Origin", "https://evil.example",
		"Access-Control-Request-Method", "POST")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPanicsBecome500(t *testing.T) {
	handler := LogInternalServerErrors(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", decode[ErrorResponse](t, rec).Status)
}

func ptr[T any](v T) *T { return &v }
