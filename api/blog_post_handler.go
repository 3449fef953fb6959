package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/chainblog-backend/database"
	"github.com/rpupo63/chainblog-backend/errs"
	"github.com/rpupo63/chainblog-backend/models"
	"github.com/rpupo63/chainblog-backend/services"
)

const (
	defaultListLimit           = 10
	defaultSearchLimit         = 20
	defaultRecommendationLimit = 5
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blog         *services.Blog
	blogPostRepo database.BlogPostRepository
}

func newBlogPostHandler(blog *services.Blog) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blog:         blog,
		blogPostRepo: blog.DB().BlogPostRepo(),
	}
}

// getAllBlogPosts lists posts newest first
// @Summary List blog posts
// @Tags Blog Posts
// @Produce json
// @Param category query string false "Category name"
// @Param tags query string false "Comma separated tags, any match"
// @Param author query string false "Author"
// @Param featured query bool false "Only featured posts"
// @Param trending query bool false "Only posts above the trending threshold"
// @Param limit query int false "Page size, 0 for all"
// @Param offset query int false "Posts to skip"
// @Success 200 {array} models.BlogPost
// @Failure 400 {object} ErrorResponse
// @Router /api/blog-posts [get]
func (h blogPostHandler) getAllBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", 0)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		offset, err := queryInt(r, "offset", 0)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		query := r.URL.Query()
		posts, err := h.blogPostRepo.FindAll(r.Context(), database.PostQuery{
			Category: query.Get("category"),
			Tags:     queryList(r, "tags"),
			Author:   query.Get("author"),
			Featured: queryBool(r, "featured"),
			Trending: queryBool(r, "trending"),
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog posts", err))
			return
		}
		h.responder.WriteJSON(w, posts)
	}
}

// @Summary Trending posts
// @Tags Blog Posts
// @Param limit query int false "Default 10"
// @Success 200 {array} models.BlogPost
// @Router /api/blog-posts/trending [get]
func (h blogPostHandler) getTrendingBlogPosts() http.HandlerFunc {
	return h.limited(defaultListLimit, h.blog.TrendingPosts)
}

// @Summary Featured posts
// @Tags Blog Posts
// @Param limit query int false "Default 10"
// @Success 200 {array} models.BlogPost
// @Router /api/blog-posts/featured [get]
func (h blogPostHandler) getFeaturedBlogPosts() http.HandlerFunc {
	return h.limited(defaultListLimit, h.blog.FeaturedPosts)
}

// @Summary Search posts by title, content or excerpt
// @Tags Blog Posts
// @Param q query string true "Case-insensitive substring"
// @Param limit query int false "Default 20"
// @Success 200 {array} models.BlogPost
// @Failure 400 {object} ErrorResponse "Search query is required"
// @Router /api/blog-posts/search [get]
func (h blogPostHandler) searchBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if q == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Search query is required"))
			return
		}
		limit, err := queryInt(r, "limit", defaultSearchLimit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if limit == 0 {
			h.responder.WriteJSON(w, []models.BlogPost{})
			return
		}

		posts, err := h.blogPostRepo.Search(r.Context(), q, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "blog posts", err))
			return
		}
		h.responder.WriteJSON(w, posts)
	}
}

// getBlogPost returns a post and counts the view. The body is the post as it
// was before this view.
// @Summary Get blog post
// @Tags Blog Posts
// @Param id path string true "Blog post id"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} ErrorResponse
// @Router /api/blog-posts/{id} [get]
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		post, err := h.blog.ViewPost(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// createBlogPost stores a post and simulates publishing it to the requested chains
// @Summary Create blog post
// @Tags Blog Posts
// @Accept json
// @Param blogPost body models.InsertBlogPost true "Blog post data"
// @Param chains query string false "Comma separated chain ids, default the post's chainId"
// @Success 201 {object} services.CreatedPost
// @Failure 400 {object} ErrorResponse
// @Router /api/blog-posts [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.InsertBlogPost
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.blog.CreatePost(r.Context(), in, services.ParseChainIDs(r.URL.Query().Get("chains")))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONWithStatus(w, http.StatusCreated, created)
	}
}

// @Summary Update blog post
// @Tags Blog Posts
// @Accept json
// @Param id path string true "Blog post id"
// @Param patch body models.BlogPostPatch true "Fields to change"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} ErrorResponse
// @Router /api/blog-posts/{id} [put]
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var patch models.BlogPostPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blog.UpdatePost(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// @Summary Delete blog post
// @Tags Blog Posts
// @Param id path string true "Blog post id"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/blog-posts/{id} [delete]
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.blog.DeletePost(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Blog post deleted successfully")
	}
}

// @Summary Share blog post
// @Tags Blog Posts
// @Param id path string true "Blog post id"
// @Success 200 {object} models.BlogPost
// @Router /api/blog-posts/{id}/share [post]
func (h blogPostHandler) shareBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		post, err := h.blog.SharePost(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// @Summary Posts by author, all of them
// @Tags Blog Posts
// @Param author path string true "Author"
// @Success 200 {array} models.BlogPost
// @Router /api/blog-posts/author/{author} [get]
func (h blogPostHandler) getBlogPostsByAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		author, err := pathParam(r, "author")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		posts, err := h.blogPostRepo.FindByAuthor(r.Context(), author, 0)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "author posts", err))
			return
		}
		h.responder.WriteJSON(w, posts)
	}
}

// @Summary Posts in a category
// @Tags Blog Posts
// @Param category path string true "Category name"
// @Param limit query int false "Default 10"
// @Success 200 {array} models.BlogPost
// @Router /api/blog-posts/category/{category} [get]
func (h blogPostHandler) getBlogPostsByCategory() http.HandlerFunc {
	return h.byPathValue("category", h.blogPostRepo.FindByCategory)
}

// @Summary Posts with a tag
// @Tags Blog Posts
// @Param tag path string true "Tag"
// @Param limit query int false "Default 10"
// @Success 200 {array} models.BlogPost
// @Router /api/blog-posts/tag/{tag} [get]
func (h blogPostHandler) getBlogPostsByTag() http.HandlerFunc {
	return h.byPathValue("tag", h.blogPostRepo.FindByTag)
}

// @Summary Recommended posts
// @Tags Recommendations
// @Param userId query string false "Reader, currently unused for ranking"
// @Param limit query int false "Default 5"
// @Success 200 {array} models.BlogPost
// @Router /api/recommendations [get]
func (h blogPostHandler) getRecommendations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", defaultRecommendationLimit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if limit == 0 {
			h.responder.WriteJSON(w, []models.BlogPost{})
			return
		}
		posts, err := h.blog.Recommendations(r.Context(), r.URL.Query().Get("userId"), limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, posts)
	}
}

// @Summary Networks posts can be published to
// @Tags Blog Posts
// @Success 200 {array} services.Chain
// @Router /api/chains [get]
func (h blogPostHandler) getSupportedChains() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, services.SupportedChains())
	}
}

func (h blogPostHandler) limited(def int, list func(ctx context.Context, limit int) ([]models.BlogPost, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", def)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if limit == 0 {
			h.responder.WriteJSON(w, []models.BlogPost{})
			return
		}
		posts, err := list(r.Context(), limit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, posts)
	}
}

func (h blogPostHandler) byPathValue(key string, find func(ctx context.Context, value string, limit int) ([]models.BlogPost, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value, err := pathParam(r, key)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		limit, err := queryInt(r, "limit", defaultListLimit)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if limit == 0 {
			h.responder.WriteJSON(w, []models.BlogPost{})
			return
		}
		posts, err := find(r.Context(), value, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", key+" posts", err))
			return
		}
		h.responder.WriteJSON(w, posts)
	}
}
