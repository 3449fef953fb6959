package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/rpupo63/chainblog-backend/metrics"
)

func setupRoutes(r chi.Router, handlers *routeHandlers, admin adminMiddleware) {
	r.Get("/health", handlers.healthHandler.getHealth())
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(walletMiddleware)

		r.Route("/blog-posts", func(r chi.Router) {
			h := handlers.blogPostHandler
			r.Get("/", h.getAllBlogPosts())
			r.Post("/", h.createBlogPost())
			r.Get("/trending", h.getTrendingBlogPosts())
			r.Get("/featured", h.getFeaturedBlogPosts())
			r.Get("/search", h.searchBlogPosts())
			r.Get("/author/{author}", h.getBlogPostsByAuthor())
			r.Get("/category/{category}", h.getBlogPostsByCategory())
			r.Get("/tag/{tag}", h.getBlogPostsByTag())
			r.Get("/{id}", h.getBlogPost())
			r.Put("/{id}", h.updateBlogPost())
			r.Delete("/{id}", h.deleteBlogPost())
			r.Post("/{id}/share", h.shareBlogPost())
		})

		r.Route("/categories", func(r chi.Router) {
			h := handlers.taxonomyHandler
			r.Get("/", h.getAllCategories())
			r.Post("/", h.createCategory())
			r.Get("/slug/{slug}", h.getCategoryBySlug())
			r.Get("/{id}", h.getCategory())
			r.Put("/{id}", h.updateCategory())
		})

		r.Route("/tags", func(r chi.Router) {
			h := handlers.taxonomyHandler
			r.Get("/", h.getAllTags())
			r.Post("/", h.createTag())
			r.Get("/trending", h.getTrendingTags())
			r.Get("/slug/{slug}", h.getTagBySlug())
			r.Get("/{id}", h.getTag())
			r.Put("/{id}", h.updateTag())
		})

		r.Route("/comments", func(r chi.Router) {
			h := handlers.commentHandler
			r.Post("/", h.createComment())
			r.Get("/post/{postId}", h.getCommentsByPost())
			r.Put("/{id}", h.updateComment())
			r.Delete("/{id}", h.deleteComment())
		})

		r.Route("/likes", func(r chi.Router) {
			h := handlers.likeHandler
			r.Post("/", h.createLike())
			r.Get("/post/{postId}", h.getLikesByPost())
			r.Delete("/{id}", h.deleteLike())
		})

		r.Route("/users", func(r chi.Router) {
			h := handlers.userHandler
			r.Post("/", h.createUser())
			r.Get("/wallet/{wallet}", h.getUserByWallet())
			r.Get("/{id}", h.getUser())
			r.Put("/{id}", h.updateUser())
			r.Get("/{id}/followers", h.getFollowers())
			r.Get("/{id}/following", h.getFollowing())
		})

		r.Route("/follows", func(r chi.Router) {
			h := handlers.userHandler
			r.Post("/", h.createFollow())
			r.Delete("/{id}", h.deleteFollow())
		})

		r.Get("/recommendations", handlers.blogPostHandler.getRecommendations())
		r.Get("/chains", handlers.blogPostHandler.getSupportedChains())

		r.Route("/analytics", func(r chi.Router) {
			h := handlers.analyticsHandler
			r.Get("/creator/{userId}", h.getCreatorAnalytics())
			r.Post("/earnings", h.recordEarnings())
			r.With(admin.authenticate).Post("/update-trending", h.updateTrending())
		})
	})
}
