package api

import (
	"time"

	"github.com/rpupo63/chainblog-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(blog *services.Blog, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		blogPostHandler:  newBlogPostHandler(blog),
		taxonomyHandler:  newTaxonomyHandler(blog),
		commentHandler:   newCommentHandler(blog),
		likeHandler:      newLikeHandler(blog),
		userHandler:      newUserHandler(blog),
		analyticsHandler: newAnalyticsHandler(blog),
		healthHandler:    newHealthHandler(blog.DB(), blog.Cache(), startupTime),
	}
}
