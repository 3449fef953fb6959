package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogPostHandler  blogPostHandler
	taxonomyHandler  taxonomyHandler
	commentHandler   commentHandler
	likeHandler      likeHandler
	userHandler      userHandler
	analyticsHandler analyticsHandler
	healthHandler    healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Blog post not found"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// MessageResponse is the body of endpoints that only report an outcome
type MessageResponse struct {
	Message string `json:"message" example:"Trending scores updated successfully"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Uptime    string `json:"uptime" example:"1h2m3s"`
	StartedAt string `json:"startedAt"`
	Database  string `json:"database" example:"memory"`
	Cache     string `json:"cache" example:"disabled"`
}
