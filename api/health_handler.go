package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/chainblog-backend/cache"
	"github.com/rpupo63/chainblog-backend/database"
)

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	db          database.Database
	cache       *cache.Client
	startupTime time.Time
}

func newHealthHandler(db database.Database, c *cache.Client, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		db:          db,
		cache:       c,
		startupTime: startupTime,
	}
}

// getHealth reports liveness. A failing database makes it 503; a failing cache
// only marks the cache as down since reads fall back to the store.
// @Summary Health check
// @Tags Health
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h healthHandler) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		response := HealthResponse{
			Status:    "ok",
			Uptime:    time.Since(h.startupTime).Round(time.Second).String(),
			StartedAt: h.startupTime.UTC().Format(time.RFC3339),
			Database:  h.db.Backend(),
			Cache:     "disabled",
		}
		status := http.StatusOK

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Error().Err(err).Msg("Database health check failed")
			response.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
		if h.cache != nil {
			response.Cache = "ok"
			if err := h.cache.Ping(ctx); err != nil {
				h.logger.Warn().Err(err).Msg("Cache health check failed")
				response.Cache = "down"
			}
		}

		h.responder.WriteJSONWithStatus(w, status, response)
	}
}
