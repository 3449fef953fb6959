package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/chainblog-backend/models"
	"github.com/rpupo63/chainblog-backend/services"
)

type analyticsHandler struct {
	responder Responder
	logger    zerolog.Logger
	blog      *services.Blog
}

func newAnalyticsHandler(blog *services.Blog) analyticsHandler {
	logger := log.With().Str("handlerName", "analyticsHandler").Logger()

	return analyticsHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blog:      blog,
	}
}

// @Summary Creator analytics, recomputed on every call
// @Tags Analytics
// @Param userId path string true "Creator user id"
// @Success 200 {object} models.UserAnalytics
// @Failure 404 {object} ErrorResponse
// @Router /api/analytics/creator/{userId} [get]
func (h analyticsHandler) getCreatorAnalytics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathParam(r, "userId")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		snapshot, err := h.blog.CreatorAnalytics(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, snapshot)
	}
}

// @Summary Record simulated earnings
// @Tags Analytics
// @Accept json
// @Param record body models.EarningsRecord true "Amount in wei"
// @Success 200 {object} models.UserAnalytics
// @Router /api/analytics/earnings [post]
func (h analyticsHandler) recordEarnings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record models.EarningsRecord
		if err := decodeJSON(w, r, &record); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		snapshot, err := h.blog.RecordEarnings(r.Context(), record)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, snapshot)
	}
}

// @Summary Recompute trending scores
// @Tags Analytics
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse "Admin token missing or wrong"
// @Router /api/analytics/update-trending [post]
func (h analyticsHandler) updateTrending() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.blog.RefreshTrending(r.Context(), services.TriggerAdmin); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, "Trending scores updated successfully")
	}
}
