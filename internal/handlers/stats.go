package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/retypegame/retype-api/internal/models"
)

// CreateStat inserts a raw history record without touching the aggregate or
// leaderboard. The submit endpoint is the normal path for finished games.
// POST /api/stats
func (h *Handler) CreateStat(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStatRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	stat, err := h.scores.InsertStat(r.Context(), req)
	if err != nil {
		h.logger.Errorw("Stat insert failed", "userId", req.UserID, "error", err)
		h.errorDetails(w, http.StatusInternalServerError, "Failed to create stat", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{"stat": stat})
}

// UserHistory lists a user's typing history, newest first. Unknown users get
// an empty list rather than a 404.
// GET /api/stats/user/{userId}
func (h *Handler) UserHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		h.errorResponse(w, http.StatusBadRequest, "userId is required")
		return
	}

	stats, err := h.users.History(r.Context(), userID)
	if err != nil {
		h.logger.Errorw("History list failed", "userId", userID, "error", err)
		h.errorDetails(w, http.StatusInternalServerError, "Failed to fetch user stats", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{"stats": stats})
}
