package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/retypegame/retype-api/internal/models"
)

// ListAchievements returns a user's achievements, newest first.
// GET /api/achievements/{userId}
func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		h.errorResponse(w, http.StatusBadRequest, "userId is required")
		return
	}

	achievements, err := h.achievements.ListForUser(r.Context(), userID)
	if err != nil {
		h.logger.Errorw("Achievement list failed", "userId", userID, "error", err)
		h.errorDetails(w, http.StatusInternalServerError, "Failed to fetch achievements", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{"achievements": achievements})
}

// CreateAchievement records an achievement for a user.
// POST /api/achievements
func (h *Handler) CreateAchievement(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAchievementRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	achievement, err := h.achievements.Create(r.Context(), req)
	if err != nil {
		h.logger.Errorw("Achievement create failed", "userId", req.UserID, "error", err)
		h.errorDetails(w, http.StatusInternalServerError, "Failed to create achievement", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{"achievement": achievement})
}
