package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/retypegame/retype-api/internal/models"
)

// SubmitResult persists a finished session for the authenticated user and
// updates the derived aggregate, leaderboard and rank.
// POST /api/game/submit
func (h *Handler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	user, ok := sessionUser(r.Context())
	if !ok {
		h.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.SubmitResultRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	stat, stats, err := h.scores.Submit(r.Context(), user.ID, req)
	if err != nil {
		h.logger.Errorw("Score submission failed", "userId", user.ID, "error", err)
		h.errorDetails(w, http.StatusInternalServerError, "Failed to submit game result", err)
		return
	}

	// fire-and-forget: telemetry and the activity feed never fail a submission
	h.pool.Enqueue(&models.SessionEvent{
		Type:           models.EventScoreSubmitted,
		UserID:         user.ID,
		SessionID:      uuid.NewString(),
		Mode:           stat.Mode,
		WPM:            stat.WPM,
		Accuracy:       stat.Accuracy,
		WordsCompleted: stat.WordsCompleted,
		TimeElapsed:    stat.TimeElapsed,
		Timestamp:      time.Now().UTC(),
	})
	if err := h.activity.Push(r.Context(), models.ActivityEntry{
		UserID:    user.ID,
		Username:  user.Username,
		WPM:       stat.WPM,
		Accuracy:  stat.Accuracy,
		Mode:      stat.Mode,
		CreatedAt: stat.CreatedAt,
	}); err != nil {
		h.logger.Warnw("Failed to push activity entry", "userId", user.ID, "error", err)
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"typingStats": stat,
		"userStats":   stats,
	})
}
