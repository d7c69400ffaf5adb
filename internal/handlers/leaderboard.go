package handlers

import (
	"net/http"

	"github.com/retypegame/retype-api/internal/logic"
)

// DailyScores lists today's leaderboard entries.
// GET /api/leaderboard/daily
func (h *Handler) DailyScores(w http.ResponseWriter, r *http.Request) {
	h.windowScores(w, r, logic.WindowDaily)
}

// WeeklyScores lists entries since the most recent Monday.
// GET /api/leaderboard/weekly
func (h *Handler) WeeklyScores(w http.ResponseWriter, r *http.Request) {
	h.windowScores(w, r, logic.WindowWeekly)
}

// MonthlyScores lists entries since the first of the month.
// GET /api/leaderboard/monthly
func (h *Handler) MonthlyScores(w http.ResponseWriter, r *http.Request) {
	h.windowScores(w, r, logic.WindowMonthly)
}

func (h *Handler) windowScores(w http.ResponseWriter, r *http.Request, window logic.Window) {
	entries, err := h.leaderboard.Scores(r.Context(), window)
	if err != nil {
		h.logger.Errorw("Leaderboard query failed", "window", window, "error", err)
		h.errorDetails(w, http.StatusInternalServerError, "Failed to fetch leaderboard", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{"scores": entries})
}

// RankLookup returns a user's all-time rank among leaderboard bests.
// GET /api/leaderboard/rank?userId=...
func (h *Handler) RankLookup(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		h.errorResponse(w, http.StatusBadRequest, "userId is required")
		return
	}

	result, err := h.leaderboard.Rank(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err, "Failed to fetch rank")
		return
	}
	h.jsonResponse(w, http.StatusOK, result)
}
