package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/retypegame/retype-api/internal/models"
)

// IngestEvent accepts a client telemetry event and hands it to the worker
// pool. 202 means accepted for batching, not persisted.
// POST /api/events
func (h *Handler) IngestEvent(w http.ResponseWriter, r *http.Request) {
	var event models.SessionEvent
	if !h.decodeBody(w, r, &event) {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if !h.pool.Enqueue(&event) {
		h.errorResponse(w, http.StatusServiceUnavailable, "Event queue is full")
		return
	}
	h.jsonResponse(w, http.StatusAccepted, map[string]interface{}{
		"accepted":   true,
		"queueDepth": h.pool.QueueDepth(),
	})
}

// RecentActivity returns the latest entries of the Redis activity feed.
// GET /api/activity?limit=...
func (h *Handler) RecentActivity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	entries, err := h.activity.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Errorw("Activity read failed", "error", err)
		h.errorDetails(w, http.StatusInternalServerError, "Failed to fetch activity", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{"activity": entries})
}
