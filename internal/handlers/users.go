package handlers

import "net/http"

// Overview returns a user's public profile with full typing history and
// achievements.
// GET /api/users/overview?userId=...
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		h.errorResponse(w, http.StatusBadRequest, "userId is required")
		return
	}

	overview, err := h.users.Overview(r.Context(), userID)
	if err != nil {
		h.serviceError(w, err, "Failed to fetch user")
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{"user": overview})
}
