package handlers

import (
	"net/http"

	"github.com/retypegame/retype-api/internal/models"
)

// Signup creates a credential account and issues an enriched session token.
// POST /api/auth/signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	user, err := h.accounts.Signup(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		h.serviceError(w, err, "Signup failed")
		return
	}
	h.issueSession(w, r, user.ID, user.Email)
}

// Login verifies credentials and issues an enriched session token.
// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	user, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.serviceError(w, err, "Login failed")
		return
	}
	h.issueSession(w, r, user.ID, user.Email)
}

// Federated upserts a user from a verified external profile and issues a
// session token. The caller (the OAuth callback) has already verified the
// profile; an absent email fails the sign-in.
// POST /api/auth/federated
func (h *Handler) Federated(w http.ResponseWriter, r *http.Request) {
	var req models.FederatedRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	user, err := h.accounts.FederatedSignIn(r.Context(), req.Email, req.Name, req.Image)
	if err != nil {
		h.serviceError(w, err, "Federated sign-in failed")
		return
	}
	h.issueSession(w, r, user.ID, user.Email)
}

// Refresh re-enriches the presented session and issues a fresh token.
// POST /api/auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	user, ok := sessionUser(r.Context())
	if !ok {
		h.errorResponse(w, http.StatusUnauthorized, "Missing session")
		return
	}
	h.issueSession(w, r, user.ID, user.Email)
}

// Me returns the enriched user carried by the session token.
// GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := sessionUser(r.Context())
	if !ok {
		h.jsonResponse(w, http.StatusUnauthorized, map[string]interface{}{"user": nil})
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{"user": user})
}

// issueSession recomputes the derived fields from full history and signs a
// token carrying them.
func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, userID, email string) {
	enriched, err := h.accounts.EnrichedUser(r.Context(), userID, email)
	if err != nil {
		h.serviceError(w, err, "Session enrichment failed")
		return
	}

	token, err := h.tokens.Issue(*enriched)
	if err != nil {
		h.logger.Errorw("Failed to sign session token", "userId", userID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to issue session")
		return
	}

	h.jsonResponse(w, http.StatusOK, models.AuthResponse{Token: token, User: *enriched})
}
