package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/retypegame/retype-api/internal/logic"
	"github.com/retypegame/retype-api/internal/models"
)

type contextKey string

const sessionUserKey contextKey = "session_user"

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{
		"postgres": h.pg.Ping(ctx) == nil,
		"redis":    h.redis.Ping(ctx).Err() == nil,
	}
	if h.ch != nil {
		checks["clickhouse"] = h.ch.Ping(ctx) == nil
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":      allHealthy,
		"checks":     checks,
		"queueDepth": h.pool.QueueDepth(),
	})
}

// SessionMiddleware parses the bearer token and puts the enriched user into
// the request context. A missing or invalid token passes through without a
// user; each handler decides whether anonymous access is allowed.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.tokens.Parse(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), sessionUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionUser extracts the enriched user placed by SessionMiddleware.
func sessionUser(ctx context.Context) (*models.PublicUser, bool) {
	user, ok := ctx.Value(sessionUserKey).(*models.PublicUser)
	return user, ok && user.ID != ""
}

// decodeBody decodes and validates a JSON request body.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		h.errorDetails(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// errorDetails includes the raw error only outside production; the product
// used to leak backend errors in the details field unconditionally.
func (h *Handler) errorDetails(w http.ResponseWriter, status int, message string, err error) {
	if h.env == "production" || err == nil {
		h.errorResponse(w, status, message)
		return
	}
	h.jsonResponse(w, status, map[string]interface{}{
		"error":   message,
		"details": err.Error(),
	})
}

// serviceError maps the logic sentinels to HTTP statuses; anything else is
// an unclassified 500.
func (h *Handler) serviceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, logic.ErrNotFound):
		h.errorResponse(w, http.StatusNotFound, "Not found")
	case errors.Is(err, logic.ErrUsernameTaken):
		h.errorResponse(w, http.StatusConflict, "Username already taken")
	case errors.Is(err, logic.ErrInvalidCredentials):
		h.errorResponse(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, logic.ErrFederatedOnly):
		h.errorResponse(w, http.StatusUnauthorized, "This account uses federated sign-in")
	case errors.Is(err, logic.ErrEmailRequired):
		h.errorResponse(w, http.StatusBadRequest, "Email is required for federated sign-in")
	default:
		h.errorDetails(w, http.StatusInternalServerError, fallback, err)
	}
}
