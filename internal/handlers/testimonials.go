package handlers

import (
	"net/http"

	"github.com/retypegame/retype-api/internal/models"
)

// ListTestimonials returns all testimonials, newest first.
// GET /api/testimonials
func (h *Handler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.testimonials.List(r.Context())
	if err != nil {
		h.logger.Errorw("Testimonial list failed", "error", err)
		h.errorDetails(w, http.StatusInternalServerError, "Failed to fetch testimonials", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{"testimonials": testimonials})
}

// CreateTestimonial stores a testimonial.
// POST /api/testimonials
func (h *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTestimonialRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	testimonial, err := h.testimonials.Create(r.Context(), req)
	if err != nil {
		h.logger.Errorw("Testimonial create failed", "error", err)
		h.errorDetails(w, http.StatusInternalServerError, "Failed to create testimonial", err)
		return
	}
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{"testimonial": testimonial})
}
