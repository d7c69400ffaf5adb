package logic

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/retypegame/retype-api/internal/models"
)

// TestimonialsService is the CRUD surface for testimonials; they have no
// relationship to game logic.
type TestimonialsService interface {
	List(ctx context.Context) ([]models.Testimonial, error)
	Create(ctx context.Context, req models.CreateTestimonialRequest) (*models.Testimonial, error)
}

type testimonialsService struct {
	pg PgPool
}

func NewTestimonialsService(pg PgPool) TestimonialsService {
	return &testimonialsService{pg: pg}
}

func (s *testimonialsService) List(ctx context.Context) ([]models.Testimonial, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT id, user_id, user_name, role, image, rating, text, created_at
		FROM testimonials
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	testimonials := make([]models.Testimonial, 0)
	for rows.Next() {
		var t models.Testimonial
		if err := rows.Scan(&t.ID, &t.UserID, &t.UserName, &t.Role, &t.Image, &t.Rating, &t.Text, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("testimonial row: %w", err)
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}

func (s *testimonialsService) Create(ctx context.Context, req models.CreateTestimonialRequest) (*models.Testimonial, error) {
	t := &models.Testimonial{
		ID:       uuid.NewString(),
		UserName: req.UserName,
		Role:     req.Role,
		Image:    req.Image,
		Rating:   req.Rating,
		Text:     req.Text,
	}
	var userID any
	if req.UserID != "" {
		userID = req.UserID
		t.UserID = &req.UserID
	}
	err := s.pg.QueryRow(ctx, `
		INSERT INTO testimonials (id, user_id, user_name, role, image, rating, text)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, t.ID, userID, t.UserName, t.Role, t.Image, t.Rating, t.Text).Scan(&t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create testimonial: %w", err)
	}
	return t, nil
}
