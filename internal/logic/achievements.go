package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/retypegame/retype-api/internal/models"
)

// AchievementsService is the CRUD surface for per-user achievements. The
// async threshold unlocks live in the worker package.
type AchievementsService interface {
	ListForUser(ctx context.Context, userID string) ([]models.Achievement, error)
	Create(ctx context.Context, req models.CreateAchievementRequest) (*models.Achievement, error)
}

type achievementsService struct {
	pg PgPool
}

func NewAchievementsService(pg PgPool) AchievementsService {
	return &achievementsService{pg: pg}
}

func (s *achievementsService) ListForUser(ctx context.Context, userID string) ([]models.Achievement, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT id, user_id, title, description, achieved_at, unlocked_at
		FROM achievements
		WHERE user_id = $1
		ORDER BY achieved_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	achievements := make([]models.Achievement, 0)
	for rows.Next() {
		var (
			a        models.Achievement
			unlocked *time.Time
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.AchievedAt, &unlocked); err != nil {
			return nil, fmt.Errorf("achievement row: %w", err)
		}
		a.UnlockedAt = unlocked
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

func (s *achievementsService) Create(ctx context.Context, req models.CreateAchievementRequest) (*models.Achievement, error) {
	a := &models.Achievement{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
	}
	err := s.pg.QueryRow(ctx, `
		INSERT INTO achievements (id, user_id, title, description)
		VALUES ($1, $2, $3, $4)
		RETURNING achieved_at
	`, a.ID, a.UserID, a.Title, a.Description).Scan(&a.AchievedAt)
	if err != nil {
		return nil, fmt.Errorf("create achievement: %w", err)
	}
	return a, nil
}
