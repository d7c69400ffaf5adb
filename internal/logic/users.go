package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/retypegame/retype-api/internal/models"
)

// UsersService serves the public user overview and history listing.
type UsersService interface {
	Overview(ctx context.Context, userID string) (*models.UserOverview, error)
	History(ctx context.Context, userID string) ([]models.TypingStat, error)
}

type usersService struct {
	pg PgPool
}

func NewUsersService(pg PgPool) UsersService {
	return &usersService{pg: pg}
}

// Overview returns identity fields plus the full typing history and
// achievement list, fetched concurrently.
func (s *usersService) Overview(ctx context.Context, userID string) (*models.UserOverview, error) {
	overview := &models.UserOverview{}

	err := s.pg.QueryRow(ctx, `
		SELECT id, username, level, country FROM users WHERE id = $1
	`, userID).Scan(&overview.ID, &overview.Username, &overview.Level, &overview.Country)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.History(ctx, userID)
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		overview.Stats = stats
		return nil
	})

	g.Go(func() error {
		achievements, err := s.achievements(ctx, userID)
		if err != nil {
			return fmt.Errorf("achievements: %w", err)
		}
		overview.Achievements = achievements
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

// History returns the full typing history newest-first. Unknown users yield
// an empty list, not an error.
func (s *usersService) History(ctx context.Context, userID string) ([]models.TypingStat, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT id, user_id, wpm, accuracy, time_elapsed, words_completed, mode, created_at
		FROM typing_stats
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]models.TypingStat, 0)
	for rows.Next() {
		var stat models.TypingStat
		if err := rows.Scan(
			&stat.ID, &stat.UserID, &stat.WPM, &stat.Accuracy,
			&stat.TimeElapsed, &stat.WordsCompleted, &stat.Mode, &stat.CreatedAt,
		); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func (s *usersService) achievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT id, user_id, title, description, achieved_at, unlocked_at
		FROM achievements
		WHERE user_id = $1
		ORDER BY achieved_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	achievements := make([]models.Achievement, 0)
	for rows.Next() {
		var (
			a        models.Achievement
			unlocked *time.Time
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.AchievedAt, &unlocked); err != nil {
			return nil, err
		}
		a.UnlockedAt = unlocked
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}
