package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/retypegame/retype-api/internal/models"
)

// Window identifies a leaderboard listing period.
type Window string

const (
	WindowDaily   Window = "daily"
	WindowWeekly  Window = "weekly"
	WindowMonthly Window = "monthly"
)

const windowLimit = 50

// LeaderboardService serves the windowed listings and rank lookups.
type LeaderboardService interface {
	Scores(ctx context.Context, window Window) ([]models.LeaderboardEntry, error)
	Rank(ctx context.Context, userID string) (*models.RankResult, error)
}

type leaderboardService struct {
	pg  PgPool
	now func() time.Time
}

func NewLeaderboardService(pg PgPool) LeaderboardService {
	return &leaderboardService{pg: pg, now: time.Now}
}

// WindowStart returns the inclusive lower bound for a listing window:
// start of the current day, the most recent Monday 00:00, or the first of
// the current month.
func WindowStart(window Window, now time.Time) time.Time {
	y, m, d := now.Date()
	switch window {
	case WindowWeekly:
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		return time.Date(y, m, d-daysSinceMonday, 0, 0, 0, 0, now.Location())
	case WindowMonthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	}
}

// Scores lists the best-score projections whose insert timestamp falls in
// the window, ordered by wpm. The filter intentionally looks at the
// projection's created_at, so a player whose all-time best predates the
// window is absent even if they played inside it.
func (s *leaderboardService) Scores(ctx context.Context, window Window) ([]models.LeaderboardEntry, error) {
	since := WindowStart(window, s.now())

	rows, err := s.pg.Query(ctx, `
		SELECT l.user_id, l.wpm, l.accuracy, l.mode, l.created_at,
		       u.username, COALESCE(u.image, ''), u.country, u.level,
		       COALESCE(s.streak, 0), COALESCE(s.total_tests, 0)
		FROM leaderboard l
		JOIN users u ON u.id = l.user_id
		LEFT JOIN user_stats s ON s.user_id = l.user_id
		WHERE l.created_at >= $1
		ORDER BY l.wpm DESC
		LIMIT $2
	`, since, windowLimit)
	if err != nil {
		return nil, fmt.Errorf("window query: %w", err)
	}
	defer rows.Close()

	entries := make([]models.LeaderboardEntry, 0)
	rank := 1
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(
			&entry.UserID, &entry.WPM, &entry.Accuracy, &entry.Mode, &entry.CreatedAt,
			&entry.User.Username, &entry.User.Image, &entry.User.Country, &entry.User.Level,
			&entry.User.Streak, &entry.User.TotalTests,
		); err != nil {
			return nil, fmt.Errorf("window row: %w", err)
		}
		// rank within the filtered set, not the cached global rank
		entry.Rank = rank
		entries = append(entries, entry)
		rank++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("window rows: %w", err)
	}
	return entries, nil
}

// Rank returns 1 plus the count of strictly greater leaderboard scores.
func (s *leaderboardService) Rank(ctx context.Context, userID string) (*models.RankResult, error) {
	var bestWpm int
	err := s.pg.QueryRow(ctx, `SELECT wpm FROM leaderboard WHERE user_id = $1`, userID).Scan(&bestWpm)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("best wpm lookup: %w", err)
	}

	var higher int
	if err := s.pg.QueryRow(ctx, `SELECT COUNT(*) FROM leaderboard WHERE wpm > $1`, bestWpm).Scan(&higher); err != nil {
		return nil, fmt.Errorf("rank count: %w", err)
	}

	return &models.RankResult{UserID: userID, BestWPM: bestWpm, Rank: higher + 1}, nil
}
