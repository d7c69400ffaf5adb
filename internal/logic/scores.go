package logic

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/retypegame/retype-api/internal/models"
)

// ScoresService persists finished sessions and maintains the derived
// aggregate, leaderboard projection and cached rank.
type ScoresService interface {
	Submit(ctx context.Context, userID string, req models.SubmitResultRequest) (*models.TypingStat, *models.UserStats, error)
	InsertStat(ctx context.Context, req models.CreateStatRequest) (*models.TypingStat, error)
}

type scoresService struct {
	pg     PgPool
	logger *zap.SugaredLogger
}

func NewScoresService(pg PgPool, logger *zap.SugaredLogger) ScoresService {
	return &scoresService{pg: pg, logger: logger}
}

// Submit runs the four dependent steps of score submission: history insert,
// aggregate upsert, conditional leaderboard upsert, rank recompute. The
// steps are deliberately not wrapped in one transaction; a failure leaves
// the earlier writes committed and surfaces to the caller.
func (s *scoresService) Submit(ctx context.Context, userID string, req models.SubmitResultRequest) (*models.TypingStat, *models.UserStats, error) {
	// server-side coercion, even though the client sends canonical values
	wpm := int(math.Round(req.WPM))
	timeElapsed := int(math.Round(req.TimeElapsed))
	wordsCompleted := int(math.Round(req.WordsCompleted))

	// 1. immutable history record
	stat := &models.TypingStat{
		ID:             uuid.NewString(),
		UserID:         userID,
		WPM:            wpm,
		Accuracy:       req.Accuracy,
		TimeElapsed:    timeElapsed,
		WordsCompleted: wordsCompleted,
		Mode:           req.Mode,
	}
	err := s.pg.QueryRow(ctx, `
		INSERT INTO typing_stats (id, user_id, wpm, accuracy, time_elapsed, words_completed, mode)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, stat.ID, userID, wpm, req.Accuracy, timeElapsed, wordsCompleted, req.Mode).Scan(&stat.CreatedAt)
	if err != nil {
		return nil, nil, fmt.Errorf("insert typing stat: %w", err)
	}

	// 2. aggregate upsert: max best fields, increment test count
	stats, err := s.upsertUserStats(ctx, userID, wpm, req.Accuracy)
	if err != nil {
		return nil, nil, err
	}

	// 3. leaderboard best projection, only on strictly greater wpm
	if err := s.maybeUpsertLeaderboard(ctx, userID, wpm, req.Accuracy, req.Mode); err != nil {
		return nil, nil, err
	}

	// 4. synchronous rank recompute from the full ordered leaderboard
	if err := s.recomputeRank(ctx, userID); err != nil {
		return nil, nil, err
	}

	s.logger.Infow("Score submitted", "userId", userID, "wpm", wpm, "mode", req.Mode)
	return stat, stats, nil
}

func (s *scoresService) upsertUserStats(ctx context.Context, userID string, wpm int, accuracy float64) (*models.UserStats, error) {
	stats := &models.UserStats{UserID: userID}

	var prev models.UserStats
	err := s.pg.QueryRow(ctx, `
		SELECT best_wpm, best_accuracy, total_tests, streak
		FROM user_stats WHERE user_id = $1
	`, userID).Scan(&prev.BestWPM, &prev.BestAccuracy, &prev.TotalTests, &prev.Streak)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		err = s.pg.QueryRow(ctx, `
			INSERT INTO user_stats (user_id, best_wpm, best_accuracy, total_tests, streak)
			VALUES ($1, $2, $3, 1, 1)
			RETURNING best_wpm, best_accuracy, total_tests, streak, updated_at
		`, userID, wpm, accuracy).Scan(
			&stats.BestWPM, &stats.BestAccuracy, &stats.TotalTests, &stats.Streak, &stats.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("create user stats: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("read user stats: %w", err)
	default:
		bestWpm := max(prev.BestWPM, wpm)
		bestAccuracy := math.Max(prev.BestAccuracy, accuracy)
		err = s.pg.QueryRow(ctx, `
			UPDATE user_stats
			SET best_wpm = $2, best_accuracy = $3, total_tests = total_tests + 1, updated_at = now()
			WHERE user_id = $1
			RETURNING best_wpm, best_accuracy, total_tests, streak, updated_at
		`, userID, bestWpm, bestAccuracy).Scan(
			&stats.BestWPM, &stats.BestAccuracy, &stats.TotalTests, &stats.Streak, &stats.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("update user stats: %w", err)
		}
	}
	return stats, nil
}

func (s *scoresService) maybeUpsertLeaderboard(ctx context.Context, userID string, wpm int, accuracy float64, mode string) error {
	var prevWpm int
	err := s.pg.QueryRow(ctx, `SELECT wpm FROM leaderboard WHERE user_id = $1`, userID).Scan(&prevWpm)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("read leaderboard: %w", err)
	}
	if err == nil && wpm <= prevWpm {
		return nil
	}

	// created_at is written on first insert only; the windowed listings
	// depend on it staying put across upserts
	_, err = s.pg.Exec(ctx, `
		INSERT INTO leaderboard (user_id, wpm, accuracy, mode)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET wpm = EXCLUDED.wpm, accuracy = EXCLUDED.accuracy, mode = EXCLUDED.mode
	`, userID, wpm, accuracy, mode)
	if err != nil {
		return fmt.Errorf("upsert leaderboard: %w", err)
	}
	return nil
}

func (s *scoresService) recomputeRank(ctx context.Context, userID string) error {
	rows, err := s.pg.Query(ctx, `SELECT user_id FROM leaderboard ORDER BY wpm DESC`)
	if err != nil {
		return fmt.Errorf("scan leaderboard: %w", err)
	}
	defer rows.Close()

	rank := -1
	position := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("leaderboard row: %w", err)
		}
		position++
		if id == userID {
			rank = position
			break
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("leaderboard rows: %w", err)
	}

	if _, err := s.pg.Exec(ctx, `UPDATE users SET rank = $2, updated_at = now() WHERE id = $1`, userID, rank); err != nil {
		return fmt.Errorf("update rank: %w", err)
	}
	return nil
}

// InsertStat is the direct history-insert path used by POST /api/stats. It
// bypasses the aggregate and leaderboard maintenance on purpose.
func (s *scoresService) InsertStat(ctx context.Context, req models.CreateStatRequest) (*models.TypingStat, error) {
	stat := &models.TypingStat{
		ID:             uuid.NewString(),
		UserID:         req.UserID,
		WPM:            int(math.Round(req.WPM)),
		Accuracy:       req.Accuracy,
		TimeElapsed:    int(math.Round(req.TimeElapsed)),
		WordsCompleted: int(math.Round(req.WordsCompleted)),
		Mode:           req.Mode,
	}
	err := s.pg.QueryRow(ctx, `
		INSERT INTO typing_stats (id, user_id, wpm, accuracy, time_elapsed, words_completed, mode)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, stat.ID, stat.UserID, stat.WPM, stat.Accuracy, stat.TimeElapsed, stat.WordsCompleted, stat.Mode).Scan(&stat.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert typing stat: %w", err)
	}
	return stat, nil
}
