package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/retypegame/retype-api/internal/logic"
	"github.com/retypegame/retype-api/internal/models"
)

// Threshold achievements derived from telemetry counters. WPM milestones
// trigger on the submitted score rather than a cumulative counter.
var (
	testThresholds = map[int64]achievementDef{
		1:   {slug: "TESTS_1", title: "First Steps", description: "Complete your first typing test"},
		10:  {slug: "TESTS_10", title: "Getting Warmed Up", description: "Complete 10 typing tests"},
		50:  {slug: "TESTS_50", title: "Regular", description: "Complete 50 typing tests"},
		100: {slug: "TESTS_100", title: "Dedicated", description: "Complete 100 typing tests"},
		500: {slug: "TESTS_500", title: "Obsessed", description: "Complete 500 typing tests"},
	}
	wordThresholds = map[int64]achievementDef{
		1000:  {slug: "WORDS_1K", title: "Wordsmith", description: "Type 1,000 reversed words"},
		10000: {slug: "WORDS_10K", title: "Lexicon", description: "Type 10,000 reversed words"},
		50000: {slug: "WORDS_50K", title: "Dictionary", description: "Type 50,000 reversed words"},
	}
	wpmMilestones = []wpmMilestone{
		{wpm: 60, def: achievementDef{slug: "WPM_60", title: "Quick Fingers", description: "Reach 60 WPM in a single test"}},
		{wpm: 80, def: achievementDef{slug: "WPM_80", title: "Speed Demon", description: "Reach 80 WPM in a single test"}},
		{wpm: 100, def: achievementDef{slug: "WPM_100", title: "Centurion", description: "Reach 100 WPM in a single test"}},
		{wpm: 120, def: achievementDef{slug: "WPM_120", title: "Untouchable", description: "Reach 120 WPM in a single test"}},
	}
)

type achievementDef struct {
	slug        string
	title       string
	description string
}

type wpmMilestone struct {
	wpm int
	def achievementDef
}

// StatStore abstracts the counter storage for telemetry aggregation.
type StatStore interface {
	Incr(ctx context.Context, key string) (int64, error)
	IncrBy(ctx context.Context, key string, value int64) (int64, error)
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
}

// RedisStatStore implements StatStore using Redis.
type RedisStatStore struct {
	client *redis.Client
}

func (s *RedisStatStore) Incr(ctx context.Context, key string) (int64, error) {
	return s.client.Incr(ctx, key).Result()
}

func (s *RedisStatStore) IncrBy(ctx context.Context, key string, value int64) (int64, error) {
	return s.client.IncrBy(ctx, key, value).Result()
}

func (s *RedisStatStore) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return s.client.SetNX(ctx, key, value, expiration).Result()
}

// AchievementWorker maintains per-user telemetry counters and unlocks
// threshold achievements into Postgres.
type AchievementWorker struct {
	db        logic.PgPool
	statStore StatStore
	logger    *zap.SugaredLogger
}

func NewAchievementWorker(db logic.PgPool, statStore StatStore, logger *zap.SugaredLogger) *AchievementWorker {
	return &AchievementWorker{db: db, statStore: statStore, logger: logger}
}

// ProcessEvent updates the counters for one event and unlocks any thresholds
// it crossed. Counter errors are logged and skipped; telemetry is advisory.
func (w *AchievementWorker) ProcessEvent(ctx context.Context, event *models.SessionEvent) {
	if event.UserID == "" {
		return
	}

	switch event.Type {
	case models.EventScoreSubmitted:
		tests, err := w.statStore.Incr(ctx, "user:"+event.UserID+":tests")
		if err != nil {
			w.logger.Warnw("Test counter increment failed", "userId", event.UserID, "error", err)
		} else if def, ok := testThresholds[tests]; ok {
			w.unlock(ctx, event.UserID, def)
		}

		if event.WordsCompleted > 0 {
			words, err := w.statStore.IncrBy(ctx, "user:"+event.UserID+":words", int64(event.WordsCompleted))
			if err != nil {
				w.logger.Warnw("Word counter increment failed", "userId", event.UserID, "error", err)
			} else {
				w.checkWordThresholds(ctx, event.UserID, words-int64(event.WordsCompleted), words)
			}
		}

		for _, milestone := range wpmMilestones {
			if event.WPM >= milestone.wpm {
				w.unlock(ctx, event.UserID, milestone.def)
			}
		}

	case models.EventWordCompleted:
		words, err := w.statStore.Incr(ctx, "user:"+event.UserID+":words")
		if err != nil {
			w.logger.Warnw("Word counter increment failed", "userId", event.UserID, "error", err)
			return
		}
		w.checkWordThresholds(ctx, event.UserID, words-1, words)
	}
}

// checkWordThresholds unlocks every word threshold crossed by the jump from
// prev to current. Bulk increments can skip over a threshold value.
func (w *AchievementWorker) checkWordThresholds(ctx context.Context, userID string, prev, current int64) {
	for threshold, def := range wordThresholds {
		if prev < threshold && current >= threshold {
			w.unlock(ctx, userID, def)
		}
	}
}

// unlock records an achievement once per user. The Redis marker is the dedup
// gate; the Postgres insert is the durable record.
func (w *AchievementWorker) unlock(ctx context.Context, userID string, def achievementDef) {
	key := fmt.Sprintf("user:%s:achievement:%s", userID, def.slug)
	fresh, err := w.statStore.SetNX(ctx, key, 1, 0)
	if err != nil {
		w.logger.Warnw("Achievement dedup check failed", "userId", userID, "achievement", def.slug, "error", err)
		return
	}
	if !fresh {
		return
	}

	now := time.Now()
	_, err = w.db.Exec(ctx, `
		INSERT INTO achievements (id, user_id, title, description, achieved_at, unlocked_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`, uuid.NewString(), userID, def.title, def.description, now)
	if err != nil {
		w.logger.Warnw("Failed to persist achievement", "userId", userID, "achievement", def.slug, "error", err)
		return
	}
	w.logger.Infow("Achievement unlocked", "userId", userID, "achievement", def.slug)
}
