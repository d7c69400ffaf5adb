package logic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/retypegame/retype-api/internal/models"
)

const (
	activityKey = "activity:recent"
	activityCap = 100
)

// ActivityService keeps a capped recent-activity feed in Redis. Pushes are
// fire-and-forget from the submission path; the feed is presentation only.
type ActivityService interface {
	Push(ctx context.Context, entry models.ActivityEntry) error
	Recent(ctx context.Context, limit int64) ([]models.ActivityEntry, error)
}

type activityService struct {
	redis RedisClient
}

func NewActivityService(redis RedisClient) ActivityService {
	return &activityService{redis: redis}
}

func (s *activityService) Push(ctx context.Context, entry models.ActivityEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal activity: %w", err)
	}
	if err := s.redis.LPush(ctx, activityKey, payload).Err(); err != nil {
		return fmt.Errorf("push activity: %w", err)
	}
	return s.redis.LTrim(ctx, activityKey, 0, activityCap-1).Err()
}

func (s *activityService) Recent(ctx context.Context, limit int64) ([]models.ActivityEntry, error) {
	if limit <= 0 || limit > activityCap {
		limit = activityCap
	}
	raw, err := s.redis.LRange(ctx, activityKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read activity: %w", err)
	}

	entries := make([]models.ActivityEntry, 0, len(raw))
	for _, item := range raw {
		var entry models.ActivityEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
