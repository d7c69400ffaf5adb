package handlers

import (
	"context"

	"github.com/retypegame/retype-api/internal/logic"
	"github.com/retypegame/retype-api/internal/models"
)

// Mocks for the service interfaces. Each method delegates to an optional
// func field; nil fields return zero values.

type MockAccountsService struct {
	SignupFunc       func(ctx context.Context, username, password, email string) (*models.User, error)
	LoginFunc        func(ctx context.Context, username, password string) (*models.User, error)
	FederatedFunc    func(ctx context.Context, email, name, image string) (*models.User, error)
	EnrichedUserFunc func(ctx context.Context, userID, email string) (*models.PublicUser, error)
}

func (m *MockAccountsService) Signup(ctx context.Context, username, password, email string) (*models.User, error) {
	return m.SignupFunc(ctx, username, password, email)
}

func (m *MockAccountsService) Login(ctx context.Context, username, password string) (*models.User, error) {
	return m.LoginFunc(ctx, username, password)
}

func (m *MockAccountsService) FederatedSignIn(ctx context.Context, email, name, image string) (*models.User, error) {
	return m.FederatedFunc(ctx, email, name, image)
}

func (m *MockAccountsService) EnrichedUser(ctx context.Context, userID, email string) (*models.PublicUser, error) {
	return m.EnrichedUserFunc(ctx, userID, email)
}

type MockScoresService struct {
	SubmitFunc     func(ctx context.Context, userID string, req models.SubmitResultRequest) (*models.TypingStat, *models.UserStats, error)
	InsertStatFunc func(ctx context.Context, req models.CreateStatRequest) (*models.TypingStat, error)
}

func (m *MockScoresService) Submit(ctx context.Context, userID string, req models.SubmitResultRequest) (*models.TypingStat, *models.UserStats, error) {
	return m.SubmitFunc(ctx, userID, req)
}

func (m *MockScoresService) InsertStat(ctx context.Context, req models.CreateStatRequest) (*models.TypingStat, error) {
	return m.InsertStatFunc(ctx, req)
}

type MockLeaderboardService struct {
	ScoresFunc func(ctx context.Context, window logic.Window) ([]models.LeaderboardEntry, error)
	RankFunc   func(ctx context.Context, userID string) (*models.RankResult, error)
}

func (m *MockLeaderboardService) Scores(ctx context.Context, window logic.Window) ([]models.LeaderboardEntry, error) {
	return m.ScoresFunc(ctx, window)
}

func (m *MockLeaderboardService) Rank(ctx context.Context, userID string) (*models.RankResult, error) {
	return m.RankFunc(ctx, userID)
}

type MockUsersService struct {
	OverviewFunc func(ctx context.Context, userID string) (*models.UserOverview, error)
	HistoryFunc  func(ctx context.Context, userID string) ([]models.TypingStat, error)
}

func (m *MockUsersService) Overview(ctx context.Context, userID string) (*models.UserOverview, error) {
	return m.OverviewFunc(ctx, userID)
}

func (m *MockUsersService) History(ctx context.Context, userID string) ([]models.TypingStat, error) {
	return m.HistoryFunc(ctx, userID)
}

type MockAchievementsService struct {
	ListFunc   func(ctx context.Context, userID string) ([]models.Achievement, error)
	CreateFunc func(ctx context.Context, req models.CreateAchievementRequest) (*models.Achievement, error)
}

func (m *MockAchievementsService) ListForUser(ctx context.Context, userID string) ([]models.Achievement, error) {
	return m.ListFunc(ctx, userID)
}

func (m *MockAchievementsService) Create(ctx context.Context, req models.CreateAchievementRequest) (*models.Achievement, error) {
	return m.CreateFunc(ctx, req)
}

type MockTestimonialsService struct {
	ListFunc   func(ctx context.Context) ([]models.Testimonial, error)
	CreateFunc func(ctx context.Context, req models.CreateTestimonialRequest) (*models.Testimonial, error)
}

func (m *MockTestimonialsService) List(ctx context.Context) ([]models.Testimonial, error) {
	return m.ListFunc(ctx)
}

func (m *MockTestimonialsService) Create(ctx context.Context, req models.CreateTestimonialRequest) (*models.Testimonial, error) {
	return m.CreateFunc(ctx, req)
}

type MockActivityService struct {
	PushFunc   func(ctx context.Context, entry models.ActivityEntry) error
	RecentFunc func(ctx context.Context, limit int64) ([]models.ActivityEntry, error)

	Pushed []models.ActivityEntry
}

func (m *MockActivityService) Push(ctx context.Context, entry models.ActivityEntry) error {
	m.Pushed = append(m.Pushed, entry)
	if m.PushFunc != nil {
		return m.PushFunc(ctx, entry)
	}
	return nil
}

func (m *MockActivityService) Recent(ctx context.Context, limit int64) ([]models.ActivityEntry, error) {
	return m.RecentFunc(ctx, limit)
}

// MockQueue implements TelemetryQueue.
type MockQueue struct {
	Full     bool
	Enqueued []*models.SessionEvent
}

func (m *MockQueue) Enqueue(event *models.SessionEvent) bool {
	if m.Full {
		return false
	}
	m.Enqueued = append(m.Enqueued, event)
	return true
}

func (m *MockQueue) QueueDepth() int {
	return len(m.Enqueued)
}
