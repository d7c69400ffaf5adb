package handlers

import (
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/retypegame/retype-api/internal/auth"
	"github.com/retypegame/retype-api/internal/logic"
	"github.com/retypegame/retype-api/internal/models"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// TelemetryQueue defines the interface for the session-event worker pool
type TelemetryQueue interface {
	Enqueue(event *models.SessionEvent) bool
	QueueDepth() int
}

type Config struct {
	WorkerPool TelemetryQueue
	Postgres   *pgxpool.Pool
	ClickHouse driver.Conn // nil when the analytics sink is disabled
	Redis      *redis.Client
	Logger     *zap.Logger
	Tokens     *auth.Manager
	Env        string
	// Services
	Accounts     logic.AccountsService
	Scores       logic.ScoresService
	Leaderboard  logic.LeaderboardService
	Users        logic.UsersService
	Achievements logic.AchievementsService
	Testimonials logic.TestimonialsService
	Activity     logic.ActivityService
}

type Handler struct {
	pool         TelemetryQueue
	pg           *pgxpool.Pool
	ch           driver.Conn
	redis        *redis.Client
	logger       *zap.SugaredLogger
	validator    *validator.Validate
	tokens       *auth.Manager
	env          string
	accounts     logic.AccountsService
	scores       logic.ScoresService
	leaderboard  logic.LeaderboardService
	users        logic.UsersService
	achievements logic.AchievementsService
	testimonials logic.TestimonialsService
	activity     logic.ActivityService
}

func New(cfg Config) *Handler {
	return &Handler{
		pool:         cfg.WorkerPool,
		pg:           cfg.Postgres,
		ch:           cfg.ClickHouse,
		redis:        cfg.Redis,
		logger:       cfg.Logger.Sugar(),
		validator:    validator.New(),
		tokens:       cfg.Tokens,
		env:          cfg.Env,
		accounts:     cfg.Accounts,
		scores:       cfg.Scores,
		leaderboard:  cfg.Leaderboard,
		users:        cfg.Users,
		achievements: cfg.Achievements,
		testimonials: cfg.Testimonials,
		activity:     cfg.Activity,
	}
}
