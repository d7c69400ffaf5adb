package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/retypegame/retype-api/internal/models"
)

const bcryptCost = 10

// AccountsService resolves credentials and federated profiles into user
// records and builds the enriched session projection.
type AccountsService interface {
	Signup(ctx context.Context, username, password, email string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	FederatedSignIn(ctx context.Context, email, name, image string) (*models.User, error)
	EnrichedUser(ctx context.Context, userID, email string) (*models.PublicUser, error)
}

type accountsService struct {
	pg     PgPool
	logger *zap.SugaredLogger
}

func NewAccountsService(pg PgPool, logger *zap.SugaredLogger) AccountsService {
	return &accountsService{pg: pg, logger: logger}
}

func (s *accountsService) Signup(ctx context.Context, username, password, email string) (*models.User, error) {
	var existing string
	err := s.pg.QueryRow(ctx, `SELECT id FROM users WHERE username = $1`, username).Scan(&existing)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("username lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
		Level:    1,
		Rank:     -1,
	}
	var emailArg any
	if email != "" {
		emailArg = email
	}
	err = s.pg.QueryRow(ctx, `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, user.ID, username, emailArg, string(hash)).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Infow("User signed up", "userId", user.ID, "username", username)
	return user, nil
}

func (s *accountsService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userBy(ctx, "username", username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	// federated-only accounts carry the empty-hash sentinel
	if user.PasswordHash == "" {
		return nil, ErrFederatedOnly
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// FederatedSignIn upserts a user keyed by the verified email claim. Repeat
// sign-ins refresh username and image; first sign-in creates the account
// with no local password.
func (s *accountsService) FederatedSignIn(ctx context.Context, email, name, image string) (*models.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	username := name
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}

	user := &models.User{Email: email, Username: username, Image: image}
	err := s.pg.QueryRow(ctx, `
		INSERT INTO users (id, username, email, password_hash, image)
		VALUES ($1, $2, $3, '', $4)
		ON CONFLICT (email) DO UPDATE
		SET username = EXCLUDED.username, image = EXCLUDED.image, updated_at = now()
		RETURNING id, level, country, rank, created_at, updated_at
	`, uuid.NewString(), username, email, image).Scan(
		&user.ID, &user.Level, &user.Country, &user.Rank, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("federated upsert: %w", err)
	}

	s.logger.Infow("Federated sign-in", "userId", user.ID, "email", email)
	return user, nil
}

// EnrichedUser re-reads the canonical user row and recomputes the derived
// fields from the full typing history, not from the cached aggregate.
func (s *accountsService) EnrichedUser(ctx context.Context, userID, email string) (*models.PublicUser, error) {
	var (
		user *models.User
		err  error
	)
	if userID != "" {
		user, err = s.userBy(ctx, "id", userID)
	} else {
		user, err = s.userBy(ctx, "email", email)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.pg.Query(ctx, `
		SELECT wpm, accuracy, created_at
		FROM typing_stats
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, user.ID)
	if err != nil {
		return nil, fmt.Errorf("history scan: %w", err)
	}
	defer rows.Close()

	var (
		bestWpm      int
		bestAccuracy float64
		total        int
		createdAts   []time.Time
	)
	for rows.Next() {
		var (
			wpm       int
			accuracy  float64
			createdAt time.Time
		)
		if err := rows.Scan(&wpm, &accuracy, &createdAt); err != nil {
			return nil, fmt.Errorf("history row: %w", err)
		}
		if wpm > bestWpm {
			bestWpm = wpm
		}
		if accuracy > bestAccuracy {
			bestAccuracy = accuracy
		}
		total++
		createdAts = append(createdAts, createdAt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history rows: %w", err)
	}

	return &models.PublicUser{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Image:        user.Image,
		Level:        user.Level,
		Country:      user.Country,
		Rank:         user.Rank,
		BestWPM:      bestWpm,
		BestAccuracy: bestAccuracy,
		TotalTests:   total,
		Streak:       ComputeStreak(createdAts),
	}, nil
}

// ComputeStreak counts consecutive calendar days with at least one session,
// walking timestamps from newest to oldest. A gap of exactly one day
// extends the streak, a larger gap ends the walk, and a repeat of the same
// day carries the count forward unchanged.
func ComputeStreak(createdAts []time.Time) int {
	streak := 0
	var lastDay time.Time

	for i, createdAt := range createdAts {
		day := toDay(createdAt)
		if i == 0 {
			streak = 1
		} else {
			diff := int(lastDay.Sub(day).Hours() / 24)
			if diff == 1 {
				streak++
			} else if diff > 1 {
				break
			}
		}
		lastDay = day
	}
	return streak
}

func toDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *accountsService) userBy(ctx context.Context, column, value string) (*models.User, error) {
	var (
		user  models.User
		email *string
		image *string
	)
	query := fmt.Sprintf(`
		SELECT id, username, email, password_hash, image, level, country, rank, created_at, updated_at
		FROM users WHERE %s = $1
	`, column)
	err := s.pg.QueryRow(ctx, query, value).Scan(
		&user.ID, &user.Username, &email, &user.PasswordHash, &image,
		&user.Level, &user.Country, &user.Rank, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if email != nil {
		user.Email = *email
	}
	if image != nil {
		user.Image = *image
	}
	return &user, nil
}
