package models

import "time"

// User is the full identity record. PasswordHash is empty for accounts that
// only ever signed in through a federated provider.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Image        string    `json:"image,omitempty"`
	Level        int       `json:"level"`
	Country      string    `json:"country"`
	Rank         int       `json:"rank"` // -1 = unranked
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the enriched projection embedded in session tokens and
// returned by /api/auth/me. The derived fields are recomputed from the full
// typing history on every token refresh.
type PublicUser struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email,omitempty"`
	Image        string  `json:"image,omitempty"`
	Level        int     `json:"level"`
	Country      string  `json:"country"`
	Rank         int     `json:"rank"`
	BestWPM      int     `json:"bestWpm"`
	BestAccuracy float64 `json:"bestAccuracy"`
	TotalTests   int     `json:"totalTests"`
	Streak       int     `json:"streak"`
}

// TypingStat is one immutable record per completed session.
type TypingStat struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	WPM            int       `json:"wpm"`
	Accuracy       float64   `json:"accuracy"`
	TimeElapsed    int       `json:"timeElapsed"`
	WordsCompleted int       `json:"wordsCompleted"`
	Mode           string    `json:"mode"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UserStats is the mutable per-user aggregate, upserted on every submission.
type UserStats struct {
	UserID       string    `json:"userId"`
	BestWPM      int       `json:"bestWpm"`
	BestAccuracy float64   `json:"bestAccuracy"`
	TotalTests   int       `json:"totalTests"`
	Streak       int       `json:"streak"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LeaderboardRow is the best-ever projection, at most one row per user.
// CreatedAt is written on first insert and never touched by later upserts;
// the time-windowed listings filter on it as-is.
type LeaderboardRow struct {
	UserID    string    `json:"userId"`
	WPM       int       `json:"wpm"`
	Accuracy  float64   `json:"accuracy"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"createdAt"`
}

// LeaderboardUser is the minimal public projection joined into listings.
type LeaderboardUser struct {
	Username   string `json:"username"`
	Image      string `json:"image,omitempty"`
	Country    string `json:"country"`
	Level      int    `json:"level"`
	Streak     int    `json:"streak"`
	TotalTests int    `json:"totalTests"`
}

// LeaderboardEntry is one row of a windowed listing. Rank is the 1-based
// position within the filtered result set, not the cached global rank.
type LeaderboardEntry struct {
	UserID    string          `json:"userId"`
	WPM       int             `json:"wpm"`
	Accuracy  float64         `json:"accuracy"`
	Mode      string          `json:"mode"`
	Rank      int             `json:"rank"`
	CreatedAt time.Time       `json:"createdAt"`
	User      LeaderboardUser `json:"user"`
}

// Achievement rows with a null UnlockedAt are displayed locked.
type Achievement struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AchievedAt  time.Time  `json:"achievedAt"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

// Testimonial is free-standing feedback, optionally tied to a user.
type Testimonial struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"userId,omitempty"`
	UserName  string    `json:"userName"`
	Role      string    `json:"role"`
	Image     string    `json:"image"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserOverview is the /api/users/overview payload.
type UserOverview struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	Level        int           `json:"level"`
	Country      string        `json:"country"`
	Stats        []TypingStat  `json:"stats"`
	Achievements []Achievement `json:"achievements"`
}

// RankResult is the /api/leaderboard/rank payload.
type RankResult struct {
	UserID  string `json:"userId"`
	BestWPM int    `json:"bestWpm"`
	Rank    int    `json:"rank"`
}
