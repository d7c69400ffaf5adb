package models

import "time"

// EventType identifies a telemetry event emitted by the typing client.
type EventType string

const (
	EventSessionStarted  EventType = "session_started"
	EventWordCompleted   EventType = "word_completed"
	EventSessionFinished EventType = "session_finished"
	EventScoreSubmitted  EventType = "score_submitted"
)

// SessionEvent is the incoming telemetry event from clients. Events are
// batched into the analytics store and drive the achievement counters; they
// are never authoritative for scores.
type SessionEvent struct {
	Type           EventType `json:"type" validate:"required"`
	UserID         string    `json:"user_id"`
	SessionID      string    `json:"session_id" validate:"required"`
	Mode           string    `json:"mode,omitempty"`
	WPM            int       `json:"wpm,omitempty"`
	Accuracy       float64   `json:"accuracy,omitempty"`
	WordsCompleted int       `json:"words_completed,omitempty"`
	TimeElapsed    int       `json:"time_elapsed,omitempty"`
	Timestamp      time.Time `json:"timestamp,omitempty"`
}

// ActivityEntry is one element of the recent-activity feed kept in Redis.
type ActivityEntry struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	WPM       int       `json:"wpm"`
	Accuracy  float64   `json:"accuracy"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"createdAt"`
}
