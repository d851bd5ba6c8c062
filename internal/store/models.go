package store

import (
	"encoding/json"
	"time"
)

type User struct {
	ID          string
	Email       string
	DisplayName string
	CreatedAt   time.Time
}

type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Document is one JSON record addressed by (user, collection, id).
type Document struct {
	UserID     string
	Collection string
	ID         string
	Data       json.RawMessage
	UpdatedAt  time.Time
}

// FocusCycle is one completed focus phase.
type FocusCycle struct {
	ID          int64
	UserID      string
	Seconds     int
	Cycle       int // focus cycles completed in the session, this one included
	CompletedAt time.Time
}

// DailyFocus aggregates completed focus phases per day.
type DailyFocus struct {
	Date         string
	Cycles       int
	TotalSeconds int64
}

// timestampLayout has fixed-width fractions so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"
