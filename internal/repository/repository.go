package repository

import (
	"errors"
	"time"

	"olympiadbot/internal/domain"
)

// ErrRecordNotFound is returned when no record has the requested id
var ErrRecordNotFound = errors.New("record not found")

// RecordRepository defines registrant record operations
type RecordRepository interface {
	// Append persists a record and returns its assigned id (store size + 1)
	Append(record domain.Record) (int, error)
	// FindByID returns nil, nil when the id is unknown
	FindByID(id int) (*domain.Record, error)
	// UpdateScore overwrites the score, returning ErrRecordNotFound for unknown ids
	UpdateScore(id, score int) error
	// All returns a snapshot of every record in id order
	All() ([]domain.Record, error)
}

// SessionRepository defines conversation state operations
type SessionRepository interface {
	// Get returns a copy of the chat's session
	Get(chatID int64) (*domain.Session, bool)
	Set(chatID int64, session *domain.Session)
	Remove(chatID int64)
	// EvictIdle removes unfinished sessions not touched since the cutoff
	EvictIdle(cutoff time.Time) int
}
