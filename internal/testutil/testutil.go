package testutil

import (
	"olympiadbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestDraft creates a complete draft for the given subject
func NewTestDraft(subject string) domain.Draft {
	return domain.Draft{
		Name:    "Aziz",
		Surname: "Karimov",
		School:  "21-maktab",
		Class:   "9A",
		Subject: subject,
	}
}

// NewTestRecord creates a test record
func NewTestRecord(id int, chatID int64, subject string) domain.Record {
	return domain.Record{
		ID:      id,
		ChatID:  chatID,
		Name:    "Aziz",
		Surname: "Karimov",
		School:  "21-maktab",
		Class:   "9A",
		Subject: subject,
	}
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}
