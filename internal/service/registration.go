package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"olympiadbot/internal/domain"
	"olympiadbot/internal/repository"

	"go.uber.org/zap"
)

// ErrIncompleteDraft is returned when a draft misses a field or has an unknown subject
var ErrIncompleteDraft = errors.New("registration draft is incomplete")

// RegistrationService promotes drafts to records and scores them
type RegistrationService struct {
	records repository.RecordRepository
	logger  *zap.Logger
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(records repository.RecordRepository, logger *zap.Logger) *RegistrationService {
	return &RegistrationService{
		records: records,
		logger:  logger,
	}
}

// Register persists a finished draft and returns the stored record
func (s *RegistrationService) Register(chatID int64, draft domain.Draft) (domain.Record, error) {
	if draft.Name == "" || draft.Surname == "" || draft.School == "" || draft.Class == "" {
		return domain.Record{}, ErrIncompleteDraft
	}
	subject, ok := domain.ParseSubject(draft.Subject)
	if !ok {
		return domain.Record{}, fmt.Errorf("%w: subject %q", ErrIncompleteDraft, draft.Subject)
	}

	record := domain.Record{
		ChatID:  chatID,
		Name:    draft.Name,
		Surname: draft.Surname,
		School:  draft.School,
		Class:   draft.Class,
		Subject: string(subject),
	}

	id, err := s.records.Append(record)
	if err != nil {
		return domain.Record{}, fmt.Errorf("append record: %w", err)
	}
	record.ID = id

	s.logger.Info("Registrant saved",
		zap.Int64("chat_id", chatID),
		zap.Int("record_id", id),
		zap.String("subject", record.Subject),
	)
	return record, nil
}

// Rate sets the score of the record named by rawID.
// An id that does not parse is reported as repository.ErrRecordNotFound.
func (s *RegistrationService) Rate(rawID string, score int) error {
	id, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		return repository.ErrRecordNotFound
	}

	if err := s.records.UpdateScore(id, score); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return err
		}
		return fmt.Errorf("update score: %w", err)
	}

	s.logger.Info("Score saved", zap.Int("record_id", id), zap.Int("score", score))
	return nil
}
