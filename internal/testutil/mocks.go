package testutil

import (
	"time"

	"olympiadbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRecordRepository is a mock for RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Append(record domain.Record) (int, error) {
	args := m.Called(record)
	return args.Int(0), args.Error(1)
}

func (m *MockRecordRepository) FindByID(id int) (*domain.Record, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockRecordRepository) UpdateScore(id, score int) error {
	args := m.Called(id, score)
	return args.Error(0)
}

func (m *MockRecordRepository) All() ([]domain.Record, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}

// MockSessionRepository is a mock for SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Get(chatID int64) (*domain.Session, bool) {
	args := m.Called(chatID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Session), args.Bool(1)
}

func (m *MockSessionRepository) Set(chatID int64, session *domain.Session) {
	m.Called(chatID, session)
}

func (m *MockSessionRepository) Remove(chatID int64) {
	m.Called(chatID)
}

func (m *MockSessionRepository) EvictIdle(cutoff time.Time) int {
	args := m.Called(cutoff)
	return args.Int(0)
}
