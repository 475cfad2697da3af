package service

import (
	"time"

	"olympiadbot/internal/repository"

	"go.uber.org/zap"
)

// CleanupService evicts conversations abandoned mid-flow
type CleanupService struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(sessions repository.SessionRepository, ttl time.Duration, logger *zap.Logger) *CleanupService {
	return &CleanupService{
		sessions: sessions,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// EvictAbandoned removes unfinished sessions idle for longer than the TTL
func (s *CleanupService) EvictAbandoned() int {
	cutoff := s.now().Add(-s.ttl)
	evicted := s.sessions.EvictIdle(cutoff)

	if evicted > 0 {
		s.logger.Info("Evicted abandoned conversations",
			zap.Int("count", evicted),
			zap.Duration("ttl", s.ttl),
		)
	}
	return evicted
}
