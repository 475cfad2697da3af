package service

import (
	"errors"

	"olympiadbot/internal/domain"
	"olympiadbot/internal/fsm"
	"olympiadbot/internal/repository"

	"go.uber.org/zap"
)

// ConversationService runs the state machine against the session table
// and executes the store effects it requests
type ConversationService struct {
	sessions      repository.SessionRepository
	registrations *RegistrationService
	logger        *zap.Logger
}

// NewConversationService creates a new conversation service
func NewConversationService(
	sessions repository.SessionRepository,
	registrations *RegistrationService,
	logger *zap.Logger,
) *ConversationService {
	return &ConversationService{
		sessions:      sessions,
		registrations: registrations,
		logger:        logger,
	}
}

// Phase returns the chat's current phase, empty when nothing is tracked
func (s *ConversationService) Phase(chatID int64) domain.Phase {
	current, ok := s.sessions.Get(chatID)
	if !ok {
		return ""
	}
	return current.Phase
}

// Dispatch applies an event to the chat's conversation and returns the reply to send.
// When a store effect fails the next state is not committed, so the step can be retried.
func (s *ConversationService) Dispatch(chatID int64, ev fsm.Event) fsm.Reply {
	current, _ := s.sessions.Get(chatID)
	out := fsm.Transition(current, ev)

	reply := out.Reply
	if out.Effect != nil {
		var err error
		reply, err = s.apply(chatID, out)
		if err != nil {
			s.logger.Error("Failed to apply conversation effect",
				zap.Int64("chat_id", chatID),
				zap.String("phase", string(phaseOf(current))),
				zap.Error(err),
			)
			return fsm.Reply{Prompt: fsm.PromptFailure}
		}
	}

	switch {
	case out.Remove:
		s.sessions.Remove(chatID)
	case out.Session != nil:
		s.sessions.Set(chatID, out.Session)
	}

	if out.Changed() {
		s.logger.Debug("Conversation transition",
			zap.Int64("chat_id", chatID),
			zap.String("from", string(phaseOf(current))),
			zap.String("to", string(phaseOf(out.Session))),
		)
	}
	return reply
}

func (s *ConversationService) apply(chatID int64, out fsm.Outcome) (fsm.Reply, error) {
	switch e := out.Effect.(type) {
	case fsm.SaveRecord:
		record, err := s.registrations.Register(chatID, e.Draft)
		if err != nil {
			return fsm.Reply{}, err
		}
		return fsm.Reply{Prompt: fsm.PromptRegistered, RecordID: record.ID, Subject: record.Subject}, nil

	case fsm.RateRecord:
		err := s.registrations.Rate(e.StudentID, e.Score)
		if errors.Is(err, repository.ErrRecordNotFound) {
			s.logger.Info("Rating target not found",
				zap.Int64("chat_id", chatID),
				zap.String("student_id", e.StudentID),
			)
			return fsm.Reply{Prompt: fsm.PromptStudentNotFound}, nil
		}
		if err != nil {
			return fsm.Reply{}, err
		}
		return out.Reply, nil
	}
	return out.Reply, nil
}

func phaseOf(s *domain.Session) domain.Phase {
	if s == nil {
		return ""
	}
	return s.Phase
}
