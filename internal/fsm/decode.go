package fsm

import (
	"strconv"
	"strings"

	"olympiadbot/internal/domain"
)

// DecodeText turns a free-text message into the event its phase expects.
// It returns nil when the phase does not consume text.
func DecodeText(phase domain.Phase, text string) Event {
	switch phase {
	case domain.PhaseAwaitingName:
		return NameText{Value: text}
	case domain.PhaseAwaitingSurname:
		return SurnameText{Value: text}
	case domain.PhaseAwaitingSchool:
		return SchoolText{Value: text}
	case domain.PhaseAwaitingClass:
		return ClassText{Value: text}
	case domain.PhaseAdminPanel, domain.PhaseAwaitingStudentID:
		return StudentIDText{Value: text}
	case domain.PhaseAwaitingRating:
		score, err := strconv.Atoi(strings.TrimSpace(text))
		return ScoreText{Raw: text, Score: score, Valid: err == nil}
	default:
		return nil
	}
}
