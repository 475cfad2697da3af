package fsm

import "olympiadbot/internal/domain"

// Effect is a record store mutation requested by a transition
type Effect interface {
	effect()
}

// SaveRecord promotes a finished draft to a persisted record
type SaveRecord struct {
	Draft domain.Draft
}

// RateRecord sets the score of the record whose id is StudentID
type RateRecord struct {
	StudentID string
	Score     int
}

func (SaveRecord) effect() {}
func (RateRecord) effect() {}

// Outcome is the result of applying one event to a conversation.
// Session nil with Remove false leaves the state table untouched.
// Reply with PromptNone sends nothing.
type Outcome struct {
	Session *domain.Session
	Remove  bool
	Reply   Reply
	Effect  Effect
}

// Changed reports whether the outcome touches the state table
func (o Outcome) Changed() bool {
	return o.Session != nil || o.Remove
}

func say(p Prompt) Outcome {
	return Outcome{Reply: Reply{Prompt: p}}
}

// Transition computes the next conversation state for an event.
// The current session is never modified; a nil session means the chat has no tracked state.
// Every (state, event) pair has an outcome, most unmapped pairs are silent no-ops.
func Transition(current *domain.Session, ev Event) Outcome {
	switch ev.(type) {
	case StartCommand:
		if current.Finished() {
			return say(PromptAlreadyRegistered)
		}
		return Outcome{
			Session: &domain.Session{Phase: domain.PhaseStart},
			Reply:   Reply{Prompt: PromptSubscribe},
		}
	case AdminCommand:
		next := current.Clone()
		if next == nil {
			next = &domain.Session{}
		}
		next.Phase = domain.PhaseAdminPanel
		return Outcome{Session: next, Reply: Reply{Prompt: PromptAdminPanel}}
	case RateRequested:
		return Outcome{
			Session: &domain.Session{Phase: domain.PhaseAwaitingStudentID},
			Reply:   Reply{Prompt: PromptAskStudentID},
		}
	}

	if current == nil {
		return Outcome{}
	}
	next := current.Clone()

	switch e := ev.(type) {
	case SubscriptionConfirmed:
		if current.Phase != domain.PhaseStart {
			return Outcome{}
		}
		next.Phase = domain.PhaseAwaitingName
		return Outcome{Session: next, Reply: Reply{Prompt: PromptAskName}}

	case NameText:
		if current.Phase != domain.PhaseAwaitingName {
			return Outcome{}
		}
		next.Draft.Name = e.Value
		next.Phase = domain.PhaseAwaitingSurname
		return Outcome{Session: next, Reply: Reply{Prompt: PromptAskSurname}}

	case SurnameText:
		if current.Phase != domain.PhaseAwaitingSurname {
			return Outcome{}
		}
		next.Draft.Surname = e.Value
		next.Phase = domain.PhaseAwaitingSchool
		return Outcome{Session: next, Reply: Reply{Prompt: PromptAskSchool}}

	case SchoolText:
		if current.Phase != domain.PhaseAwaitingSchool {
			return Outcome{}
		}
		next.Draft.School = e.Value
		next.Phase = domain.PhaseAwaitingClass
		return Outcome{Session: next, Reply: Reply{Prompt: PromptAskClass}}

	case ClassText:
		if current.Phase != domain.PhaseAwaitingClass {
			return Outcome{}
		}
		next.Draft.Class = e.Value
		next.Phase = domain.PhaseAwaitingSubject
		return Outcome{Session: next, Reply: Reply{Prompt: PromptChooseSubject}}

	case SubjectChosen:
		if current.Phase != domain.PhaseAwaitingSubject {
			return Outcome{}
		}
		subject, ok := domain.ParseSubject(e.Key)
		if !ok {
			return say(PromptChooseSubject)
		}
		next.Draft.Subject = string(subject)
		next.Phase = domain.PhaseFinished
		return Outcome{
			Session: next,
			Reply:   Reply{Prompt: PromptRegistered, Subject: string(subject)},
			Effect:  SaveRecord{Draft: next.Draft},
		}

	case StudentIDText:
		if current.Phase != domain.PhaseAdminPanel && current.Phase != domain.PhaseAwaitingStudentID {
			return Outcome{}
		}
		next.StudentIDToRate = e.Value
		next.Phase = domain.PhaseAwaitingRating
		return Outcome{Session: next, Reply: Reply{Prompt: PromptAskScore}}

	case ScoreText:
		if current.Phase != domain.PhaseAwaitingRating {
			return Outcome{}
		}
		if !e.Valid {
			return say(PromptScoreNotNumber)
		}
		return Outcome{
			Remove: true,
			Reply:  Reply{Prompt: PromptScoreSaved},
			Effect: RateRecord{StudentID: current.StudentIDToRate, Score: e.Score},
		}
	}

	return Outcome{}
}
