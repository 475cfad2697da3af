package fsm

import (
	"testing"

	"olympiadbot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func session(phase domain.Phase) *domain.Session {
	return &domain.Session{Phase: phase}
}

func TestTransition_LinearFlow(t *testing.T) {
	var current *domain.Session

	steps := []struct {
		event  Event
		phase  domain.Phase
		prompt Prompt
	}{
		{StartCommand{}, domain.PhaseStart, PromptSubscribe},
		{SubscriptionConfirmed{}, domain.PhaseAwaitingName, PromptAskName},
		{NameText{Value: "Aziz"}, domain.PhaseAwaitingSurname, PromptAskSurname},
		{SurnameText{Value: "Karimov"}, domain.PhaseAwaitingSchool, PromptAskSchool},
		{SchoolText{Value: "21-maktab"}, domain.PhaseAwaitingClass, PromptAskClass},
		{ClassText{Value: "9A"}, domain.PhaseAwaitingSubject, PromptChooseSubject},
		{SubjectChosen{Key: "it"}, domain.PhaseFinished, PromptRegistered},
	}

	var last Outcome
	for _, step := range steps {
		last = Transition(current, step.event)
		require.NotNil(t, last.Session)
		assert.Equal(t, step.phase, last.Session.Phase)
		assert.Equal(t, step.prompt, last.Reply.Prompt)
		current = last.Session
	}

	save, ok := last.Effect.(SaveRecord)
	require.True(t, ok)
	assert.Equal(t, domain.Draft{
		Name:    "Aziz",
		Surname: "Karimov",
		School:  "21-maktab",
		Class:   "9A",
		Subject: "it",
	}, save.Draft)
	assert.Equal(t, "it", last.Reply.Subject)
}

func TestTransition_DoesNotModifyCurrent(t *testing.T) {
	current := session(domain.PhaseAwaitingName)

	out := Transition(current, NameText{Value: "Aziz"})

	assert.Equal(t, domain.PhaseAwaitingName, current.Phase)
	assert.Empty(t, current.Draft.Name)
	assert.Equal(t, "Aziz", out.Session.Draft.Name)
}

func TestTransition_RepeatStartWhenFinished(t *testing.T) {
	finished := &domain.Session{
		Phase: domain.PhaseFinished,
		Draft: domain.Draft{Name: "Aziz", Subject: "math"},
	}

	for i := 0; i < 2; i++ {
		out := Transition(finished, StartCommand{})
		assert.Equal(t, PromptAlreadyRegistered, out.Reply.Prompt)
		assert.False(t, out.Changed())
		assert.Nil(t, out.Effect)
	}
	assert.Equal(t, "Aziz", finished.Draft.Name)
}

func TestTransition_StartRestartsUnfinishedFlow(t *testing.T) {
	current := &domain.Session{Phase: domain.PhaseAwaitingSchool, Draft: domain.Draft{Name: "Aziz"}}

	out := Transition(current, StartCommand{})

	require.NotNil(t, out.Session)
	assert.Equal(t, domain.PhaseStart, out.Session.Phase)
	assert.Empty(t, out.Session.Draft.Name)
}

func TestTransition_Inert(t *testing.T) {
	tests := []struct {
		name    string
		current *domain.Session
		event   Event
	}{
		{name: "text without state", current: nil, event: NameText{Value: "x"}},
		{name: "confirm without state", current: nil, event: SubscriptionConfirmed{}},
		{name: "confirm outside start", current: session(domain.PhaseAwaitingClass), event: SubscriptionConfirmed{}},
		{name: "subject outside awaiting_subject", current: session(domain.PhaseFinished), event: SubjectChosen{Key: "math"}},
		{name: "surname while awaiting name", current: session(domain.PhaseAwaitingName), event: SurnameText{Value: "x"}},
		{name: "score outside rating", current: session(domain.PhaseAdminPanel), event: ScoreText{Valid: true, Score: 1}},
		{name: "student id while finished", current: session(domain.PhaseFinished), event: StudentIDText{Value: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Transition(tt.current, tt.event)
			assert.False(t, out.Changed())
			assert.Equal(t, PromptNone, out.Reply.Prompt)
			assert.Nil(t, out.Effect)
		})
	}
}

func TestTransition_UnknownSubjectReprompts(t *testing.T) {
	current := session(domain.PhaseAwaitingSubject)

	out := Transition(current, SubjectChosen{Key: "physics"})

	assert.False(t, out.Changed())
	assert.Equal(t, PromptChooseSubject, out.Reply.Prompt)
	assert.Nil(t, out.Effect)
}

func TestTransition_SubjectKeyIsNormalized(t *testing.T) {
	out := Transition(session(domain.PhaseAwaitingSubject), SubjectChosen{Key: "MATH"})

	save, ok := out.Effect.(SaveRecord)
	require.True(t, ok)
	assert.Equal(t, "math", save.Draft.Subject)
}

func TestTransition_AdminPanel(t *testing.T) {
	finished := &domain.Session{Phase: domain.PhaseFinished, Draft: domain.Draft{Name: "Aziz"}}

	out := Transition(finished, AdminCommand{})
	require.NotNil(t, out.Session)
	assert.Equal(t, domain.PhaseAdminPanel, out.Session.Phase)
	assert.Equal(t, "Aziz", out.Session.Draft.Name)
	assert.Equal(t, PromptAdminPanel, out.Reply.Prompt)

	out = Transition(nil, AdminCommand{})
	require.NotNil(t, out.Session)
	assert.Equal(t, domain.PhaseAdminPanel, out.Session.Phase)
}

func TestTransition_RatingFlow(t *testing.T) {
	out := Transition(session(domain.PhaseAdminPanel), RateRequested{})
	require.NotNil(t, out.Session)
	assert.Equal(t, domain.PhaseAwaitingStudentID, out.Session.Phase)
	assert.Equal(t, PromptAskStudentID, out.Reply.Prompt)

	out = Transition(out.Session, StudentIDText{Value: "1"})
	require.NotNil(t, out.Session)
	assert.Equal(t, domain.PhaseAwaitingRating, out.Session.Phase)
	assert.Equal(t, "1", out.Session.StudentIDToRate)
	assert.Equal(t, PromptAskScore, out.Reply.Prompt)
	rating := out.Session

	out = Transition(rating, ScoreText{Raw: "abc"})
	assert.False(t, out.Changed())
	assert.Equal(t, PromptScoreNotNumber, out.Reply.Prompt)
	assert.Nil(t, out.Effect)

	out = Transition(rating, ScoreText{Raw: "7", Score: 7, Valid: true})
	assert.True(t, out.Remove)
	assert.Nil(t, out.Session)
	assert.Equal(t, PromptScoreSaved, out.Reply.Prompt)
	assert.Equal(t, RateRecord{StudentID: "1", Score: 7}, out.Effect)
}

func TestTransition_AdminPanelTextIsStudentID(t *testing.T) {
	out := Transition(session(domain.PhaseAdminPanel), StudentIDText{Value: "3"})

	require.NotNil(t, out.Session)
	assert.Equal(t, domain.PhaseAwaitingRating, out.Session.Phase)
	assert.Equal(t, "3", out.Session.StudentIDToRate)
}

func TestAdminOnly(t *testing.T) {
	assert.True(t, AdminOnly(AdminCommand{}))
	assert.True(t, AdminOnly(RateRequested{}))
	assert.True(t, AdminOnly(StudentIDText{}))
	assert.True(t, AdminOnly(ScoreText{}))
	assert.False(t, AdminOnly(StartCommand{}))
	assert.False(t, AdminOnly(NameText{}))
	assert.False(t, AdminOnly(SubjectChosen{}))
}
