package domain

// Phase is the current step of a chat's conversation
type Phase string

const (
	PhaseStart             Phase = "start"
	PhaseAwaitingName      Phase = "awaiting_name"
	PhaseAwaitingSurname   Phase = "awaiting_surname"
	PhaseAwaitingSchool    Phase = "awaiting_school"
	PhaseAwaitingClass     Phase = "awaiting_class"
	PhaseAwaitingSubject   Phase = "awaiting_subject"
	PhaseFinished          Phase = "finished"
	PhaseAdminPanel        Phase = "admin_panel"
	PhaseAwaitingStudentID Phase = "awaiting_student_id_for_rating"
	PhaseAwaitingRating    Phase = "awaiting_rating"
)

// Draft holds registrant fields collected so far
type Draft struct {
	Name    string
	Surname string
	School  string
	Class   string
	Subject string
}

// Session is the in-flight conversation state of one chat
type Session struct {
	Phase           Phase
	Draft           Draft
	StudentIDToRate string
}

// Clone returns an independent copy
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Finished reports whether the registration flow completed for this chat
func (s *Session) Finished() bool {
	return s != nil && s.Phase == PhaseFinished
}
