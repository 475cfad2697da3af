package fsm

// Prompt names an outbound message; rendering lives with the gateway
type Prompt int

const (
	PromptNone Prompt = iota
	PromptAlreadyRegistered
	PromptSubscribe
	PromptAskName
	PromptAskSurname
	PromptAskSchool
	PromptAskClass
	PromptChooseSubject
	PromptRegistered
	PromptAdminPanel
	PromptAskStudentID
	PromptAskScore
	PromptScoreNotNumber
	PromptScoreSaved
	PromptStudentNotFound
	PromptPermissionDenied
	PromptNoParticipants
	PromptFailure
)

var promptNames = map[Prompt]string{
	PromptNone:              "none",
	PromptAlreadyRegistered: "already_registered",
	PromptSubscribe:         "subscribe",
	PromptAskName:           "ask_name",
	PromptAskSurname:        "ask_surname",
	PromptAskSchool:         "ask_school",
	PromptAskClass:          "ask_class",
	PromptChooseSubject:     "choose_subject",
	PromptRegistered:        "registered",
	PromptAdminPanel:        "admin_panel",
	PromptAskStudentID:      "ask_student_id",
	PromptAskScore:          "ask_score",
	PromptScoreNotNumber:    "score_not_number",
	PromptScoreSaved:        "score_saved",
	PromptStudentNotFound:   "student_not_found",
	PromptPermissionDenied:  "permission_denied",
	PromptNoParticipants:    "no_participants",
	PromptFailure:           "failure",
}

func (p Prompt) String() string {
	if name, ok := promptNames[p]; ok {
		return name
	}
	return "unknown"
}

// Reply is what the chat should receive after an event
type Reply struct {
	Prompt   Prompt
	RecordID int
	Subject  string
}
