package fsm

// Event is an inbound gateway event already decoded for the state machine
type Event interface {
	event()
}

// StartCommand is the /start command
type StartCommand struct{}

// AdminCommand is the /admin command from an allow-listed chat
type AdminCommand struct{}

// SubscriptionConfirmed is the "subscribed" button tap
type SubscriptionConfirmed struct{}

// SubjectChosen carries the raw subject key from a subject button
type SubjectChosen struct {
	Key string
}

// RateRequested is the admin "rate" button tap
type RateRequested struct{}

// NameText is free text received while awaiting the name
type NameText struct{ Value string }

// SurnameText is free text received while awaiting the surname
type SurnameText struct{ Value string }

// SchoolText is free text received while awaiting the school
type SchoolText struct{ Value string }

// ClassText is free text received while awaiting the class
type ClassText struct{ Value string }

// StudentIDText is free text naming the record to rate
type StudentIDText struct{ Value string }

// ScoreText is free text received while awaiting a score.
// Valid is false when Raw is not a base-10 integer.
type ScoreText struct {
	Raw   string
	Score int
	Valid bool
}

func (StartCommand) event()          {}
func (AdminCommand) event()          {}
func (SubscriptionConfirmed) event() {}
func (SubjectChosen) event()         {}
func (RateRequested) event()         {}
func (NameText) event()              {}
func (SurnameText) event()           {}
func (SchoolText) event()            {}
func (ClassText) event()             {}
func (StudentIDText) event()         {}
func (ScoreText) event()             {}

// AdminOnly reports whether the event may only come from an allow-listed chat
func AdminOnly(ev Event) bool {
	switch ev.(type) {
	case AdminCommand, RateRequested, StudentIDText, ScoreText:
		return true
	default:
		return false
	}
}
