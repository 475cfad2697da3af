package domain

// Record is a completed registration persisted in the record store.
// JSON names match the data.json layout written by earlier versions of the bot:
// "id" is the chat and "userId" is the ordinal assigned at persist time.
type Record struct {
	ID      int    `json:"userId"`
	ChatID  int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	School  string `json:"school"`
	Class   string `json:"class"`
	Subject string `json:"subject"`
	Score   *int   `json:"score,omitempty"`
}

// HasScore reports whether an administrator has rated the record
func (r Record) HasScore() bool {
	return r.Score != nil
}
