package handler

// Button is one inline keyboard button.
// A button with URL set opens a link, otherwise tapping it sends Action and Payload back as a callback.
type Button struct {
	Label   string
	Action  string
	Payload string
	URL     string
}

// Gateway delivers outbound messages to a chat
type Gateway interface {
	// SendText sends a message, buttons are laid out one slice per row
	SendText(chatID int64, text string, buttons [][]Button) error
	// SendDocument uploads the file at path under the given name
	SendDocument(chatID int64, path, fileName string) error
}
