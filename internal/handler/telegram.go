package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Sender is the part of *tele.Bot the gateway needs
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// TeleGateway delivers messages through the Telegram Bot API
type TeleGateway struct {
	sender Sender
}

// NewTeleGateway creates a gateway over a telebot sender
func NewTeleGateway(sender Sender) *TeleGateway {
	return &TeleGateway{sender: sender}
}

// SendText sends a message with an optional inline keyboard
func (g *TeleGateway) SendText(chatID int64, text string, buttons [][]Button) error {
	if len(buttons) == 0 {
		_, err := g.sender.Send(tele.ChatID(chatID), text)
		return err
	}
	_, err := g.sender.Send(tele.ChatID(chatID), text, inlineMarkup(buttons))
	return err
}

// SendDocument uploads a local file
func (g *TeleGateway) SendDocument(chatID int64, path, fileName string) error {
	doc := &tele.Document{
		File:     tele.FromDisk(path),
		FileName: fileName,
	}
	_, err := g.sender.Send(tele.ChatID(chatID), doc)
	return err
}

// inlineMarkup builds the inline keyboard, callback buttons carry "\f<action>|<payload>"
func inlineMarkup(buttons [][]Button) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(buttons))
	for _, line := range buttons {
		row := make([]tele.Btn, 0, len(line))
		for _, b := range line {
			if b.URL != "" {
				row = append(row, markup.URL(b.Label, b.URL))
				continue
			}
			if b.Payload != "" {
				row = append(row, markup.Data(b.Label, b.Action, b.Payload))
			} else {
				row = append(row, markup.Data(b.Label, b.Action))
			}
		}
		rows = append(rows, markup.Row(row...))
	}
	markup.Inline(rows...)
	return markup
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers(bot *tele.Bot) {
	// Commands
	bot.Handle(CommandStart, func(c tele.Context) error {
		h.HandleCommand(chatIDOf(c), CommandStart)
		return nil
	})
	bot.Handle(CommandAdmin, func(c tele.Context) error {
		h.HandleCommand(chatIDOf(c), CommandAdmin)
		return nil
	})

	// Text messages
	bot.Handle(tele.OnText, func(c tele.Context) error {
		h.HandleText(chatIDOf(c), c.Text())
		return nil
	})

	// Generic callback handler for all inline buttons
	bot.Handle(tele.OnCallback, h.onCallback)
}

func (h *Handler) onCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("onCallback: callback is nil")
		return nil
	}

	// Acknowledge before handling
	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}

	data := callback.Data
	if callback.Unique != "" {
		data = callback.Unique + callbackDelimiter + callback.Data
	}
	h.HandleCallback(chatIDOf(c), data)
	return nil
}

// chatIDOf returns the conversation identity of an update
func chatIDOf(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	if sender := c.Sender(); sender != nil {
		return sender.ID
	}
	return 0
}
