package handler

import (
	"olympiadbot/internal/fsm"

	"go.uber.org/zap"
)

// Commands
const (
	CommandStart = "/start"
	CommandAdmin = "/admin"
)

// HandleCommand handles /start and /admin
func (h *Handler) HandleCommand(chatID int64, command string) {
	unlock := h.lockChat(chatID)
	defer unlock()

	h.logger.Info("Command received",
		zap.Int64("chat_id", chatID),
		zap.String("command", command),
	)

	switch command {
	case CommandStart:
		h.dispatch(chatID, fsm.StartCommand{})
	case CommandAdmin:
		h.dispatch(chatID, fsm.AdminCommand{})
	default:
		h.logger.Debug("Unknown command", zap.String("command", command))
	}
}
