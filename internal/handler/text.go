package handler

import (
	"strings"

	"olympiadbot/internal/fsm"

	"go.uber.org/zap"
)

// HandleText handles free-text messages based on the chat's phase
func (h *Handler) HandleText(chatID int64, text string) {
	trimmed := strings.TrimSpace(text)

	// Ignore commands (starting with /)
	if trimmed == "" || strings.HasPrefix(trimmed, "/") {
		return
	}

	unlock := h.lockChat(chatID)
	defer unlock()

	phase := h.conversations.Phase(chatID)
	ev := fsm.DecodeText(phase, text)
	if ev == nil {
		h.logger.Debug("Text ignored",
			zap.Int64("chat_id", chatID),
			zap.String("phase", string(phase)),
		)
		return
	}

	h.dispatch(chatID, ev)
}
