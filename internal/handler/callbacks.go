package handler

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"

	"olympiadbot/internal/export"
	"olympiadbot/internal/fsm"

	"go.uber.org/zap"
)

const callbackDelimiter = "|"

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseCallback splits callback data into action and payload on the first delimiter,
// so payloads may contain the delimiter themselves
func parseCallback(data string) (string, string) {
	data = cleanCallbackData(data)
	parts := strings.SplitN(data, callbackDelimiter, 2)
	action := strings.TrimSpace(parts[0])
	payload := ""
	if len(parts) == 2 {
		payload = parts[1]
	}
	return action, payload
}

// HandleCallback handles ALL inline button taps
func (h *Handler) HandleCallback(chatID int64, data string) {
	action, payload := parseCallback(data)

	unlock := h.lockChat(chatID)
	defer unlock()

	h.logger.Info("Processing callback",
		zap.Int64("chat_id", chatID),
		zap.String("action", action),
		zap.String("payload", payload),
	)

	switch action {
	case actionSubscribed:
		h.dispatch(chatID, fsm.SubscriptionConfirmed{})
	case actionSubject:
		h.dispatch(chatID, fsm.SubjectChosen{Key: payload})
	case actionRate:
		h.dispatch(chatID, fsm.RateRequested{})
	case actionExport:
		h.handleExport(chatID, payload)
	default:
		h.logger.Warn("Unhandled callback",
			zap.Int64("chat_id", chatID),
			zap.String("data", data),
		)
	}
}

// handleExport sends the subject's spreadsheet to an admin chat
func (h *Handler) handleExport(chatID int64, subject string) {
	if !h.authService.IsAdmin(chatID) {
		h.logger.Warn("Export denied", zap.Int64("chat_id", chatID))
		h.reply(chatID, fsm.Reply{Prompt: fsm.PromptPermissionDenied})
		return
	}

	found, err := h.exporter.Export(subject, func(path string) error {
		return h.gateway.SendDocument(chatID, path, filepath.Base(path))
	})
	switch {
	case errors.Is(err, export.ErrUnknownSubject):
		h.logger.Warn("Export requested for unknown subject",
			zap.Int64("chat_id", chatID),
			zap.String("subject", subject),
		)
		h.reply(chatID, fsm.Reply{Prompt: fsm.PromptFailure})
	case err != nil:
		h.logger.Error("Failed to export records",
			zap.Int64("chat_id", chatID),
			zap.String("subject", subject),
			zap.Error(err),
		)
		h.reply(chatID, fsm.Reply{Prompt: fsm.PromptFailure})
	case !found:
		h.reply(chatID, fsm.Reply{Prompt: fsm.PromptNoParticipants})
	}
}
