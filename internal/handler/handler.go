package handler

import (
	"sync"

	"olympiadbot/internal/export"
	"olympiadbot/internal/fsm"
	"olympiadbot/internal/service"

	"go.uber.org/zap"
)

// Handler routes inbound chat events to the conversation and export services
type Handler struct {
	gateway       Gateway
	authService   *service.AuthService
	conversations *service.ConversationService
	exporter      *export.Encoder
	channelLinks  []string
	logger        *zap.Logger

	// Per-chat locks, updates from one chat are handled one at a time
	chatLocks map[int64]*sync.Mutex
	chatMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	gateway Gateway,
	authService *service.AuthService,
	conversations *service.ConversationService,
	exporter *export.Encoder,
	channelLinks []string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		gateway:       gateway,
		authService:   authService,
		conversations: conversations,
		exporter:      exporter,
		channelLinks:  channelLinks,
		logger:        logger,
		chatLocks:     make(map[int64]*sync.Mutex),
	}
}

// lockChat acquires the chat's lock and returns its release func
func (h *Handler) lockChat(chatID int64) func() {
	h.chatMux.Lock()
	lock, exists := h.chatLocks[chatID]
	if !exists {
		lock = &sync.Mutex{}
		h.chatLocks[chatID] = lock
	}
	h.chatMux.Unlock()

	lock.Lock()
	return lock.Unlock
}

// dispatch enforces the admin allow-list and runs the event through the conversation
func (h *Handler) dispatch(chatID int64, ev fsm.Event) {
	if fsm.AdminOnly(ev) && !h.authService.IsAdmin(chatID) {
		h.logger.Warn("Admin action denied", zap.Int64("chat_id", chatID))
		h.reply(chatID, fsm.Reply{Prompt: fsm.PromptPermissionDenied})
		return
	}

	h.reply(chatID, h.conversations.Dispatch(chatID, ev))
}

// reply renders and sends a reply, send failures are logged only
func (h *Handler) reply(chatID int64, reply fsm.Reply) {
	text, buttons := h.render(reply)
	if text == "" {
		return
	}

	if err := h.gateway.SendText(chatID, text, buttons); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.String("prompt", reply.Prompt.String()),
			zap.Error(err),
		)
	}
}
