package service

// AuthService decides which chats may use administrator actions
type AuthService struct {
	admins map[int64]bool
}

// NewAuthService creates a new auth service for a fixed allow-list
func NewAuthService(adminIDs []int64) *AuthService {
	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &AuthService{admins: admins}
}

// IsAdmin checks if the chat is on the allow-list
func (s *AuthService) IsAdmin(chatID int64) bool {
	return s.admins[chatID]
}
