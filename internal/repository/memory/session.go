package memory

import (
	"sync"
	"time"

	"olympiadbot/internal/domain"
	"olympiadbot/internal/repository"
)

type entry struct {
	session *domain.Session
	touched time.Time
}

// SessionRepo implements repository.SessionRepository in process memory.
// Sessions live for the process lifetime unless removed or evicted.
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[int64]entry
	now      func() time.Time
}

var _ repository.SessionRepository = (*SessionRepo)(nil)

// NewSessionRepo creates an empty session table
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{
		sessions: make(map[int64]entry),
		now:      time.Now,
	}
}

// WithClock replaces the clock used to stamp sessions
func (r *SessionRepo) WithClock(now func() time.Time) *SessionRepo {
	r.now = now
	return r
}

// Get returns a copy of the chat's session
func (r *SessionRepo) Get(chatID int64) (*domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.sessions[chatID]
	if !ok {
		return nil, false
	}
	return e.session.Clone(), true
}

// Set stores a copy of the session and refreshes its idle timer
func (r *SessionRepo) Set(chatID int64, session *domain.Session) {
	if session == nil {
		r.Remove(chatID)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[chatID] = entry{session: session.Clone(), touched: r.now()}
}

// Remove drops the chat's session
func (r *SessionRepo) Remove(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, chatID)
}

// EvictIdle removes unfinished sessions last touched before cutoff.
// Finished sessions are kept so a repeated /start is still recognised.
func (r *SessionRepo) EvictIdle(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for chatID, e := range r.sessions {
		if e.session.Finished() || !e.touched.Before(cutoff) {
			continue
		}
		delete(r.sessions, chatID)
		evicted++
	}
	return evicted
}

// Len returns the number of tracked chats
func (r *SessionRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
