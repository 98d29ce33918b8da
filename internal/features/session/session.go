package session

import (
	"sync"

	"memecoin-radar/internal/features/seen"
)

// Session is the long-lived state shared by the chat handler and the poller:
// the single destination chat and the set of already alerted tokens.
type Session struct {
	mu         sync.RWMutex
	chatID     int64
	registered bool
	seen       seen.Set
}

func New(seenSet seen.Set) *Session {
	if seenSet == nil {
		seenSet = seen.NewUnbounded()
	}
	return &Session{seen: seenSet}
}

// Register sets the destination. A later /start from another chat replaces it.
func (s *Session) Register(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatID = chatID
	s.registered = true
}

// Destination returns the registered chat, ok is false until Register is called.
func (s *Session) Destination() (chatID int64, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chatID, s.registered
}

func (s *Session) Seen() seen.Set {
	return s.seen
}
