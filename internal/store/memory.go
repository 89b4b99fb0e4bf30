package store

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore implements ConversationStore and UsageCounter on an
// in-memory TTL cache. Conversations expire after their TTL so saved chat
// history does not accumulate without bound.
type MemoryStore struct {
	conversations *gocache.Cache
	counts        *gocache.Cache
	quotaWindow   time.Duration

	mu sync.Mutex // guards read-modify-write on both caches
}

// NewMemoryStore creates a memory store. conversationTTL bounds how long a
// conversation stays resumable; quotaWindow is the usage counting window.
func NewMemoryStore(conversationTTL, quotaWindow time.Duration) *MemoryStore {
	if conversationTTL <= 0 {
		conversationTTL = 24 * time.Hour
	}
	if quotaWindow <= 0 {
		quotaWindow = 24 * time.Hour
	}
	return &MemoryStore{
		conversations: gocache.New(conversationTTL, 10*time.Minute),
		counts:        gocache.New(quotaWindow, 10*time.Minute),
		quotaWindow:   quotaWindow,
	}
}

// SaveTurn appends a turn to its conversation
func (s *MemoryStore) SaveTurn(_ context.Context, turn Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var turns []Turn
	if val, found := s.conversations.Get(turn.ConversationID); found {
		turns = val.([]Turn)
	}
	turns = append(turns, turn)
	s.conversations.Set(turn.ConversationID, turns, gocache.DefaultExpiration)
	return nil
}

// Conversation returns the turns of a conversation, oldest first
func (s *MemoryStore) Conversation(id string) ([]Turn, bool) {
	if val, found := s.conversations.Get(id); found {
		return val.([]Turn), true
	}
	return nil, false
}

// MessagesUsed returns the user's current count within the window
func (s *MemoryStore) MessagesUsed(userID string) int {
	if val, found := s.counts.Get(countKey(userID)); found {
		return val.(int)
	}
	return 0
}

// Increment bumps the user's count, starting a fresh window on first use.
// The window is anchored at the first message: later increments keep the
// original expiry.
func (s *MemoryStore) Increment(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := countKey(userID)
	val, expiry, found := s.counts.GetWithExpiration(key)
	if !found {
		s.counts.Set(key, 1, s.quotaWindow)
		return 1
	}
	n := val.(int) + 1
	remaining := time.Until(expiry)
	if remaining <= 0 {
		remaining = s.quotaWindow
	}
	s.counts.Set(key, n, remaining)
	return n
}

func countKey(userID string) string {
	return "msgs:" + userID
}
