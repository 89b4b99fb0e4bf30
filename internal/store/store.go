// Package store persists conversation turns and per-user message counts.
//
// The pipeline treats persistence as fire-and-forget: a failed save must
// never abort the response to the caller.
package store

import (
	"context"
	"time"

	"github.com/daleel-app/daleel/internal/model"
)

// Turn is one (question, answer, references) triple owned by a conversation
type Turn struct {
	ConversationID string            `json:"conversation_id"`
	UserID         string            `json:"user_id"`
	Question       string            `json:"question"`
	Answer         string            `json:"answer"`
	References     []model.Reference `json:"references"`
	CreatedAt      time.Time         `json:"created_at"`
}

// ConversationStore is the persistence collaborator for chat turns
type ConversationStore interface {
	// SaveTurn appends a turn to its conversation
	SaveTurn(ctx context.Context, turn Turn) error

	// Conversation returns the turns of a conversation, oldest first
	Conversation(id string) ([]Turn, bool)
}

// UsageCounter tracks per-user message consumption within a rolling window
type UsageCounter interface {
	// MessagesUsed returns the user's current count
	MessagesUsed(userID string) int

	// Increment bumps the user's count and returns the new value
	Increment(userID string) int
}
