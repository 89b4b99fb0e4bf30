package model

import "encoding/json"

// Tier is the subscription level gating token budget and advisory output
type Tier string

const (
	TierFree    Tier = "free"
	TierPro     Tier = "pro"
	TierPremium Tier = "premium"
)

// TokenBudget returns the max output tokens forwarded to the generator
// for this tier. This caps how much text the extractor and analyzer see.
func (t Tier) TokenBudget() int {
	switch t {
	case TierPro:
		return 2000
	case TierPremium:
		return 4000
	default:
		return 1000
	}
}

// MessageLimit is a per-window message quota. A negative value means
// unlimited and serializes as the string "Infinity".
type MessageLimit int

// Unlimited is the premium-tier message quota
const Unlimited MessageLimit = -1

// MarshalJSON serializes unlimited quotas as "Infinity"
func (l MessageLimit) MarshalJSON() ([]byte, error) {
	if l < 0 {
		return json.Marshal("Infinity")
	}
	return json.Marshal(int(l))
}

// ChatMessage is a single turn of conversation history
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ImageAttachment is an inline image forwarded to the generator
type ImageAttachment struct {
	Data     string `json:"data"` // base64-encoded bytes
	MimeType string `json:"mimeType"`
}

// ChatRequest is the body of POST /chat. Exactly one of Message or
// Messages must be provided.
type ChatRequest struct {
	Message  string            `json:"message,omitempty"`
	Messages []ChatMessage     `json:"messages,omitempty"`
	Language string            `json:"language,omitempty"` // "ar" (default), "fr", "en"
	Images   []ImageAttachment `json:"images,omitempty"`
}

// QualitySummary is the externally visible slice of a QualityAnalysis
type QualitySummary struct {
	Score        int  `json:"score"`
	ValidRefs    int  `json:"validRefs"`
	HasQuranRef  bool `json:"hasQuranRef"`
	HasHadithRef bool `json:"hasHadithRef"`
}

// UsageInfo reports quota consumption for the authenticated user
type UsageInfo struct {
	MessagesUsed  int          `json:"messagesUsed"`
	MessagesLimit MessageLimit `json:"messagesLimit"`
	Tier          Tier         `json:"tier"`
}

// ChatResponse is the body of a successful POST /chat
type ChatResponse struct {
	Message        string         `json:"message"`
	Response       string         `json:"response"` // Duplicate of Message, kept for older clients
	References     []string       `json:"references"`
	ConversationID *string        `json:"conversationId"`
	MessageCount   int            `json:"messageCount"`
	Quality        QualitySummary `json:"quality"`
	Usage          UsageInfo      `json:"usage"`
}
