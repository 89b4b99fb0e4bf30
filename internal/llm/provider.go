package llm

import (
	"context"
	"errors"

	"github.com/daleel-app/daleel/internal/model"
)

// Provider defines the interface for text generators. The generator is a
// black box: given a system prompt, history, and a question, it returns
// free-form text.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate produces an answer for the question, given prior turns
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Sentinel errors used to map generator failures to HTTP statuses.
var (
	// ErrRateLimited means the upstream generator throttled us
	ErrRateLimited = errors.New("generator rate limited")

	// ErrAuth means the generator credentials are invalid
	ErrAuth = errors.New("generator authentication failed")

	// ErrBadRequest means the prompt was rejected as malformed
	ErrBadRequest = errors.New("generator rejected request")
)

// Message is a single prior conversation turn forwarded to the generator
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Image is an inline image forwarded to multimodal generators
type Image struct {
	Data     string // base64-encoded bytes
	MimeType string
}

// GenerateRequest contains the input for one generation call
type GenerateRequest struct {
	// System is the system prompt establishing citation requirements
	System string

	// History holds prior turns, oldest first
	History []Message

	// Question is the active user question
	Question string

	// Images are optional attachments to the active question
	Images []Image

	// Model overrides the configured model if non-empty
	Model string

	// MaxTokens caps the answer length (set from the caller's tier budget)
	MaxTokens int
}

// GenerateResponse contains the generator's output
type GenerateResponse struct {
	// Text is the generated answer
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds generator provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider: mc.Provider,
		Model:    mc.Model,
		APIKey:   mc.APIKey,
		BaseURL:  mc.BaseURL,
		Timeout:  mc.Timeout,
	}
}
