package model

import "time"

// Config is the full application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	LLM      LLMConfig      `yaml:"llm" mapstructure:"llm"`
	Scoring  ScoringConfig  `yaml:"scoring" mapstructure:"scoring"`
	Throttle ThrottleConfig `yaml:"throttle" mapstructure:"throttle"`
	Quota    QuotaConfig    `yaml:"quota" mapstructure:"quota"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`

	// APIKeys maps bearer tokens to the user and tier they resolve to.
	// In production this table comes from the account service; the map
	// form exists so the server can run self-contained.
	APIKeys map[string]APIKeyEntry `yaml:"api_keys" mapstructure:"api_keys"`
}

// APIKeyEntry resolves a bearer token to a user and subscription tier
type APIKeyEntry struct {
	UserID string `yaml:"user_id" mapstructure:"user_id"`
	Tier   Tier   `yaml:"tier" mapstructure:"tier"`
}

// LLMConfig holds generator provider configuration
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey for OpenAI/Anthropic
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout for API requests, in seconds
	Timeout int `yaml:"timeout" mapstructure:"timeout"`
}

// ScoringConfig holds the citation-quality tuning knobs.
//
// The weak-hit penalty and the priority weights are hand-tuned constants
// carried over from the original product. They have no documented
// derivation and should be treated as tuning choices, not requirements.
type ScoringConfig struct {
	// WeakHitPenalty is subtracted from 100 once per weak-pattern hit
	WeakHitPenalty int `yaml:"weak_hit_penalty" mapstructure:"weak_hit_penalty"`

	// Priority weights per evidence class, used to rank extracted references
	PriorityQuran          int `yaml:"priority_quran" mapstructure:"priority_quran"`
	PriorityHadithNumbered int `yaml:"priority_hadith_numbered" mapstructure:"priority_hadith_numbered"`
	PriorityScholarBook    int `yaml:"priority_scholar_book" mapstructure:"priority_scholar_book"`
	PriorityScholarOpinion int `yaml:"priority_scholar_opinion" mapstructure:"priority_scholar_opinion"`

	// MaxReferences caps the final extracted reference list
	MaxReferences int `yaml:"max_references" mapstructure:"max_references"`

	// SoftCap bounds the candidate list before containment filtering
	SoftCap int `yaml:"soft_cap" mapstructure:"soft_cap"`
}

// ThrottleConfig configures per-user admission control
type ThrottleConfig struct {
	// ChatLimit is the max chat requests per user per window
	ChatLimit int `yaml:"chat_limit" mapstructure:"chat_limit"`

	// ChatWindow is the counting window for ChatLimit
	ChatWindow time.Duration `yaml:"chat_window" mapstructure:"chat_window"`

	// GeneratorRPS/GeneratorBurst guard the upstream generator
	GeneratorRPS   float64 `yaml:"generator_rps" mapstructure:"generator_rps"`
	GeneratorBurst int     `yaml:"generator_burst" mapstructure:"generator_burst"`
}

// QuotaConfig configures per-tier daily message quotas
type QuotaConfig struct {
	Free   int           `yaml:"free" mapstructure:"free"`
	Pro    int           `yaml:"pro" mapstructure:"pro"`
	Window time.Duration `yaml:"window" mapstructure:"window"`
}

// Limit returns the message quota for a tier. Premium is unlimited.
func (q QuotaConfig) Limit(t Tier) MessageLimit {
	switch t {
	case TierPro:
		return MessageLimit(q.Pro)
	case TierPremium:
		return Unlimited
	default:
		return MessageLimit(q.Free)
	}
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		LLM: LLMConfig{
			Provider: "openai",
			Timeout:  60,
		},
		Scoring: ScoringConfig{
			WeakHitPenalty:         15,
			PriorityQuran:          10,
			PriorityHadithNumbered: 9,
			PriorityScholarBook:    7,
			PriorityScholarOpinion: 4,
			MaxReferences:          10,
			SoftCap:                15,
		},
		Throttle: ThrottleConfig{
			ChatLimit:      20,
			ChatWindow:     time.Minute,
			GeneratorRPS:   2,
			GeneratorBurst: 5,
		},
		Quota: QuotaConfig{
			Free:   10,
			Pro:    100,
			Window: 24 * time.Hour,
		},
	}
}
