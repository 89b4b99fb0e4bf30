package llm

import (
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
)

func TestClassifyOpenAIError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limited", 429, ErrRateLimited},
		{"unauthorized", 401, ErrAuth},
		{"forbidden", 403, ErrAuth},
		{"bad request", 400, ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyOpenAIError(&openai.APIError{HTTPStatusCode: tt.status, Message: "boom"})
			if !errors.Is(err, tt.want) {
				t.Errorf("status %d: expected %v sentinel, got %v", tt.status, tt.want, err)
			}
		})
	}

	plain := classifyOpenAIError(errors.New("connection reset"))
	for _, sentinel := range []error{ErrRateLimited, ErrAuth, ErrBadRequest} {
		if errors.Is(plain, sentinel) {
			t.Errorf("plain errors must not map to %v", sentinel)
		}
	}
}

func TestUserMessage_ImageParts(t *testing.T) {
	plain := userMessage("سؤال", nil)
	if plain.Content != "سؤال" || plain.MultiContent != nil {
		t.Errorf("text-only question must use plain content: %+v", plain)
	}

	withImage := userMessage("سؤال", []Image{{Data: "aGk=", MimeType: "image/png"}})
	if len(withImage.MultiContent) != 2 {
		t.Fatalf("expected text part + image part, got %d parts", len(withImage.MultiContent))
	}
	img := withImage.MultiContent[1]
	if img.Type != openai.ChatMessagePartTypeImageURL || img.ImageURL == nil {
		t.Fatalf("expected an image part, got %+v", img)
	}
	if img.ImageURL.URL != "data:image/png;base64,aGk=" {
		t.Errorf("unexpected data URL %q", img.ImageURL.URL)
	}
}

func TestNewProvider(t *testing.T) {
	if p, err := NewProvider(Config{Provider: ""}); err != nil || p != nil {
		t.Errorf("empty provider must disable generation, got %v, %v", p, err)
	}
	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("openai without an API key must fail")
	}
	if _, err := NewProvider(Config{Provider: "something-else"}); err == nil {
		t.Error("unknown provider must fail")
	}

	p, err := NewProvider(Config{Provider: "ollama", BaseURL: "http://localhost:11434"})
	if err != nil {
		t.Fatalf("ollama provider: %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("expected ollama, got %s", p.Name())
	}
}
