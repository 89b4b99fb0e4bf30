package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/daleel-app/daleel/internal/classify"
	"github.com/daleel-app/daleel/internal/llm"
	"github.com/daleel-app/daleel/internal/model"
	"github.com/daleel-app/daleel/internal/pipeline"
	"github.com/daleel-app/daleel/internal/registry"
	"github.com/daleel-app/daleel/internal/store"
	"github.com/daleel-app/daleel/internal/throttle"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubProvider returns a fixed answer or a fixed error.
type stubProvider struct {
	text string
	err  error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &llm.GenerateResponse{Text: p.text, Model: "stub", TokensUsed: 10}, nil
}

func (p *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func newTestServer(provider llm.Provider, mutate func(*model.Config)) *Server {
	cfg := model.DefaultConfig()
	cfg.Server.APIKeys = map[string]model.APIKeyEntry{
		"free-key":    {UserID: "u-free", Tier: model.TierFree},
		"premium-key": {UserID: "u-premium", Tier: model.TierPremium},
	}
	if mutate != nil {
		mutate(cfg)
	}

	st := store.NewMemoryStore(0, cfg.Quota.Window)
	p := pipeline.New(
		provider,
		registry.Default(cfg.Scoring),
		registry.NewKnownCitations(nil),
		classify.NewKeywordClassifier(),
		st,
		cfg.Scoring,
	)
	return New(
		cfg,
		p,
		st,
		throttle.NewCounter(cfg.Throttle.ChatLimit, cfg.Throttle.ChatWindow),
		throttle.NewLimiter(cfg.Throttle.GeneratorRPS, cfg.Throttle.GeneratorBurst),
	)
}

func doChat(s *Server, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(&stubProvider{text: "ok"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestChat_Unauthorized(t *testing.T) {
	s := newTestServer(&stubProvider{text: "ok"}, nil)

	if w := doChat(s, "", `{"message":"سؤال"}`); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: expected 401, got %d", w.Code)
	}
	if w := doChat(s, "wrong-key", `{"message":"سؤال"}`); w.Code != http.StatusUnauthorized {
		t.Errorf("unknown token: expected 401, got %d", w.Code)
	}
}

func TestChat_MalformedRequests(t *testing.T) {
	s := newTestServer(&stubProvider{text: "ok"}, nil)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"no question", `{"language":"ar"}`},
		{"empty message", `{"message":"   "}`},
		{"both forms", `{"message":"س","messages":[{"role":"user","content":"س"}]}`},
		{"messages without user turn", `{"messages":[{"role":"assistant","content":"جواب"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doChat(s, "free-key", tt.body); w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestChat_Success(t *testing.T) {
	s := newTestServer(&stubProvider{text: "يحرم الربا، رواه مسلم (1598)."}, nil)

	w := doChat(s, "free-key", `{"message":"ما حكم الربا؟","language":"ar"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp model.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if resp.Message == "" || resp.Message != resp.Response {
		t.Error("message and response must carry the same answer")
	}
	if len(resp.References) != 1 || !strings.Contains(resp.References[0], "1598") {
		t.Errorf("expected the extracted citation, got %+v", resp.References)
	}
	if resp.ConversationID == nil || *resp.ConversationID == "" {
		t.Error("expected a conversation ID")
	}
	if resp.MessageCount != 1 {
		t.Errorf("expected message count 1, got %d", resp.MessageCount)
	}
	if resp.Quality.Score != 100 || !resp.Quality.HasHadithRef {
		t.Errorf("unexpected quality summary: %+v", resp.Quality)
	}
	if resp.Usage.MessagesUsed != 1 || resp.Usage.Tier != model.TierFree {
		t.Errorf("unexpected usage: %+v", resp.Usage)
	}
}

func TestChat_MessagesForm(t *testing.T) {
	s := newTestServer(&stubProvider{text: "يحرم الربا، رواه مسلم (1598)."}, nil)

	body := `{"messages":[
		{"role":"user","content":"ما حكم الربا؟"},
		{"role":"assistant","content":"الربا محرم."},
		{"role":"user","content":"وما الدليل؟"}
	]}`
	if w := doChat(s, "free-key", body); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestChat_QuotaExhausted(t *testing.T) {
	s := newTestServer(&stubProvider{text: "جواب عام."}, func(cfg *model.Config) {
		cfg.Quota.Free = 1
	})

	if w := doChat(s, "free-key", `{"message":"كيف حالك؟"}`); w.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", w.Code)
	}

	w := doChat(s, "free-key", `{"message":"كيف حالك؟"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("second request: expected 403, got %d", w.Code)
	}

	var body struct {
		Error   string          `json:"error"`
		Limit   json.RawMessage `json:"limit"`
		Current int             `json:"current"`
		Tier    model.Tier      `json:"tier"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(body.Limit) != "1" || body.Current != 1 || body.Tier != model.TierFree {
		t.Errorf("unexpected quota payload: %s", w.Body.String())
	}
}

func TestChat_PremiumHasNoQuota(t *testing.T) {
	s := newTestServer(&stubProvider{text: "جواب عام."}, func(cfg *model.Config) {
		cfg.Quota.Free = 1
		cfg.Quota.Pro = 1
		cfg.Throttle.ChatLimit = 100
		cfg.Throttle.GeneratorBurst = 100
	})

	for i := 0; i < 5; i++ {
		w := doChat(s, "premium-key", `{"message":"كيف حالك؟"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	w := doChat(s, "premium-key", `{"message":"كيف حالك؟"}`)
	var resp model.ChatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !strings.Contains(w.Body.String(), `"Infinity"`) {
		t.Errorf("expected an unlimited quota in %s", w.Body.String())
	}
}

func TestChat_Throttled(t *testing.T) {
	s := newTestServer(&stubProvider{text: "جواب عام."}, func(cfg *model.Config) {
		cfg.Throttle.ChatLimit = 1
	})

	if w := doChat(s, "free-key", `{"message":"كيف حالك؟"}`); w.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", w.Code)
	}

	w := doChat(s, "free-key", `{"message":"كيف حالك؟"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected a Retry-After header")
	}
	if !strings.Contains(w.Body.String(), "retryAfter") {
		t.Errorf("expected retryAfter in the body: %s", w.Body.String())
	}
}

func TestChat_GeneratorErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"rate limited", fmt.Errorf("generate: %w", llm.ErrRateLimited), http.StatusTooManyRequests},
		{"bad request", fmt.Errorf("generate: %w", llm.ErrBadRequest), http.StatusBadRequest},
		{"auth failure", fmt.Errorf("generate: %w", llm.ErrAuth), http.StatusInternalServerError},
		{"unknown", fmt.Errorf("generate: connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(&stubProvider{err: tt.err}, nil)
			w := doChat(s, "free-key", `{"message":"كيف حالك؟"}`)
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestChat_FailedRequestDoesNotConsumeQuota(t *testing.T) {
	s := newTestServer(&stubProvider{err: fmt.Errorf("generate: %w", llm.ErrRateLimited)}, func(cfg *model.Config) {
		cfg.Quota.Free = 1
	})

	// The generator fails, so the quota must stay untouched.
	if w := doChat(s, "free-key", `{"message":"كيف حالك؟"}`); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w := doChat(s, "free-key", `{"message":"كيف حالك؟"}`); w.Code == http.StatusForbidden {
		t.Error("a failed request must not count against the quota")
	}
}

func TestResolveQuestion_HistoryBounds(t *testing.T) {
	var msgs []model.ChatMessage
	for i := 0; i < 15; i++ {
		msgs = append(msgs, model.ChatMessage{Role: "user", Content: fmt.Sprintf("سؤال %d", i)})
	}

	question, history, ok := resolveQuestion(model.ChatRequest{Messages: msgs})
	if !ok {
		t.Fatal("expected a resolvable question")
	}
	if question != "سؤال 14" {
		t.Errorf("expected the last user turn, got %q", question)
	}
	if len(history) != 9 {
		t.Errorf("expected 9 history entries (last 10 minus the question), got %d", len(history))
	}
}
