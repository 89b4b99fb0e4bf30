// Package pipeline orchestrates one chat turn: generation, reference
// extraction, quality analysis, the bounded corrective retry, and response
// composition.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/daleel-app/daleel/internal/classify"
	"github.com/daleel-app/daleel/internal/extract"
	"github.com/daleel-app/daleel/internal/llm"
	"github.com/daleel-app/daleel/internal/model"
	"github.com/daleel-app/daleel/internal/registry"
	"github.com/daleel-app/daleel/internal/score"
	"github.com/daleel-app/daleel/internal/store"
)

// Pipeline wires the citation-enforcement stages around the generator.
// All state is request-scoped; the pipeline itself is safe for concurrent
// use.
type Pipeline struct {
	provider  llm.Provider
	extractor *extract.Extractor
	analyzer  *score.Analyzer
	retry     *Controller
	composer  *Composer
	known     *registry.KnownCitations
	store     store.ConversationStore
}

// New assembles a pipeline from its collaborators. provider may be nil,
// in which case Respond fails with a configuration error.
func New(
	provider llm.Provider,
	reg *registry.Registry,
	known *registry.KnownCitations,
	classifier classify.QuestionClassifier,
	st store.ConversationStore,
	sc model.ScoringConfig,
) *Pipeline {
	return &Pipeline{
		provider:  provider,
		extractor: extract.NewExtractor(reg, sc),
		analyzer:  score.NewAnalyzer(reg, sc),
		retry:     NewController(classifier, known),
		composer:  NewComposer(),
		known:     known,
		store:     st,
	}
}

// ChatInput is one chat turn to evaluate
type ChatInput struct {
	UserID         string
	Tier           model.Tier
	Language       string // "ar", "fr", "en"
	Question       string
	History        []llm.Message
	Images         []llm.Image
	ConversationID string // empty for a new conversation
}

// ChatOutput is the pipeline's result for one turn
type ChatOutput struct {
	Answer         string
	References     []model.Reference
	Analysis       model.QualityAnalysis
	ConversationID string
	Retried        bool
}

// Respond runs the full pipeline for one question. The generator is called
// at most twice: once for the draft and at most once for the corrective
// retry.
func (p *Pipeline) Respond(ctx context.Context, in ChatInput) (*ChatOutput, error) {
	if p.provider == nil {
		return nil, fmt.Errorf("no generator configured")
	}

	system := SystemPrompt(in.Language, p.known)
	budget := in.Tier.TokenBudget()

	resp, err := p.provider.Generate(ctx, llm.GenerateRequest{
		System:    system,
		History:   in.History,
		Question:  in.Question,
		Images:    in.Images,
		MaxTokens: budget,
	})
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	regenerate := func(ctx context.Context, rejectedDraft, corrective string) (string, error) {
		history := make([]llm.Message, 0, len(in.History)+2)
		history = append(history, in.History...)
		history = append(history,
			llm.Message{Role: "user", Content: in.Question},
			llm.Message{Role: "assistant", Content: rejectedDraft},
		)
		retryResp, err := p.provider.Generate(ctx, llm.GenerateRequest{
			System:    system,
			History:   history,
			Question:  corrective,
			MaxTokens: budget,
		})
		if err != nil {
			return "", err
		}
		return retryResp.Text, nil
	}

	finalDraft, analysis, retried := p.retry.Run(ctx, in.Question, in.Language, resp.Text, p.analyzer.Analyze, regenerate)

	references := p.extractor.Extract(finalDraft)
	answer := p.composer.Compose(finalDraft, in.Language, in.Tier, analysis)

	conversationID := in.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	// Persistence is fire-and-forget: a failed save never aborts the
	// response to the caller.
	if p.store != nil {
		saveErr := p.store.SaveTurn(ctx, store.Turn{
			ConversationID: conversationID,
			UserID:         in.UserID,
			Question:       in.Question,
			Answer:         answer,
			References:     references,
			CreatedAt:      time.Now().UTC(),
		})
		if saveErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to persist conversation turn: %v\n", saveErr)
		}
	}

	return &ChatOutput{
		Answer:         answer,
		References:     references,
		Analysis:       analysis,
		ConversationID: conversationID,
		Retried:        retried,
	}, nil
}
