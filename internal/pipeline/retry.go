package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/daleel-app/daleel/internal/classify"
	"github.com/daleel-app/daleel/internal/model"
	"github.com/daleel-app/daleel/internal/registry"
)

// State is the retry controller's position in the evaluation cycle
type State string

const (
	// StateDrafted means a generator output has been received
	StateDrafted State = "drafted"

	// StateEvaluated means the quality analyzer has run over the draft
	StateEvaluated State = "evaluated"

	// StateFinal means the draft is accepted as the answer
	StateFinal State = "final"
)

// regenerateFunc asks the generator for a corrected draft. It receives the
// rejected draft (appended as an assistant turn) and the corrective
// instruction (appended as a user turn).
type regenerateFunc func(ctx context.Context, rejectedDraft, corrective string) (string, error)

// Controller decides whether a drafted answer must be resubmitted to the
// generator with a corrective instruction, and merges the retried answer
// back into the pipeline. At most one corrective regeneration is ever
// issued per request.
type Controller struct {
	classifier classify.QuestionClassifier
	known      *registry.KnownCitations
}

// NewController creates a retry controller
func NewController(classifier classify.QuestionClassifier, known *registry.KnownCitations) *Controller {
	return &Controller{classifier: classifier, known: known}
}

// Decide derives the retry decision from the analysis of the current draft
// and the classification of the original user question. A retry is required
// only when a ruling-seeking question got an answer with no evidence of any
// class.
func (c *Controller) Decide(question string, analysis model.QualityAnalysis) model.RetryDecision {
	if c.classifier.IsReligiousQuestion(question) &&
		!analysis.HasQuranRef &&
		!analysis.HasHadithRef &&
		len(analysis.ValidRefs) == 0 {
		return model.RetryDecision{ShouldRetry: true, Reason: model.RetryMissingEvidence}
	}
	return model.RetryDecision{ShouldRetry: false, Reason: model.RetryNone}
}

// Run drives the Drafted -> Evaluated -> Final machine. analyze must be a
// pure function over the draft text. If the corrective regeneration itself
// fails, the original draft is kept: a quality-enhancement feature must not
// become an availability regression. The second draft, whatever its
// quality, is accepted unconditionally.
func (c *Controller) Run(
	ctx context.Context,
	question, lang, draft string,
	analyze func(string) model.QualityAnalysis,
	regenerate regenerateFunc,
) (finalDraft string, finalAnalysis model.QualityAnalysis, retried bool) {
	state := StateDrafted
	attempts := 0
	var analysis model.QualityAnalysis

	for state != StateFinal {
		switch state {
		case StateDrafted:
			analysis = analyze(draft)
			state = StateEvaluated

		case StateEvaluated:
			decision := c.Decide(question, analysis)
			if !decision.ShouldRetry || attempts >= 1 {
				state = StateFinal
				break
			}
			attempts++
			corrected, err := regenerate(ctx, draft, c.CorrectiveMessage(lang, question))
			if err != nil {
				// Degrade gracefully: the pre-retry draft stands.
				fmt.Fprintf(os.Stderr, "Warning: corrective regeneration failed: %v\n", err)
				state = StateFinal
				break
			}
			draft = corrected
			retried = true
			state = StateDrafted
		}
	}

	return draft, analysis, retried
}

// CorrectiveMessage builds the localized follow-up instructing the
// generator to reformulate with explicit citations. Known-citation hints
// matching the question are folded in as verified numbers.
func (c *Controller) CorrectiveMessage(lang, question string) string {
	var b strings.Builder

	switch lang {
	case "fr":
		b.WriteString("Ta réponse ne contient aucune référence vérifiable. Reformule-la en citant explicitement au moins un verset du Coran (nom de la sourate et numéro du verset) et au moins un hadith avec son numéro dans le recueil, par exemple : rapporté par Muslim (2003).")
	case "en":
		b.WriteString("Your answer contains no verifiable reference. Rewrite it citing explicitly at least one Qur'an verse (surah name and verse number) and at least one hadith with its collection number, e.g. reported by Muslim (2003).")
	default:
		b.WriteString("إجابتك لا تحتوي على أي مرجع قابل للتحقق. أعد صياغتها مع الاستشهاد صراحةً بآية قرآنية (اسم السورة ورقم الآية) وبحديث واحد على الأقل مع رقمه في المصدر، مثل: رواه مسلم (2003).")
	}

	if c.known != nil {
		if hits := c.known.Match(question); len(hits) > 0 {
			b.WriteString("\n")
			for _, e := range hits {
				fmt.Fprintf(&b, "\n%s: %s", e.Phrase, e.FormatSources())
			}
		}
	}

	return b.String()
}
