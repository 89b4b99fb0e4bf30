package pipeline

import (
	"strings"
	"testing"

	"github.com/daleel-app/daleel/internal/model"
	"github.com/daleel-app/daleel/internal/registry"
)

func warningAnalysis() model.QualityAnalysis {
	return model.QualityAnalysis{
		Score: 85,
		Warnings: []model.Warning{
			{
				Type:    model.WarnCitationMissingNumber,
				Text:    "رواه مسلم (صحيح)",
				Message: registry.WarningMessage(model.WarnCitationMissingNumber),
			},
		},
	}
}

func TestCompose_PremiumGetsAdvisory(t *testing.T) {
	c := NewComposer()

	out := c.Compose("الجواب.", "ar", model.TierPremium, warningAnalysis())

	if !strings.HasPrefix(out, "الجواب.") {
		t.Errorf("the answer body must come first: %q", out)
	}
	if !strings.Contains(out, "\n\n---\n") {
		t.Error("expected a divider before the advisory block")
	}
	if !strings.Contains(out, "1. ") {
		t.Error("expected enumerated warnings")
	}
	if !strings.Contains(out, advisoryClosing.AR) {
		t.Error("expected the closing recommendation")
	}
}

func TestCompose_NonPremiumUnmodified(t *testing.T) {
	c := NewComposer()

	for _, tier := range []model.Tier{model.TierFree, model.TierPro} {
		if out := c.Compose("الجواب.", "ar", tier, warningAnalysis()); out != "الجواب." {
			t.Errorf("tier %s: answer must pass through unmodified, got %q", tier, out)
		}
	}
}

func TestCompose_PremiumWithoutWarningsUnmodified(t *testing.T) {
	c := NewComposer()

	clean := model.QualityAnalysis{Score: 100}
	if out := c.Compose("الجواب.", "ar", model.TierPremium, clean); out != "الجواب." {
		t.Errorf("clean answers must not grow an advisory block, got %q", out)
	}
}

func TestCompose_AdvisoryFollowsLanguage(t *testing.T) {
	c := NewComposer()

	fr := c.Compose("Réponse.", "fr", model.TierPremium, warningAnalysis())
	if !strings.Contains(fr, advisoryHeader.FR) {
		t.Errorf("expected the French header in %q", fr)
	}
	if !strings.Contains(fr, "numéro") {
		t.Errorf("expected the French warning text in %q", fr)
	}
}
