package pipeline

import (
	"strings"
	"testing"

	"github.com/daleel-app/daleel/internal/registry"
)

func TestSystemPrompt_CitationContract(t *testing.T) {
	known := registry.NewKnownCitations([]registry.KnownHadithEntry{
		{Phrase: "إنما الأعمال بالنيات", Sources: map[string]int{"bukhari": 1}},
	})

	ar := SystemPrompt("ar", known)
	if !strings.Contains(ar, "رواه مسلم (2003)") {
		t.Error("Arabic prompt must show the numbered-citation example")
	}
	if !strings.Contains(ar, "إنما الأعمال بالنيات") {
		t.Error("Arabic prompt must list the known-citation anchors")
	}

	fr := SystemPrompt("fr", known)
	if !strings.Contains(fr, "rapporté par Muslim (2003)") {
		t.Error("French prompt must show the numbered-citation example")
	}

	en := SystemPrompt("en", known)
	if !strings.Contains(en, "reported by Muslim (2003)") {
		t.Error("English prompt must show the numbered-citation example")
	}

	// Unknown language codes fall back to Arabic.
	if SystemPrompt("de", known) != ar {
		t.Error("expected Arabic fallback for unknown language codes")
	}
}

func TestSystemPrompt_NoKnownCitations(t *testing.T) {
	prompt := SystemPrompt("ar", registry.NewKnownCitations(nil))
	if strings.Contains(prompt, "أرقام موثقة") {
		t.Error("an empty table must not produce an anchors section")
	}
	if prompt == "" {
		t.Error("the citation contract must always be present")
	}
}
