package registry

import (
	"strings"
	"testing"
)

func TestLoadKnownCitations(t *testing.T) {
	known, err := LoadKnownCitations()
	if err != nil {
		t.Fatalf("LoadKnownCitations: %v", err)
	}
	if known.Len() == 0 {
		t.Fatal("expected embedded citation list to be non-empty")
	}
	for _, entry := range known.Entries() {
		if entry.Phrase == "" {
			t.Error("entry with empty phrase")
		}
		if len(entry.Sources) == 0 {
			t.Errorf("entry %q has no sources", entry.Phrase)
		}
	}
}

func TestKnownCitations_Match(t *testing.T) {
	known := NewKnownCitations([]KnownHadithEntry{
		{Phrase: "إنما الأعمال بالنيات", Sources: map[string]int{"bukhari": 1, "muslim": 1907}},
	})

	hits := known.Match("سئل عن حديث إنما الأعمال بالنيات وصحته")
	if len(hits) != 1 {
		t.Fatalf("expected 1 match, got %d", len(hits))
	}
	if hits[0].Phrase != "إنما الأعمال بالنيات" {
		t.Errorf("unexpected phrase %q", hits[0].Phrase)
	}

	if hits := known.Match("سؤال عام عن الصيام"); len(hits) != 0 {
		t.Errorf("expected no matches, got %d", len(hits))
	}
}

func TestKnownHadithEntry_FormatSources(t *testing.T) {
	entry := KnownHadithEntry{
		Phrase:  "إنما الأعمال بالنيات",
		Sources: map[string]int{"muslim": 1907, "bukhari": 1},
	}

	first := entry.FormatSources()
	if !strings.Contains(first, "1907") || !strings.Contains(first, "1") {
		t.Errorf("expected both numbers in %q", first)
	}
	// Map iteration must not leak into the output order.
	for i := 0; i < 20; i++ {
		if got := entry.FormatSources(); got != first {
			t.Fatalf("unstable source formatting: %q vs %q", got, first)
		}
	}
}
