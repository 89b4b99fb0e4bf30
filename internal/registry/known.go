package registry

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed known_hadith.yaml
var knownHadithYAML []byte

// KnownHadithEntry maps a famous hadith opening phrase to its verified
// (collection, number) pairs.
type KnownHadithEntry struct {
	Phrase  string         `yaml:"phrase"`
	Sources map[string]int `yaml:"sources"`
}

// KnownCitations is the static ground-truth table, loaded once at process
// start and never mutated. Safe for unlimited concurrent readers.
type KnownCitations struct {
	entries []KnownHadithEntry
}

// LoadKnownCitations parses the embedded table
func LoadKnownCitations() (*KnownCitations, error) {
	var entries []KnownHadithEntry
	if err := yaml.Unmarshal(knownHadithYAML, &entries); err != nil {
		return nil, fmt.Errorf("parse known citations: %w", err)
	}
	for i, e := range entries {
		if e.Phrase == "" || len(e.Sources) == 0 {
			return nil, fmt.Errorf("known citations entry %d: phrase and sources are required", i)
		}
	}
	return &KnownCitations{entries: entries}, nil
}

// NewKnownCitations builds a table from explicit entries (used by tests)
func NewKnownCitations(entries []KnownHadithEntry) *KnownCitations {
	return &KnownCitations{entries: entries}
}

// Len returns the number of entries in the table
func (k *KnownCitations) Len() int {
	return len(k.entries)
}

// Entries returns the full table in declaration order
func (k *KnownCitations) Entries() []KnownHadithEntry {
	return k.entries
}

// Match returns every entry whose phrase appears verbatim in text.
// Lookup is exact substring match of the phrase key.
func (k *KnownCitations) Match(text string) []KnownHadithEntry {
	if text == "" {
		return nil
	}
	var hits []KnownHadithEntry
	for _, e := range k.entries {
		if strings.Contains(text, e.Phrase) {
			hits = append(hits, e)
		}
	}
	return hits
}

// FormatSources renders an entry's sources as a compact citation hint,
// e.g. "bukhari 1, muslim 1907".
func (e KnownHadithEntry) FormatSources() string {
	// Keep a stable order for the six canonical collections.
	order := []string{"bukhari", "muslim", "tirmidhi", "abu_dawud", "nasai", "ibn_majah"}
	var parts []string
	for _, name := range order {
		if n, ok := e.Sources[name]; ok {
			parts = append(parts, fmt.Sprintf("%s %d", name, n))
		}
	}
	for name, n := range e.Sources {
		seen := false
		for _, known := range order {
			if name == known {
				seen = true
				break
			}
		}
		if !seen {
			parts = append(parts, fmt.Sprintf("%s %d", name, n))
		}
	}
	return strings.Join(parts, ", ")
}
