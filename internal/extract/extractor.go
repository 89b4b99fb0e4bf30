package extract

import (
	"sort"
	"strings"

	"github.com/daleel-app/daleel/internal/model"
	"github.com/daleel-app/daleel/internal/registry"
)

const (
	// maxRefLen is the per-reference truncation limit, in runes
	maxRefLen = 150

	// minRefLen discards degenerate matches regardless of type
	minRefLen = 4
)

// Extractor scans an answer against the registry's valid tier and produces
// a ranked, deduplicated, capped reference list.
type Extractor struct {
	registry *registry.Registry
	softCap  int
	maxRefs  int
}

// NewExtractor creates an extractor over the given registry
func NewExtractor(reg *registry.Registry, sc model.ScoringConfig) *Extractor {
	softCap := sc.SoftCap
	if softCap <= 0 {
		softCap = 15
	}
	maxRefs := sc.MaxReferences
	if maxRefs <= 0 {
		maxRefs = 10
	}
	return &Extractor{
		registry: reg,
		softCap:  softCap,
		maxRefs:  maxRefs,
	}
}

type candidate struct {
	ref model.Reference
	pos int // byte offset of first occurrence, for deterministic ordering
}

// Extract returns the ordered reference list for an answer. Output is
// deterministic for a given input and registry version, and no entry is a
// substring of another.
func (e *Extractor) Extract(text string) []model.Reference {
	if text == "" {
		return []model.Reference{}
	}

	seen := make(map[string]bool)
	var candidates []candidate

	for _, rule := range e.registry.Valid() {
		locs := rule.Pattern.FindAllStringIndex(text, -1)
		for _, loc := range locs {
			refText := truncateRunes(strings.TrimSpace(text[loc[0]:loc[1]]), maxRefLen)
			if runeLen(refText) < minRefLen {
				continue
			}
			key := normalizeKey(refText)
			if seen[key] {
				continue
			}
			seen[key] = true
			candidates = append(candidates, candidate{
				ref: model.Reference{
					Text:     refText,
					Type:     rule.Class,
					Priority: rule.Priority,
				},
				pos: loc[0],
			})
		}
	}

	// Rank by priority, breaking ties by position in the text so runs
	// over the same input always agree.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].ref.Priority != candidates[j].ref.Priority {
			return candidates[i].ref.Priority > candidates[j].ref.Priority
		}
		return candidates[i].pos < candidates[j].pos
	})

	if len(candidates) > e.softCap {
		candidates = candidates[:e.softCap]
	}

	// Containment dedup in priority order: drop anything that contains,
	// or is contained by, an already-accepted entry.
	var accepted []model.Reference
	for _, c := range candidates {
		contained := false
		for _, a := range accepted {
			if strings.Contains(a.Text, c.ref.Text) || strings.Contains(c.ref.Text, a.Text) {
				contained = true
				break
			}
		}
		if contained {
			continue
		}
		accepted = append(accepted, c.ref)
		if len(accepted) >= e.maxRefs {
			break
		}
	}

	if accepted == nil {
		return []model.Reference{}
	}
	return accepted
}

// normalizeKey lowercases and collapses internal whitespace so that
// near-identical citations dedupe to one entry.
func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func runeLen(s string) int {
	return len([]rune(s))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}
