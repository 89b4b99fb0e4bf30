package score

import (
	"regexp"
	"strings"

	"github.com/daleel-app/daleel/internal/model"
	"github.com/daleel-app/daleel/internal/registry"
)

// Quran presence probes: the quotation glyphs or a surah token in any of
// the three supported languages.
var (
	quranToken = regexp.MustCompile(`(?i)سورة|sourate|surah|surat`)

	// A hadith counts as present only when a narration formula is anchored
	// by parenthesized digits.
	hadithAnchorAr    = regexp.MustCompile(`(?:رواه|أخرجه)[^()\n]{0,80}\(\s*\d+\s*\)`)
	hadithAnchorLatin = regexp.MustCompile(`(?i)(?:narrated by|reported by|rapporté par|recorded by)[^()\n]{0,80}\(\s*\d+\s*\)`)
)

// Analyzer applies the registry's weak-pattern rules to compute a quality
// score and structured warnings for an answer.
type Analyzer struct {
	registry *registry.Registry
	penalty  int
}

// NewAnalyzer creates an analyzer. The weak-hit penalty comes from the
// scoring configuration (default 15).
func NewAnalyzer(reg *registry.Registry, sc model.ScoringConfig) *Analyzer {
	penalty := sc.WeakHitPenalty
	if penalty <= 0 {
		penalty = 15
	}
	return &Analyzer{registry: reg, penalty: penalty}
}

// Analyze runs both rule tiers over the answer. Unlike the extractor it
// never deduplicates: every weak hit stands for a real defect, and each one
// costs the same penalty. Valid citations never lower the score.
func (a *Analyzer) Analyze(text string) model.QualityAnalysis {
	analysis := model.QualityAnalysis{
		Score:        100,
		ValidRefs:    []model.RefHit{},
		WeakRefs:     []model.RefHit{},
		Warnings:     []model.Warning{},
		HasQuranRef:  hasQuranRef(text),
		HasHadithRef: hasHadithRef(text),
	}
	if text == "" {
		return analysis
	}

	for _, rule := range a.registry.Valid() {
		for _, m := range rule.Pattern.FindAllString(text, -1) {
			analysis.ValidRefs = append(analysis.ValidRefs, model.RefHit{
				Type: rule.Class,
				Text: strings.TrimSpace(m),
			})
		}
	}

	for _, rule := range a.registry.Weak() {
		for _, loc := range rule.Pattern.FindAllStringIndex(text, -1) {
			if rule.NumericAnchorAware && registry.HasNumericAnchor(text, loc[1]) {
				continue // anchored by a number, not a defect
			}
			if rule.TransmitterAware && registry.HasNamedTransmitter(text, loc[0]) {
				continue // the consensus names its transmitter
			}
			hitText := strings.TrimSpace(text[loc[0]:loc[1]])
			analysis.WeakRefs = append(analysis.WeakRefs, model.RefHit{
				Type: rule.Class,
				Text: hitText,
			})
			analysis.Warnings = append(analysis.Warnings, model.Warning{
				Type:    rule.Warning,
				Text:    hitText,
				Message: registry.WarningMessage(rule.Warning),
			})
		}
	}

	analysis.Score = 100 - a.penalty*len(analysis.WeakRefs)
	if analysis.Score < 0 {
		analysis.Score = 0
	}
	return analysis
}

func hasQuranRef(text string) bool {
	if strings.ContainsRune(text, '﴿') || strings.ContainsRune(text, '﴾') {
		return true
	}
	return quranToken.MatchString(text)
}

func hasHadithRef(text string) bool {
	return hadithAnchorAr.MatchString(text) || hadithAnchorLatin.MatchString(text)
}
