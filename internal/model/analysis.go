package model

// LocalizedMessage is a fixed-language triple. All three languages are
// always populated together, never partially.
type LocalizedMessage struct {
	AR string `json:"ar"`
	FR string `json:"fr"`
	EN string `json:"en"`
}

// In returns the message in the requested language, falling back to Arabic
// (the product's primary locale) for unknown codes.
func (m LocalizedMessage) In(lang string) string {
	switch lang {
	case "fr":
		return m.FR
	case "en":
		return m.EN
	default:
		return m.AR
	}
}

// WarningType classifies a citation-quality defect
type WarningType string

const (
	WarnCitationMissingNumber  WarningType = "citation_missing_number"  // Hadith cited with grading instead of number
	WarnConsensusWithoutSource WarningType = "consensus_without_source" // Consensus claim with no named transmitter
)

// Warning is a typed, localized citation-quality warning
type Warning struct {
	Type    WarningType      `json:"type"`
	Text    string           `json:"text"` // The offending span
	Message LocalizedMessage `json:"message"`
}

// QualityAnalysis is the result of running the weak-pattern rules over an
// answer. Immutable once returned; created fresh per analysis call.
type QualityAnalysis struct {
	Score        int       `json:"score"` // 0-100, reduced by weak-pattern hits only
	ValidRefs    []RefHit  `json:"valid_refs"`
	WeakRefs     []RefHit  `json:"weak_refs"`
	Warnings     []Warning `json:"warnings"`
	HasQuranRef  bool      `json:"has_quran_ref"`
	HasHadithRef bool      `json:"has_hadith_ref"`
}

// RetryReason explains why a corrective regeneration was (or was not) issued
type RetryReason string

const (
	RetryMissingEvidence RetryReason = "missing_evidence"
	RetryNone            RetryReason = "none"
)

// RetryDecision is derived per request from the quality analysis and the
// question classifier. Never persisted.
type RetryDecision struct {
	ShouldRetry bool        `json:"should_retry"`
	Reason      RetryReason `json:"reason"`
}
