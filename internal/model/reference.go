package model

// Reference represents a single citation extracted from an answer
type Reference struct {
	Text     string  `json:"text"`               // The citation text, trimmed, at most 150 characters
	Type     RefType `json:"type"`               // Evidence class of the citation
	Priority int     `json:"priority,omitempty"` // Ranking weight used during deduplication
}

// RefType classifies the evidence class of a reference
type RefType string

const (
	RefQuran          RefType = "quran"           // Qur'an verse reference (surah + verse)
	RefHadithNumbered RefType = "hadith_numbered" // Hadith citation with a collection number
	RefHadithGraded   RefType = "hadith_graded"   // Hadith citation with a grading but no number
	RefScholarBook    RefType = "scholar_book"    // Named scholar with a book/volume source
	RefScholarOpinion RefType = "scholar_opinion" // Named scholar cited without a source
)

// RefHit is a single recognizer match as seen by the quality analyzer.
// Unlike Reference, hits are never deduplicated: each one stands for a
// real occurrence in the text.
type RefHit struct {
	Type RefType `json:"type"`
	Text string  `json:"text"`
}
