// Package classify decides whether a question seeks a religious ruling.
package classify

import "strings"

// QuestionClassifier reports whether a question is ruling-seeking. It is an
// explicit strategy so the keyword heuristic can later be swapped for a
// proper classifier without touching the retry controller.
type QuestionClassifier interface {
	IsReligiousQuestion(question string) bool
}

// KeywordClassifier is a coarse substring heuristic over ruling and
// legal-status vocabulary in Arabic, French and English. False positives
// and false negatives are expected and accepted.
type KeywordClassifier struct {
	keywords []string
}

// NewKeywordClassifier returns the default ruling-vocabulary classifier
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		keywords: []string{
			// Arabic legal-status terms
			"حكم", "حلال", "حرام", "يجوز", "جائز", "مكروه", "واجب",
			"فرض", "مباح", "بدعة", "فتوى",
			// Arabic topic words
			"صلاة", "صيام", "صوم", "زكاة", "حج", "وضوء", "خمر",
			"ربا", "طلاق", "نكاح", "عورة", "حجاب",
			// English
			"ruling", "permissible", "forbidden", "haram", "halal",
			"obligatory", "makruh", "sunnah", "bid'ah", "fatwa",
			"prayer", "fasting", "zakat", "hajj", "wudu", "alcohol",
			"riba", "interest", "divorce", "marriage", "hijab",
			// French
			"licite", "illicite", "permis", "interdit", "obligatoire",
			"prière", "jeûne", "aumône", "pèlerinage", "ablution",
			"alcool", "usure", "mariage", "voile",
		},
	}
}

// NewKeywordClassifierWith builds a classifier over a custom vocabulary
// (used by tests)
func NewKeywordClassifierWith(keywords []string) *KeywordClassifier {
	return &KeywordClassifier{keywords: keywords}
}

// IsReligiousQuestion is a case-insensitive membership test of the original
// user question against the ruling vocabulary.
func (c *KeywordClassifier) IsReligiousQuestion(question string) bool {
	if question == "" {
		return false
	}
	lower := strings.ToLower(question)
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
