package classify

import "testing"

func TestIsReligiousQuestion(t *testing.T) {
	c := NewKeywordClassifier()

	tests := []struct {
		question string
		want     bool
	}{
		{"ما حكم شرب الخمر؟", true},
		{"هل يجوز الجمع بين الصلاتين في السفر؟", true},
		{"What is the ruling on mortgage interest?", true},
		{"Is it PERMISSIBLE to fast while travelling?", true},
		{"Est-ce que l'alcool est licite ?", true},
		{"كيف حالك اليوم؟", false},
		{"What time is it in Paris?", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := c.IsReligiousQuestion(tt.question); got != tt.want {
			t.Errorf("IsReligiousQuestion(%q) = %v, want %v", tt.question, got, tt.want)
		}
	}
}

func TestIsReligiousQuestion_CustomVocabulary(t *testing.T) {
	c := NewKeywordClassifierWith([]string{"inheritance"})

	if !c.IsReligiousQuestion("How is inheritance divided?") {
		t.Error("expected custom keyword to classify")
	}
	if c.IsReligiousQuestion("ما حكم شرب الخمر؟") {
		t.Error("default vocabulary must not leak into a custom classifier")
	}
}
