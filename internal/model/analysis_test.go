package model

import "testing"

func TestLocalizedMessage_In(t *testing.T) {
	msg := LocalizedMessage{AR: "عربي", FR: "français", EN: "english"}

	tests := []struct {
		lang string
		want string
	}{
		{"ar", "عربي"},
		{"fr", "français"},
		{"en", "english"},
		{"", "عربي"},
		{"de", "عربي"}, // unsupported languages fall back to Arabic
	}
	for _, tt := range tests {
		if got := msg.In(tt.lang); got != tt.want {
			t.Errorf("In(%q) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}
