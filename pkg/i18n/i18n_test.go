package i18n

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		locale   string
		expected Language
	}{
		{name: "empty falls back to english", locale: "", expected: LanguageEN},
		{name: "plain english", locale: "en", expected: LanguageEN},
		{name: "american english", locale: "en-US", expected: LanguageEN},
		{name: "brazilian portuguese", locale: "pt-BR", expected: LanguagePT},
		{name: "plain portuguese", locale: "pt", expected: LanguagePT},
		{name: "unsupported language", locale: "fr", expected: LanguageEN},
		{name: "garbage input", locale: "not a locale", expected: LanguageEN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.locale); got != tt.expected {
				t.Errorf("Match(%q) = %q, want %q", tt.locale, got, tt.expected)
			}
		})
	}
}

func TestT(t *testing.T) {
	if got := T(LanguagePT, "gold"); got != "Ouro" {
		t.Errorf("expected 'Ouro', got %q", got)
	}
	if got := T(LanguageEN, "gold"); got != "Gold" {
		t.Errorf("expected 'Gold', got %q", got)
	}

	// Unknown language falls back to English.
	if got := T(Language("de"), "gold"); got != "Gold" {
		t.Errorf("expected English fallback, got %q", got)
	}

	// Unknown key is returned as-is so it is visible in the UI.
	if got := T(LanguageEN, "no_such_key"); got != "no_such_key" {
		t.Errorf("expected key echo, got %q", got)
	}
}
