package main

import "testing"

func TestSyntaxLanguage(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		setting  string
		expected string
	}{
		{"flag wins", "go", "python", "go"},
		{"settings language is the fallback", "", "python", "python"},
		{"neither set", "", "", ""},
	}

	defer func(lang string) { *optLanguage = lang }(*optLanguage)
	defer func(s string) { settings.Editor.Language = s }(settings.Editor.Language)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			*optLanguage = tc.flag
			settings.Editor.Language = tc.setting

			if got := syntaxLanguage(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
