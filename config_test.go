package codepart

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0644)
}

func TestLoadSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	err := writeFile(path, `
[editor]
tab-stop-interval=40
line-spacing=2
language="python"

[typesetting]
replace-cr-with-tofu=true
`)
	if err != nil {
		t.Fatal(err)
	}

	var s Settings
	if err := LoadSettingsFromFile(path, &s); err != nil {
		t.Fatalf("LoadSettingsFromFile: %v", err)
	}

	if s.Editor.TabStopInterval != 40 {
		t.Errorf("tab-stop-interval: expected 40, got %d", s.Editor.TabStopInterval)
	}
	if s.Editor.LineSpacing != 2 {
		t.Errorf("line-spacing: expected 2, got %d", s.Editor.LineSpacing)
	}
	if s.Editor.Language != "python" {
		t.Errorf("language: expected python, got %q", s.Editor.Language)
	}
	if !s.Typesetting.ReplaceCRWithTofu {
		t.Errorf("replace-cr-with-tofu: expected true")
	}
}

func TestLoadSettingsKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := writeFile(path, "[editor]\nline-spacing=3\n"); err != nil {
		t.Fatal(err)
	}

	s := Settings{Editor: EditorSettings{TabStopInterval: 30}}
	if err := LoadSettingsFromFile(path, &s); err != nil {
		t.Fatalf("LoadSettingsFromFile: %v", err)
	}

	if s.Editor.TabStopInterval != 30 {
		t.Errorf("expected untouched tab-stop-interval 30, got %d", s.Editor.TabStopInterval)
	}
	if s.Editor.LineSpacing != 3 {
		t.Errorf("expected line-spacing 3, got %d", s.Editor.LineSpacing)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	var s Settings
	if err := LoadSettingsFromFile(filepath.Join(t.TempDir(), "nope.toml"), &s); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestLoadFontFromFileMissingFont(t *testing.T) {
	if _, err := loadFontFromFile("no-such-font-file-xyz.ttf"); err == nil {
		t.Errorf("expected an error for a font that is not installed")
	}
}

func TestResolveFontFace(t *testing.T) {
	tests := []struct {
		name     string
		font     string
		typeface string
	}{
		{"empty name is the mono font", "", "defaultMonoFont"},
		{"built-in mono", "defaultMonoFont", "defaultMonoFont"},
		{"built-in variable", "defaultVariableFont", "defaultVariableFont"},
		{"uninstalled font falls back to mono", "no-such-font-file-xyz.ttf", "defaultMonoFont"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := resolveFontFace(tc.font)
			if string(f.Font.Typeface) != tc.typeface {
				t.Errorf("expected typeface %q, got %q", tc.typeface, f.Font.Typeface)
			}
		})
	}
}

// The sample settings file must stay decodable: every option in it is
// commented out, so decoding it changes nothing.
func TestGenerateSampleSettingsDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := writeFile(path, GenerateSampleSettings()); err != nil {
		t.Fatal(err)
	}

	var s Settings
	if err := LoadSettingsFromFile(path, &s); err != nil {
		t.Fatalf("sample settings do not decode: %v", err)
	}
	if s != (Settings{}) {
		t.Errorf("sample settings changed values: %+v", s)
	}
}
