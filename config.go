package codepart

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gioui.org/font"
	"gioui.org/font/opentype"
	"gioui.org/text"
	"github.com/ddkwork/golibrary/mylog"
	findfont "github.com/flopp/go-findfont"
	"github.com/pelletier/go-toml"

	"github.com/jeffwilliams/codepart/internal/typeset"
)

var ConfDir string

func init() {
	if runtime.GOOS == "windows" {
		ConfDir = fmt.Sprintf("%s/.codepart", os.Getenv("USERPROFILE"))
	} else {
		ConfDir = fmt.Sprintf("%s/.codepart", os.Getenv("HOME"))
	}
}

func StyleConfigFile() string {
	return fmt.Sprintf("%s/%s", ConfDir, "style.js")
}

func SettingsConfigFile() string {
	return fmt.Sprintf("%s/%s", ConfDir, "settings.toml")
}

type Settings struct {
	Editor      EditorSettings
	Typesetting TypesettingSettings
}

type EditorSettings struct {
	TabStopInterval int    `toml:"tab-stop-interval"`
	LineSpacing     int    `toml:"line-spacing"`
	Language        string `toml:"language"`
}

type TypesettingSettings struct {
	ReplaceCRWithTofu bool `toml:"replace-cr-with-tofu"`
}

func LoadSettingsFromConfigFile(settings *Settings) error {
	return LoadSettingsFromFile(SettingsConfigFile(), settings)
}

func LoadSettingsFromFile(path string, settings *Settings) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer func() { mylog.Check(f.Close()) }()

	dec := toml.NewDecoder(f)
	err = dec.Decode(settings)
	return
}

// loadFontFromFile returns errors rather than panicking through mylog so
// that resolveFontFace can fall back to the built-in font when a style file
// names a font that is not installed.
func loadFontFromFile(filename string) (f text.FontFace, err error) {
	path, err := findfont.Find(filename)
	if err != nil {
		return
	}

	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer func() { mylog.Check(file.Close()) }()

	var face opentype.Face
	face, err = typeset.ParseTTF(file)
	if err != nil {
		return
	}

	return fontFaceFromOpentype(face, filepath.Base(filename)), nil
}

func fontFaceFromOpentype(face opentype.Face, typefaceName string) text.FontFace {
	return text.FontFace{
		Font: font.Font{
			Typeface: font.Typeface(typefaceName),
		},
		Face: face,
	}
}

func LoadStyleFromConfigFile(defaults *Style) (Style, error) {
	return LoadStyleFromFile(StyleConfigFile(), defaults)
}

// LoadStyleFromFile reads the JSON style file and resolves the font name to
// a face: the two built-in names map to the embedded Go fonts, anything else
// is looked up as a font file on the system.
func LoadStyleFromFile(path string, defaults *Style) (s Style, err error) {
	s, err = ReadStyle(path, defaults)
	if err != nil {
		return
	}

	s.FontFace = resolveFontFace(s.FontName)
	return
}

func resolveFontFace(name string) text.FontFace {
	switch name {
	case "", "defaultMonoFont":
		return MonoFont
	case "defaultVariableFont":
		return VariableFont
	}

	fnt, err := loadFontFromFile(name)
	if err != nil {
		log(LogCatgConf, "loading font %s: %v; falling back to the mono font\n", name, err)
		return MonoFont
	}
	return fnt
}

func GenerateSampleSettings() string {
	return `# Sample codepart settings file
[editor]
# Width of a tab stop in pixels.
#tab-stop-interval=30

# Extra vertical space between lines, in pixels.
#line-spacing=0

# Default syntax language when a file's type cannot be detected.
#language=""

[typesetting]
# When rendering text show carriage-returns as the "tofu" character (a box)
# The default is false
#replace-cr-with-tofu=false
`
}
