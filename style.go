package codepart

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strings"

	"gioui.org/text"
	"golang.org/x/image/colornames"
)

type Style struct {
	FontName string
	FontSize int
	FontFace text.FontFace `json:"-"` // Don't write the Font property to file.

	FgColor            Color
	BgColor            Color
	CurrentLineBgColor Color
	SelectionFgColor   Color
	SelectionBgColor   Color

	GutterFgColor     Color
	GutterBgColor     Color
	GutterMarkColor   Color
	GutterLeftMargin  int
	GutterRightMargin int

	TabStopInterval int
	LineSpacing     int
	TextLeftPadding int

	Syntax SyntaxStyle
}

type SyntaxStyle struct {
	KeywordColor      Color
	NameColor         Color
	StringColor       Color
	NumberColor       Color
	OperatorColor     Color
	CommentColor      Color
	PreprocessorColor Color
	HeadingColor      Color
	SubheadingColor   Color
	InsertedColor     Color
	DeletedColor      Color
}

func (s Style) gutterStyle() gutterStyle {
	return gutterStyle{
		FgColor:     color.NRGBA(s.GutterFgColor),
		BgColor:     color.NRGBA(s.GutterBgColor),
		MarkColor:   color.NRGBA(s.GutterMarkColor),
		LeftMargin:  s.GutterLeftMargin,
		RightMargin: s.GutterRightMargin,
	}
}

func MustParseHexColor(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func ParseHexColor(s string) (c Color, err error) {
	c.A = 0xff

	if len(s) == 0 || s[0] != '#' {
		err = fmt.Errorf("invalid hex color format when parsing '%s': does not begin with #", s)
		return
	}

	hexToByte := func(b byte) byte {
		switch {
		case b >= '0' && b <= '9':
			return b - '0'
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10
		}
		err = fmt.Errorf("invalid hex color format when parsing '%s': contains a character that is not 0-9, a-f or A-F", s)
		return 0
	}

	switch len(s) {
	case 7:
		c.R = hexToByte(s[1])<<4 + hexToByte(s[2])
		c.G = hexToByte(s[3])<<4 + hexToByte(s[4])
		c.B = hexToByte(s[5])<<4 + hexToByte(s[6])
	case 4:
		c.R = hexToByte(s[1]) * 17
		c.G = hexToByte(s[2]) * 17
		c.B = hexToByte(s[3]) * 17
	default:
		err = fmt.Errorf("invalid hex color format when parsing '%s': length is not 4 or 7 bytes", s)
	}
	return
}

func ReadStyle(path string, defaults *Style) (s Style, err error) {
	if defaults != nil {
		s = *defaults
	}

	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	dec := json.NewDecoder(file)
	err = dec.Decode(&s)
	return
}

// WriteStyle writes the style to a file. The font face is omitted; only the
// font name and size are persisted.
func WriteStyle(path string, s Style) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

type Color color.NRGBA

func (c Color) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"#%02x%02x%02x\"", c.R, c.G, c.B)), nil
}

func (c *Color) UnmarshalJSON(b []byte) error {
	s := string(b)
	if b[0] != '"' || b[len(s)-1] != '"' {
		return fmt.Errorf("invalid hex color format when unmarshalling JSON color '%s': color should be a string value (in double-quotes)", s)
	}

	col, err := ParseHexColor(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}

	*c = col
	return nil
}

func ColorFromName(name string) (c Color, ok bool) {
	name = strings.ToLower(name)

	col, ok := colornames.Map[name]
	if !ok {
		return
	}
	return Color{R: col.R, G: col.G, B: col.B, A: col.A}, true
}

// DefaultStyle is the style used when no style file is present.
// Syntax colors are borrowed from the vim jellybeans color scheme.
var DefaultStyle = Style{
	FontName:           "defaultMonoFont",
	FontSize:           14,
	FgColor:            MustParseHexColor("#f0f0f0"),
	BgColor:            MustParseHexColor("#17223B"),
	CurrentLineBgColor: MustParseHexColor("#1f2d4d"),
	SelectionFgColor:   MustParseHexColor("#17223B"),
	SelectionBgColor:   MustParseHexColor("#b1b695"),
	GutterFgColor:      MustParseHexColor("#6B778D"),
	GutterBgColor:      MustParseHexColor("#121c33"),
	GutterMarkColor:    MustParseHexColor("#f4a660"),
	GutterLeftMargin:   3,
	GutterRightMargin:  3,
	TabStopInterval:    30, // in pixels
	LineSpacing:        0,
	TextLeftPadding:    3,
	Syntax: SyntaxStyle{
		// Colors borrowed from the vim jellybeans color scheme
		KeywordColor:      MustParseHexColor("#8fbfdc"),
		NameColor:         MustParseHexColor("#f0f0f0"),
		StringColor:       MustParseHexColor("#99ad6a"),
		NumberColor:       MustParseHexColor("#cf6a4c"),
		OperatorColor:     MustParseHexColor("#f0f0f0"),
		CommentColor:      MustParseHexColor("#888888"),
		PreprocessorColor: MustParseHexColor("#c6b6ee"),
		HeadingColor:      MustParseHexColor("#99ad6a"),
		SubheadingColor:   MustParseHexColor("#c6b6ee"),
		InsertedColor:     MustParseHexColor("#51a151"),
		DeletedColor:      MustParseHexColor("#ca6565"),
	},
}
