// Package typeset lays out text into positioned glyphs. It doesn't render.
package typeset

import (
	"fmt"
	"unicode/utf8"

	"gioui.org/text"
	"github.com/ddkwork/golibrary/mylog"
	"golang.org/x/image/math/fixed"
)

// Constraints constrain how the text is layed out.
type Constraints struct {
	FontSize int
	FontFace text.FontFace
	// TabStopInterval is in pixels.
	TabStopInterval int
	// a MaxHeight of 0 means process all the input text, no matter how many
	// lines it creates.
	MaxHeight         int
	ExtraLineGap      int
	ReplaceCRWithTofu bool
}

var shapers = map[text.FontFace]*text.Shaper{}

// ShaperFor returns a shaper for the face. Shapers are cached because
// building one loads and parses the font.
func ShaperFor(face text.FontFace) *text.Shaper {
	s, ok := shapers[face]
	if ok {
		return s
	}
	s = text.NewShaper([]text.FontFace{face})
	shapers[face] = s
	return s
}

func Layout(input []byte, constraints Constraints) (Text, error) {
	l := newLayouter([]rune(string(input)), constraints)
	return l.layout()
}

type layouter struct {
	input       []rune
	constraints Constraints

	nextRune        int
	tabStopInterval fixed.Int26_6
	maxHeight       fixed.Int26_6
	height          fixed.Int26_6
	text            Text
	line            Line

	shaper       *text.Shaper
	spaceGlyph   text.Glyph
	tofuGlyph    text.Glyph
	newlineGlyph text.Glyph
}

func newLayouter(input []rune, constraints Constraints) *layouter {
	l := &layouter{input: input, constraints: constraints}
	l.init()
	return l
}

func (l *layouter) init() {
	l.tabStopInterval = fixed.I(l.constraints.TabStopInterval)
	l.maxHeight = fixed.I(l.constraints.MaxHeight)
	l.shaper = ShaperFor(l.constraints.FontFace)

	l.spaceGlyph = mylog.Check2(l.shapeOneRune(' '))
	l.tofuGlyph, _ = l.shapeOneRune('□')
	l.newlineGlyph = text.Glyph{ID: l.spaceGlyph.ID}

	l.text.lineHeight, l.text.ascent, l.text.descent = l.lineMetrics()
	l.text.lineHeight += fixed.I(l.constraints.ExtraLineGap)
}

func (l *layouter) layout() (Text, error) {
	for {
		r, eof := l.nextInputRune()
		if eof {
			break
		}

		if l.anotherLineIsTooMuch() {
			break
		}

		if r == '\n' {
			l.appendToLine('\n', l.newlineGlyph)
			l.outputLine()
			continue
		}

		g := l.layoutRune(r)
		l.appendToLine(r, g)
	}

	if l.line.RuneCount() > 0 {
		l.outputLine()
	}

	return l.text, nil
}

func (l *layouter) nextInputRune() (rn rune, eof bool) {
	if l.nextRune >= len(l.input) {
		eof = true
		return
	}

	rn = l.input[l.nextRune]
	l.nextRune++
	return
}

func (l *layouter) anotherLineIsTooMuch() bool {
	return l.maxHeight > 0 && l.line.RuneCount() == 0 && l.height+l.text.lineHeight > l.maxHeight
}

func (l *layouter) layoutRune(r rune) text.Glyph {
	g := mylog.Check2(l.shapeOneRune(r))

	l.expandTabsInGlyph(r, &g)
	l.replaceCarriageReturnsInGlyph(r, &g)
	return g
}

func (l *layouter) expandTabsInGlyph(r rune, g *text.Glyph) {
	if r != '\t' || l.tabStopInterval <= 0 {
		return
	}

	nextTabStop := (l.line.width/l.tabStopInterval + 1) * l.tabStopInterval
	g.Advance = nextTabStop - l.line.width
	g.Offset = fixed.Point26_6{}
	g.ID = l.spaceGlyph.ID
}

func (l *layouter) replaceCarriageReturnsInGlyph(r rune, g *text.Glyph) {
	if r != '\r' || l.tofuGlyph.ID == 0 || !l.constraints.ReplaceCRWithTofu {
		return
	}

	*g = l.tofuGlyph
}

func (l *layouter) appendToLine(r rune, g text.Glyph) {
	g.X = l.line.width
	l.line.runes = append(l.line.runes, r)
	l.line.glyphs = append(l.line.glyphs, g)
	l.line.byteCount += utf8.RuneLen(r)
	l.line.width += g.Advance
}

func (l *layouter) outputLine() {
	l.text.lines = append(l.text.lines, l.line)
	l.text.byteCount += l.line.byteCount
	l.height += l.text.lineHeight
	l.line = Line{}
}

func (l *layouter) lineMetrics() (height, ascent, descent fixed.Int26_6) {
	g := mylog.Check2(l.shapeOneRune('X'))

	ascent = g.Ascent
	descent = g.Descent
	height = g.Ascent + g.Descent
	return
}

func (l *layouter) shapeOneRune(r rune) (text.Glyph, error) {
	return shapeOneRune(l.shaper, l.constraints.FontFace, l.constraints.FontSize, r)
}

func shapeOneRune(shaper *text.Shaper, face text.FontFace, fontSize int, r rune) (glyph text.Glyph, err error) {
	params := text.Parameters{
		Font:    face.Font,
		PxPerEm: fixed.I(fontSize),
	}

	shaper.LayoutString(params, string(r))
	glyph, ok := shaper.NextGlyph()
	if !ok {
		err = fmt.Errorf("text.Shaper.LayoutString returned no glyph for rune %q", r)
	}
	return
}

// AdvanceOf is the horizontal advance of a single rune in the face.
func AdvanceOf(face text.FontFace, fontSize int, r rune) (fixed.Int26_6, error) {
	g, err := shapeOneRune(ShaperFor(face), face, fontSize, r)
	if err != nil {
		return 0, err
	}
	return g.Advance, nil
}

// CalculateLineHeight is the height of a line in the face, including the
// extra gap.
func CalculateLineHeight(face text.FontFace, fontSize, extraLineGap int) (fixed.Int26_6, error) {
	g, err := shapeOneRune(ShaperFor(face), face, fontSize, 'X')
	if err != nil {
		return 0, err
	}
	return g.Ascent + g.Descent + fixed.I(extraLineGap), nil
}
