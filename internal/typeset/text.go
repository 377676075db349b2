package typeset

import (
	"unicode/utf8"

	"gioui.org/text"
	"golang.org/x/image/math/fixed"
)

type Text struct {
	lines      []Line
	lineHeight fixed.Int26_6
	ascent     fixed.Int26_6
	descent    fixed.Int26_6
	byteCount  int
}

func (t Text) Lines() []Line {
	return t.lines
}

func (t Text) LineCount() int {
	return len(t.lines)
}

func (t Text) LineHeight() int {
	return t.lineHeight.Round()
}

func (t Text) LineAscent() fixed.Int26_6 {
	return t.ascent
}

func (t Text) LineDescent() fixed.Int26_6 {
	return t.descent
}

func (t Text) ByteCount() int {
	return t.byteCount
}

func (t Text) Empty() bool {
	return len(t.lines) == 0
}

type Line struct {
	runes     []rune
	glyphs    []text.Glyph
	byteCount int
	width     fixed.Int26_6
}

func (l Line) Runes() []rune {
	return l.runes
}

func (l Line) RuneCount() int {
	return len(l.runes)
}

func (l Line) Glyphs() []text.Glyph {
	return l.glyphs
}

func (l Line) Width() fixed.Int26_6 {
	return l.width
}

func (l Line) Ascent() fixed.Int26_6 {
	var ascent fixed.Int26_6
	for _, g := range l.glyphs {
		if g.Ascent > ascent {
			ascent = g.Ascent
		}
	}
	return ascent
}

func (l Line) EndsWith(r rune) bool {
	if len(l.runes) == 0 {
		return false
	}
	return l.runes[len(l.runes)-1] == r
}

// Split divides the line before the rune at index. A span renderer uses it to
// paint each piece of the line with its own color.
func (l *Line) Split(index int) (first, rest *Line) {
	if index < 0 || index >= l.RuneCount() {
		first = l
		rest = nil
		return
	}

	firstByteCount := 0
	for _, r := range l.runes[:index] {
		firstByteCount += utf8.RuneLen(r)
	}

	firstWidth := fixed.Int26_6(0)
	for _, g := range l.glyphs[:index] {
		firstWidth += g.Advance
	}

	first = &Line{
		runes:     l.runes[:index],
		glyphs:    l.glyphs[:index],
		byteCount: firstByteCount,
		width:     firstWidth,
	}

	rest = &Line{
		runes:     l.runes[index:],
		glyphs:    l.glyphs[index:],
		byteCount: l.byteCount - firstByteCount,
		width:     l.width - firstWidth,
	}
	return
}

// ColumnOfX maps a horizontal pixel offset to a rune index within the line.
func (l Line) ColumnOfX(x int) int {
	posX := fixed.I(x)

	var xoffset fixed.Int26_6
	col := 0
	for _, g := range l.glyphs {
		if xoffset+g.Advance > posX {
			return col
		}
		xoffset += g.Advance
		col++
	}

	if l.EndsWith('\n') && col > 0 {
		// a click past the end of a complete line lands at the end of the line
		col--
	}
	return col
}
