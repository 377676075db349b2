package codepart

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"

	"github.com/jeffwilliams/codepart/internal/typeset"
)

// TextRenderer draws layed-out lines of text with the current foreground and
// optional background color.
type TextRenderer struct {
	fontSize        int
	lineHeight      int
	lineSpacing     int
	fontFace        text.FontFace
	fgColor         Color
	bgColor         Color
	drawBgColor     bool
	tabStopInterval int
	shaper          *text.Shaper
}

func NewTextRenderer(fontFace text.FontFace, fontSize, lineSpacing int, fgColor Color) *TextRenderer {
	tr := &TextRenderer{
		fontSize:    fontSize,
		fontFace:    fontFace,
		lineSpacing: lineSpacing,
		fgColor:     fgColor,
	}

	tr.tabStopInterval = 14
	tr.setLineHeight()
	tr.shaper = typeset.ShaperFor(fontFace)
	return tr
}

func (tr *TextRenderer) setLineHeight() {
	h, err := typeset.CalculateLineHeight(tr.fontFace, tr.fontSize, tr.lineSpacing)
	if err != nil {
		log(LogCatgEditor, "TextRenderer: computing line height: %v\n", err)
		return
	}
	tr.lineHeight = h.Round()
}

func (tr *TextRenderer) LineHeight() int {
	return tr.lineHeight
}

func (tr *TextRenderer) SetFgColor(c Color) {
	tr.fgColor = c
}

func (tr *TextRenderer) SetBgColor(c Color) {
	tr.bgColor = c
	tr.drawBgColor = true
}

func (tr *TextRenderer) SetDrawBg(b bool) {
	tr.drawBgColor = b
}

func (tr *TextRenderer) SetTabStopInterval(i int) {
	tr.tabStopInterval = i
}

// LayoutString lays out a single-line string with the renderer's constraints.
func (tr *TextRenderer) LayoutString(s string) (typeset.Line, bool) {
	txt, err := typeset.Layout([]byte(s), tr.constraints())
	if err != nil || txt.Empty() {
		return typeset.Line{}, false
	}
	return txt.Lines()[0], true
}

// LayoutText lays out a whole document's worth of text.
func (tr *TextRenderer) LayoutText(b []byte, maxHeight int) (typeset.Text, error) {
	c := tr.constraints()
	c.MaxHeight = maxHeight
	return typeset.Layout(b, c)
}

func (tr *TextRenderer) constraints() typeset.Constraints {
	return typeset.Constraints{
		FontSize:        tr.fontSize,
		FontFace:        tr.fontFace,
		TabStopInterval: tr.tabStopInterval,
		ExtraLineGap:    tr.lineSpacing,
	}
}

func (tr *TextRenderer) DrawTextline(gtx layout.Context, line *typeset.Line) {
	tr.drawTextBackground(gtx, line)
	tr.drawTextForeground(gtx, line)
}

func (tr *TextRenderer) drawTextBackground(gtx layout.Context, line *typeset.Line) {
	tr.DrawTextBgRect(gtx, line.Width().Round())
}

func (tr *TextRenderer) DrawTextBgRect(gtx layout.Context, width int) {
	if !tr.drawBgColor {
		return
	}
	stack := clip.Rect{Max: image.Pt(width, tr.lineHeight)}.Push(gtx.Ops)
	paint.ColorOp{Color: color.NRGBA(tr.bgColor)}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	stack.Pop()
}

func (tr *TextRenderer) drawTextForeground(gtx layout.Context, line *typeset.Line) {
	ascent := line.Ascent().Round()
	paint.ColorOp{Color: color.NRGBA(tr.fgColor)}.Add(gtx.Ops)

	// The layed-out text is clipped relative to the baseline, so the ascent
	// would be clipped off the top of the screen at y offset 0. Move down by
	// the ascent before shaping and back up after.
	op.Offset(image.Point{0, ascent}).Add(gtx.Ops)
	path := tr.shaper.Shape(line.Glyphs())

	stack := clip.Outline{Path: path}.Op().Push(gtx.Ops)
	op.Offset(image.Point{0, -ascent}).Add(gtx.Ops)

	paint.PaintOp{}.Add(gtx.Ops)
	stack.Pop()
}
