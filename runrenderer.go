package codepart

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op"
)

// RunRenderer measures and paints delegate text runs using the widget's
// fonts: the variable font for prose and the mono font for code runs. Bold
// is approximated by overstriking one pixel to the right, which is how
// terminals did it; italic degrades to the regular face.
type RunRenderer struct {
	text       *TextRenderer
	code       *TextRenderer
	fgColor    Color
	selFgColor Color
}

func NewRunRenderer(style Style) *RunRenderer {
	return &RunRenderer{
		text:       NewTextRenderer(VariableFont, style.FontSize, style.LineSpacing, style.FgColor),
		code:       NewTextRenderer(MonoFont, style.FontSize, style.LineSpacing, style.FgColor),
		fgColor:    style.FgColor,
		selFgColor: style.SelectionFgColor,
	}
}

func (r *RunRenderer) rendererFor(run TextRun) *TextRenderer {
	if run.Code {
		return r.code
	}
	return r.text
}

func (r *RunRenderer) RunWidth(run TextRun) int {
	l, ok := r.rendererFor(run).LayoutString(run.Text)
	if !ok {
		return 0
	}

	w := l.Width().Round()
	if run.Bold {
		w++
	}
	return w
}

func (r *RunRenderer) LineHeight() int {
	h := r.text.LineHeight()
	if c := r.code.LineHeight(); c > h {
		h = c
	}
	return h
}

func (r *RunRenderer) PaintRun(gtx layout.Context, run TextRun, selected bool) int {
	render := r.rendererFor(run)

	color := r.fgColor
	switch {
	case selected:
		color = r.selFgColor
	case run.HasColor:
		color = run.Color
	}
	render.SetFgColor(color)
	render.SetDrawBg(false)

	l, ok := render.LayoutString(run.Text)
	if !ok {
		return 0
	}

	render.DrawTextline(gtx, &l)

	w := l.Width().Round()
	if run.Bold {
		stack := op.Offset(image.Point{1, 0}).Push(gtx.Ops)
		render.DrawTextline(gtx, &l)
		stack.Pop()
		w++
	}
	return w
}
