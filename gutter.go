package codepart

import (
	"image"
	"image/color"
	"strconv"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// lineNumberArea is the gutter beside the text: 1-based line numbers drawn
// right-aligned, with a marker box on bookmarked lines. Clicking a line
// reports the block to the editor, which toggles its bookmark.
type lineNumberArea struct {
	style        gutterStyle
	dims         layout.Dimensions
	doc          *Document
	render       *TextRenderer
	digitAdvance int
	topLine      func() int
	blockClicked func(line int)
}

type gutterStyle struct {
	FgColor     color.NRGBA
	BgColor     color.NRGBA
	MarkColor   color.NRGBA
	LeftMargin  int
	RightMargin int
}

func (a *lineNumberArea) Init(style gutterStyle, doc *Document, render *TextRenderer, digitAdvance int) {
	a.style = style
	a.doc = doc
	a.render = render
	a.digitAdvance = digitAdvance
}

// width is the gutter width in pixels: margins plus one digit advance per
// digit of the last line number. An empty document still reserves one digit.
func (a *lineNumberArea) width() int {
	return gutterWidth(a.style.LeftMargin, a.style.RightMargin, a.digitAdvance, a.doc.LineCount())
}

func gutterWidth(leftMargin, rightMargin, digitAdvance, lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	return leftMargin + digitAdvance*digitCount(lineCount) + rightMargin
}

func digitCount(n int) int {
	count := 1
	for n >= 10 {
		n /= 10
		count++
	}
	return count
}

func (a *lineNumberArea) layout(gtx layout.Context, queue event.Queue) layout.Dimensions {
	a.handleEvents(gtx, queue)
	a.dims = a.draw(gtx)
	a.listenForEvents(gtx)
	return a.dims
}

func (a *lineNumberArea) handleEvents(gtx layout.Context, queue event.Queue) {
	for _, ev := range queue.Events(a) {
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}

		if e.Type == pointer.Press && e.Buttons == pointer.ButtonPrimary {
			line := a.lineOfY(int(e.Position.Y))
			if line < a.doc.LineCount() && a.blockClicked != nil {
				log(LogCatgGutter, "gutter clicked on line %d\n", line)
				a.blockClicked(line)
			}
		}
	}
}

func (a *lineNumberArea) lineOfY(y int) int {
	lh := a.render.LineHeight()
	if lh <= 0 {
		return a.top()
	}
	return a.top() + y/lh
}

func (a *lineNumberArea) top() int {
	if a.topLine == nil {
		return 0
	}
	return a.topLine()
}

func (a *lineNumberArea) draw(gtx layout.Context) layout.Dimensions {
	w := a.width()

	st := clip.Rect{Max: image.Pt(w, gtx.Constraints.Max.Y)}.Push(gtx.Ops)
	paint.ColorOp{Color: a.style.BgColor}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	st.Pop()

	lh := a.render.LineHeight()
	if lh <= 0 {
		return layout.Dimensions{Size: image.Point{X: w, Y: gtx.Constraints.Max.Y}}
	}

	a.render.SetDrawBg(false)
	a.render.SetFgColor(Color(a.style.FgColor))

	yoffset := 0
	for line := a.top(); line < a.doc.LineCount(); line++ {
		if yoffset+lh > gtx.Constraints.Max.Y {
			break
		}

		a.drawLineNumber(gtx, line, yoffset, w)
		if a.doc.Block(line).Marked() {
			a.drawMark(gtx, yoffset, lh)
		}

		yoffset += lh
	}

	return layout.Dimensions{Size: image.Point{X: w, Y: gtx.Constraints.Max.Y}}
}

func (a *lineNumberArea) drawLineNumber(gtx layout.Context, line, yoffset, gutterW int) {
	number := strconv.Itoa(line + 1)

	l, ok := a.render.LayoutString(number)
	if !ok {
		return
	}

	xoffset := gutterW - a.style.RightMargin - l.Width().Round()
	stack := op.Offset(image.Point{xoffset, yoffset}).Push(gtx.Ops)
	a.render.DrawTextline(gtx, &l)
	stack.Pop()
}

func (a *lineNumberArea) drawMark(gtx layout.Context, yoffset, lineHeight int) {
	side := lineHeight / 3
	r := clip.Rect{
		Min: image.Pt(0, yoffset+(lineHeight-side)/2),
		Max: image.Pt(side, yoffset+(lineHeight+side)/2),
	}

	st := r.Push(gtx.Ops)
	paint.ColorOp{Color: a.style.MarkColor}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	st.Pop()
}

func (a *lineNumberArea) listenForEvents(gtx layout.Context) {
	r := image.Rectangle{Max: a.dims.Size}
	st := clip.Rect(r).Push(gtx.Ops)

	pointer.InputOp{
		Tag:   a,
		Types: pointer.Press,
	}.Add(gtx.Ops)

	st.Pop()
}

func (a *lineNumberArea) SetStyle(style gutterStyle) {
	a.style = style
}
