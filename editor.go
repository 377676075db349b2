package codepart

import (
	"image"
	"image/color"
	"time"
	"unicode/utf8"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/jeffwilliams/codepart/internal/intvl"
	"github.com/jeffwilliams/codepart/internal/typeset"
)

// Editor is a source-code editing widget: a text area with a line-number
// gutter, syntax highlighting, current-line highlighting and bookmarks.
type Editor struct {
	style  Style
	doc    *Document
	gutter lineNumberArea
	marks  *Bookmarks
	render *TextRenderer

	quote             *QuoteHighlighter
	syntaxHighlighter Highlighter
	asyncHighlighter  *AsyncHighlighter

	cursor  cursorPos
	topLine int
	dims    layout.Dimensions

	// pendingSpans carries results from the background highlighter goroutine
	// to the frame loop, which applies them at the start of Layout.
	pendingSpans chan []intvl.Interval

	// OnRedrawNeeded is called when the widget wants a new frame outside of
	// the normal event flow, such as when background highlighting finishes.
	OnRedrawNeeded func()
}

type cursorPos struct {
	line, col int
}

const highlightTimeout = 100 * time.Millisecond

func NewEditor(style Style) *Editor {
	e := &Editor{
		style:        style,
		doc:          NewDocument(),
		quote:        NewQuoteHighlighter(style.Syntax),
		pendingSpans: make(chan []intvl.Interval, 1),
	}

	e.marks = NewBookmarks(e.doc)
	e.render = NewTextRenderer(style.FontFace, style.FontSize, style.LineSpacing, style.FgColor)
	e.render.SetTabStopInterval(style.TabStopInterval)

	e.gutter.Init(style.gutterStyle(), e.doc, e.render, e.digitAdvance())
	e.gutter.topLine = func() int { return e.topLine }
	e.gutter.blockClicked = func(line int) { e.marks.Toggle(line) }

	e.doc.OnChanged = e.rehighlight
	e.doc.OnBlockCountChanged = func(int) { e.clampCursor() }

	return e
}

func (e *Editor) digitAdvance() int {
	adv, err := typeset.AdvanceOf(e.style.FontFace, e.style.FontSize, '9')
	if err != nil {
		log(LogCatgEditor, "Editor: measuring digit advance: %v\n", err)
		return e.style.FontSize
	}
	return adv.Round()
}

func (e *Editor) Document() *Document {
	return e.doc
}

func (e *Editor) Bookmarks() *Bookmarks {
	return e.marks
}

func (e *Editor) SetText(text string) {
	e.doc.SetText(text)
	e.cursor = cursorPos{}
	e.topLine = 0
}

func (e *Editor) Text() string {
	return e.doc.Text()
}

func (e *Editor) CurrentLine() int {
	return e.cursor.line
}

func (e *Editor) GoToLine(line int) {
	if line < 0 || line >= e.doc.LineCount() {
		return
	}
	e.cursor.line = line
	e.cursor.col = 0
	e.scrollCursorIntoView()
}

// DetectSyntax enables syntax highlighting by language name or by filename,
// whichever matches a lexer first. When neither matches, highlighting is
// silently disabled and the built-in quote highlighter takes over.
func (e *Editor) DetectSyntax(filename, language string) {
	e.syntaxHighlighter = NewSyntaxHighlighter(e.style.Syntax)
	e.syntaxHighlighter.SetFilename(filename)
	e.syntaxHighlighter.SetLanguage(language)
	e.asyncHighlighter = NewAsyncHighlighter(e.syntaxHighlighter, highlightTimeout, e.asyncHighlightingDone)

	e.rehighlight(0, e.doc.LineCount()-1)
}

// ClearSyntax disables syntax highlighting.
func (e *Editor) ClearSyntax() {
	if e.asyncHighlighter != nil {
		e.asyncHighlighter.Cancel()
	}
	e.syntaxHighlighter = nil
	e.asyncHighlighter = nil

	e.rehighlight(0, e.doc.LineCount()-1)
}

func (e *Editor) rehighlight(first, last int) {
	if e.asyncHighlighter == nil {
		e.quote.Rehighlight(e.doc, first, last)
		return
	}

	seq, err := e.asyncHighlighter.Highlight(e.doc.Text())
	switch {
	case err == ErrNoLexer:
		// no matching syntax definition: highlighting is silently disabled
		log(LogCatgSyntax, "Editor.rehighlight: no lexer, disabling syntax highlighting\n")
		e.syntaxHighlighter = nil
		e.asyncHighlighter = nil
		e.quote.Rehighlight(e.doc, 0, e.doc.LineCount()-1)
	case err != nil && err != ErrTimeout:
		log(LogCatgSyntax, "Editor.rehighlight: %v\n", err)
	default:
		e.applySyntaxSpans(seq)
	}
}

// asyncHighlightingDone runs on the background highlighter's goroutine. It
// must not touch the document; the result is queued and applied on the frame
// loop by applyPendingSpans.
func (e *Editor) asyncHighlightingDone(seq []intvl.Interval, err error) {
	if err != nil {
		log(LogCatgSyntax, "Editor: background highlighting: %v\n", err)
		return
	}

	// a newer result supersedes an undelivered one
	select {
	case <-e.pendingSpans:
	default:
	}
	e.pendingSpans <- seq

	if e.OnRedrawNeeded != nil {
		e.OnRedrawNeeded()
	}
}

func (e *Editor) applyPendingSpans() {
	select {
	case seq := <-e.pendingSpans:
		e.applySyntaxSpans(seq)
	default:
	}
}

// applySyntaxSpans distributes document-global intervals onto blocks as
// line-relative spans.
func (e *Editor) applySyntaxSpans(seq []intvl.Interval) {
	lineStart := 0
	next := 0

	e.doc.EachBlockFrom(0, func(i int, b *Block) bool {
		lineLen := utf8.RuneCountInString(b.text)
		lineEnd := lineStart + lineLen

		b.spans = nil
		for k := next; k < len(seq); k++ {
			iv := seq[k]
			if iv.End() <= lineStart {
				next = k + 1
				continue
			}
			if iv.Start() >= lineEnd {
				break
			}

			start := iv.Start() - lineStart
			if start < 0 {
				start = 0
			}
			end := iv.End() - lineStart
			if end > lineLen {
				end = lineLen
			}

			color := e.style.FgColor
			if si, ok := iv.(*SyntaxInterval); ok {
				color = si.Color()
			}
			b.spans = append(b.spans, NewSyntaxInterval(start, end, color))
		}

		lineStart = lineEnd + 1 // +1 for the newline between blocks
		return true
	})
}

func (e *Editor) SetStyle(style Style) {
	e.style = style
	e.quote.SetStyle(style.Syntax)
	e.gutter.SetStyle(style.gutterStyle())
	e.gutter.digitAdvance = e.digitAdvance()
	e.render = NewTextRenderer(style.FontFace, style.FontSize, style.LineSpacing, style.FgColor)
	e.render.SetTabStopInterval(style.TabStopInterval)
	e.gutter.render = e.render

	if e.syntaxHighlighter != nil {
		e.syntaxHighlighter.SetStyle(style.Syntax)
	}
	e.rehighlight(0, e.doc.LineCount()-1)
}

// Layout draws the widget and handles its events. It follows the usual shape
// of a gio widget: consume events from the queue, emit draw ops, then
// register interest in further input.
func (e *Editor) Layout(gtx layout.Context, queue event.Queue) layout.Dimensions {
	e.applyPendingSpans()
	e.handleEvents(gtx, queue)

	gutterDims := e.gutter.layout(gtx, queue)

	stack := op.Offset(image.Point{gutterDims.Size.X, 0}).Push(gtx.Ops)
	gtx.Constraints.Max.X -= gutterDims.Size.X
	e.drawTextArea(gtx)
	gtx.Constraints.Max.X += gutterDims.Size.X
	stack.Pop()

	e.dims = layout.Dimensions{Size: gtx.Constraints.Max}
	e.listenForEvents(gtx)
	return e.dims
}

func (e *Editor) handleEvents(gtx layout.Context, queue event.Queue) {
	for _, ev := range queue.Events(e) {
		switch ev := ev.(type) {
		case pointer.Event:
			e.pointerEvent(gtx, &ev)
		case key.Event:
			if ev.State == key.Press {
				e.keyPress(gtx, &ev)
			}
		}
	}
}

func (e *Editor) pointerEvent(gtx layout.Context, ev *pointer.Event) {
	switch ev.Type {
	case pointer.Press:
		if ev.Buttons == pointer.ButtonPrimary {
			e.setCursorToPointer(gtx, ev)
		}
	case pointer.Scroll:
		e.scrollBy(int(ev.Scroll.Y))
	}
}

func (e *Editor) setCursorToPointer(gtx layout.Context, ev *pointer.Event) {
	lh := e.render.LineHeight()
	if lh <= 0 {
		return
	}

	line := e.topLine + int(ev.Position.Y)/lh
	if line >= e.doc.LineCount() {
		line = e.doc.LineCount() - 1
	}
	e.cursor.line = line

	x := int(ev.Position.X) - e.gutter.width() - e.style.TextLeftPadding
	e.cursor.col = 0
	if l, ok := e.render.LayoutString(e.doc.Block(line).Text()); ok {
		e.cursor.col = l.ColumnOfX(x)
	}
}

func (e *Editor) scrollBy(lines int) {
	e.topLine += lines
	maxTop := e.doc.LineCount() - 1
	if e.topLine > maxTop {
		e.topLine = maxTop
	}
	if e.topLine < 0 {
		e.topLine = 0
	}
}

func (e *Editor) keyPress(gtx layout.Context, ev *key.Event) {
	switch ev.Name {
	case key.NameUpArrow:
		e.moveCursorLine(-1)
	case key.NameDownArrow:
		e.moveCursorLine(1)
	case key.NamePageUp:
		if ev.Modifiers.Contain(key.ModAlt) {
			e.PreviousBookmark()
			return
		}
		e.moveCursorLine(-e.visibleLineCount(gtx))
	case key.NamePageDown:
		if ev.Modifiers.Contain(key.ModAlt) {
			e.NextBookmark()
			return
		}
		e.moveCursorLine(e.visibleLineCount(gtx))
	case key.NameHome:
		if ev.Modifiers.Contain(key.ModCtrl) {
			e.GoToLine(0)
		}
	case key.NameEnd:
		if ev.Modifiers.Contain(key.ModCtrl) {
			e.GoToLine(e.doc.LineCount() - 1)
		}
	case "B":
		if ev.Modifiers.Contain(key.ModCtrl) {
			e.ToggleBookmark()
		}
	}
}

// KeySet lists the key combinations the editor handles.
func (e *Editor) KeySet() key.Set {
	return "↑|↓|(Alt)-[⇞,⇟]|Ctrl-[⇱,⇲]|Ctrl-B"
}

func (e *Editor) moveCursorLine(delta int) {
	e.cursor.line += delta
	e.clampCursor()
	e.scrollCursorIntoView()
}

func (e *Editor) clampCursor() {
	if e.cursor.line >= e.doc.LineCount() {
		e.cursor.line = e.doc.LineCount() - 1
	}
	if e.cursor.line < 0 {
		e.cursor.line = 0
	}
	if e.topLine >= e.doc.LineCount() {
		e.topLine = e.doc.LineCount() - 1
	}
}

func (e *Editor) scrollCursorIntoView() {
	if e.cursor.line < e.topLine {
		e.topLine = e.cursor.line
	}
	// The lower bound is enforced during drawing, when the viewport height
	// in lines is known.
}

// ToggleBookmark flips the bookmark on the cursor's line.
func (e *Editor) ToggleBookmark() {
	e.marks.Toggle(e.cursor.line)
}

// NextBookmark moves the cursor to the first bookmarked line below it. The
// cursor stays put when there is none.
func (e *Editor) NextBookmark() {
	if line, ok := e.marks.Next(e.cursor.line); ok {
		e.GoToLine(line)
	}
}

// PreviousBookmark moves the cursor to the first bookmarked line above it.
func (e *Editor) PreviousBookmark() {
	if line, ok := e.marks.Previous(e.cursor.line); ok {
		e.GoToLine(line)
	}
}

func (e *Editor) visibleLineCount(gtx layout.Context) int {
	lh := e.render.LineHeight()
	if lh <= 0 {
		return 1
	}
	n := gtx.Constraints.Max.Y / lh
	if n < 1 {
		n = 1
	}
	return n
}

func (e *Editor) drawTextArea(gtx layout.Context) {
	e.fillBackground(gtx)

	lh := e.render.LineHeight()
	if lh <= 0 {
		return
	}

	// keep the cursor visible below the top line as well
	visible := e.visibleLineCount(gtx)
	if e.cursor.line >= e.topLine+visible {
		e.topLine = e.cursor.line - visible + 1
	}

	yoffset := 0
	for line := e.topLine; line < e.doc.LineCount(); line++ {
		if yoffset+lh > gtx.Constraints.Max.Y {
			break
		}

		stack := op.Offset(image.Point{0, yoffset}).Push(gtx.Ops)
		if line == e.cursor.line {
			e.drawCurrentLineBackground(gtx, lh)
		}

		inner := op.Offset(image.Point{e.style.TextLeftPadding, 0}).Push(gtx.Ops)
		e.drawLine(gtx, e.doc.Block(line))
		if line == e.cursor.line {
			e.drawCaret(gtx, lh)
		}
		inner.Pop()
		stack.Pop()

		yoffset += lh
	}
}

func (e *Editor) fillBackground(gtx layout.Context) {
	st := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	paint.ColorOp{Color: color.NRGBA(e.style.BgColor)}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	st.Pop()
}

// drawCurrentLineBackground highlights the cursor's line across the full
// width of the text area.
func (e *Editor) drawCurrentLineBackground(gtx layout.Context, lineHeight int) {
	st := clip.Rect{Max: image.Pt(gtx.Constraints.Max.X, lineHeight)}.Push(gtx.Ops)
	paint.ColorOp{Color: color.NRGBA(e.style.CurrentLineBgColor)}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	st.Pop()
}

// drawLine renders one block, splitting the layed-out line at span
// boundaries and painting each segment with its span's color.
func (e *Editor) drawLine(gtx layout.Context, b *Block) {
	if b == nil || b.text == "" {
		return
	}

	l, ok := e.render.LayoutString(b.text)
	if !ok {
		return
	}

	e.render.SetDrawBg(false)

	var seq intvl.Sequence
	for _, s := range b.spans {
		seq.Add(s)
	}

	segs := seq.Segments(l.RuneCount())

	line := &l
	consumed := 0
	stack := op.Offset(image.Point{}).Push(gtx.Ops)
	for _, seg := range segs {
		first, rest := line.Split(seg.End - consumed)

		e.render.SetFgColor(e.segmentColor(seg))
		e.render.DrawTextline(gtx, first)

		op.Offset(image.Point{first.Width().Round(), 0}).Add(gtx.Ops)
		line = rest
		consumed = seg.End
		if line == nil {
			break
		}
	}
	stack.Pop()
}

func (e *Editor) segmentColor(seg intvl.Segment) Color {
	if seg.Interval == nil {
		return e.style.FgColor
	}
	if si, ok := seg.Interval.(*SyntaxInterval); ok {
		return si.Color()
	}
	return e.style.FgColor
}

// drawCaret draws the cursor as a thin beam at the cursor column.
func (e *Editor) drawCaret(gtx layout.Context, lineHeight int) {
	x := 0
	if l, ok := e.render.LayoutString(e.doc.Block(e.cursor.line).Text()); ok {
		col := e.cursor.col
		if col > l.RuneCount() {
			col = l.RuneCount()
		}
		for _, g := range l.Glyphs()[:col] {
			x += g.Advance.Round()
		}
	}

	st := clip.Rect{
		Min: image.Pt(x, 0),
		Max: image.Pt(x+2, lineHeight),
	}.Push(gtx.Ops)
	paint.ColorOp{Color: color.NRGBA(e.style.FgColor)}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	st.Pop()
}

func (e *Editor) listenForEvents(gtx layout.Context) {
	r := image.Rectangle{Max: e.dims.Size}
	st := clip.Rect(r).Push(gtx.Ops)

	pointer.InputOp{
		Tag:   e,
		Types: pointer.Press | pointer.Scroll,
		ScrollBounds: image.Rectangle{
			Min: image.Point{-100, -100},
			Max: image.Point{100, 100},
		},
	}.Add(gtx.Ops)

	key.InputOp{
		Tag:  e,
		Keys: e.KeySet(),
	}.Add(gtx.Ops)

	st.Pop()
}

// SetFocus directs key events to the editor.
func (e *Editor) SetFocus(gtx layout.Context) {
	if gtx.Ops == nil {
		return
	}
	key.FocusOp{Tag: e}.Add(gtx.Ops)
}
