package codepart

import (
	"image"
	"strings"

	"gioui.org/layout"
	"gioui.org/op"
	"golang.org/x/net/html"

	"github.com/jeffwilliams/codepart/internal/cache"
)

// A TextRun is a piece of a list item's label with uniform formatting.
type TextRun struct {
	Text     string
	Bold     bool
	Italic   bool
	Code     bool
	Color    Color
	HasColor bool
}

var htmlEscapes = map[rune]string{
	'&':  "&amp;",
	'"':  "&quot;",
	'\'': "&apos;",
	'>':  "&gt;",
	'<':  "&lt;",
	' ':  "&nbsp;",
	'\t': "&nbsp;&nbsp;&nbsp;&nbsp;",
}

// EscapeHTML replaces special HTML symbols with escape sequences so that a
// plain-text label renders verbatim through the delegate.
func EscapeHTML(text string) string {
	var sb strings.Builder
	for _, c := range text {
		if esc, ok := htmlEscapes[c]; ok {
			sb.WriteString(esc)
			continue
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

// ParseHTML converts an HTML label into text runs. Unknown tags are ignored
// and their text kept, so malformed input degrades to plain text.
func ParseHTML(label string) []TextRun {
	tok := html.NewTokenizer(strings.NewReader(label))

	var runs []TextRun
	var state runState
	var stack []runState

	for {
		switch tok.Next() {
		case html.ErrorToken:
			// end of input, or a tokenizer error: either way keep what we have
			return runs

		case html.TextToken:
			text := string(tok.Text())
			if text == "" {
				continue
			}
			runs = appendRun(runs, state.run(text))

		case html.StartTagToken:
			t := tok.Token()
			stack = append(stack, state)
			state.open(t)

		case html.SelfClosingTagToken:
			t := tok.Token()
			if t.Data == "br" {
				runs = appendRun(runs, state.run("\n"))
			}

		case html.EndTagToken:
			if len(stack) > 0 {
				state = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			}
		}
	}
}

type runState struct {
	bold, italic, code bool
	color              Color
	hasColor           bool
}

func (s *runState) open(t html.Token) {
	switch t.Data {
	case "b", "strong":
		s.bold = true
	case "i", "em":
		s.italic = true
	case "code", "tt", "pre":
		s.code = true
	case "br":
		// handled as a self-closing tag
	case "font":
		for _, a := range t.Attr {
			if a.Key != "color" {
				continue
			}
			if c, err := ParseHexColor(a.Val); err == nil {
				s.color, s.hasColor = c, true
			} else if c, ok := ColorFromName(a.Val); ok {
				s.color, s.hasColor = c, true
			}
		}
	}
}

func (s runState) run(text string) TextRun {
	return TextRun{
		Text:     text,
		Bold:     s.bold,
		Italic:   s.italic,
		Code:     s.code,
		Color:    s.color,
		HasColor: s.hasColor,
	}
}

// appendRun merges a run into the previous one when the formatting is the
// same, so adjacent text nodes don't fragment the label.
func appendRun(runs []TextRun, r TextRun) []TextRun {
	if r.Text == "" {
		return runs
	}

	if n := len(runs); n > 0 {
		prev := &runs[n-1]
		if prev.Bold == r.Bold && prev.Italic == r.Italic && prev.Code == r.Code &&
			prev.HasColor == r.HasColor && prev.Color == r.Color {
			prev.Text += r.Text
			return runs
		}
	}
	return append(runs, r)
}

// A TextMeasurer reports the rendered width of a run in pixels.
type TextMeasurer interface {
	RunWidth(run TextRun) int
	LineHeight() int
}

// HTMLDelegate renders a list item's label as HTML rather than escaped plain
// text, and sizes the item by the label's ideal rendered width.
type HTMLDelegate struct {
	measurer TextMeasurer
	margin   int
	parse    func(label string) []TextRun

	widths cache.Cache[string, image.Point]
}

func NewHTMLDelegate(measurer TextMeasurer) *HTMLDelegate {
	return &HTMLDelegate{
		measurer: measurer,
		margin:   1,
		parse:    ParseHTML,
		widths:   cache.New[string, image.Point](6000),
	}
}

// Runs parses the label into formatted runs.
func (d *HTMLDelegate) Runs(label string) []TextRun {
	return d.parse(label)
}

// SizeHint is the ideal size of the rendered label: the sum of its run
// widths plus the document margin on both sides, by one line height.
func (d *HTMLDelegate) SizeHint(label string) image.Point {
	if e := d.widths.Get(label); e != nil {
		return e.Val
	}

	w := 0
	for _, r := range d.Runs(label) {
		w += d.measurer.RunWidth(r)
	}

	size := image.Pt(w+2*d.margin, d.measurer.LineHeight())
	d.widths.Set(label, size)
	return size
}

// RunPainter draws a single run at the current offset and reports its width.
type RunPainter interface {
	PaintRun(gtx layout.Context, run TextRun, selected bool) int
}

// Paint draws the label's runs left to right.
func (d *HTMLDelegate) Paint(gtx layout.Context, painter RunPainter, label string, selected bool) {
	stack := op.Offset(image.Point{d.margin, 0}).Push(gtx.Ops)
	for _, r := range d.Runs(label) {
		w := painter.PaintRun(gtx, r, selected)
		op.Offset(image.Point{w, 0}).Add(gtx.Ops)
	}
	stack.Pop()
}
