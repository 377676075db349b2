package codepart

import (
	"image"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/jeffwilliams/codepart/internal/cache"
)

// NewMarkdownDelegate is an HTMLDelegate that accepts Markdown labels
// instead of HTML ones.
func NewMarkdownDelegate(measurer TextMeasurer) *HTMLDelegate {
	return &HTMLDelegate{
		measurer: measurer,
		margin:   1,
		parse:    ParseMarkdown,
		widths:   cache.New[string, image.Point](6000),
	}
}

// ParseMarkdown converts a Markdown label into text runs by walking the
// goldmark AST. Emphasis maps to italic, strong emphasis to bold, code spans
// to code runs; block structure is flattened since a list item label is a
// single line.
func ParseMarkdown(label string) []TextRun {
	source := []byte(label)

	md := goldmark.New()
	reader := gmtext.NewReader(source)
	root := md.Parser().Parse(reader)

	w := runWalker{source: source}
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		return w.walk(n, entering)
	})
	return w.runs
}

type runWalker struct {
	source []byte
	runs   []TextRun

	bold   int
	italic int
}

func (w *runWalker) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := n.(type) {
	case *ast.Text:
		if entering {
			w.emit(string(n.Segment.Value(w.source)), false)
			if n.SoftLineBreak() || n.HardLineBreak() {
				w.emit(" ", false)
			}
		}

	case *ast.String:
		if entering {
			w.emit(string(n.Value), false)
		}

	case *ast.CodeSpan:
		if entering {
			w.emit(string(codeSpanText(n, w.source)), true)
			// the children are the code text; don't walk them again
			return ast.WalkSkipChildren, nil
		}

	case *ast.Emphasis:
		// Level 1 = italic, Level 2 = bold
		if n.Level == 2 {
			w.push(&w.bold, entering)
		} else {
			w.push(&w.italic, entering)
		}
	}

	return ast.WalkContinue, nil
}

func (w *runWalker) push(counter *int, entering bool) {
	if entering {
		*counter++
	} else if *counter > 0 {
		*counter--
	}
}

func (w *runWalker) emit(text string, code bool) {
	w.runs = appendRun(w.runs, TextRun{
		Text:   text,
		Bold:   w.bold > 0,
		Italic: w.italic > 0,
		Code:   code,
	})
}

func codeSpanText(n *ast.CodeSpan, source []byte) []byte {
	var out []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			out = append(out, t.Segment.Value(source)...)
		}
	}
	return out
}
