package codepart

import "github.com/jeffwilliams/codepart/internal/intvl"

// QuoteHighlighter colors single-quoted strings. It is the built-in block
// highlighter used when no syntax lexer is active.
//
// Each line is scanned once, left to right. A flag toggles on every '
// encountered; the span between an opening and closing quote (closing quote
// included) is colored, and a span still open at end of line runs to the end
// of the line. The final flag value is the line's outgoing state, consumed by
// the next line's scan. Escaped quotes are not treated specially: \' closes a
// string.
type QuoteHighlighter struct {
	style SyntaxStyle
}

func NewQuoteHighlighter(style SyntaxStyle) *QuoteHighlighter {
	return &QuoteHighlighter{style: style}
}

func (q *QuoteHighlighter) SetStyle(style SyntaxStyle) {
	q.style = style
}

// HighlightBlock scans one line. `opened` is the incoming state carried from
// the previous line; the returned flag is the outgoing state for the next.
func (q *QuoteHighlighter) HighlightBlock(text string, opened bool) (spans []intvl.Interval, outgoing bool) {
	runes := []rune(text)

	prev := 0
	for i, r := range runes {
		if r != '\'' {
			continue
		}

		if !opened {
			opened = true
		} else {
			spans = append(spans, NewSyntaxInterval(prev, i+1, q.style.StringColor))
			opened = false
		}
		prev = i
	}

	if opened && len(runes) > prev {
		// unterminated string continues on the next line
		spans = append(spans, NewSyntaxInterval(prev, len(runes), q.style.StringColor))
	}

	return spans, opened
}

// Rehighlight recomputes spans for the edited lines [first, last] and keeps
// going below them for as long as a line's outgoing state differs from the
// state it had before, so a quote opened high in the document restyles
// everything it now covers.
func (q *QuoteHighlighter) Rehighlight(doc *Document, first, last int) {
	if first < 0 {
		first = 0
	}

	for i := first; i < doc.LineCount(); i++ {
		b := doc.Block(i)

		incoming := false
		if prev := doc.Block(i - 1); prev != nil {
			incoming = prev.quoteOpened
		}

		spans, outgoing := q.HighlightBlock(b.text, incoming)
		stateChanged := outgoing != b.quoteOpened

		b.spans = spans
		b.quoteOpened = outgoing

		if i >= last && !stateChanged {
			return
		}
	}
}
