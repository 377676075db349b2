package codepart

import (
	"context"
	"testing"
	"time"

	"github.com/jeffwilliams/codepart/internal/intvl"
)

func checkSpansWellFormed(t *testing.T, spans []intvl.Interval, runeCount int) {
	t.Helper()

	last := 0
	for i, s := range spans {
		if s.Start() < 0 || s.End() > runeCount || s.Start() >= s.End() {
			t.Errorf("span %d [%d,%d) is out of bounds for text of %d runes", i, s.Start(), s.End(), runeCount)
		}
		if s.Start() < last {
			t.Errorf("span %d [%d,%d) starts before the previous span's start", i, s.Start(), s.End())
		}
		last = s.Start()
	}
}

func hasSpanColored(spans []intvl.Interval, c Color) bool {
	for _, s := range spans {
		if si, ok := s.(*SyntaxInterval); ok && si.Color() == c {
			return true
		}
	}
	return false
}

func TestChromaHighlighter(t *testing.T) {
	text := "x = 'hello'  # a comment\n"

	h := NewChromaHighlighter(DefaultStyle.Syntax)
	h.SetLanguage("python")

	spans, err := h.Highlight(text, context.Background())
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}

	checkSpansWellFormed(t, spans, len([]rune(text)))

	if !hasSpanColored(spans, DefaultStyle.Syntax.StringColor) {
		t.Errorf("expected a string-colored span for 'hello'")
	}
	if !hasSpanColored(spans, DefaultStyle.Syntax.CommentColor) {
		t.Errorf("expected a comment-colored span")
	}
}

func TestChromaHighlighterByFilename(t *testing.T) {
	text := "package main\n"

	h := NewChromaHighlighter(DefaultStyle.Syntax)
	h.SetFilename("main.go")

	spans, err := h.Highlight(text, context.Background())
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if !hasSpanColored(spans, DefaultStyle.Syntax.KeywordColor) {
		t.Errorf("expected a keyword-colored span for 'package'")
	}
}

func TestChromaHighlighterNoLexer(t *testing.T) {
	h := NewChromaHighlighter(DefaultStyle.Syntax)

	if _, err := h.Highlight("some text", context.Background()); err != ErrNoLexer {
		t.Errorf("expected ErrNoLexer with no language or filename set, got %v", err)
	}

	h.SetLanguage("not-a-language")
	h.SetFilename("file.unknownext9")
	if _, err := h.Highlight("some text", context.Background()); err != ErrNoLexer {
		t.Errorf("expected ErrNoLexer for an unknown language, got %v", err)
	}
}

func TestChromaHighlighterCancel(t *testing.T) {
	h := NewChromaHighlighter(DefaultStyle.Syntax)
	h.SetLanguage("python")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Highlight("x = 1\n", ctx); err != ErrCancel {
		t.Errorf("expected ErrCancel, got %v", err)
	}
}

func TestSynHighlighterNoLexer(t *testing.T) {
	h := NewSyntaxHighlighter(DefaultStyle.Syntax)

	if _, err := h.Highlight("some text", context.Background()); err != ErrNoLexer {
		t.Errorf("expected ErrNoLexer with no language or filename set, got %v", err)
	}
}

// stubHighlighter times out on the first pass and succeeds on later passes,
// which forces AsyncHighlighter onto its background path.
type stubHighlighter struct {
	calls int
	spans []intvl.Interval
}

func (s *stubHighlighter) Highlight(text string, ctx context.Context) ([]intvl.Interval, error) {
	s.calls++
	if s.calls == 1 {
		return nil, ErrTimeout
	}
	return s.spans, nil
}

func (s *stubHighlighter) SetFilename(string)   {}
func (s *stubHighlighter) SetLanguage(string)   {}
func (s *stubHighlighter) SetStyle(SyntaxStyle) {}

func TestAsyncHighlighterBackgroundCompletion(t *testing.T) {
	want := []intvl.Interval{NewSyntaxInterval(0, 2, DefaultStyle.Syntax.StringColor)}
	stub := &stubHighlighter{spans: want}

	done := make(chan []intvl.Interval, 1)
	ah := NewAsyncHighlighter(stub, time.Millisecond, func(seq []intvl.Interval, err error) {
		if err != nil {
			t.Errorf("background pass: %v", err)
		}
		done <- seq
	})

	seq, err := ah.Highlight("'a'")
	if err != ErrTimeout {
		t.Fatalf("expected ErrTimeout from the first pass, got %v", err)
	}
	if seq != nil {
		t.Errorf("expected no spans from the timed-out pass")
	}

	select {
	case got := <-done:
		if len(got) != 1 || got[0].Start() != 0 || got[0].End() != 2 {
			t.Errorf("background pass returned wrong spans: %+v", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("background highlighting never completed")
	}
}

func TestAsyncHighlighterImmediateResult(t *testing.T) {
	want := []intvl.Interval{NewSyntaxInterval(1, 3, DefaultStyle.Syntax.KeywordColor)}
	stub := &stubHighlighter{spans: want}
	stub.calls = 1 // skip the timeout pass

	ah := NewAsyncHighlighter(stub, time.Second, func([]intvl.Interval, error) {
		t.Errorf("done callback must not run when the first pass finishes in time")
	})

	seq, err := ah.Highlight("text")
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if len(seq) != 1 || seq[0].Start() != 1 {
		t.Errorf("expected the stub's spans, got %+v", seq)
	}
}
