package codepart

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"
	"github.com/jeffwilliams/syn"
	synlexers "github.com/jeffwilliams/syn/lexers"

	"github.com/jeffwilliams/codepart/internal/intvl"
)

type SyntaxInterval struct {
	start, end int
	color      Color
}

func NewSyntaxInterval(start, end int, color Color) *SyntaxInterval {
	return &SyntaxInterval{start, end, color}
}

func (s SyntaxInterval) Start() int {
	return s.start
}

func (s SyntaxInterval) End() int {
	return s.end
}

func (s SyntaxInterval) Color() Color {
	return s.color
}

// A Highlighter produces colored spans over the whole document text. Rune
// positions in the returned intervals are document-global.
type Highlighter interface {
	Highlight(text string, ctx context.Context) (seq []intvl.Interval, err error)
	SetFilename(filename string)
	SetLanguage(language string)
	SetStyle(style SyntaxStyle)
}

// NewSyntaxHighlighter returns the default whole-document highlighter.
func NewSyntaxHighlighter(style SyntaxStyle) Highlighter {
	return &synHighlighter{style: style}
}

var ErrTimeout timeoutError

type timeoutError struct{}

func (e timeoutError) Error() string {
	return "highlighting timed out"
}

var ErrCancel cancelError

type cancelError struct{}

func (e cancelError) Error() string {
	return "highlighting canceled"
}

// ErrNoLexer means no lexer matched the configured language or filename.
// Callers treat it as "highlighting disabled", not as a failure.
var ErrNoLexer = errors.New("no lexer matches the language or filename")

type chromaHighlighter struct {
	style    SyntaxStyle
	filename string
	language string
	analyse  bool
}

func NewChromaHighlighter(style SyntaxStyle) Highlighter {
	return &chromaHighlighter{style: style}
}

func (s *chromaHighlighter) Highlight(text string, ctx context.Context) (seq []intvl.Interval, err error) {
	deadline, deadlineDefined := ctx.Deadline()

	lexer := s.lexer(text)
	if lexer == nil {
		log(LogCatgSyntax, "chromaHighlighter.Highlight: no lexer found\n")
		return nil, ErrNoLexer
	}

	lexer = chroma.Coalesce(lexer)

	iter, err := lexer.Tokenise(nil, text)
	if err != nil {
		return nil, err
	}

	runeIndex := 0

	for {
		tok := iter()
		if tok == chroma.EOF {
			break
		}

		if deadlineDefined && time.Now().After(deadline) {
			log(LogCatgSyntax, "chromaHighlighter.Highlight: exiting due to deadline\n")
			err = ErrTimeout
			break
		}

		select {
		case <-ctx.Done():
			log(LogCatgSyntax, "chromaHighlighter.Highlight: exiting due to cancellation\n")
			err = ErrCancel
			return
		default:
		}

		var color *Color

		switch tok.Type.Category() {
		case chroma.Keyword:
			color = &s.style.KeywordColor
		case chroma.Name:
			color = &s.style.NameColor
		case chroma.Literal:
			switch tok.Type.SubCategory() {
			case chroma.LiteralString:
				color = &s.style.StringColor
			case chroma.LiteralNumber:
				color = &s.style.NumberColor
			}
		case chroma.Operator:
			color = &s.style.OperatorColor
		case chroma.Comment:
			color = &s.style.CommentColor
			if tok.Type.SubCategory() == chroma.CommentPreproc {
				color = &s.style.PreprocessorColor
			}
		case chroma.Generic:
			switch tok.Type {
			case chroma.GenericHeading:
				color = &s.style.HeadingColor
			case chroma.GenericSubheading:
				color = &s.style.SubheadingColor
			case chroma.GenericInserted:
				color = &s.style.InsertedColor
			case chroma.GenericDeleted:
				color = &s.style.DeletedColor
			}
		}

		tokLen := utf8.RuneCountInString(tok.Value)
		if color == nil {
			// Just normal text
			runeIndex += tokLen
			continue
		}

		seq = append(seq, NewSyntaxInterval(runeIndex, runeIndex+tokLen, *color))
		runeIndex += tokLen
	}
	return
}

func (s *chromaHighlighter) lexer(text string) chroma.Lexer {
	if s.language == "" && s.filename == "" {
		if !s.analyse {
			return nil
		}
		return lexers.Analyse(text)
	}

	var lexer chroma.Lexer
	if s.language != "" {
		lexer = lexers.Get(s.language)
	}

	if lexer == nil && s.filename != "" {
		lexer = lexers.Match(s.filename)
	}

	return lexer
}

func (s *chromaHighlighter) SetFilename(filename string) {
	s.filename = filename
}

func (s *chromaHighlighter) SetLanguage(language string) {
	s.language = language
}

// SetAnalyse makes the highlighter guess the language from the text when
// neither a language nor a filename is set.
func (s *chromaHighlighter) SetAnalyse(analyse bool) {
	s.analyse = analyse
}

func (s *chromaHighlighter) SetStyle(style SyntaxStyle) {
	s.style = style
}

type synHighlighter struct {
	style    SyntaxStyle
	filename string
	language string
}

func (s *synHighlighter) Highlight(text string, ctx context.Context) (seq []intvl.Interval, err error) {
	deadline, deadlineDefined := ctx.Deadline()

	started := time.Now()
	lexer := s.lexer()
	if lexer == nil {
		log(LogCatgSyntax, "synHighlighter.Highlight: no lexer found\n")
		return nil, ErrNoLexer
	}

	iter := lexer.Tokenise([]rune(text))

	for {
		var tok syn.Token
		tok, err = iter.Next()
		if err != nil {
			return
		}

		if tok.Type == syn.EOFType {
			break
		}

		if deadlineDefined && time.Now().After(deadline) {
			log(LogCatgSyntax, "synHighlighter.Highlight: exiting due to deadline\n")
			err = ErrTimeout
			break
		}

		select {
		case <-ctx.Done():
			log(LogCatgSyntax, "synHighlighter.Highlight: exiting due to cancellation\n")
			err = ErrCancel
			return
		default:
		}

		var color *Color

		switch tok.Type.Category() {
		case syn.Keyword:
			color = &s.style.KeywordColor
		case syn.Name:
			color = &s.style.NameColor
		case syn.Literal:
			switch tok.Type.SubCategory() {
			case syn.LiteralString:
				color = &s.style.StringColor
			case syn.LiteralNumber:
				color = &s.style.NumberColor
			}
		case syn.Operator:
			color = &s.style.OperatorColor
		case syn.Comment:
			color = &s.style.CommentColor
			if tok.Type.SubCategory() == syn.CommentPreproc {
				color = &s.style.PreprocessorColor
			}
		case syn.Generic:
			switch tok.Type {
			case syn.GenericHeading:
				color = &s.style.HeadingColor
			case syn.GenericSubheading:
				color = &s.style.SubheadingColor
			case syn.GenericInserted:
				color = &s.style.InsertedColor
			case syn.GenericDeleted:
				color = &s.style.DeletedColor
			}
		}

		if color == nil {
			continue
		}

		seq = append(seq, NewSyntaxInterval(tok.Start, tok.End, *color))
	}

	log(LogCatgSyntax, "synHighlighter.Highlight: done (took %s)\n", time.Since(started))
	return
}

func (s *synHighlighter) lexer() *syn.Lexer {
	if s.language == "" && s.filename == "" {
		return nil
	}

	var lexer *syn.Lexer
	if s.language != "" {
		lexer = synlexers.Get(s.language)
	}

	if lexer == nil && s.filename != "" {
		lexer = synlexers.Match(s.filename)
	}

	return lexer
}

func (s *synHighlighter) SetFilename(filename string) {
	s.filename = filename
}

func (s *synHighlighter) SetLanguage(language string) {
	s.language = language
}

func (s *synHighlighter) SetStyle(style SyntaxStyle) {
	s.style = style
}

type AsyncHighlighter struct {
	timeout time.Duration
	done    func(seq []intvl.Interval, err error)
	cancel  func()
	h       Highlighter
}

func NewAsyncHighlighter(h Highlighter, timeout time.Duration, done func(seq []intvl.Interval, err error)) *AsyncHighlighter {
	return &AsyncHighlighter{
		timeout: timeout,
		h:       h,
		done:    done,
	}
}

// Highlight tries to highlight the text, but if it takes longer than the
// timeout it returns ErrTimeout and continues in the background. When the
// background pass finishes the `done` function is called with the result,
// from a separate goroutine.
func (ah *AsyncHighlighter) Highlight(text string) (seq []intvl.Interval, err error) {
	ah.Cancel()

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(ah.timeout))
	defer cancel()

	seq, err = ah.h.Highlight(text, ctx)
	if err != nil && errors.Is(err, ErrTimeout) {
		log(LogCatgSyntax, "AsyncHighlighter.Highlight: starting background highlighter\n")
		var bgCtx context.Context
		bgCtx, ah.cancel = context.WithCancel(context.Background())
		go ah.highlightInBackground(text, bgCtx)
	}

	return
}

func (ah *AsyncHighlighter) Cancel() {
	if ah.cancel != nil {
		log(LogCatgSyntax, "AsyncHighlighter.Cancel: cancelling background highlighter\n")
		ah.cancel()
		ah.cancel = nil
	}
}

func (ah *AsyncHighlighter) highlightInBackground(text string, ctx context.Context) {
	seq, err := ah.h.Highlight(text, ctx)
	ah.done(seq, err)
}
