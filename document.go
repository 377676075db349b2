package codepart

import (
	"strings"

	"github.com/jeffwilliams/codepart/internal/intvl"
)

// A Block is one line of text. Blocks carry the per-line flags the widget
// needs: the bookmark mark and the quote highlighter's outgoing state, plus
// the cached highlight spans for the line.
type Block struct {
	text string

	marked      bool
	quoteOpened bool

	spans []intvl.Interval
}

func (b *Block) Text() string {
	return b.text
}

func (b *Block) Marked() bool {
	return b.marked
}

func (b *Block) QuoteOpened() bool {
	return b.quoteOpened
}

func (b *Block) Spans() []intvl.Interval {
	return b.spans
}

// Document is an ordered sequence of blocks, one per line. It is the widget's
// stand-in for the text-document model a host toolkit would own.
type Document struct {
	blocks []*Block

	// OnBlockCountChanged is called when lines are added or removed.
	OnBlockCountChanged func(count int)
	// OnChanged is called after line contents change, with the inclusive
	// range of changed lines.
	OnChanged func(first, last int)
}

func NewDocument() *Document {
	return &Document{blocks: []*Block{{}}}
}

// SetText replaces the whole document. All per-line flags are reset.
func (d *Document) SetText(text string) {
	lines := strings.Split(text, "\n")

	d.blocks = make([]*Block, len(lines))
	for i, l := range lines {
		d.blocks[i] = &Block{text: l}
	}

	d.blockCountChanged()
	d.changed(0, len(d.blocks)-1)
}

func (d *Document) Text() string {
	var sb strings.Builder
	for i, b := range d.blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(b.text)
	}
	return sb.String()
}

func (d *Document) LineCount() int {
	return len(d.blocks)
}

// Block returns the block for the 0-based line, or nil when out of range.
func (d *Document) Block(line int) *Block {
	if line < 0 || line >= len(d.blocks) {
		return nil
	}
	return d.blocks[line]
}

// ReplaceLine sets the text of an existing line. Flags on the line are kept;
// highlighting is recomputed by the owner via OnChanged.
func (d *Document) ReplaceLine(line int, text string) {
	b := d.Block(line)
	if b == nil {
		return
	}
	b.text = text
	d.changed(line, line)
}

// InsertLines inserts the given lines so that the first of them has index
// `line`. New blocks carry no marks.
func (d *Document) InsertLines(line int, lines ...string) {
	if len(lines) == 0 || line < 0 || line > len(d.blocks) {
		return
	}

	blocks := make([]*Block, len(lines))
	for i, l := range lines {
		blocks[i] = &Block{text: l}
	}

	d.blocks = append(d.blocks[:line], append(blocks, d.blocks[line:]...)...)
	d.blockCountChanged()
	d.changed(line, len(d.blocks)-1)
}

// RemoveLines removes lines [line, line+count). A document always keeps at
// least one (possibly empty) block.
func (d *Document) RemoveLines(line, count int) {
	if line < 0 || line >= len(d.blocks) || count <= 0 {
		return
	}
	end := line + count
	if end > len(d.blocks) {
		end = len(d.blocks)
	}

	d.blocks = append(d.blocks[:line], d.blocks[end:]...)
	if len(d.blocks) == 0 {
		d.blocks = []*Block{{}}
	}

	d.blockCountChanged()
	last := len(d.blocks) - 1
	if line < last {
		d.changed(line, last)
	} else {
		d.changed(last, last)
	}
}

// EachBlockFrom calls f for each block starting at `line` moving forward,
// until f returns false or the document ends.
func (d *Document) EachBlockFrom(line int, f func(line int, b *Block) bool) {
	for i := line; i >= 0 && i < len(d.blocks); i++ {
		if !f(i, d.blocks[i]) {
			return
		}
	}
}

// EachBlockBackFrom is EachBlockFrom walking toward the start of the document.
func (d *Document) EachBlockBackFrom(line int, f func(line int, b *Block) bool) {
	if line >= len(d.blocks) {
		line = len(d.blocks) - 1
	}
	for i := line; i >= 0; i-- {
		if !f(i, d.blocks[i]) {
			return
		}
	}
}

func (d *Document) blockCountChanged() {
	if d.OnBlockCountChanged != nil {
		d.OnBlockCountChanged(len(d.blocks))
	}
}

func (d *Document) changed(first, last int) {
	log(LogCatgDoc, "document changed: lines %d-%d\n", first, last)
	if d.OnChanged != nil {
		d.OnChanged(first, last)
	}
}
