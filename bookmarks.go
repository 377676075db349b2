package codepart

// Bookmarks groups the bookmark functionality over a document. The mark
// itself lives on the block, so marks follow their lines as other lines are
// inserted or removed around them.
type Bookmarks struct {
	doc *Document
}

func NewBookmarks(doc *Document) *Bookmarks {
	return &Bookmarks{doc: doc}
}

func (m *Bookmarks) Toggle(line int) {
	b := m.doc.Block(line)
	if b == nil {
		return
	}
	b.marked = !b.marked
	log(LogCatgEditor, "bookmark on line %d set to %v\n", line, b.marked)
}

func (m *Bookmarks) IsMarked(line int) bool {
	b := m.doc.Block(line)
	return b != nil && b.marked
}

// Next returns the first bookmarked line after `from`, not counting `from`
// itself. ok is false when there is none; the caller leaves the cursor alone.
func (m *Bookmarks) Next(from int) (line int, ok bool) {
	m.doc.EachBlockFrom(from+1, func(i int, b *Block) bool {
		if b.marked {
			line, ok = i, true
			return false
		}
		return true
	})
	return
}

// Previous is Next scanning toward the start of the document.
func (m *Bookmarks) Previous(from int) (line int, ok bool) {
	m.doc.EachBlockBackFrom(from-1, func(i int, b *Block) bool {
		if b.marked {
			line, ok = i, true
			return false
		}
		return true
	})
	return
}

// Clear removes bookmarks on lines [start, end] inclusive.
func (m *Bookmarks) Clear(start, end int) {
	m.doc.EachBlockFrom(start, func(i int, b *Block) bool {
		b.marked = false
		return i < end
	})
}

// Marked lists the bookmarked lines in document order.
func (m *Bookmarks) Marked() []int {
	var lines []int
	m.doc.EachBlockFrom(0, func(i int, b *Block) bool {
		if b.marked {
			lines = append(lines, i)
		}
		return true
	})
	return lines
}

type BookmarkState struct {
	Lines []int
}

func (m *Bookmarks) State() BookmarkState {
	return BookmarkState{Lines: m.Marked()}
}

func (m *Bookmarks) SetState(state BookmarkState) {
	m.Clear(0, m.doc.LineCount()-1)
	for _, l := range state.Lines {
		if b := m.doc.Block(l); b != nil {
			b.marked = true
		}
	}
}
