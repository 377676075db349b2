package codepart

import (
	"testing"
)

func TestDocumentSetTextAndText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		lines int
	}{
		{"empty", "", 1},
		{"one line", "hello", 1},
		{"two lines", "a\nb", 2},
		{"trailing newline makes empty last line", "a\nb\n", 3},
		{"blank lines kept", "a\n\n\nb", 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := NewDocument()
			doc.SetText(tc.text)

			if doc.LineCount() != tc.lines {
				t.Errorf("expected %d lines, got %d", tc.lines, doc.LineCount())
			}
			if doc.Text() != tc.text {
				t.Errorf("round trip: expected %q, got %q", tc.text, doc.Text())
			}
		})
	}
}

func TestDocumentInsertAndRemoveLines(t *testing.T) {
	doc := NewDocument()
	doc.SetText("a\nb\nc")

	doc.InsertLines(1, "x", "y")
	if doc.Text() != "a\nx\ny\nb\nc" {
		t.Fatalf("after insert: got %q", doc.Text())
	}

	doc.RemoveLines(1, 2)
	if doc.Text() != "a\nb\nc" {
		t.Fatalf("after remove: got %q", doc.Text())
	}

	// removing past the end clamps
	doc.RemoveLines(1, 100)
	if doc.Text() != "a" {
		t.Fatalf("after clamped remove: got %q", doc.Text())
	}

	// a document never becomes empty
	doc.RemoveLines(0, 1)
	if doc.LineCount() != 1 || doc.Block(0).Text() != "" {
		t.Fatalf("expected a single empty block, got %d lines %q", doc.LineCount(), doc.Text())
	}
}

func TestDocumentMarksFollowTheirLines(t *testing.T) {
	doc := NewDocument()
	doc.SetText("a\nb\nc")
	marks := NewBookmarks(doc)

	marks.Toggle(1)

	doc.InsertLines(0, "top")
	if !marks.IsMarked(2) {
		t.Errorf("expected mark to move down with its line after insert above")
	}
	if marks.IsMarked(1) {
		t.Errorf("expected no mark at old index after insert above")
	}

	doc.RemoveLines(0, 1)
	if !marks.IsMarked(1) {
		t.Errorf("expected mark back on line 1 after removing the inserted line")
	}
}

func TestDocumentCallbacks(t *testing.T) {
	doc := NewDocument()

	var counts []int
	var first, last int
	doc.OnBlockCountChanged = func(n int) { counts = append(counts, n) }
	doc.OnChanged = func(f, l int) { first, last = f, l }

	doc.SetText("a\nb\nc")
	if len(counts) != 1 || counts[0] != 3 {
		t.Errorf("SetText: expected count callback with 3, got %v", counts)
	}
	if first != 0 || last != 2 {
		t.Errorf("SetText: expected changed range 0-2, got %d-%d", first, last)
	}

	doc.ReplaceLine(1, "B")
	if first != 1 || last != 1 {
		t.Errorf("ReplaceLine: expected changed range 1-1, got %d-%d", first, last)
	}
	if doc.Block(1).Text() != "B" {
		t.Errorf("ReplaceLine: line not replaced")
	}

	doc.InsertLines(1, "x")
	if counts[len(counts)-1] != 4 {
		t.Errorf("InsertLines: expected count callback with 4, got %v", counts)
	}
}

func TestDocumentBlockOutOfRange(t *testing.T) {
	doc := NewDocument()
	doc.SetText("a")

	if doc.Block(-1) != nil || doc.Block(1) != nil {
		t.Errorf("expected nil block out of range")
	}
}

func TestEachBlockBackFromClampsStart(t *testing.T) {
	doc := NewDocument()
	doc.SetText("a\nb\nc")

	var visited []int
	doc.EachBlockBackFrom(99, func(i int, b *Block) bool {
		visited = append(visited, i)
		return true
	})

	if len(visited) != 3 || visited[0] != 2 || visited[2] != 0 {
		t.Errorf("expected visit order 2,1,0, got %v", visited)
	}
}
