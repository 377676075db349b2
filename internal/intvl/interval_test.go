package intvl

import (
	"fmt"
	"testing"
)

type span struct {
	start, end int
	name       string
}

func (s span) Start() int {
	return s.start
}

func (s span) End() int {
	return s.end
}

func segString(segs []Segment) string {
	out := ""
	for _, s := range segs {
		name := "-"
		if s.Interval != nil {
			name = s.Interval.(span).name
		}
		out += fmt.Sprintf("[%d,%d)%s ", s.Start, s.End, name)
	}
	return out
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name     string
		input    []span
		length   int
		expected string
	}{
		{
			name:     "empty",
			input:    nil,
			length:   5,
			expected: "[0,5)- ",
		},
		{
			name:     "one interval inside",
			input:    []span{{1, 4, "a"}},
			length:   6,
			expected: "[0,1)- [1,4)a [4,6)- ",
		},
		{
			name:     "interval at start",
			input:    []span{{0, 3, "a"}},
			length:   5,
			expected: "[0,3)a [3,5)- ",
		},
		{
			name:     "interval to end",
			input:    []span{{2, 5, "a"}},
			length:   5,
			expected: "[0,2)- [2,5)a ",
		},
		{
			name:     "whole line",
			input:    []span{{0, 4, "a"}},
			length:   4,
			expected: "[0,4)a ",
		},
		{
			name:     "two disjoint",
			input:    []span{{0, 2, "a"}, {3, 5, "b"}},
			length:   6,
			expected: "[0,2)a [2,3)- [3,5)b [5,6)- ",
		},
		{
			name:     "adjacent",
			input:    []span{{0, 2, "a"}, {2, 4, "b"}},
			length:   4,
			expected: "[0,2)a [2,4)b ",
		},
		{
			name:     "later wins overlap",
			input:    []span{{0, 4, "a"}, {2, 6, "b"}},
			length:   6,
			expected: "[0,2)a [2,6)b ",
		},
		{
			name:     "nested later wins",
			input:    []span{{0, 6, "a"}, {2, 4, "b"}},
			length:   6,
			expected: "[0,2)a [2,4)b [4,6)a ",
		},
		{
			name:     "empty interval ignored",
			input:    []span{{2, 2, "a"}},
			length:   4,
			expected: "[0,4)- ",
		},
		{
			name:     "interval past line end is clipped",
			input:    []span{{1, 10, "a"}},
			length:   4,
			expected: "[0,1)- [1,4)a ",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seq Sequence
			for _, s := range tc.input {
				seq.Add(s)
			}

			got := segString(seq.Segments(tc.length))
			if got != tc.expected {
				t.Fatalf("segments: expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestSegmentsZeroLength(t *testing.T) {
	var seq Sequence
	seq.Add(span{0, 3, "a"})
	if segs := seq.Segments(0); segs != nil {
		t.Fatalf("expected nil segments for zero length, got %v", segs)
	}
}

func TestReset(t *testing.T) {
	var seq Sequence
	seq.Add(span{0, 3, "a"})
	seq.Reset()
	if seq.Len() != 0 {
		t.Fatalf("expected empty sequence after reset")
	}
	if got := segString(seq.Segments(3)); got != "[0,3)- " {
		t.Fatalf("expected one gap segment after reset, got %q", got)
	}
}
