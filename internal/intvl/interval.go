// Package intvl represents colored spans over a line of text and flattens
// them into non-overlapping segments for rendering.
package intvl

import "sort"

// An Interval is a half-open range [Start, End) of rune positions.
type Interval interface {
	Start() int
	End() int
}

// A Segment is a flattened piece of a line: between Start and End exactly one
// interval (or none) is in effect.
type Segment struct {
	Start, End int
	// Interval is the interval covering this segment, or nil for a gap.
	Interval Interval
}

// Sequence is an ordered collection of intervals over a single line.
// Intervals added later take precedence where they overlap earlier ones.
type Sequence struct {
	intervals []Interval
}

func (s *Sequence) Add(i Interval) {
	if i.Start() >= i.End() {
		// empty intervals contribute nothing
		return
	}
	s.intervals = append(s.intervals, i)
}

func (s *Sequence) Len() int {
	return len(s.intervals)
}

func (s *Sequence) Reset() {
	s.intervals = s.intervals[:0]
}

// Segments flattens the sequence over [0, length). Gaps between intervals are
// returned as segments with a nil Interval so that a renderer can walk the
// whole line left to right.
func (s *Sequence) Segments(length int) []Segment {
	if length <= 0 {
		return nil
	}

	bounds := s.boundaries(length)

	segs := make([]Segment, 0, len(bounds)+1)
	prev := 0
	for _, b := range bounds {
		segs = s.appendSegment(segs, prev, b)
		prev = b
	}
	segs = s.appendSegment(segs, prev, length)
	return segs
}

func (s *Sequence) appendSegment(segs []Segment, start, end int) []Segment {
	if start >= end {
		return segs
	}
	return append(segs, Segment{Start: start, End: end, Interval: s.activeAt(start)})
}

// boundaries returns the sorted, deduplicated interval endpoints that fall
// strictly inside [0, length).
func (s *Sequence) boundaries(length int) []int {
	var bounds []int
	add := func(p int) {
		if p > 0 && p < length {
			bounds = append(bounds, p)
		}
	}
	for _, i := range s.intervals {
		add(i.Start())
		add(i.End())
	}

	sort.Ints(bounds)
	return dedup(bounds)
}

// activeAt returns the interval in effect at position p. When several
// intervals cover p the one added last wins.
func (s *Sequence) activeAt(p int) Interval {
	for k := len(s.intervals) - 1; k >= 0; k-- {
		i := s.intervals[k]
		if p >= i.Start() && p < i.End() {
			return i
		}
	}
	return nil
}

func dedup(a []int) []int {
	out := a[:0]
	for i, v := range a {
		if i > 0 && a[i-1] == v {
			continue
		}
		out = append(out, v)
	}
	return out
}
