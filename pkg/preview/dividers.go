// dividers.go - Guide lines between adjacent layout slots.
package preview

import (
	"math"
	"sort"

	"github.com/xob0t/boothframe/pkg/layout"
)

const eps = 0.001

// Segment is a guide line in fractions of the inner area.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Horizontal reports whether the segment runs along x.
func (s Segment) Horizontal() bool { return s.Y1 == s.Y2 }

// Dividers returns the interior edges where one slot's top (left) edge meets
// another's bottom (right) edge, spanning the overlap of the two slots.
// Collinear segments that touch are merged.
func Dividers(l layout.Layout) []Segment {
	var horiz, vert []Segment
	for i, a := range l.Positions {
		for j, b := range l.Positions {
			if i == j {
				continue
			}
			if near(a.Y, b.Bottom()) && interior(a.Y) {
				lo, hi := math.Max(a.X, b.X), math.Min(a.Right(), b.Right())
				if hi-lo > eps {
					horiz = append(horiz, Segment{lo, a.Y, hi, a.Y})
				}
			}
			if near(a.X, b.Right()) && interior(a.X) {
				lo, hi := math.Max(a.Y, b.Y), math.Min(a.Bottom(), b.Bottom())
				if hi-lo > eps {
					vert = append(vert, Segment{a.X, lo, a.X, hi})
				}
			}
		}
	}
	return append(merge(horiz, true), merge(vert, false)...)
}

func near(a, b float64) bool  { return math.Abs(a-b) < eps }
func interior(v float64) bool { return v > eps && v < 1-eps }

// merge joins touching or overlapping segments that share a line.
func merge(segs []Segment, horizontal bool) []Segment {
	line := func(s Segment) float64 {
		if horizontal {
			return s.Y1
		}
		return s.X1
	}
	start := func(s Segment) float64 {
		if horizontal {
			return s.X1
		}
		return s.Y1
	}
	end := func(s Segment) float64 {
		if horizontal {
			return s.X2
		}
		return s.Y2
	}

	sort.Slice(segs, func(i, j int) bool {
		if li, lj := line(segs[i]), line(segs[j]); !near(li, lj) {
			return li < lj
		}
		return start(segs[i]) < start(segs[j])
	})

	var out []Segment
	for _, s := range segs {
		if n := len(out); n > 0 && near(line(out[n-1]), line(s)) && start(s) <= end(out[n-1])+eps {
			last := &out[n-1]
			if end(s) > end(*last) {
				if horizontal {
					last.X2 = s.X2
				} else {
					last.Y2 = s.Y2
				}
			}
			continue
		}
		out = append(out, s)
	}
	return out
}
