// adjust.go - Derive a per-layout copy of a catalog frame.
package frame

import "github.com/xob0t/boothframe/pkg/layout"

// ForLayout returns the frame as drawn on l. Only frames that opt in with
// AdjustForOrientation are adjusted; the rest keep their catalog geometry.
func ForLayout(f Frame, l layout.Layout) Frame {
	if !f.AdjustForOrientation {
		return f.Clone()
	}
	return AdjustForLayout(f, l.Orientation, l.Size)
}

// AdjustForLayout resolves orientation- and size-dependent fields. The input
// is never modified; the result shares no slices or pointers with it.
func AdjustForLayout(f Frame, orientation layout.Orientation, size string) Frame {
	out := f.Clone()

	if f.AdjustForOrientation && f.Holes != nil {
		sides := f.Holes.Position == HolesSides
		if orientation == layout.Landscape {
			sides = !sides
		}
		if sides {
			out.HolePositions = []Side{Left, Right}
		} else {
			out.HolePositions = []Side{Top, Bottom}
		}
	}

	if size == layout.NarrowSize {
		out.BorderWidth = max(8, f.BorderWidth*4/5)
		if f.MatWidth > 0 {
			out.MatWidth = max(15, f.MatWidth*7/10)
		}
	}

	return out
}
