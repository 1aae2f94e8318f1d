// Package layout holds the photo grid catalog: named layouts whose slots are
// fractional rectangles of the inner drawing area.
package layout

import (
	"fmt"
	"image"
	"math"
)

// Orientation selects the reference canvas shape.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// NarrowSize is the strip format that gets thinner frame borders.
const NarrowSize = "6x2"

// epsilon tolerates the two-decimal fractions used by the catalog.
const epsilon = 0.001

// Rect is a slot position relative to the inner drawing area (0.0–1.0).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the fractional x of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the fractional y of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Resolve maps the fraction onto area. Edges are rounded independently so
// adjacent slots share a pixel boundary without gaps.
func (r Rect) Resolve(area image.Rectangle) image.Rectangle {
	w := float64(area.Dx())
	h := float64(area.Dy())
	return image.Rect(
		area.Min.X+int(math.Round(r.X*w)),
		area.Min.Y+int(math.Round(r.Y*h)),
		area.Min.X+int(math.Round(r.Right()*w)),
		area.Min.Y+int(math.Round(r.Bottom()*h)),
	)
}

// Layout is a named grid geometry.
type Layout struct {
	ID          string      `json:"id"`
	Size        string      `json:"size"`
	ImageCount  int         `json:"imageCount"`
	Orientation Orientation `json:"orientation"`
	Positions   []Rect      `json:"positions"`
}

// Validate checks the slot count and that no position leaves [0,1].
func (l Layout) Validate() error {
	if l.ImageCount < 1 {
		return fmt.Errorf("layout %s: imageCount must be at least 1", l.ID)
	}
	if len(l.Positions) != l.ImageCount {
		return fmt.Errorf("layout %s: %d positions for imageCount %d", l.ID, len(l.Positions), l.ImageCount)
	}
	if l.Orientation != Portrait && l.Orientation != Landscape {
		return fmt.Errorf("layout %s: unknown orientation %q", l.ID, l.Orientation)
	}
	for i, p := range l.Positions {
		if p.X < 0 || p.Y < 0 || p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("layout %s: position %d has negative origin or empty size", l.ID, i)
		}
		if p.Right() > 1+epsilon || p.Bottom() > 1+epsilon {
			return fmt.Errorf("layout %s: position %d overflows the inner area", l.ID, i)
		}
	}
	return nil
}

// CanvasSize returns the reference canvas for an orientation.
func CanvasSize(o Orientation) (width, height int) {
	if o == Portrait {
		return 600, 900
	}
	return 900, 600
}
