// Package filter applies whole-canvas color filters to 8-bit RGBA pixels.
package filter

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"
)

// Kind names a color filter.
type Kind string

const (
	None      Kind = "none"
	Grayscale Kind = "grayscale"
	Sepia     Kind = "sepia"
	Vintage   Kind = "vintage"
	Cool      Kind = "cool"
)

// ErrUnknownFilter is returned by Parse for names outside Kinds().
var ErrUnknownFilter = errors.New("unknown filter")

var kinds = []Kind{None, Grayscale, Sepia, Vintage, Cool}

// Kinds lists the supported filters, none first.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// Parse maps a name onto a Kind. The empty string is None.
func Parse(name string) (Kind, error) {
	n := Kind(strings.ToLower(strings.TrimSpace(name)))
	if n == "" {
		return None, nil
	}
	for _, k := range kinds {
		if k == n {
			return k, nil
		}
	}
	return None, fmt.Errorf("filter %q: %w", name, ErrUnknownFilter)
}

// transform maps one RGB triple. Results are unclamped.
type transform func(r, g, b float64) (float64, float64, float64)

var transforms = map[Kind]transform{
	Grayscale: func(r, g, b float64) (float64, float64, float64) {
		avg := (r + g + b) / 3
		return avg, avg, avg
	},
	Sepia: func(r, g, b float64) (float64, float64, float64) {
		return r*0.393 + g*0.769 + b*0.189,
			r*0.349 + g*0.686 + b*0.168,
			r*0.272 + g*0.534 + b*0.131
	},
	Vintage: func(r, g, b float64) (float64, float64, float64) {
		return r*0.9 + g*0.2 + b*0.1 + 20,
			r*0.22 + g*0.9 + b*0.1 + 10,
			r*0.22 + g*0.2 + b*0.9
	},
	Cool: func(r, g, b float64) (float64, float64, float64) {
		return r * 0.8, g * 0.9, b * 1.2
	},
}

// Apply transforms width*height packed RGBA pixels in place. Alpha is left
// untouched. None and unknown kinds return without touching the buffer.
func Apply(pix []uint8, width, height int, kind Kind) {
	fn, ok := transforms[kind]
	if !ok {
		return
	}
	n := min(len(pix), width*height*4)
	applyRow(pix[:n], fn)
}

// ApplyImage filters an RGBA image in place, honoring its stride.
func ApplyImage(img *image.RGBA, kind Kind) {
	fn, ok := transforms[kind]
	if !ok {
		return
	}
	b := img.Bounds()
	rowLen := b.Dx() * 4
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		applyRow(img.Pix[off:off+rowLen], fn)
	}
}

func applyRow(pix []uint8, fn transform) {
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := fn(float64(pix[i]), float64(pix[i+1]), float64(pix[i+2]))
		pix[i] = clamp(r)
		pix[i+1] = clamp(g)
		pix[i+2] = clamp(b)
	}
}

// clamp stores like a clamped byte array: round half to even, then saturate.
func clamp(v float64) uint8 {
	v = math.RoundToEven(v)
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
