// painter.go - Fills, anti-aliased shapes and drop shadows on an RGBA canvas.
// Keeps the "current shadow" state of a 2D drawing context: while a shadow is
// set, every fill first casts a blurred, offset copy of its shape.
package compositor

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"

	"github.com/xob0t/boothframe/pkg/frame"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

type painter struct {
	dst    *image.RGBA
	shadow *frame.Shadow
}

func (p *painter) setShadow(s frame.Shadow) { p.shadow = &s }
func (p *painter) clearShadow()             { p.shadow = nil }

// apply runs one plan operation.
func (p *painter) apply(op frame.Op) {
	switch op.Type {
	case frame.OpRect:
		p.fillRect(op.Rect, op.Color)
	case frame.OpCircle:
		p.fillCircle(op.CX, op.CY, op.R, op.Color)
	case frame.OpShadowOn:
		p.setShadow(op.Shadow)
	case frame.OpShadowOff:
		p.clearShadow()
	}
}

func (p *painter) fillRect(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(p.dst.Bounds())
	if r.Empty() {
		return
	}
	if p.shadow != nil {
		p.castShadow(r, image.Opaque, r.Min)
	}
	draw.Draw(p.dst, r, &image.Uniform{c}, image.Point{}, draw.Over)
}

// drawImage copies src (already sized to r) into r.
func (p *painter) drawImage(r image.Rectangle, src image.Image) {
	if p.shadow != nil {
		p.castShadow(r, image.Opaque, r.Min)
	}
	draw.Draw(p.dst, r, src, src.Bounds().Min, draw.Over)
}

func (p *painter) fillCircle(cx, cy, r float64, c color.RGBA) {
	p.fillShape(cx, cy, r, c, func(z *vector.Rasterizer, x, y float32) {
		traceCircle(z, x, y, float32(r))
	})
}

func (p *painter) fillStar(cx, cy, r float64, c color.RGBA) {
	p.fillShape(cx, cy, r, c, func(z *vector.Rasterizer, x, y float32) {
		traceStar(z, x, y, float32(r), float32(r)*0.382)
	})
}

// fillShape rasterizes a shape of radius r around (cx, cy). trace receives
// the center in rasterizer coordinates.
func (p *painter) fillShape(cx, cy, r float64, c color.RGBA, trace func(z *vector.Rasterizer, x, y float32)) {
	box := image.Rect(
		int(math.Floor(cx-r))-1, int(math.Floor(cy-r))-1,
		int(math.Ceil(cx+r))+1, int(math.Ceil(cy+r))+1,
	)
	if box.Empty() || !box.Overlaps(p.dst.Bounds()) {
		return
	}
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	trace(z, float32(cx)-float32(box.Min.X), float32(cy)-float32(box.Min.Y))
	mask := image.NewAlpha(box)
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	if p.shadow != nil {
		p.castShadow(box, mask, box.Min)
	}
	draw.DrawMask(p.dst, box, &image.Uniform{c}, image.Point{}, mask, box.Min, draw.Over)
}

// castShadow paints the blurred, offset silhouette of mask over area.
func (p *painter) castShadow(area image.Rectangle, mask image.Image, mp image.Point) {
	s := p.shadow
	sigma := s.Blur / 2
	pad := int(math.Ceil(sigma * 3))
	box := area.Inset(-pad)

	layer := image.NewNRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	draw.DrawMask(layer, area.Sub(box.Min), &image.Uniform{s.Color}, image.Point{}, mask, mp, draw.Src)

	var silhouette image.Image = layer
	if sigma > 0 {
		silhouette = imaging.Blur(layer, sigma)
	}
	off := image.Pt(int(math.Round(s.OffsetX)), int(math.Round(s.OffsetY)))
	draw.Draw(p.dst, box.Add(off), silhouette, image.Point{}, draw.Over)
}

func traceCircle(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

// traceStar draws a five-point star with its top point straight up.
func traceStar(z *vector.Rasterizer, cx, cy, outer, inner float32) {
	for i := 0; i < 10; i++ {
		rad := outer
		if i%2 == 1 {
			rad = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		x := cx + rad*float32(math.Cos(a))
		y := cy + rad*float32(math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}
