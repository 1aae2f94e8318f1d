// plan.go - Frame geometry shared by the raster compositor and the preview.
// Both paths paint Plan.Ops in order and place photos inside Plan.Inner, so a
// frame's precedence rules live in exactly one place.
package frame

import (
	"image"
	"image/color"

	"github.com/xob0t/boothframe/pkg/generator"
)

// Kind is the frame decoration variant that governs the inner area.
type Kind int

const (
	KindPlain Kind = iota
	KindMat
	KindInnerBorder
	KindWrap
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindMat:
		return "mat"
	case KindInnerBorder:
		return "inner-border"
	case KindWrap:
		return "wrap"
	case KindFloat:
		return "float"
	default:
		return "plain"
	}
}

// KindOf applies the precedence mat > inner border > wrap > float > plain.
func KindOf(f *Frame) Kind {
	switch {
	case f == nil:
		return KindPlain
	case f.MatWidth > 0:
		return KindMat
	case f.InnerBorderWidth > 0:
		return KindInnerBorder
	case f.EdgeEffect != nil && f.EdgeEffect.Type == "wrap":
		return KindWrap
	case f.FloatEffect != nil:
		return KindFloat
	default:
		return KindPlain
	}
}

// OpType selects what a paint operation does.
type OpType int

const (
	OpRect      OpType = iota // fill Rect
	OpCircle                  // fill disc at (CX, CY) radius R
	OpShadowOn                // subsequent fills cast Shadow
	OpShadowOff               // clear the shadow
)

// Shadow is a blurred, offset drop shadow.
type Shadow struct {
	Color   color.NRGBA
	Blur    float64
	OffsetX float64
	OffsetY float64
}

var (
	// WrapShadow stays registered after the wrap bands are painted.
	WrapShadow = Shadow{Color: color.NRGBA{0, 0, 0, 77}, Blur: 10, OffsetX: 5, OffsetY: 5}
	// FloatShadow is cleared once the floating background is painted.
	FloatShadow = Shadow{Color: color.NRGBA{0, 0, 0, 64}, Blur: 15, OffsetX: 8, OffsetY: 8}
)

// Op is one background paint instruction.
type Op struct {
	Type   OpType
	Rect   image.Rectangle
	CX, CY float64
	R      float64
	Color  color.RGBA
	Shadow Shadow
}

// Plan is the resolved frame geometry for one canvas.
type Plan struct {
	Width, Height int
	Background    color.RGBA
	BorderWidth   int
	Kind          Kind
	Ops           []Op
	Inner         image.Rectangle
}

// ShadowActive reports whether a shadow is still registered after Ops.
func (p Plan) ShadowActive() (Shadow, bool) {
	var s Shadow
	on := false
	for _, op := range p.Ops {
		switch op.Type {
		case OpShadowOn:
			s, on = op.Shadow, true
		case OpShadowOff:
			on = false
		}
	}
	return s, on
}

// inset returns the canvas rectangle shrunk by n on every side.
func inset(w, h, n int) image.Rectangle {
	return image.Rect(n, n, w-n, h-n)
}

// BuildPlan computes background color, paint operations and inner area.
// f is the adjusted frame or nil for the plain border path, where
// borderColor is used at the default width.
func BuildPlan(f *Frame, borderColor string, width, height int) Plan {
	p := Plan{
		Width:       width,
		Height:      height,
		Background:  generator.ParseHexRGBA(borderColor),
		BorderWidth: f.EffectiveBorderWidth(),
		Kind:        KindOf(f),
	}
	if f != nil && f.BorderColor != "" {
		p.Background = generator.ParseHexRGBA(f.BorderColor)
	}

	if f != nil && f.Holes != nil {
		p.Ops = append(p.Ops, perforation(f, p.BorderWidth, width, height)...)
	}

	bw := p.BorderWidth
	core := generator.ParseHexRGBA(CoreColor)
	switch p.Kind {
	case KindMat:
		p.Inner = inset(width, height, bw+f.MatWidth)
		p.Ops = append(p.Ops,
			Op{Type: OpRect, Rect: inset(width, height, bw), Color: generator.ColorOr(f.MatColor, DefaultMatColor)},
			Op{Type: OpRect, Rect: p.Inner, Color: core},
		)
	case KindInnerBorder:
		p.Inner = inset(width, height, bw+f.InnerBorderWidth)
		p.Ops = append(p.Ops,
			Op{Type: OpRect, Rect: inset(width, height, bw), Color: generator.ColorOr(f.InnerBorderColor, DefaultInnerBorderColor)},
			Op{Type: OpRect, Rect: p.Inner, Color: core},
		)
	case KindWrap:
		depth := f.EdgeEffect.Depth
		if depth <= 0 {
			depth = DefaultWrapDepth
		}
		c := generator.ColorOr(f.EdgeEffect.Color, DefaultWrapColor)
		p.Inner = inset(width, height, depth)
		p.Ops = append(p.Ops,
			Op{Type: OpRect, Rect: image.Rect(0, 0, width, depth), Color: c},
			Op{Type: OpRect, Rect: image.Rect(0, height-depth, width, height), Color: c},
			Op{Type: OpRect, Rect: image.Rect(0, 0, depth, height), Color: c},
			Op{Type: OpRect, Rect: image.Rect(width-depth, 0, width, height), Color: c},
			Op{Type: OpShadowOn, Shadow: WrapShadow},
		)
	case KindFloat:
		dist := f.FloatEffect.Distance
		if dist <= 0 {
			dist = DefaultFloatDistance
		}
		p.Inner = inset(width, height, dist)
		p.Ops = append(p.Ops,
			Op{Type: OpShadowOn, Shadow: FloatShadow},
			Op{Type: OpRect, Rect: p.Inner, Color: generator.ColorOr(f.FloatEffect.BackgroundColor, DefaultFloatBackground)},
			Op{Type: OpShadowOff},
		)
	default:
		p.Inner = inset(width, height, bw)
		p.Ops = append(p.Ops, Op{Type: OpRect, Rect: p.Inner, Color: core})
	}
	return p
}

// HoleSides returns where perforations go: the adjusted positions when set,
// otherwise the sides declared by the holes descriptor.
func HoleSides(f *Frame) []Side {
	if len(f.HolePositions) > 0 {
		return f.HolePositions
	}
	if f.Holes.Position == HolesSides {
		return []Side{Left, Right}
	}
	return []Side{Top, Bottom}
}

// perforation fills the canvas with the strip color and punches holes every
// spacing pixels, centered in each cell and borderWidth/2 from the edge.
func perforation(f *Frame, bw, width, height int) []Op {
	h := f.Holes
	size, spacing := h.Size, h.Spacing
	if size <= 0 {
		size = DefaultHoleSize
	}
	if spacing <= 0 {
		spacing = DefaultHoleSpacing
	}
	holeColor := generator.ColorOr(h.Color, DefaultHoleColor)

	ops := []Op{{
		Type:  OpRect,
		Rect:  image.Rect(0, 0, width, height),
		Color: generator.ColorOr(h.BaseColor, DefaultHoleBaseColor),
	}}
	r := float64(size) / 2
	edge := float64(bw) / 2
	for _, side := range HoleSides(f) {
		extent := width
		if side == Left || side == Right {
			extent = height
		}
		for i := 0; i < extent/spacing; i++ {
			along := float64(i*spacing) + float64(spacing)/2
			op := Op{Type: OpCircle, R: r, Color: holeColor}
			switch side {
			case Left:
				op.CX, op.CY = edge, along
			case Right:
				op.CX, op.CY = float64(width)-edge, along
			case Top:
				op.CX, op.CY = along, edge
			case Bottom:
				op.CX, op.CY = along, float64(height)-edge
			}
			ops = append(ops, op)
		}
	}
	return ops
}
