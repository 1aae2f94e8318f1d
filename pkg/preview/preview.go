// Package preview draws an SVG mock-up of a collage for interactive use. It
// shares the frame geometry with the compositor so slots, borders and mats
// line up with the exported image.
package preview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/svg"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/xob0t/boothframe/pkg/compositor"
	"github.com/xob0t/boothframe/pkg/filter"
	"github.com/xob0t/boothframe/pkg/frame"
	"github.com/xob0t/boothframe/pkg/generator"
	"github.com/xob0t/boothframe/pkg/layout"
)

// ErrUnknownLayout is returned for layout ids outside the catalog.
var ErrUnknownLayout = errors.New("unknown layout")

// ptPerUnit converts reference pixels (drawn as canvas millimeters) to points.
const ptPerUnit = 72 / 25.4

var (
	placeholderColor = canvas.Hex("#e0e0e0")
	placeholderText  = canvas.Hex("#9e9e9e")
	dividerColor     = canvas.White
)

// Renderer draws previews. Images are optional; empty slots get placeholders.
type Renderer struct {
	Loader  compositor.ImageLoader // nil: every slot is a placeholder
	Caption string
	Now     func() time.Time
	Log     logrus.FieldLogger

	family *canvas.FontFamily
}

// NewRenderer loads the embedded Go font for slot numbers and the footer.
func NewRenderer(loader compositor.ImageLoader, caption string, log logrus.FieldLogger) (*Renderer, error) {
	family := canvas.NewFontFamily("boothframe")
	if err := family.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load preview font: %w", err)
	}
	if caption == "" {
		caption = compositor.DefaultCaption
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Renderer{Loader: loader, Caption: caption, Now: time.Now, Log: log, family: family}, nil
}

// Render writes an SVG preview of req to w.
func (r *Renderer) Render(ctx context.Context, w io.Writer, req compositor.Request) error {
	l, ok := layout.Find(req.LayoutID)
	if !ok {
		return fmt.Errorf("layout %q: %w", req.LayoutID, ErrUnknownLayout)
	}
	var fr *frame.Frame
	if req.FrameID != "" {
		f, err := frame.Lookup(req.FrameID)
		if err != nil {
			return err
		}
		adjusted := frame.ForLayout(f, l)
		fr = &adjusted
	}
	kind, err := filter.Parse(req.Filter)
	if err != nil {
		r.Log.WithError(err).Warn("Unknown filter, previewing unfiltered")
	}

	var photos []image.Image
	if r.Loader != nil && len(req.Images) > 0 {
		photos = r.Loader.LoadAll(ctx, req.Images[:min(len(req.Images), l.ImageCount)])
	}

	width, height := layout.CanvasSize(l.Orientation)
	plan := frame.BuildPlan(fr, req.BorderColor, width, height)

	c := canvas.New(float64(width), float64(height))
	cx := canvas.NewContext(c)
	cx.SetCoordSystem(canvas.CartesianIV)
	d := &drawer{ctx: cx, filter: kind}

	d.rect(image.Rect(0, 0, width, height), plan.Background)
	for _, op := range plan.Ops {
		d.apply(op)
	}
	if fr != nil {
		for _, dec := range fr.Decorations {
			d.decoration(dec, width, height)
		}
	}

	for i, pos := range l.Positions {
		slot := pos.Resolve(plan.Inner)
		if i < len(photos) && photos[i] != nil {
			d.rect(slot, generator.White)
			d.photo(slot.Inset(compositor.PhotoInset), photos[i])
			continue
		}
		d.rect(slot.Inset(compositor.PhotoInset), color.RGBA(placeholderColor))
		r.label(cx, slot, strconv.Itoa(i+1))
	}

	cx.SetFillColor(canvas.Transparent)
	cx.SetStrokeColor(dividerColor)
	cx.SetStrokeWidth(1)
	inner := plan.Inner
	for _, s := range Dividers(l) {
		x1 := float64(inner.Min.X) + s.X1*float64(inner.Dx())
		y1 := float64(inner.Min.Y) + s.Y1*float64(inner.Dy())
		x2 := float64(inner.Min.X) + s.X2*float64(inner.Dx())
		y2 := float64(inner.Min.Y) + s.Y2*float64(inner.Dy())
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(x2-x1, y2-y1)
		cx.DrawPath(x1, y1, p)
	}
	cx.SetStrokeColor(canvas.Transparent)

	top := height - compositor.FooterHeight
	d.filter = filter.None
	d.rect(image.Rect(0, top, width, height), plan.Background)
	face := r.family.Face(compositor.FooterTextSize*ptPerUnit, canvas.White, canvas.FontRegular, canvas.FontNormal)
	caption := r.Caption + " - " + r.Now().Format(compositor.DateLayout)
	cx.DrawText(compositor.FooterTextX, float64(top+compositor.FooterBaseline), canvas.NewTextLine(face, caption, canvas.Left))

	out := svg.New(w, float64(width), float64(height), nil)
	c.RenderTo(out)
	if err := out.Close(); err != nil {
		return fmt.Errorf("write SVG: %w", err)
	}
	return nil
}

// label centers a slot number inside an empty slot.
func (r *Renderer) label(cx *canvas.Context, slot image.Rectangle, text string) {
	size := float64(min(slot.Dx(), slot.Dy())) / 4
	face := r.family.Face(size*ptPerUnit, placeholderText, canvas.FontRegular, canvas.FontNormal)
	x := float64(slot.Min.X+slot.Max.X) / 2
	y := float64(slot.Min.Y+slot.Max.Y)/2 + size/3
	cx.DrawText(x, y, canvas.NewTextLine(face, text, canvas.Center))
}

// drawer mirrors the raster painter on a vector context.
type drawer struct {
	ctx    *canvas.Context
	filter filter.Kind
	shadow *frame.Shadow
}

func (d *drawer) apply(op frame.Op) {
	switch op.Type {
	case frame.OpRect:
		d.rect(op.Rect, op.Color)
	case frame.OpCircle:
		d.fill(op.Color)
		d.ctx.DrawPath(op.CX, op.CY, canvas.Circle(op.R))
	case frame.OpShadowOn:
		s := op.Shadow
		d.shadow = &s
	case frame.OpShadowOff:
		d.shadow = nil
	}
}

// rect fills r. An active shadow is drawn as an unblurred offset copy.
func (d *drawer) rect(r image.Rectangle, c color.RGBA) {
	path := canvas.Rectangle(float64(r.Dx()), float64(r.Dy()))
	if d.shadow != nil {
		d.ctx.SetFillColor(d.shadow.Color)
		d.ctx.DrawPath(float64(r.Min.X)+d.shadow.OffsetX, float64(r.Min.Y)+d.shadow.OffsetY, path)
	}
	d.fill(c)
	d.ctx.DrawPath(float64(r.Min.X), float64(r.Min.Y), path)
}

func (d *drawer) decoration(dec frame.Decoration, w, h int) {
	x, y := dec.X.Resolve(w), dec.Y.Resolve(h)
	r := dec.Size / 2
	d.fill(generator.ParseHexRGBA(dec.Color))
	switch dec.Type {
	case frame.Star:
		d.ctx.DrawPath(x, y, canvas.StarPolygon(5, r, r*0.382, true))
	case frame.Circle:
		d.ctx.DrawPath(x, y, canvas.Circle(r))
	}
}

// photo embeds an aspect-filled, filtered thumbnail.
func (d *drawer) photo(r image.Rectangle, src image.Image) {
	if r.Empty() {
		return
	}
	fitted := imaging.Fill(src, r.Dx(), r.Dy(), imaging.Center, imaging.Lanczos)
	rgba := image.NewRGBA(fitted.Bounds())
	draw.Draw(rgba, rgba.Bounds(), fitted, fitted.Bounds().Min, draw.Src)
	filter.ApplyImage(rgba, d.filter)
	d.ctx.DrawImage(float64(r.Min.X), float64(r.Min.Y), rgba, canvas.DPMM(1))
}

// fill sets the fill color after running it through the active filter, so
// frame colors shift the same way they do in the export.
func (d *drawer) fill(c color.RGBA) {
	px := []uint8{c.R, c.G, c.B, c.A}
	filter.Apply(px, 1, 1, d.filter)
	d.ctx.SetFillColor(color.RGBA{px[0], px[1], px[2], px[3]})
}
