// Package compositor renders photo-booth collages: it sizes the canvas for a
// layout, paints the frame, places the photos, filters the whole canvas and
// adds captions before encoding the export.
package compositor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/xob0t/boothframe/pkg/filter"
	"github.com/xob0t/boothframe/pkg/frame"
	"github.com/xob0t/boothframe/pkg/generator"
	"github.com/xob0t/boothframe/pkg/layout"
	"github.com/xob0t/boothframe/pkg/source"
)

// PhotoInset is the white backing visible around each placed photo.
const PhotoInset = 5

// DefaultCaption prefixes the footer date.
const DefaultCaption = "Photo Booth"

// ImageLoader decodes slot handles; nil entries mean "leave the slot empty".
type ImageLoader interface {
	LoadAll(ctx context.Context, handles []string) []image.Image
}

// Request selects what to render. Images are slot handles in layout order;
// an empty string leaves its slot empty.
type Request struct {
	LayoutID    string   `json:"layoutId"`
	Images      []string `json:"images"`
	BorderColor string   `json:"borderColor"`
	Filter      string   `json:"filter"`
	FrameID     string   `json:"frameId,omitempty"`
}

// Artifact is an encoded collage.
type Artifact struct {
	Image    *image.RGBA
	Data     []byte
	Format   generator.Format
	Filename string
}

// MediaType returns the MIME type of Data.
func (a *Artifact) MediaType() string { return a.Format.MediaType() }

// Options configures an Engine. Zero values pick defaults.
type Options struct {
	Caption  string
	FontPath string
	Now      func() time.Time
	Log      logrus.FieldLogger
	Loader   ImageLoader
	Encoding generator.Config
}

// Engine renders collages. It is safe for concurrent Render calls.
type Engine struct {
	opts  Options
	fonts *FontManager
	log   logrus.FieldLogger
}

// New creates an engine, loading the caption font once.
func New(opts Options) (*Engine, error) {
	if opts.Caption == "" {
		opts.Caption = DefaultCaption
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.Loader == nil {
		opts.Loader = &source.Loader{Log: opts.Log}
	}
	if opts.Encoding.Format == "" {
		opts.Encoding.Format = generator.JPEG
	}

	fm, err := NewFontManager(opts.FontPath, opts.Log)
	if err != nil {
		return nil, err
	}
	return &Engine{opts: opts, fonts: fm, log: opts.Log}, nil
}

// Render composes and encodes a collage. It returns (nil, nil) when there is
// nothing to render: an unknown layout or no image among the layout's slots.
// An unknown frame id is an error.
func (e *Engine) Render(ctx context.Context, req Request) (*Artifact, error) {
	img, err := e.Compose(ctx, req)
	if err != nil || img == nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := generator.GenerateToWriter(&buf, img, e.opts.Encoding); err != nil {
		return nil, fmt.Errorf("encode collage: %w", err)
	}
	return &Artifact{
		Image:    img,
		Data:     buf.Bytes(),
		Format:   e.opts.Encoding.Format,
		Filename: generator.Filename(e.opts.Now(), e.opts.Encoding.Format),
	}, nil
}

// Compose paints the collage without encoding it. See Render for the
// nothing-to-render result.
func (e *Engine) Compose(ctx context.Context, req Request) (*image.RGBA, error) {
	log := e.log.WithFields(logrus.Fields{
		"layout": req.LayoutID,
		"frame":  req.FrameID,
		"filter": req.Filter,
	})

	l, ok := layout.Find(req.LayoutID)
	if !ok {
		log.Debug("Unknown layout, nothing to render")
		return nil, nil
	}
	handles := req.Images[:min(len(req.Images), l.ImageCount)]
	if !hasAny(handles) {
		log.Debug("No images for layout, nothing to render")
		return nil, nil
	}

	var fr *frame.Frame
	if req.FrameID != "" {
		f, err := frame.Lookup(req.FrameID)
		if err != nil {
			return nil, err
		}
		adjusted := frame.ForLayout(f, l)
		fr = &adjusted
	}

	kind, err := filter.Parse(req.Filter)
	if err != nil {
		log.WithError(err).Warn("Unknown filter, rendering unfiltered")
	}

	photos := e.opts.Loader.LoadAll(ctx, handles)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w, h := layout.CanvasSize(l.Orientation)
	plan := frame.BuildPlan(fr, req.BorderColor, w, h)
	canvas := generator.NewSolidImage(w, h, plan.Background)
	p := &painter{dst: canvas}

	for _, op := range plan.Ops {
		p.apply(op)
	}
	if fr != nil {
		e.drawDecorations(p, fr, w, h)
	}

	for i, pos := range l.Positions {
		if i >= len(photos) || photos[i] == nil {
			continue
		}
		slot := pos.Resolve(plan.Inner)
		p.fillRect(slot, generator.White)
		photo := slot.Inset(PhotoInset)
		if photo.Empty() {
			continue
		}
		fitted := imaging.Fill(photos[i], photo.Dx(), photo.Dy(), imaging.Center, imaging.Lanczos)
		p.drawImage(photo, fitted)
	}

	filter.ApplyImage(canvas, kind)

	if fr != nil {
		if err := e.drawFrameText(canvas, fr, plan); err != nil {
			return nil, err
		}
	}
	if err := e.drawFooter(canvas, plan); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"width":  w,
		"height": h,
		"kind":   plan.Kind.String(),
	}).Debug("Collage composed")
	return canvas, nil
}

func hasAny(handles []string) bool {
	for _, h := range handles {
		if h != "" {
			return true
		}
	}
	return false
}

// drawDecorations paints stars and discs; positions resolve against the
// full canvas.
func (e *Engine) drawDecorations(p *painter, f *frame.Frame, w, h int) {
	for _, d := range f.Decorations {
		x, y := d.X.Resolve(w), d.Y.Resolve(h)
		c := generator.ParseHexRGBA(d.Color)
		switch d.Type {
		case frame.Star:
			p.fillStar(x, y, d.Size/2, c)
		case frame.Circle:
			p.fillCircle(x, y, d.Size/2, c)
		default:
			e.log.WithField("type", d.Type).Warn("Skipping unknown decoration")
		}
	}
}
