// text.go - Frame captions and the dated footer band.
package compositor

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/xob0t/boothframe/pkg/frame"
	"github.com/xob0t/boothframe/pkg/generator"
)

const (
	BottomTextSize = 24
	LabelTextSize  = 18
	FooterHeight   = 30
	FooterTextSize = 14
	FooterTextX    = 20
	FooterBaseline = 20 // from the top of the band
	DateLayout     = "1/2/2006"
)

var black = color.RGBA{0, 0, 0, 255}

// drawFrameText paints the frame's bottom text and labels.
func (e *Engine) drawFrameText(img *image.RGBA, f *frame.Frame, plan frame.Plan) error {
	style := frame.TextStyle{}
	if f.TextStyle != nil {
		style = *f.TextStyle
	}
	w, h := plan.Width, plan.Height

	if f.BottomText != "" {
		face, err := e.fonts.Face(sizeOr(style.FontSize, BottomTextSize))
		if err != nil {
			return err
		}
		defer face.Close()

		adv := font.MeasureString(face, f.BottomText)
		x := (fixed.I(w) - adv) / 2
		y := fixed.I(h) - fixed.I(plan.BorderWidth)/2
		drawString(img, f.BottomText, x, y, colorOr(style.Color, black), face)
	}

	if len(f.TextLabels) == 0 {
		return nil
	}
	face, err := e.fonts.Face(sizeOr(style.FontSize, LabelTextSize))
	if err != nil {
		return err
	}
	defer face.Close()

	for _, label := range f.TextLabels {
		c := colorOr(style.Color, black)
		if label.Color != "" {
			c = generator.ParseHexRGBA(label.Color)
		}
		adv := font.MeasureString(face, label.Text)
		x := fixed.I(w) - adv - fixed.I(plan.BorderWidth)
		if style.TextAlign == "center" {
			x = (fixed.I(w) - adv) / 2
		}
		y := fixed.Int26_6(label.Y.Resolve(h) * 64)
		drawString(img, label.Text, x, y, c, face)
	}
	return nil
}

// drawFooter paints the band in the frame/border color and the dated caption.
// A shadow still registered by the plan (canvas wrap) is cast by the band.
func (e *Engine) drawFooter(img *image.RGBA, plan frame.Plan) error {
	top := plan.Height - FooterHeight
	p := &painter{dst: img}
	if s, on := plan.ShadowActive(); on {
		p.setShadow(s)
	}
	p.fillRect(image.Rect(0, top, plan.Width, plan.Height), plan.Background)

	face, err := e.fonts.Face(FooterTextSize)
	if err != nil {
		return err
	}
	defer face.Close()

	text := e.opts.Caption + " - " + e.opts.Now().Format(DateLayout)
	drawString(img, text, fixed.I(FooterTextX), fixed.I(top+FooterBaseline), generator.White, face)
	return nil
}

func sizeOr(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

func colorOr(s string, def color.RGBA) color.RGBA {
	if s == "" {
		return def
	}
	return generator.ParseHexRGBA(s)
}
