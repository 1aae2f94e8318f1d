// fonts.go - Font management with custom TTF support and embedded fallback font.
// Uses golang.org/x/image/font for OpenType rendering. Defaults to Go Regular
// font when no custom font is specified or when custom font loading fails.
package compositor

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontManager handles font loading with fallback.
type FontManager struct {
	parsed *opentype.Font
}

// NewFontManager creates a font manager with the specified font.
// If customPath is empty or invalid, uses embedded Go font.
func NewFontManager(customPath string, log logrus.FieldLogger) (*FontManager, error) {
	var fontData []byte

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			log.WithFields(logrus.Fields{
				"path":  customPath,
				"error": err,
			}).Warn("Could not load custom font, using default")
		} else if _, err := opentype.Parse(data); err != nil {
			log.WithFields(logrus.Fields{
				"path":  customPath,
				"error": err,
			}).Warn("Could not parse custom font, using default")
		} else {
			fontData = data
		}
	}

	if fontData == nil {
		fontData = goregular.TTF
	}

	parsed, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &FontManager{parsed: parsed}, nil
}

// Face returns a font.Face whose em size is px pixels. Faces are not safe
// for concurrent use, so callers create one per render.
func (fm *FontManager) Face(px float64) (font.Face, error) {
	face, err := opentype.NewFace(fm.parsed, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

// drawString draws text with its baseline origin at (x, y).
func drawString(img *image.RGBA, text string, x, y fixed.Int26_6, col color.Color, face font.Face) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: x, Y: y},
	}
	drawer.DrawString(text)
}
