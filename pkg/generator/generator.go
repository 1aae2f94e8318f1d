// Package generator encodes composited collages into downloadable files.
//
// All output follows a unified pipeline: the compositor produces an
// image.Image first, then it is written as JPEG (the export format), PNG or
// BMP.
package generator

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Format names a supported output encoding.
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
	BMP  Format = "bmp"
)

// DefaultQuality is the JPEG quality used for exports (maximum).
const DefaultQuality = 100

// Config holds parameters for encoding.
type Config struct {
	Format  Format // default: JPEG
	Quality int    // JPEG only, 1..100 (default: 100)
}

// FormatFromExt maps a file extension onto a Format.
func FormatFromExt(ext string) (Format, error) {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use .jpg, .png or .bmp", ext)
	}
}

// MediaType returns the MIME type for a format.
func (f Format) MediaType() string {
	switch f {
	case PNG:
		return "image/png"
	case BMP:
		return "image/bmp"
	}
	return "image/jpeg"
}

// Ext returns the canonical file extension for a format.
func (f Format) Ext() string {
	switch f {
	case PNG:
		return ".png"
	case BMP:
		return ".bmp"
	}
	return ".jpg"
}

// Generate writes img to output. The format is inferred from the file extension:
//   - ".jpg", ".jpeg" → JPEG at cfg.Quality
//   - ".png" → PNG
//   - ".bmp" → BMP
func Generate(output string, img image.Image, cfg Config) error {
	format, err := FormatFromExt(filepath.Ext(output))
	if err != nil {
		return err
	}
	cfg.Format = format
	switch format {
	case PNG:
		return writePNG(output, img)
	case BMP:
		return writeBMP(output, img)
	default:
		return writeJPEG(output, img, quality(cfg))
	}
}

// GenerateToWriter encodes img to w in cfg.Format.
// This is useful for in-memory generation (e.g., HTTP responses).
func GenerateToWriter(w io.Writer, img image.Image, cfg Config) error {
	switch cfg.Format {
	case PNG:
		return encodePNG(w, img)
	case BMP:
		return encodeBMP(w, img)
	case JPEG, "":
		return encodeJPEG(w, img, quality(cfg))
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
}

// Filename returns the export name "photobooth_<unix millis><ext>".
func Filename(now time.Time, f Format) string {
	return fmt.Sprintf("photobooth_%d%s", now.UnixMilli(), f.Ext())
}

func quality(cfg Config) int {
	if cfg.Quality < 1 || cfg.Quality > 100 {
		return DefaultQuality
	}
	return cfg.Quality
}
