// jpeg.go - JPEG writers for collage exports.
package generator

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
)

// writeJPEG encodes img to a JPEG file at the given path.
func writeJPEG(output string, img image.Image, q int) error {
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}

	if err := encodeJPEG(f, img, q); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encodeJPEG(w io.Writer, img image.Image, q int) error {
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: q}); err != nil {
		return fmt.Errorf("encode JPEG: %w", err)
	}
	return nil
}
