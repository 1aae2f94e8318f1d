// bmp.go - BMP writers for print kiosks that only accept uncompressed bitmaps.
package generator

import (
	"fmt"
	"image"
	"io"
	"os"

	"golang.org/x/image/bmp"
)

// writeBMP encodes img to a BMP file at the given path.
func writeBMP(output string, img image.Image) error {
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}

	if err := encodeBMP(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encodeBMP(w io.Writer, img image.Image) error {
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("encode BMP: %w", err)
	}
	return nil
}
