// Package source resolves image handles (data URIs, stored assets, local
// files) into decoded images for the compositor.
package source

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/xob0t/boothframe/pkg/store"
)

// AssetScheme prefixes handles that name an uploaded asset.
const AssetScheme = "asset:"

// ErrFilesDisabled is returned for path handles when AllowFiles is false.
var ErrFilesDisabled = errors.New("file handles are disabled")

// Loader turns handles into images.
type Loader struct {
	Assets     store.AssetStore   // resolves asset:<id>; nil disables them
	AllowFiles bool               // accept plain file paths
	Workers    int                // concurrent decodes (default 4)
	Log        logrus.FieldLogger // default: standard logger
}

func (l *Loader) logger() logrus.FieldLogger {
	if l.Log == nil {
		return logrus.StandardLogger()
	}
	return l.Log
}

// Load decodes one handle. EXIF orientation is applied to JPEGs.
func (l *Loader) Load(ctx context.Context, handle string) (image.Image, error) {
	data, err := l.read(ctx, handle)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func (l *Loader) read(ctx context.Context, handle string) ([]byte, error) {
	switch {
	case strings.HasPrefix(handle, "data:"):
		return decodeDataURI(handle)
	case strings.HasPrefix(handle, AssetScheme):
		if l.Assets == nil {
			return nil, fmt.Errorf("asset handles need an asset store")
		}
		a, err := l.Assets.Get(ctx, strings.TrimPrefix(handle, AssetScheme))
		if err != nil {
			return nil, err
		}
		return a.Data, nil
	default:
		if !l.AllowFiles {
			return nil, ErrFilesDisabled
		}
		f, err := os.Open(handle)
		if err != nil {
			return nil, fmt.Errorf("open image: %w", err)
		}
		defer f.Close()
		return io.ReadAll(f)
	}
}

// decodeDataURI extracts the payload of "data:[<type>][;base64],<data>".
func decodeDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI: missing comma")
	}
	if strings.HasSuffix(header, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data URI payload: %w", err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("data URI payload: %w", err)
	}
	return []byte(s), nil
}

// LoadAll decodes every handle concurrently and waits for all of them.
// The result has the same length as handles; empty handles and failed loads
// are nil so a bad photo only empties its own slot.
func (l *Loader) LoadAll(ctx context.Context, handles []string) []image.Image {
	out := make([]image.Image, len(handles))

	workers := l.Workers
	if workers <= 0 {
		workers = 4
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i, h := range handles {
		if h == "" {
			continue
		}
		g.Go(func() error {
			img, err := l.Load(ctx, h)
			if err != nil {
				l.logger().WithFields(logrus.Fields{
					"slot":  i,
					"error": err,
				}).Warn("Image failed to load, leaving slot empty")
				return nil
			}
			out[i] = img
			return nil
		})
	}
	_ = g.Wait()
	return out
}
