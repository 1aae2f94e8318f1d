package source

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/xob0t/boothframe/pkg/store"
	"github.com/xob0t/boothframe/pkg/store/memory"
)

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func dataURI(b []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(b)
}

func TestLoadAllKeepsSlotOrder(t *testing.T) {
	ctx := context.Background()
	assets := memory.NewStore()
	id, err := assets.Put(ctx, &store.Asset{MediaType: "image/png", Data: pngBytes(t, 3, 3, color.White)})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "photo.png")
	if err := os.WriteFile(path, pngBytes(t, 5, 2, color.Black), 0644); err != nil {
		t.Fatal(err)
	}

	l := &Loader{Assets: assets, AllowFiles: true, Workers: 2}
	got := l.LoadAll(ctx, []string{
		dataURI(pngBytes(t, 4, 4, color.Black)),
		"",
		AssetScheme + id,
		"data:image/png;base64,bm90IGFuIGltYWdl",
		path,
		filepath.Join(t.TempDir(), "missing.png"),
	})

	if len(got) != 6 {
		t.Fatalf("LoadAll returned %d slots", len(got))
	}
	wantSizes := []image.Point{{4, 4}, {}, {3, 3}, {}, {5, 2}, {}}
	for i, want := range wantSizes {
		if want == (image.Point{}) {
			if got[i] != nil {
				t.Errorf("slot %d should be empty", i)
			}
			continue
		}
		if got[i] == nil {
			t.Errorf("slot %d is empty", i)
			continue
		}
		if size := got[i].Bounds().Size(); size != want {
			t.Errorf("slot %d size = %v, want %v", i, size, want)
		}
	}
}

func TestFilesDisabled(t *testing.T) {
	l := &Loader{}
	if _, err := l.Load(context.Background(), "/etc/passwd"); !errors.Is(err, ErrFilesDisabled) {
		t.Fatalf("err = %v, want ErrFilesDisabled", err)
	}
}

func TestUnknownAsset(t *testing.T) {
	l := &Loader{Assets: memory.NewStore()}
	if _, err := l.Load(context.Background(), AssetScheme+store.NewID()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDecodeDataURI(t *testing.T) {
	got, err := decodeDataURI("data:text/plain,hello%20world")
	if err != nil || string(got) != "hello world" {
		t.Errorf("plain data URI = %q, %v", got, err)
	}
	if _, err := decodeDataURI("data:image/png;base64"); err == nil {
		t.Error("expected error for missing comma")
	}
	if _, err := decodeDataURI("data:image/png;base64,@@@"); err == nil {
		t.Error("expected error for bad base64")
	}
}
