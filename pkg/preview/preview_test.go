package preview

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/xob0t/boothframe/pkg/compositor"
	"github.com/xob0t/boothframe/pkg/frame"
	"github.com/xob0t/boothframe/pkg/generator"
	"github.com/xob0t/boothframe/pkg/layout"
)

func approx(a, b Segment) bool {
	return math.Abs(a.X1-b.X1) < eps && math.Abs(a.Y1-b.Y1) < eps &&
		math.Abs(a.X2-b.X2) < eps && math.Abs(a.Y2-b.Y2) < eps
}

func TestDividers(t *testing.T) {
	tests := map[string][]Segment{
		"A": {{0, 0.33, 0.5, 0.33}, {0, 0.66, 0.5, 0.66}},
		"B": {{0, 0.25, 0.5, 0.25}, {0, 0.5, 0.5, 0.5}, {0, 0.75, 0.5, 0.75}},
		"C": {{0.5, 0.25, 1, 0.25}, {0.5, 0.5, 1, 0.5}, {0.5, 0.75, 1, 0.75}},
		"E": {{0, 0.5, 1, 0.5}, {0.5, 0, 0.5, 1}},
		"F": {{0, 0.5, 1, 0.5}, {0.5, 0, 0.5, 0.5}},
		"G": {{0.65, 0.5, 1, 0.5}, {0.65, 0, 0.65, 1}},
		"H": {{0, 0.65, 1, 0.65}, {0.5, 0, 0.5, 0.65}},
		"I": {{0.65, 0, 0.65, 1}},
		"J": {{0, 0.4, 1, 0.4}},
		"K": {{0, 0.5, 1, 0.5}},
		"L": nil,
	}
	for id, want := range tests {
		l, ok := layout.Find(id)
		if !ok {
			t.Fatalf("layout %s missing", id)
		}
		got := Dividers(l)
		if len(got) != len(want) {
			t.Errorf("layout %s: got %v, want %v", id, got, want)
			continue
		}
		for i := range want {
			if !approx(got[i], want[i]) {
				t.Errorf("layout %s segment %d: got %+v, want %+v", id, i, got[i], want[i])
			}
		}
	}
}

type stubLoader map[string]image.Image

func (s stubLoader) LoadAll(_ context.Context, handles []string) []image.Image {
	out := make([]image.Image, len(handles))
	for i, h := range handles {
		out[i] = s[h]
	}
	return out
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	logger, _ := test.NewNullLogger()
	r, err := NewRenderer(stubLoader{
		"red": generator.NewSolidImage(20, 20, color.RGBA{255, 0, 0, 255}),
	}, "Booth", logger)
	if err != nil {
		t.Fatalf("NewRenderer() failed: %v", err)
	}
	r.Now = func() time.Time { return time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC) }
	return r
}

func TestRenderSVG(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	err := r.Render(context.Background(), &buf, compositor.Request{
		LayoutID:    "E",
		Images:      []string{"red", "", "red"},
		BorderColor: "#ff0000",
		FrameID:     "gallery-matted",
		Filter:      "sepia",
	})
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an SVG document: %.200s", out)
	}
	if !strings.Contains(out, "<image") {
		t.Error("loaded photos should be embedded as images")
	}
}

func TestRenderWithoutImages(t *testing.T) {
	r := newRenderer(t)
	r.Loader = nil
	var buf bytes.Buffer
	if err := r.Render(context.Background(), &buf, compositor.Request{LayoutID: "A"}); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if strings.Contains(buf.String(), "<image") {
		t.Error("placeholders should not embed images")
	}
}

func TestRenderErrors(t *testing.T) {
	r := newRenderer(t)
	var buf bytes.Buffer
	if err := r.Render(context.Background(), &buf, compositor.Request{LayoutID: "Z"}); !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("unknown layout: err = %v", err)
	}
	if err := r.Render(context.Background(), &buf, compositor.Request{LayoutID: "A", FrameID: "nope"}); !errors.Is(err, frame.ErrUnknownFrame) {
		t.Errorf("unknown frame: err = %v", err)
	}
}
