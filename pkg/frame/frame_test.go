package frame

import (
	"encoding/json"
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/xob0t/boothframe/pkg/layout"
)

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range All() {
		if f.ID == "" || f.Name == "" {
			t.Errorf("frame missing id or name: %+v", f)
		}
		if seen[f.ID] {
			t.Errorf("duplicate frame id %q", f.ID)
		}
		seen[f.ID] = true
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("nope"); err == nil {
		t.Fatal("expected error")
	}
	if _, ok := Find("film-frame"); !ok {
		t.Fatal("film-frame missing")
	}
}

func TestHolePositionInversion(t *testing.T) {
	film, _ := Find("film-frame")

	portrait := AdjustForLayout(film, layout.Portrait, "4x6")
	if want := []Side{Left, Right}; !reflect.DeepEqual(portrait.HolePositions, want) {
		t.Errorf("portrait holes = %v, want %v", portrait.HolePositions, want)
	}

	landscape := AdjustForLayout(film, layout.Landscape, "4x6")
	if want := []Side{Top, Bottom}; !reflect.DeepEqual(landscape.HolePositions, want) {
		t.Errorf("landscape holes = %v, want %v", landscape.HolePositions, want)
	}

	film.Holes.Position = HolesTopBottom
	if got := AdjustForLayout(film, layout.Landscape, "4x6").HolePositions; !reflect.DeepEqual(got, []Side{Left, Right}) {
		t.Errorf("top-bottom on landscape = %v", got)
	}
}

func TestNarrowShrink(t *testing.T) {
	tests := []struct {
		border, mat         int
		wantBorder, wantMat int
	}{
		{15, 0, 12, 0},
		{10, 0, 8, 0},
		{0, 0, 8, 0},
		{12, 30, 9, 21},
		{12, 20, 9, 15},
	}
	for _, tt := range tests {
		f := Frame{ID: "x", BorderWidth: tt.border, MatWidth: tt.mat}
		got := AdjustForLayout(f, layout.Portrait, layout.NarrowSize)
		if got.BorderWidth != tt.wantBorder || got.MatWidth != tt.wantMat {
			t.Errorf("border %d mat %d: got %d/%d, want %d/%d",
				tt.border, tt.mat, got.BorderWidth, got.MatWidth, tt.wantBorder, tt.wantMat)
		}
	}

	f := Frame{BorderWidth: 15}
	if got := AdjustForLayout(f, layout.Landscape, "4x6"); got.BorderWidth != 15 {
		t.Errorf("non-narrow layout changed border to %d", got.BorderWidth)
	}
}

func TestForLayoutOnlyAdjustsOptedInFrames(t *testing.T) {
	strip, _ := layout.Find("A")

	black, _ := Find("classic-black")
	if got := ForLayout(black, strip); got.BorderWidth != 12 || got.InnerBorderWidth != 2 {
		t.Errorf("classic-black on 6x2 = border %d inner %d, want 12/2", got.BorderWidth, got.InnerBorderWidth)
	}

	matted, _ := Find("gallery-matted")
	if got := ForLayout(matted, strip); got.BorderWidth != 12 || got.MatWidth != 30 {
		t.Errorf("gallery-matted on 6x2 = border %d mat %d, want 12/30", got.BorderWidth, got.MatWidth)
	}

	film, _ := Find("film-frame")
	got := ForLayout(film, strip)
	if got.BorderWidth != 14 {
		t.Errorf("film-frame on 6x2 border = %d, want 14", got.BorderWidth)
	}
	if want := []Side{Left, Right}; !reflect.DeepEqual(got.HolePositions, want) {
		t.Errorf("film-frame holes = %v, want %v", got.HolePositions, want)
	}
}

func TestFilmFrameHoleColors(t *testing.T) {
	film, _ := Find("film-frame")
	if film.Holes.Color != "#ffffff" || film.Holes.BaseColor != "#000000" {
		t.Errorf("film holes = %q on %q, want white on black", film.Holes.Color, film.Holes.BaseColor)
	}
}

func TestAdjustDoesNotMutateCatalog(t *testing.T) {
	film, _ := Find("film-frame")
	adjusted := AdjustForLayout(film, layout.Portrait, layout.NarrowSize)
	adjusted.Holes.Size = 99

	again, _ := Find("film-frame")
	if again.Holes.Size != DefaultHoleSize || len(again.HolePositions) != 0 || again.BorderWidth != 18 {
		t.Fatalf("catalog entry mutated: %+v", again)
	}
}

func TestMatWinsOverInnerBorder(t *testing.T) {
	f := &Frame{BorderWidth: 10, MatWidth: 30, InnerBorderWidth: 3, BorderColor: "#000000"}
	p := BuildPlan(f, "#ffffff", 600, 900)
	if p.Kind != KindMat {
		t.Fatalf("kind = %v, want mat", p.Kind)
	}
	if want := image.Rect(40, 40, 560, 860); p.Inner != want {
		t.Errorf("inner = %v, want %v", p.Inner, want)
	}
}

func TestPlanInnerArea(t *testing.T) {
	wrap, _ := Find("canvas-wrap")
	float, _ := Find("floating")
	classic, _ := Find("classic-black")

	tests := []struct {
		name string
		f    *Frame
		kind Kind
		want image.Rectangle
	}{
		{"no frame", nil, KindPlain, image.Rect(10, 10, 890, 590)},
		{"inner border", &classic, KindInnerBorder, image.Rect(14, 14, 886, 586)},
		{"wrap", &wrap, KindWrap, image.Rect(20, 20, 880, 580)},
		{"float", &float, KindFloat, image.Rect(10, 10, 890, 590)},
	}
	for _, tt := range tests {
		p := BuildPlan(tt.f, "#ffffff", 900, 600)
		if p.Kind != tt.kind || p.Inner != tt.want {
			t.Errorf("%s: kind %v inner %v, want %v %v", tt.name, p.Kind, p.Inner, tt.kind, tt.want)
		}
	}
}

func TestPlanBackground(t *testing.T) {
	p := BuildPlan(nil, "#ff0000", 900, 600)
	if p.Background != (color.RGBA{255, 0, 0, 255}) || p.BorderWidth != DefaultBorderWidth {
		t.Errorf("no-frame plan = %+v", p)
	}

	floating, _ := Find("floating")
	p = BuildPlan(&floating, "#00ff00", 900, 600)
	if p.Background != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("frame without border color should use border color, got %v", p.Background)
	}

	gold, _ := Find("premium-gold")
	p = BuildPlan(&gold, "#00ff00", 900, 600)
	if p.Background != (color.RGBA{0xd4, 0xaf, 0x37, 255}) {
		t.Errorf("frame border color ignored, got %v", p.Background)
	}
}

func TestShadowState(t *testing.T) {
	wrap, _ := Find("canvas-wrap")
	if s, on := BuildPlan(&wrap, "", 900, 600).ShadowActive(); !on || s != WrapShadow {
		t.Errorf("wrap shadow should stay registered, got %v %v", s, on)
	}
	float, _ := Find("floating")
	if _, on := BuildPlan(&float, "", 900, 600).ShadowActive(); on {
		t.Error("float shadow should be cleared")
	}
}

func TestPerforation(t *testing.T) {
	film, _ := Find("film-frame")
	adjusted := AdjustForLayout(film, layout.Portrait, "4x6")
	p := BuildPlan(&adjusted, "#ffffff", 600, 900)

	if p.Ops[0].Type != OpRect || p.Ops[0].Rect != image.Rect(0, 0, 600, 900) {
		t.Fatalf("first op should fill the strip: %+v", p.Ops[0])
	}
	var circles []Op
	for _, op := range p.Ops {
		if op.Type == OpCircle {
			circles = append(circles, op)
		}
	}
	// floor(900/36) = 25 per side
	if len(circles) != 50 {
		t.Fatalf("got %d holes, want 50", len(circles))
	}
	first := circles[0]
	if first.CX != 9 || first.CY != 18 || first.R != 3.5 {
		t.Errorf("first hole = (%v,%v) r=%v", first.CX, first.CY, first.R)
	}
	if last := circles[49]; last.CX != 591 || last.CY != 24*36+18 {
		t.Errorf("last hole = (%v,%v)", last.CX, last.CY)
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in   string
		want Position
	}{
		{"12%", Pct(12)},
		{"40", Px(40)},
		{"40px", Px(40)},
		{" 2.5 % ", Pct(2.5)},
		{"-5", Px(-5)},
	}
	for _, tt := range tests {
		got, err := ParsePosition(tt.in)
		if err != nil {
			t.Errorf("ParsePosition(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePosition(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "%", "abc", "10%%"} {
		if _, err := ParsePosition(bad); err == nil {
			t.Errorf("ParsePosition(%q) should fail", bad)
		}
	}
}

func TestPositionResolveAndJSON(t *testing.T) {
	if got := Pct(50).Resolve(900); got != 450 {
		t.Errorf("50%% of 900 = %v", got)
	}
	if got := Px(12).Resolve(900); got != 12 {
		t.Errorf("12px = %v", got)
	}

	var d Decoration
	if err := json.Unmarshal([]byte(`{"type":"star","x":"25%","y":30,"size":10,"color":"#fff"}`), &d); err != nil {
		t.Fatal(err)
	}
	if d.X != Pct(25) || d.Y != Px(30) {
		t.Errorf("decoded decoration = %+v", d)
	}
	out, err := json.Marshal(d.X)
	if err != nil || string(out) != `"25%"` {
		t.Errorf("marshal = %s, %v", out, err)
	}
}
