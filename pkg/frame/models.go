// Package frame provides the decorative frame catalog, the per-layout frame
// adjustment and the frame geometry shared by the raster and preview paths.
package frame

// ── Frame types ──

// Frame is a named border treatment. Optional parts are nil or zero when absent.
type Frame struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BorderWidth int    `json:"borderWidth"` // reference pixels; 0 = default border width
	BorderColor string `json:"borderColor,omitempty"`

	InnerBorderWidth int    `json:"innerBorderWidth,omitempty"`
	InnerBorderColor string `json:"innerBorderColor,omitempty"`

	MatWidth int    `json:"matWidth,omitempty"`
	MatColor string `json:"matColor,omitempty"`

	EdgeEffect  *EdgeEffect  `json:"edgeEffect,omitempty"`
	FloatEffect *FloatEffect `json:"floatEffect,omitempty"`

	Holes                *Holes `json:"holes,omitempty"`
	AdjustForOrientation bool   `json:"adjustForOrientation,omitempty"`
	HolePositions        []Side `json:"holePositions,omitempty"` // set by AdjustForLayout

	Decorations []Decoration `json:"decorations,omitempty"`

	BottomText string      `json:"bottomText,omitempty"`
	TextLabels []TextLabel `json:"textLabels,omitempty"`
	TextStyle  *TextStyle  `json:"textStyle,omitempty"`
}

// EdgeEffect paints gallery-wrap bands around the canvas.
type EdgeEffect struct {
	Type  string `json:"type"` // "wrap"
	Depth int    `json:"depth"`
	Color string `json:"color"`
}

// FloatEffect lifts the photo area off a background with a drop shadow.
type FloatEffect struct {
	Distance        int    `json:"distance"`
	BackgroundColor string `json:"backgroundColor"`
}

// Holes describes a film-strip perforation.
type Holes struct {
	Position  string `json:"position"` // "sides" or "top-bottom"
	Size      int    `json:"size"`     // diameter
	Spacing   int    `json:"spacing"`
	Color     string `json:"color"`
	BaseColor string `json:"baseColor,omitempty"` // strip color under the holes
}

// Side names one canvas edge.
type Side string

const (
	Left   Side = "left"
	Right  Side = "right"
	Top    Side = "top"
	Bottom Side = "bottom"
)

// Hole layouts as declared in the catalog.
const (
	HolesSides     = "sides"
	HolesTopBottom = "top-bottom"
)

// DecorationType is the shape painted for a decoration.
type DecorationType string

const (
	Star   DecorationType = "star"
	Circle DecorationType = "circle"
)

// Decoration is a small ornament painted on top of the frame background.
type Decoration struct {
	Type  DecorationType `json:"type"`
	X     Position       `json:"x"`
	Y     Position       `json:"y"`
	Size  float64        `json:"size"`
	Color string         `json:"color"`
}

// TextLabel is a caption line placed at a vertical position.
type TextLabel struct {
	Text  string   `json:"text"`
	Y     Position `json:"y"`
	Color string   `json:"color,omitempty"`
}

// TextStyle applies to bottom text and labels.
type TextStyle struct {
	FontSize  float64 `json:"fontSize,omitempty"`
	Color     string  `json:"color,omitempty"`
	TextAlign string  `json:"textAlign,omitempty"` // "center" or right-aligned otherwise
}

// ── Defaults (reference pixels) ──

const (
	DefaultBorderWidth   = 10
	DefaultWrapDepth     = 20
	DefaultFloatDistance = 10
	DefaultHoleSize      = 7
	DefaultHoleSpacing   = 36

	DefaultMatColor         = "#f5f5f5"
	DefaultInnerBorderColor = "#ffffff"
	DefaultWrapColor        = "#FAFAFA"
	DefaultFloatBackground  = "#ffffff"
	DefaultHoleColor        = "#ffffff"
	DefaultHoleBaseColor    = "#000000"
	CoreColor               = "#ffffff"
)

// EffectiveBorderWidth returns the border width with the default applied.
func (f *Frame) EffectiveBorderWidth() int {
	if f == nil || f.BorderWidth <= 0 {
		return DefaultBorderWidth
	}
	return f.BorderWidth
}

// Clone returns a deep copy so adjusted frames never alias catalog slices.
func (f Frame) Clone() Frame {
	if f.EdgeEffect != nil {
		e := *f.EdgeEffect
		f.EdgeEffect = &e
	}
	if f.FloatEffect != nil {
		fe := *f.FloatEffect
		f.FloatEffect = &fe
	}
	if f.Holes != nil {
		h := *f.Holes
		f.Holes = &h
	}
	if f.TextStyle != nil {
		s := *f.TextStyle
		f.TextStyle = &s
	}
	f.HolePositions = append([]Side(nil), f.HolePositions...)
	f.Decorations = append([]Decoration(nil), f.Decorations...)
	f.TextLabels = append([]TextLabel(nil), f.TextLabels...)
	return f
}
