// catalog.go - The built-in frames and lookup.
package frame

import (
	"errors"
	"fmt"
)

// ErrUnknownFrame is returned when a frame id is not in the catalog.
var ErrUnknownFrame = errors.New("unknown frame")

// bordered builds a frame with an optional inner border ring.
func bordered(id, name string, width int, color string, innerWidth int, innerColor string) Frame {
	return Frame{
		ID:               id,
		Name:             name,
		BorderWidth:      width,
		BorderColor:      color,
		InnerBorderWidth: innerWidth,
		InnerBorderColor: innerColor,
	}
}

var catalog = []Frame{
	bordered("classic-black", "Classic Black", 12, "#000000", 2, "#ffffff"),
	bordered("minimalist-white", "Minimalist White", 15, "#ffffff", 0, ""),
	bordered("premium-gold", "Premium Gold", 15, "#d4af37", 3, "#ffffff"),
	{
		ID:          "film-frame",
		Name:        "Professional Film",
		BorderWidth: 18,
		BorderColor: "#1a1a1a",
		// White holes punched in a black strip. Black holes on the black
		// strip would not show at all.
		Holes: &Holes{
			Position:  HolesSides,
			Size:      DefaultHoleSize,
			Spacing:   DefaultHoleSpacing,
			Color:     DefaultHoleColor,
			BaseColor: DefaultHoleBaseColor,
		},
		AdjustForOrientation: true,
	},
	{
		ID:          "gallery-matted",
		Name:        "Gallery Matted",
		BorderWidth: 12,
		BorderColor: "#2c2c2c",
		MatWidth:    30,
		MatColor:    "#f5f5f5",
	},
	bordered("natural-wood", "Natural Wood", 18, "#8B4513", 2, "#f5f5f5"),
	bordered("modern-silver", "Modern Silver", 10, "#C0C0C0", 0, ""),
	bordered("brushed-metal", "Brushed Metal", 14, "#7A7A7A", 0, ""),
	{
		ID:          "canvas-wrap",
		Name:        "Canvas Wrap",
		BorderWidth: 20,
		BorderColor: "#FAFAFA",
		EdgeEffect:  &EdgeEffect{Type: "wrap", Depth: DefaultWrapDepth, Color: DefaultWrapColor},
	},
	{
		ID:          "floating",
		Name:        "Floating Frame",
		FloatEffect: &FloatEffect{Distance: DefaultFloatDistance, BackgroundColor: DefaultFloatBackground},
	},
	bordered("christmas-traditional", "Traditional Christmas", 16, "#aa0505", 3, "#ffffff"),
	bordered("christmas-snow", "Christmas Snowflakes", 14, "#2c4770", 2, "#ffffff"),
	bordered("christmas-holly", "Christmas Holly", 15, "#0a5828", 2, "#ffffff"),
	bordered("valentines-hearts", "Valentine Hearts", 15, "#e91e63", 2, "#ffffff"),
	bordered("valentines-roses", "Valentine Roses", 16, "#9c27b0", 3, "#f8bbd0"),
	bordered("valentines-lace", "Valentine Lace", 14, "#d81b60", 2, "#ffffff"),
	bordered("easter-eggs", "Easter Eggs", 14, "#8bc34a", 2, "#ffffff"),
	bordered("easter-flowers", "Easter Flowers", 15, "#9575cd", 2, "#ffffff"),
	bordered("easter-bunnies", "Easter Bunnies", 16, "#ffb74d", 3, "#ffffff"),
	bordered("minimalist-dots", "Minimalist Dots", 12, "#eceff1", 0, ""),
	bordered("minimalist-lines", "Minimalist Lines", 14, "#cfd8dc", 0, ""),
	bordered("minimalist-grid", "Minimalist Grid", 16, "#e0e0e0", 0, ""),
	bordered("halloween-webs", "Halloween Webs", 16, "#37474f", 3, "#ff9800"),
	bordered("halloween-pumpkins", "Halloween Pumpkins", 16, "#ff5722", 3, "#212121"),
	bordered("halloween-bats", "Halloween Bats", 15, "#6a1b9a", 2, "#b388ff"),
	bordered("birthday-confetti", "Birthday Confetti", 16, "#fdd835", 3, "#ffffff"),
	bordered("birthday-balloons", "Birthday Balloons", 14, "#4fc3f7", 2, "#ffffff"),
	bordered("birthday-streamers", "Birthday Streamers", 15, "#7e57c2", 2, "#ffffff"),
	{
		ID:          "starry-night",
		Name:        "Starry Night",
		BorderWidth: 24,
		BorderColor: "#1b2a4a",
		Decorations: []Decoration{
			{Type: Star, X: Px(12), Y: Px(12), Size: 14, Color: "#ffd54f"},
			{Type: Star, X: Pct(50), Y: Px(12), Size: 14, Color: "#ffd54f"},
			{Type: Star, X: Pct(98), Y: Px(12), Size: 14, Color: "#ffd54f"},
			{Type: Circle, X: Pct(25), Y: Px(12), Size: 6, Color: "#ffffff"},
			{Type: Circle, X: Pct(75), Y: Px(12), Size: 6, Color: "#ffffff"},
		},
	},
	{
		ID:          "party-caption",
		Name:        "Party Caption",
		BorderWidth: 72,
		BorderColor: "#ffffff",
		BottomText:  "Thanks for coming!",
		TextLabels: []TextLabel{
			{Text: "PARTY TIME", Y: Px(46), Color: "#e91e63"},
		},
		TextStyle: &TextStyle{FontSize: 20, Color: "#333333", TextAlign: "center"},
	},
}

var index = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, f := range catalog {
		m[f.ID] = i
	}
	return m
}()

// Find looks up a frame by id. The returned frame is a deep copy.
func Find(id string) (Frame, bool) {
	i, ok := index[id]
	if !ok {
		return Frame{}, false
	}
	return catalog[i].Clone(), true
}

// Lookup is Find with an ErrUnknownFrame error for missing ids.
func Lookup(id string) (Frame, error) {
	f, ok := Find(id)
	if !ok {
		return Frame{}, fmt.Errorf("frame %q: %w", id, ErrUnknownFrame)
	}
	return f, nil
}

// All returns every frame in catalog order.
func All() []Frame {
	out := make([]Frame, len(catalog))
	for i, f := range catalog {
		out[i] = f.Clone()
	}
	return out
}
