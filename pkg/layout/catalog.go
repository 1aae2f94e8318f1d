// catalog.go - The built-in layouts A through L.
package layout

// catalog is built once and never mutated; lookups hand out copies.
var catalog = []Layout{
	{
		ID: "A", Size: NarrowSize, ImageCount: 3, Orientation: Portrait,
		Positions: []Rect{
			{X: 0, Y: 0, Width: 0.5, Height: 0.33},
			{X: 0, Y: 0.33, Width: 0.5, Height: 0.33},
			{X: 0, Y: 0.66, Width: 0.5, Height: 0.34},
		},
	},
	{
		ID: "B", Size: NarrowSize, ImageCount: 4, Orientation: Portrait,
		Positions: []Rect{
			{X: 0, Y: 0, Width: 0.5, Height: 0.25},
			{X: 0, Y: 0.25, Width: 0.5, Height: 0.25},
			{X: 0, Y: 0.5, Width: 0.5, Height: 0.25},
			{X: 0, Y: 0.75, Width: 0.5, Height: 0.25},
		},
	},
	{
		ID: "C", Size: NarrowSize, ImageCount: 4, Orientation: Portrait,
		Positions: []Rect{
			{X: 0.5, Y: 0, Width: 0.5, Height: 0.25},
			{X: 0.5, Y: 0.25, Width: 0.5, Height: 0.25},
			{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.25},
			{X: 0.5, Y: 0.75, Width: 0.5, Height: 0.25},
		},
	},
	{
		ID: "D", Size: NarrowSize, ImageCount: 4, Orientation: Portrait,
		Positions: []Rect{
			{X: 0, Y: 0, Width: 0.5, Height: 0.25},
			{X: 0, Y: 0.25, Width: 0.5, Height: 0.25},
			{X: 0, Y: 0.5, Width: 0.5, Height: 0.25},
			{X: 0, Y: 0.75, Width: 0.5, Height: 0.25},
		},
	},
	{
		ID: "E", Size: "4x6", ImageCount: 4, Orientation: Landscape,
		Positions: []Rect{
			{X: 0, Y: 0, Width: 0.5, Height: 0.5},
			{X: 0.5, Y: 0, Width: 0.5, Height: 0.5},
			{X: 0, Y: 0.5, Width: 0.5, Height: 0.5},
			{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5},
		},
	},
	{
		ID: "F", Size: "4x6", ImageCount: 3, Orientation: Landscape,
		Positions: []Rect{
			{X: 0, Y: 0, Width: 0.5, Height: 0.5},
			{X: 0.5, Y: 0, Width: 0.5, Height: 0.5},
			{X: 0, Y: 0.5, Width: 1, Height: 0.5},
		},
	},
	{
		ID: "G", Size: "4x6", ImageCount: 3, Orientation: Landscape,
		Positions: []Rect{
			{X: 0, Y: 0, Width: 0.65, Height: 1},
			{X: 0.65, Y: 0, Width: 0.35, Height: 0.5},
			{X: 0.65, Y: 0.5, Width: 0.35, Height: 0.5},
		},
	},
	{
		ID: "H", Size: "4x6", ImageCount: 3, Orientation: Landscape,
		Positions: []Rect{
			{X: 0, Y: 0, Width: 0.5, Height: 0.65},
			{X: 0.5, Y: 0, Width: 0.5, Height: 0.65},
			{X: 0, Y: 0.65, Width: 1, Height: 0.35},
		},
	},
	{
		ID: "I", Size: "4x6", ImageCount: 2, Orientation: Landscape,
		Positions: []Rect{
			{X: 0, Y: 0, Width: 0.65, Height: 1},
			{X: 0.65, Y: 0, Width: 0.35, Height: 1},
		},
	},
	{
		ID: "J", Size: "4x6", ImageCount: 2, Orientation: Landscape,
		Positions: []Rect{
			{X: 0, Y: 0, Width: 1, Height: 0.4},
			{X: 0, Y: 0.4, Width: 1, Height: 0.6},
		},
	},
	{
		ID: "K", Size: "4x6", ImageCount: 2, Orientation: Portrait,
		Positions: []Rect{
			{X: 0, Y: 0, Width: 1, Height: 0.5},
			{X: 0, Y: 0.5, Width: 1, Height: 0.5},
		},
	},
	{
		ID: "L", Size: "4x6", ImageCount: 1, Orientation: Landscape,
		Positions: []Rect{
			{X: 0, Y: 0, Width: 1, Height: 1},
		},
	},
}

// index maps layout ids to catalog offsets.
var index = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, l := range catalog {
		m[l.ID] = i
	}
	return m
}()

// Find looks up a layout by id. A missing id is an ordinary outcome.
func Find(id string) (Layout, bool) {
	i, ok := index[id]
	if !ok {
		return Layout{}, false
	}
	return clone(catalog[i]), true
}

// All returns every catalog layout in declaration order.
func All() []Layout {
	out := make([]Layout, len(catalog))
	for i, l := range catalog {
		out[i] = clone(l)
	}
	return out
}

func clone(l Layout) Layout {
	l.Positions = append([]Rect(nil), l.Positions...)
	return l
}
