// position.go - Pixel or percentage offsets for decorations and labels.
package frame

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Unit tells how a Position resolves against a canvas extent.
type Unit int

const (
	Pixels Unit = iota
	Percent
)

// Position is either an absolute pixel offset or a percentage of the canvas.
type Position struct {
	Value float64
	Unit  Unit
}

// Px builds a pixel position.
func Px(v float64) Position { return Position{Value: v, Unit: Pixels} }

// Pct builds a percentage position.
func Pct(v float64) Position { return Position{Value: v, Unit: Percent} }

// Resolve converts the position to pixels along an axis of the given extent.
func (p Position) Resolve(extent int) float64 {
	if p.Unit == Percent {
		return p.Value / 100 * float64(extent)
	}
	return p.Value
}

func (p Position) String() string {
	s := strconv.FormatFloat(p.Value, 'f', -1, 64)
	if p.Unit == Percent {
		return s + "%"
	}
	return s
}

var (
	positionLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Number", Pattern: `(?:\d+\.\d*|\.\d+|\d+)`},
		{Name: "Unit", Pattern: `%|px`},
		{Name: "Sign", Pattern: `[-+]`},
	})

	positionParser = participle.MustBuild[positionExpr](
		participle.Lexer(positionLexer),
		participle.Elide("Whitespace"),
	)
)

type positionExpr struct {
	Sign  string  `parser:"@Sign?"`
	Value float64 `parser:"@Number"`
	Unit  string  `parser:"@Unit?"`
}

// ParsePosition parses "12%", "40", "40px" or "-5".
func ParsePosition(s string) (Position, error) {
	expr, err := positionParser.ParseString("", strings.TrimSpace(s))
	if err != nil {
		return Position{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	v := expr.Value
	if expr.Sign == "-" {
		v = -v
	}
	if expr.Unit == "%" {
		return Pct(v), nil
	}
	return Px(v), nil
}

// UnmarshalJSON accepts a bare number (pixels) or a position string.
func (p *Position) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Px(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("position must be a number or string: %w", err)
	}
	parsed, err := ParsePosition(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalJSON writes pixels as numbers and percentages as "N%".
func (p Position) MarshalJSON() ([]byte, error) {
	if p.Unit == Percent {
		return json.Marshal(p.String())
	}
	return json.Marshal(p.Value)
}
