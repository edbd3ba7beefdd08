package svgtree

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota
	RoundCap
	SquareCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "ButtCap"
	case RoundCap:
		return "RoundCap"
	case SquareCap:
		return "SquareCap"
	default:
		return "<unknown CapMode>"
	}
}

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	Miter JoinMode = iota
	Round
	Bevel
)

func (s JoinMode) String() string {
	switch s {
	case Miter:
		return "Miter"
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	default:
		return "<unknown JoinMode>"
	}
}

// FillRule selects the algorithm deciding the inside of a path.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

func (f FillRule) String() string {
	switch f {
	case NonZero:
		return "NonZero"
	case EvenOdd:
		return "EvenOdd"
	default:
		return "<unknown FillRule>"
	}
}

// Style holds the paint attributes of one element.
// Nil colors and width mean "not specified": renderers
// fall back to their defaults.
type Style struct {
	FillColor   *color.NRGBA
	StrokeColor *color.NRGBA
	StrokeWidth *float64

	FillAlpha, StrokeAlpha float64

	LineCap  CapMode
	LineJoin JoinMode
	FillRule FillRule
}

// DefaultStyle is the starting point of the style resolution
// of every element. Note that styles are not inherited
// from the ancestors of an element.
var DefaultStyle = Style{
	FillAlpha:   1,
	StrokeAlpha: 1,
	LineCap:     RoundCap,
	LineJoin:    Round,
	FillRule:    NonZero,
}

// styleKeys is the order in which style properties are applied,
// so that the specific opacities override 'opacity'.
var styleKeys = [...]string{
	"fill",
	"stroke",
	"stroke-width",
	"opacity",
	"fill-opacity",
	"stroke-opacity",
	"stroke-linecap",
	"stroke-linejoin",
	"fill-rule",
}

var errUnsupportedColor = errors.New("unsupported color")

// ParseColor parses the colors accepted in fill and stroke
// properties : 'none', #RGB, #RRGGBB, #RRGGBBAA, rgb(r,g,b) and
// rgba(r,g,b,a) with a in [0, 1].
// 'none' returns a nil color and a nil error. Other values
// (named colors, url(), currentColor) return a nil color and an error.
func ParseColor(v string) (*color.NRGBA, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "none":
		return nil, nil
	case strings.HasPrefix(v, "#"):
		return parseHexColor(v[1:])
	case strings.HasPrefix(v, "rgba("):
		args, err := colorArgs(v[len("rgba("):], 4)
		if err != nil {
			return nil, err
		}
		return &color.NRGBA{
			R: clampByte(args[0]),
			G: clampByte(args[1]),
			B: clampByte(args[2]),
			A: clampByte(args[3] * 255),
		}, nil
	case strings.HasPrefix(v, "rgb("):
		args, err := colorArgs(v[len("rgb("):], 3)
		if err != nil {
			return nil, err
		}
		return &color.NRGBA{R: clampByte(args[0]), G: clampByte(args[1]), B: clampByte(args[2]), A: 0xff}, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnsupportedColor, v)
}

func colorArgs(v string, n int) ([]float64, error) {
	body, ok := strings.CutSuffix(strings.TrimSpace(v), ")")
	if !ok {
		return nil, fmt.Errorf("%w: missing closing parenthesis", errUnsupportedColor)
	}
	fields := strings.Split(body, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("%w: expected %d components, got %d", errUnsupportedColor, n, len(fields))
	}
	out := make([]float64, n)
	for i, field := range fields {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func clampByte(f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, f))))
}

func parseHexColor(hex string) (*color.NRGBA, error) {
	switch len(hex) {
	case 3, 6, 8:
	default:
		return nil, fmt.Errorf("%w: #%s", errUnsupportedColor, hex)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: #%s", errUnsupportedColor, hex)
	}
	switch len(hex) {
	case 3: // each nibble is doubled
		return &color.NRGBA{
			R: uint8(n>>8) * 17,
			G: uint8(n>>4&0xf) * 17,
			B: uint8(n&0xf) * 17,
			A: 0xff,
		}, nil
	case 6:
		return &color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
	default:
		return &color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
	}
}

// parseFloat parses a number, allowing a 'px' unit.
func parseFloat(v string) (float64, error) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", v)
	}
	return f, nil
}

func parseOpacity(v string) (float64, error) {
	f, err := parseFloat(v)
	if err != nil {
		return 0, err
	}
	return math.Max(0, math.Min(1, f)), nil
}

// parseStyleString splits `style` into its key/value pairs.
// Pairs without colon are reported to `skip`.
func parseStyleString(style string, skip func(pair string)) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(style, ";") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			skip(pair)
			continue
		}
		out[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return out
}

// applyProperties updates `style` with the properties found in `props`,
// in the order given by `styleKeys`. Invalid values are reported to
// `bad` and otherwise ignored.
func applyProperties(style *Style, props map[string]string, bad func(key, value string, err error)) {
	for _, k := range styleKeys {
		v, ok := props[k]
		if !ok {
			continue
		}
		if err := readStyleAttr(style, k, v); err != nil {
			bad(k, v, err)
		}
	}
}

func readStyleAttr(curStyle *Style, k, v string) error {
	switch k {
	case "fill":
		col, err := ParseColor(v)
		curStyle.FillColor = col
		return err
	case "stroke":
		col, err := ParseColor(v)
		curStyle.StrokeColor = col
		return err
	case "stroke-width":
		width, err := parseFloat(v)
		if err != nil {
			curStyle.StrokeWidth = nil
			return err
		}
		curStyle.StrokeWidth = &width
	case "opacity", "fill-opacity", "stroke-opacity":
		op, err := parseOpacity(v)
		if err != nil {
			return err
		}
		if k != "stroke-opacity" {
			curStyle.FillAlpha = op
		}
		if k != "fill-opacity" {
			curStyle.StrokeAlpha = op
		}
	case "stroke-linecap":
		switch strings.ToLower(v) {
		case "butt":
			curStyle.LineCap = ButtCap
		case "round":
			curStyle.LineCap = RoundCap
		case "square":
			curStyle.LineCap = SquareCap
		default:
			return fmt.Errorf("unsupported line cap %q", v)
		}
	case "stroke-linejoin":
		switch strings.ToLower(v) {
		case "miter":
			curStyle.LineJoin = Miter
		case "round":
			curStyle.LineJoin = Round
		case "bevel":
			curStyle.LineJoin = Bevel
		default:
			return fmt.Errorf("unsupported line join %q", v)
		}
	case "fill-rule":
		switch v {
		case "evenodd":
			curStyle.FillRule = EvenOdd
		case "nonzero":
			curStyle.FillRule = NonZero
		default:
			return fmt.Errorf("unsupported fill rule %q", v)
		}
	}
	return nil
}
