package svgpath

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrParamMismatch  = errors.New("param mismatch")
	ErrCommandUnknown = errors.New("unknown command")
	ErrBadArcFlag     = errors.New("bad arc flag")
	ErrNoMoveTo       = errors.New("path data must start with a moveto")
)

// ErrPathData wraps the errors returned when compiling
// invalid path data.
type ErrPathData struct {
	Command byte // the command being processed, or 0
	Err     error
}

func (e ErrPathData) Error() string {
	if e.Command == 0 {
		return fmt.Sprintf("invalid path data: %s", e.Err)
	}
	return fmt.Sprintf("invalid path data (command %c): %s", e.Command, e.Err)
}

func (e ErrPathData) Unwrap() error { return e.Err }

// number of arguments expected by each command
var argCounts = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

// pathCursor is used to compile the content of
// a 'd' attribute.
type pathCursor struct {
	path             Path
	placeX, placeY   float64 // current point
	startX, startY   float64 // start of the current subpath
	cntlPtX, cntlPtY float64 // last control point, for S and T
	points           []float64
	lastKey          byte
	inPath           bool // false after a Z, until the next command
}

// CompilePath parses the SVG path data `svgPath`.
// An empty string gives an empty path.
// On error, the operations compiled so far are returned along with the error.
func CompilePath(svgPath string) (Path, error) {
	var c pathCursor
	err := c.compilePath(svgPath)
	return c.path, err
}

func isCommand(b byte) bool {
	_, ok := argCounts[upper(b)]
	return ok
}

func upper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func (c *pathCursor) compilePath(svgPath string) error {
	lastIndex := -1
	for i := 0; i < len(svgPath); i++ {
		b := svgPath[i]
		if !isLetter(b) || b == 'e' || b == 'E' {
			if lastIndex == -1 && !isSpace(b) {
				return ErrPathData{Err: ErrNoMoveTo}
			}
			continue
		}
		if !isCommand(b) {
			return ErrPathData{Command: b, Err: ErrCommandUnknown}
		}
		if lastIndex != -1 {
			if err := c.addSeg(svgPath[lastIndex:i]); err != nil {
				return err
			}
		}
		lastIndex = i
	}
	if lastIndex != -1 {
		if err := c.addSeg(svgPath[lastIndex:]); err != nil {
			return err
		}
	}
	return nil
}

func (c *pathCursor) reflectControlQuad() {
	switch c.lastKey {
	case 'q', 'Q', 'T', 't':
		c.cntlPtX, c.cntlPtY = 2*c.placeX-c.cntlPtX, 2*c.placeY-c.cntlPtY
	default:
		c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
	}
}

func (c *pathCursor) reflectControlCube() {
	switch c.lastKey {
	case 'c', 'C', 's', 'S':
		c.cntlPtX, c.cntlPtY = 2*c.placeX-c.cntlPtX, 2*c.placeY-c.cntlPtY
	default:
		c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
	}
}

// ensureStart reopens a subpath at the last start point,
// when drawing after a closepath.
func (c *pathCursor) ensureStart() {
	if !c.inPath {
		c.path.Start(Point{c.placeX, c.placeY})
		c.inPath = true
	}
}

func (c *pathCursor) addSeg(segString string) error {
	k := segString[0]
	key := upper(k)
	if c.lastKey == 0 && key != 'M' {
		return ErrPathData{Command: k, Err: ErrNoMoveTo}
	}
	var err error
	c.points, err = readNumbers(c.points[:0], segString[1:], key == 'A')
	if err != nil {
		return ErrPathData{Command: k, Err: err}
	}
	l := len(c.points)
	n := argCounts[key]
	if n == 0 {
		if l != 0 {
			return ErrPathData{Command: k, Err: ErrParamMismatch}
		}
	} else if l == 0 || l%n != 0 {
		return ErrPathData{Command: k, Err: ErrParamMismatch}
	}

	rel := k != key
	var offX, offY float64
	if rel {
		offX, offY = c.placeX, c.placeY
	}
	switch key {
	case 'Z':
		c.path.Stop(true)
		c.placeX, c.placeY = c.startX, c.startY
		c.inPath = false
	case 'M':
		c.placeX, c.placeY = c.points[0]+offX, c.points[1]+offY
		c.startX, c.startY = c.placeX, c.placeY
		c.path.Start(Point{c.placeX, c.placeY})
		c.inPath = true
		// following pairs are implicit linetos
		for i := 2; i < l; i += 2 {
			if rel {
				offX, offY = c.placeX, c.placeY
			}
			c.placeX, c.placeY = c.points[i]+offX, c.points[i+1]+offY
			c.path.Line(Point{c.placeX, c.placeY})
		}
	case 'L':
		c.ensureStart()
		for i := 0; i < l; i += 2 {
			if rel {
				offX, offY = c.placeX, c.placeY
			}
			c.placeX, c.placeY = c.points[i]+offX, c.points[i+1]+offY
			c.path.Line(Point{c.placeX, c.placeY})
		}
	case 'H':
		c.ensureStart()
		for _, x := range c.points {
			if rel {
				c.placeX += x
			} else {
				c.placeX = x
			}
			c.path.Line(Point{c.placeX, c.placeY})
		}
	case 'V':
		c.ensureStart()
		for _, y := range c.points {
			if rel {
				c.placeY += y
			} else {
				c.placeY = y
			}
			c.path.Line(Point{c.placeX, c.placeY})
		}
	case 'C':
		c.ensureStart()
		for i := 0; i < l; i += 6 {
			if rel {
				offX, offY = c.placeX, c.placeY
			}
			p1 := Point{c.points[i] + offX, c.points[i+1] + offY}
			c.cntlPtX, c.cntlPtY = c.points[i+2]+offX, c.points[i+3]+offY
			c.placeX, c.placeY = c.points[i+4]+offX, c.points[i+5]+offY
			c.path.CubeBezier(p1, Point{c.cntlPtX, c.cntlPtY}, Point{c.placeX, c.placeY})
		}
	case 'S':
		c.ensureStart()
		for i := 0; i < l; i += 4 {
			if rel {
				offX, offY = c.placeX, c.placeY
			}
			c.reflectControlCube()
			p1 := Point{c.cntlPtX, c.cntlPtY}
			c.cntlPtX, c.cntlPtY = c.points[i]+offX, c.points[i+1]+offY
			c.placeX, c.placeY = c.points[i+2]+offX, c.points[i+3]+offY
			c.path.CubeBezier(p1, Point{c.cntlPtX, c.cntlPtY}, Point{c.placeX, c.placeY})
			c.lastKey = k
		}
	case 'Q':
		c.ensureStart()
		for i := 0; i < l; i += 4 {
			if rel {
				offX, offY = c.placeX, c.placeY
			}
			c.cntlPtX, c.cntlPtY = c.points[i]+offX, c.points[i+1]+offY
			c.placeX, c.placeY = c.points[i+2]+offX, c.points[i+3]+offY
			c.path.QuadBezier(Point{c.cntlPtX, c.cntlPtY}, Point{c.placeX, c.placeY})
		}
	case 'T':
		c.ensureStart()
		for i := 0; i < l; i += 2 {
			if rel {
				offX, offY = c.placeX, c.placeY
			}
			c.reflectControlQuad()
			c.placeX, c.placeY = c.points[i]+offX, c.points[i+1]+offY
			c.path.QuadBezier(Point{c.cntlPtX, c.cntlPtY}, Point{c.placeX, c.placeY})
			c.lastKey = k
		}
	case 'A':
		c.ensureStart()
		for i := 0; i < l; i += 7 {
			var args [7]float64
			copy(args[:], c.points[i:i+7])
			if rel {
				args[5] += c.placeX
				args[6] += c.placeY
			}
			end := c.path.addArc(args, Point{c.placeX, c.placeY})
			c.placeX, c.placeY = end.X, end.Y
		}
	}
	c.lastKey = k
	return nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// ReadNumbers parses a list of numbers separated by whitespace
// and/or a single comma, as found in SVG attributes such as
// 'points' or 'viewBox'. Numbers may also be juxtaposed when the
// grammar is unambiguous, as in "1-2" or "0.5.5".
func ReadNumbers(s string) ([]float64, error) {
	return readNumbers(nil, s, false)
}

// readNumbers appends the numbers found in `s` to dst.
// If `arc` is true, the flags of the arc arguments are read as
// single '0' or '1' characters, so that "a1 1 0 00 1 1" is valid.
func readNumbers(dst []float64, s string, arc bool) ([]float64, error) {
	i := 0
	skipSep := func() {
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i < len(s) && s[i] == ',' {
			i++
			for i < len(s) && isSpace(s[i]) {
				i++
			}
		}
	}
	skipSep()
	for i < len(s) {
		if arc {
			if pos := len(dst) % 7; pos == 3 || pos == 4 {
				switch s[i] {
				case '0':
					dst = append(dst, 0)
				case '1':
					dst = append(dst, 1)
				default:
					return dst, ErrBadArcFlag
				}
				i++
				skipSep()
				continue
			}
		}
		start := i
		if s[i] == '+' || s[i] == '-' {
			i++
		}
		digits := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
		if i < len(s) && s[i] == '.' {
			i++
			for i < len(s) && isDigit(s[i]) {
				i++
				digits++
			}
		}
		if digits == 0 {
			return dst, fmt.Errorf("invalid number at %q", s[start:])
		}
		if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
			j := i + 1
			if j < len(s) && (s[j] == '+' || s[j] == '-') {
				j++
			}
			if j < len(s) && isDigit(s[j]) {
				for j < len(s) && isDigit(s[j]) {
					j++
				}
				i = j
			}
		}
		f, err := strconv.ParseFloat(s[start:i], 64)
		if err != nil {
			return dst, err
		}
		dst = append(dst, f)
		skipSep()
	}
	return dst, nil
}
