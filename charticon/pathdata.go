package charticon

import (
	"fmt"
	"strconv"

	"github.com/truesight/sprintcharts/chartpath"
)

// pathCursor reads the commands of a path "d" attribute.
// Supported commands are M, L, H, V, C, S, Q, T and Z,
// in absolute and relative forms.
type pathCursor struct {
	path *chartpath.Path

	x, y           float64 // current point
	startX, startY float64 // start of the current sub-path
	ctrlX, ctrlY   float64 // last control point, for smooth curves
	lastCmd        byte
	inPath, closed bool
}

var argCounts = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'Z': 0,
}

func isSpace(b byte) bool { return b == ' ' || b == ',' || b == '\n' || b == '\t' || b == '\r' }

func isCommand(b byte) bool {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	_, ok := argCounts[b]
	return ok || b == 'A'
}

// readNumber reads a float at the start of s, returning
// the number of bytes consumed.
func readNumber(s string) (float64, int, error) {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	seenDot, seenDigit := false, false
	for ; i < len(s); i++ {
		b := s[i]
		if b >= '0' && b <= '9' {
			seenDigit = true
		} else if b == '.' && !seenDot {
			seenDot = true
		} else {
			break
		}
	}
	if i < len(s) && seenDigit && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '-' || s[j] == '+') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			i = j
		}
	}
	if !seenDigit {
		return 0, 0, fmt.Errorf("expected a number at %q", s)
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	return f, i, err
}

func (c *iconCursor) compilePath(svgPath string) error {
	pc := pathCursor{path: &c.path}
	var (
		cmd  byte
		args []float64
	)
	for i := 0; i < len(svgPath); {
		b := svgPath[i]
		switch {
		case isSpace(b):
			i++
		case isCommand(b):
			if cmd != 0 {
				if err := pc.flush(cmd, args); err != nil {
					return err
				}
			}
			cmd, args = b, args[:0]
			i++
		default:
			if cmd == 0 {
				return fmt.Errorf("path data must start with a command: %q", svgPath)
			}
			f, n, err := readNumber(svgPath[i:])
			if err != nil {
				return err
			}
			args = append(args, f)
			i += n
		}
	}
	if cmd != 0 {
		if err := pc.flush(cmd, args); err != nil {
			return err
		}
	}
	return nil
}

// flush runs cmd for every group of arguments
func (pc *pathCursor) flush(cmd byte, args []float64) error {
	upper := cmd
	rel := cmd >= 'a' && cmd <= 'z'
	if rel {
		upper -= 'a' - 'A'
	}
	if upper == 'A' {
		return fmt.Errorf("unsupported path command %c", cmd)
	}
	n := argCounts[upper]
	if n == 0 {
		if len(args) != 0 {
			return fmt.Errorf("unexpected arguments for %c", cmd)
		}
		return pc.run(upper, rel, nil)
	}
	if len(args) == 0 || len(args)%n != 0 {
		return fmt.Errorf("path command %c expects a multiple of %d arguments, got %d", cmd, n, len(args))
	}
	for i := 0; i < len(args); i += n {
		c := upper
		if c == 'M' && i > 0 { // implicit line to
			c = 'L'
		}
		if err := pc.run(c, rel, args[i:i+n]); err != nil {
			return err
		}
	}
	return nil
}

func (pc *pathCursor) abs(rel bool, x, y float64) (float64, float64) {
	if rel {
		return pc.x + x, pc.y + y
	}
	return x, y
}

// reflected control point for smooth curves
func (pc *pathCursor) reflect(prev ...byte) (float64, float64) {
	for _, p := range prev {
		if pc.lastCmd == p {
			return 2*pc.x - pc.ctrlX, 2*pc.y - pc.ctrlY
		}
	}
	return pc.x, pc.y
}

func (pc *pathCursor) run(cmd byte, rel bool, a []float64) error {
	p := pc.path
	if cmd != 'M' && !pc.inPath {
		return fmt.Errorf("path command %c before any move to", cmd)
	}
	if cmd != 'M' && pc.closed { // drawing goes on from the start of the closed sub-path
		p.Start(chartpath.ToFixedP(pc.x, pc.y))
		pc.closed = false
	}
	switch cmd {
	case 'M':
		pc.x, pc.y = pc.abs(rel, a[0], a[1])
		p.Start(chartpath.ToFixedP(pc.x, pc.y))
		pc.startX, pc.startY = pc.x, pc.y
		pc.inPath, pc.closed = true, false
	case 'L':
		pc.x, pc.y = pc.abs(rel, a[0], a[1])
		p.Line(chartpath.ToFixedP(pc.x, pc.y))
	case 'H':
		if rel {
			pc.x += a[0]
		} else {
			pc.x = a[0]
		}
		p.Line(chartpath.ToFixedP(pc.x, pc.y))
	case 'V':
		if rel {
			pc.y += a[0]
		} else {
			pc.y = a[0]
		}
		p.Line(chartpath.ToFixedP(pc.x, pc.y))
	case 'C', 'S':
		var c1x, c1y float64
		if cmd == 'C' {
			c1x, c1y = pc.abs(rel, a[0], a[1])
			a = a[2:]
		} else {
			c1x, c1y = pc.reflect('C', 'S')
		}
		c2x, c2y := pc.abs(rel, a[0], a[1])
		x, y := pc.abs(rel, a[2], a[3])
		p.CubeBezier(chartpath.ToFixedP(c1x, c1y), chartpath.ToFixedP(c2x, c2y), chartpath.ToFixedP(x, y))
		pc.ctrlX, pc.ctrlY = c2x, c2y
		pc.x, pc.y = x, y
	case 'Q', 'T':
		var cx, cy float64
		if cmd == 'Q' {
			cx, cy = pc.abs(rel, a[0], a[1])
			a = a[2:]
		} else {
			cx, cy = pc.reflect('Q', 'T')
		}
		x, y := pc.abs(rel, a[0], a[1])
		p.QuadBezier(chartpath.ToFixedP(cx, cy), chartpath.ToFixedP(x, y))
		pc.ctrlX, pc.ctrlY = cx, cy
		pc.x, pc.y = x, y
	case 'Z':
		p.Stop(true)
		pc.x, pc.y = pc.startX, pc.startY
		pc.closed = true
	}
	pc.lastCmd = cmd
	return nil
}
