// seehuhn.de/go/widen - stroke widening for 2D vector paths
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/widen"
)

// svgOp is one drawing command of an SVG path, in absolute coordinates.
// cmd is one of 'M', 'L', 'Q', 'C', 'A' and 'Z'.
type svgOp struct {
	cmd byte
	pts []vec.Vec2
	arc widen.Arc
}

// svgPath is a parsed SVG path data string.
type svgPath []svgOp

// parseSVGPath parses SVG path data.  The commands M, L, H, V, Q, C, A
// and Z are supported, in absolute and relative form.
func parseSVGPath(s string) (svgPath, error) {
	b := []byte(s)
	var ops svgPath

	var cur, start vec.Vec2
	var prevCmd byte
	afterClose := false
	i := 0

	num := func() (float64, error) {
		i += skipSeparators(b[i:])
		f, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return 0, fmt.Errorf("expected number at offset %d", i)
		}
		i += n
		return f, nil
	}
	point := func(rel bool) (vec.Vec2, error) {
		x, err := num()
		if err != nil {
			return vec.Vec2{}, err
		}
		y, err := num()
		if err != nil {
			return vec.Vec2{}, err
		}
		p := vec.Vec2{X: x, Y: y}
		if rel {
			p = p.Add(cur)
		}
		return p, nil
	}
	flag := func() (bool, error) {
		i += skipSeparators(b[i:])
		if i >= len(b) || (b[i] != '0' && b[i] != '1') {
			return false, fmt.Errorf("expected flag at offset %d", i)
		}
		i++
		return b[i-1] == '1', nil
	}

	for {
		i += skipSeparators(b[i:])
		if i >= len(b) {
			break
		}

		cmd := prevCmd
		if c := b[i]; c >= 'A' && c != 'e' && c != 'E' {
			cmd = c
			i++
		} else if prevCmd == 0 {
			return nil, fmt.Errorf("path must start with a command")
		}
		rel := cmd >= 'a'
		upper := cmd &^ 0x20

		if afterClose && upper != 'M' {
			ops = append(ops, svgOp{cmd: 'M', pts: []vec.Vec2{start}})
		}
		afterClose = false

		var err error
		switch upper {
		case 'M':
			var p vec.Vec2
			p, err = point(rel)
			if err == nil {
				ops = append(ops, svgOp{cmd: 'M', pts: []vec.Vec2{p}})
				cur, start = p, p
			}
			// further coordinate pairs are implicit lines
			cmd = 'L' | (cmd & 0x20)

		case 'L':
			var p vec.Vec2
			p, err = point(rel)
			if err == nil {
				ops = append(ops, svgOp{cmd: 'L', pts: []vec.Vec2{p}})
				cur = p
			}

		case 'H', 'V':
			var v float64
			v, err = num()
			if err == nil {
				p := cur
				switch {
				case upper == 'H' && rel:
					p.X += v
				case upper == 'H':
					p.X = v
				case rel:
					p.Y += v
				default:
					p.Y = v
				}
				ops = append(ops, svgOp{cmd: 'L', pts: []vec.Vec2{p}})
				cur = p
			}

		case 'Q', 'C':
			n := 2
			if upper == 'C' {
				n = 3
			}
			pts := make([]vec.Vec2, n)
			for k := range pts {
				pts[k], err = point(rel)
				if err != nil {
					break
				}
			}
			if err == nil {
				ops = append(ops, svgOp{cmd: upper, pts: pts})
				cur = pts[n-1]
			}

		case 'A':
			var a widen.Arc
			a.Radii.X, err = num()
			if err == nil {
				a.Radii.Y, err = num()
			}
			if err == nil {
				a.Rotation, err = num()
			}
			if err == nil {
				a.LargeArc, err = flag()
			}
			if err == nil {
				a.Clockwise, err = flag()
			}
			if err == nil {
				a.End, err = point(rel)
			}
			if err == nil {
				ops = append(ops, svgOp{cmd: 'A', arc: a})
				cur = a.End
			}

		case 'Z':
			ops = append(ops, svgOp{cmd: 'Z'})
			cur = start
			afterClose = true
			cmd = 0

		default:
			return nil, fmt.Errorf("unsupported path command %q", cmd)
		}
		if err != nil {
			return nil, err
		}
		prevCmd = cmd
	}
	if len(ops) > 0 && ops[0].cmd != 'M' {
		return nil, fmt.Errorf("path must start with a move")
	}
	return ops, nil
}

func skipSeparators(b []byte) int {
	i := 0
	for i < len(b) && (b[i] == ' ' || b[i] == ',' || b[i] == '\n' || b[i] == '\r' || b[i] == '\t') {
		i++
	}
	return i
}

// feed sends the path to s, one figure at a time.
func (p svgPath) feed(s *widen.Stroker) {
	open := false
	for _, op := range p {
		switch op.cmd {
		case 'M':
			if open {
				s.EndFigure(false)
			}
			s.BeginFigure(op.pts[0])
			open = true
		case 'L':
			s.AddLine(op.pts[0])
		case 'Q':
			s.AddQuadraticBezier(op.pts[0], op.pts[1])
		case 'C':
			s.AddBezier(op.pts[0], op.pts[1], op.pts[2])
		case 'A':
			s.AddArc(op.arc)
		case 'Z':
			if open {
				s.EndFigure(true)
			}
			open = false
		}
	}
	if open {
		s.EndFigure(false)
	}
}
