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

package widen

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// HitTestSink is a [Sink] which checks whether a point lies inside the
// stroke.  The point is given in device space.
//
// Once a hit is found, the sink reports itself as aborted so that the
// remaining path can be skipped.
type HitTestSink struct {
	pieceSink

	pt        vec.Vec2
	tolerance float64
	hit       bool
}

// NewHitTestSink returns a sink which tests pt.  Curves are flattened with
// the given tolerance.
func NewHitTestSink(pt vec.Vec2, tol float64) *HitTestSink {
	s := &HitTestSink{
		pt:        pt,
		tolerance: max(tol, MinTolerance),
	}
	s.emit = s.testFigure
	return s
}

// Hit reports whether the point was found inside the stroke.
func (s *HitTestSink) Hit() bool {
	return s.hit
}

// Aborted implements the [Sink] interface.
func (s *HitTestSink) Aborted() bool {
	return s.hit
}

func (s *HitTestSink) testFigure(fig *path.Data) error {
	if !s.hit && winding(fig, s.pt, s.tolerance) != 0 {
		s.hit = true
	}
	return nil
}

// winding returns the winding number of p around pt.  Every subpath of p
// is treated as closed.  Curves are flattened with tolerance tol.
func winding(p *path.Data, pt vec.Vec2, tol float64) int {
	w := 0
	edge := func(a, b vec.Vec2) {
		if a.Y <= pt.Y {
			if b.Y > pt.Y && det(b.Sub(a), pt.Sub(a)) > 0 {
				w++
			}
		} else if b.Y <= pt.Y && det(b.Sub(a), pt.Sub(a)) < 0 {
			w--
		}
	}

	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if current != start {
				edge(current, start)
			}
			current = p.Coords[k]
			start = current
			k++
		case path.CmdLineTo:
			edge(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			c, end := p.Coords[k], p.Coords[k+1]
			cubic := [4]vec.Vec2{
				current,
				current.Mul(1.0 / 3).Add(c.Mul(2.0 / 3)),
				c.Mul(2.0 / 3).Add(end.Mul(1.0 / 3)),
				end,
			}
			flattenCubic(cubic, tol, edge)
			current = end
			k += 2
		case path.CmdCubeTo:
			cubic := [4]vec.Vec2{current, p.Coords[k], p.Coords[k+1], p.Coords[k+2]}
			flattenCubic(cubic, tol, edge)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != start {
				edge(current, start)
			}
			current = start
		}
	}
	if current != start {
		edge(current, start)
	}
	return w
}

// flattenCubic approximates a cubic Bezier curve by line segments, using
// Wang's formula for the number of segments.
func flattenCubic(p [4]vec.Vec2, tol float64, edge func(a, b vec.Vec2)) {
	d1 := p[0].Sub(p[1].Mul(2)).Add(p[2])
	d2 := p[1].Sub(p[2].Mul(2)).Add(p[3])
	m := max(d1.Length(), d2.Length())
	n := 1
	if nf := math.Ceil(math.Sqrt(3 * m / (4 * tol))); nf > 1 {
		n = int(min(nf, maxCurveSegments))
	}

	prev := p[0]
	for i := 1; i < n; i++ {
		pt := cubicPoint(p, float64(i)/float64(n))
		edge(prev, pt)
		prev = pt
	}
	edge(prev, p[3])
}
