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

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// segment is a line or a cubic Bezier curve in device space, ready to be
// widened.
type segment interface {
	// FirstTangent returns the direction at the start of the segment.
	// It returns false if the segment is degenerate.
	FirstTangent() (vec.Vec2, bool)

	// Widen sends the segment to t and returns its end point and the
	// direction there.
	Widen(t Target) (end, dir vec.Vec2, err error)
}

// transform applies m to pt.  A nil m is the identity.
func transform(m *matrix.Matrix, pt vec.Vec2) vec.Vec2 {
	if m == nil {
		return pt
	}
	return vec.Vec2{
		X: m[0]*pt.X + m[2]*pt.Y + m[4],
		Y: m[1]*pt.X + m[3]*pt.Y + m[5],
	}
}

// lineSegment is a straight line.
type lineSegment struct {
	end  vec.Vec2
	dir  vec.Vec2
	fuzz float64
}

// Set prepares a line from first, which is already in device space, to
// last, in user space.  Only the part between parameters start and end,
// with 0 <= start < end <= 1, is used.  The returned point is the start
// of the trimmed line.
func (l *lineSegment) Set(start, end float64, first, last vec.Vec2, m *matrix.Matrix) vec.Vec2 {
	l.end = transform(m, last)
	l.dir = l.end.Sub(first)
	if end < 1 {
		l.end = first.Add(l.dir.Mul(end))
	}
	if start > 0 {
		first = first.Add(l.dir.Mul(start))
	}
	return first
}

func (l *lineSegment) FirstTangent() (vec.Vec2, bool) {
	return l.dir, !(l.dir.Dot(l.dir) < l.fuzz)
}

func (l *lineSegment) Widen(t Target) (vec.Vec2, vec.Vec2, error) {
	return l.end, l.dir, t.AcceptLinePoint(l.end)
}

// cubicSegment is a cubic Bezier curve.  It is widened by flattening it
// into chords, each reported with the tangent at its end point.
type cubicSegment struct {
	p         [4]vec.Vec2
	fuzz      float64
	tolerance float64
}

// Set prepares the curve with start point first, in device space, and
// control and end points ctl, in user space.  Only the part between
// parameters start and end is used.  The returned point is the start of
// the trimmed curve.
func (c *cubicSegment) Set(start, end float64, first vec.Vec2, ctl [3]vec.Vec2, m *matrix.Matrix) vec.Vec2 {
	c.p = [4]vec.Vec2{first, transform(m, ctl[0]), transform(m, ctl[1]), transform(m, ctl[2])}
	if end < 1 {
		c.p, _ = splitCubic(c.p, end)
	}
	if start > 0 {
		// start is relative to the original curve
		s := start
		if end < 1 {
			s = start / end
		}
		_, c.p = splitCubic(c.p, s)
	}
	return c.p[0]
}

func (c *cubicSegment) FirstTangent() (vec.Vec2, bool) {
	for i := 1; i < 4; i++ {
		v := c.p[i].Sub(c.p[0])
		if !(v.Dot(v) < c.fuzz) {
			return v, true
		}
	}
	return vec.Vec2{}, false
}

func (c *cubicSegment) Widen(t Target) (vec.Vec2, vec.Vec2, error) {
	n := c.segmentCount()
	var pt, tan vec.Vec2
	for i := 1; i <= n; i++ {
		s := float64(i) / float64(n)
		if i == n {
			pt = c.p[3]
		} else {
			pt = cubicPoint(c.p, s)
		}
		tan = c.tangent(s)
		err := t.AcceptCurvePoint(pt, tan, i == n)
		if err != nil {
			return pt, tan, err
		}
	}
	return pt, tan, nil
}

// segmentCount uses Wang's formula to find the number of chords needed to
// stay within the tolerance.
func (c *cubicSegment) segmentCount() int {
	d1 := c.p[0].Sub(c.p[1].Mul(2)).Add(c.p[2])
	d2 := c.p[1].Sub(c.p[2].Mul(2)).Add(c.p[3])
	m := max(d1.Length(), d2.Length())
	nf := math.Ceil(math.Sqrt(3 * m / (4 * c.tolerance)))
	if !(nf >= 1) {
		return 1
	}
	return int(min(nf, maxCurveSegments))
}

// tangent returns the derivative of the curve at s.  Where the derivative
// vanishes, a chord direction is used instead.
func (c *cubicSegment) tangent(s float64) vec.Vec2 {
	p := c.p
	u := 1 - s
	a := p[1].Sub(p[0])
	b := p[2].Sub(p[1])
	e := p[3].Sub(p[2])
	tan := a.Mul(3 * u * u).Add(b.Mul(6 * u * s)).Add(e.Mul(3 * s * s))
	if !(tan.Dot(tan) < c.fuzz) {
		return tan
	}
	if s >= 1 {
		for _, v := range []vec.Vec2{p[3].Sub(p[1]), p[3].Sub(p[0])} {
			if !(v.Dot(v) < c.fuzz) {
				return v
			}
		}
	}
	return tan
}

// cubicPoint evaluates a cubic Bezier curve at s.
func cubicPoint(p [4]vec.Vec2, s float64) vec.Vec2 {
	u := 1 - s
	return p[0].Mul(u * u * u).
		Add(p[1].Mul(3 * u * u * s)).
		Add(p[2].Mul(3 * u * s * s)).
		Add(p[3].Mul(s * s * s))
}

// splitCubic divides a cubic Bezier curve at s, using de Casteljau's
// algorithm.
func splitCubic(p [4]vec.Vec2, s float64) (left, right [4]vec.Vec2) {
	lerp := func(a, b vec.Vec2) vec.Vec2 { return a.Add(b.Sub(a).Mul(s)) }
	p01 := lerp(p[0], p[1])
	p12 := lerp(p[1], p[2])
	p23 := lerp(p[2], p[3])
	p012 := lerp(p01, p12)
	p123 := lerp(p12, p23)
	mid := lerp(p012, p123)
	left = [4]vec.Vec2{p[0], p01, p012, mid}
	right = [4]vec.Vec2{mid, p123, p23, p[3]}
	return left, right
}

// maxCurveSegments bounds the number of chords per Bezier curve.
const maxCurveSegments = 1000
