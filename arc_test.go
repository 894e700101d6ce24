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
	"testing"

	"github.com/tdewolff/test"

	"seehuhn.de/go/geom/vec"
)

func TestArcHalfCircle(t *testing.T) {
	start := vec.Vec2{X: 0, Y: 0}
	center := vec.Vec2{X: 10, Y: 0}

	for _, tc := range []struct {
		clockwise bool
		top       float64
	}{
		{true, -10},
		{false, 10},
	} {
		a := &Arc{Radii: vec.Vec2{X: 10, Y: 10}, Clockwise: tc.clockwise, End: vec.Vec2{X: 20, Y: 0}}
		pts := a.Beziers(start)
		test.T(t, len(pts), 6)
		test.T(t, pts[5], a.End)
		test.That(t, near(pts[2], vec.Vec2{X: 10, Y: tc.top}, 1e-9), pts[2])

		// all points of the curves are close to the circle
		p := [4]vec.Vec2{start, pts[0], pts[1], pts[2]}
		for i := range 11 {
			r := cubicPoint(p, float64(i)/10).Sub(center).Length()
			test.That(t, math.Abs(r-10) < 0.01, r)
		}
	}
}

func TestArcLarge(t *testing.T) {
	start := vec.Vec2{X: 0, Y: 0}
	end := vec.Vec2{X: 10, Y: 0}
	small := &Arc{Radii: vec.Vec2{X: 10, Y: 10}, End: end}
	large := &Arc{Radii: vec.Vec2{X: 10, Y: 10}, LargeArc: true, End: end}

	// 60 degrees against 300 degrees
	test.T(t, len(small.Beziers(start)), 3)
	test.T(t, len(large.Beziers(start)), 12)

	// both arcs lie on one of the two circles of radius 10 through the
	// end points
	h := 5 * math.Sqrt(3)
	centers := []vec.Vec2{{X: 5, Y: h}, {X: 5, Y: -h}}
	for _, a := range []*Arc{small, large} {
		pts := a.Beziers(start)
		found := false
		for _, c := range centers {
			onCircle := true
			for i := 2; i < len(pts); i += 3 {
				if math.Abs(pts[i].Sub(c).Length()-10) > 1e-9 {
					onCircle = false
				}
			}
			found = found || onCircle
		}
		test.That(t, found, a.LargeArc)
	}
}

func TestArcRadiiScaled(t *testing.T) {
	// the radii are too small and get scaled up to a half circle
	a := &Arc{Radii: vec.Vec2{X: 1, Y: 1}, Clockwise: true, End: vec.Vec2{X: 20, Y: 0}}
	pts := a.Beziers(vec.Vec2{})
	test.T(t, len(pts), 6)
	test.That(t, near(pts[2], vec.Vec2{X: 10, Y: -10}, 1e-9), pts[2])
}

func TestArcRotated(t *testing.T) {
	// An ellipse with radii 20 and 10, rotated by 90 degrees, is 20
	// high.  The half ellipse from (0,0) to (0,40) bulges by 10.
	a := &Arc{Radii: vec.Vec2{X: 20, Y: 10}, Rotation: 90, End: vec.Vec2{X: 0, Y: 40}}
	pts := a.Beziers(vec.Vec2{})
	test.T(t, len(pts), 6)
	test.That(t, math.Abs(math.Abs(pts[2].X)-10) < 1e-6, pts[2])
	test.That(t, math.Abs(pts[2].Y-20) < 1e-6, pts[2])
}

func TestArcDegenerate(t *testing.T) {
	start := vec.Vec2{X: 1, Y: 2}
	test.T(t, len((&Arc{Radii: vec.Vec2{X: 0, Y: 5}, End: vec.Vec2{X: 9}}).Beziers(start)), 0)
	test.T(t, len((&Arc{Radii: vec.Vec2{X: 5, Y: 5}, End: start}).Beziers(start)), 0)
}
