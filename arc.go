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

	"seehuhn.de/go/geom/vec"
)

// Arc is an elliptical arc from the current point to End, described as
// in the SVG "A" path command.
type Arc struct {
	// Radii are the semi-axes of the ellipse.  If they are too small to
	// reach End, they are scaled up.
	Radii vec.Vec2

	// Rotation is the angle of the first axis of the ellipse, in degrees.
	Rotation float64

	// LargeArc selects the arc which spans more than 180 degrees.
	LargeArc bool

	// Clockwise selects the arc which runs clockwise in a y-down
	// coordinate system.
	Clockwise bool

	End vec.Vec2
}

// Beziers converts the arc starting at start into at most four cubic
// Bezier curves.  The result holds three points per curve: two control
// points and the end point.  If the arc degenerates to a line, the result
// is empty.
func (a *Arc) Beziers(start vec.Vec2) []vec.Vec2 {
	rx := math.Abs(a.Radii.X)
	ry := math.Abs(a.Radii.Y)
	if rx == 0 || ry == 0 || start == a.End {
		return nil
	}

	phi := a.Rotation * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	// Move to coordinates where the ellipse is axis aligned and the
	// chord is centred on the origin.
	dx := (start.X - a.End.X) / 2
	dy := (start.Y - a.End.Y) / 2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	rxSq, rySq := rx*rx, ry*ry
	num := rxSq*rySq - rxSq*y1*y1 - rySq*x1*x1
	den := rxSq*y1*y1 + rySq*x1*x1
	if !(den > 0) {
		return nil
	}
	coef := math.Sqrt(max(0, num/den))
	if a.LargeArc == a.Clockwise {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	center := vec.Vec2{
		X: cosPhi*cx1 - sinPhi*cy1 + (start.X+a.End.X)/2,
		Y: sinPhi*cx1 + cosPhi*cy1 + (start.Y+a.End.Y)/2,
	}

	theta := math.Atan2((y1-cy1)/ry, (x1-cx1)/rx)
	theta2 := math.Atan2((-y1-cy1)/ry, (-x1-cx1)/rx)
	sweep := theta2 - theta
	if a.Clockwise && sweep < 0 {
		sweep += 2 * math.Pi
	} else if !a.Clockwise && sweep > 0 {
		sweep -= 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	n = min(max(n, 1), 4)
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)

	point := func(t float64) (pt, deriv vec.Vec2) {
		sinT, cosT := math.Sincos(t)
		pt = vec.Vec2{
			X: center.X + rx*cosT*cosPhi - ry*sinT*sinPhi,
			Y: center.Y + rx*cosT*sinPhi + ry*sinT*cosPhi,
		}
		deriv = vec.Vec2{
			X: -rx*sinT*cosPhi - ry*cosT*sinPhi,
			Y: -rx*sinT*sinPhi + ry*cosT*cosPhi,
		}
		return pt, deriv
	}

	res := make([]vec.Vec2, 0, 3*n)
	p0, d0 := point(theta)
	for i := 1; i <= n; i++ {
		p1, d1 := point(theta + float64(i)*step)
		if i == n {
			p1 = a.End
		}
		res = append(res, p0.Add(d0.Mul(k)), p1.Sub(d1.Mul(k)), p1)
		p0, d0 = p1, d1
	}
	return res
}
