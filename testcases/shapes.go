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

package testcases

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// kappa is the control point distance for a quarter circle of radius 1.
const kappa = 0.5522847498307936

// line builds an open path with a single straight segment.
func line(x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).MoveTo(pt(x1, y1)).LineTo(pt(x2, y2))
}

// polyline builds an open path through the given points.
func polyline(pts ...vec.Vec2) *path.Data {
	p := (&path.Data{}).MoveTo(pts[0])
	for _, q := range pts[1:] {
		p.LineTo(q)
	}
	return p
}

// polygon builds a closed path through the given points.
func polygon(pts ...vec.Vec2) *path.Data {
	return polyline(pts...).Close()
}

// rectangle builds a closed, axis-aligned rectangle.
func rectangle(x1, y1, x2, y2 float64) *path.Data {
	return polygon(pt(x1, y1), pt(x2, y1), pt(x2, y2), pt(x1, y2))
}

// addCircle appends a closed circle made of four cubic Bezier curves.
// The circle runs clockwise in a y-down coordinate system unless reverse
// is set.
func addCircle(p *path.Data, cx, cy, r float64, reverse bool) *path.Data {
	k := kappa * r
	s := 1.0
	if reverse {
		s = -1
	}
	p.MoveTo(pt(cx+r, cy))
	p.CubeTo(pt(cx+r, cy+s*k), pt(cx+k, cy+s*r), pt(cx, cy+s*r))
	p.CubeTo(pt(cx-k, cy+s*r), pt(cx-r, cy+s*k), pt(cx-r, cy))
	p.CubeTo(pt(cx-r, cy-s*k), pt(cx-k, cy-s*r), pt(cx, cy-s*r))
	p.CubeTo(pt(cx+k, cy-s*r), pt(cx+r, cy-s*k), pt(cx+r, cy))
	return p.Close()
}

func circle(cx, cy, r float64) *path.Data {
	return addCircle(&path.Data{}, cx, cy, r, false)
}

// ring is a circle with a hole, for the nonzero rule.
func ring(cx, cy, outer, inner float64) *path.Data {
	p := addCircle(&path.Data{}, cx, cy, outer, false)
	return addCircle(p, cx, cy, inner, true)
}

// star builds a five-pointed star, drawn as a single self-intersecting
// polygon.
func star(cx, cy, r float64) *path.Data {
	var pts []vec.Vec2
	for i := range 5 {
		a := -math.Pi/2 + float64(2*i)*2*math.Pi/5
		pts = append(pts, pt(cx+r*math.Cos(a), cy+r*math.Sin(a)))
	}
	return polygon(pts...)
}

// cubic builds an open path with a single cubic Bezier curve.
func cubic(x0, y0, x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).MoveTo(pt(x0, y0)).CubeTo(pt(x1, y1), pt(x2, y2), pt(x3, y3))
}

// quadratic builds an open path with a single quadratic Bezier curve.
func quadratic(x0, y0, x1, y1, x2, y2 float64) *path.Data {
	return (&path.Data{}).MoveTo(pt(x0, y0)).QuadTo(pt(x1, y1), pt(x2, y2))
}

// zigzag builds an open polyline with n teeth between x1 and x2.
func zigzag(x1, x2, yTop, yBot float64, n int) *path.Data {
	p := (&path.Data{}).MoveTo(pt(x1, yBot))
	dx := (x2 - x1) / float64(2*n)
	for i := range 2 * n {
		y := yTop
		if i%2 == 1 {
			y = yBot
		}
		p.LineTo(pt(x1+float64(i+1)*dx, y))
	}
	return p
}
