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

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// BoundsSink is a [Sink] which computes the bounding box of a stroke,
// in device space.  The zero value is ready to use.
type BoundsSink struct {
	box  rect.Rect
	seen bool
	cur  [2]vec.Vec2
}

// Bounds returns the bounding box of everything drawn so far.
// If nothing was drawn, the zero rectangle is returned.
func (b *BoundsSink) Bounds() rect.Rect {
	if !b.seen {
		return rect.Rect{}
	}
	return b.box
}

// Reset forgets all previous output.
func (b *BoundsSink) Reset() {
	*b = BoundsSink{}
}

func (b *BoundsSink) include(pts ...vec.Vec2) {
	for _, pt := range pts {
		if !b.seen {
			b.box = rect.Rect{LLx: pt.X, LLy: pt.Y, URx: pt.X, URy: pt.Y}
			b.seen = true
			continue
		}
		b.box.LLx = min(b.box.LLx, pt.X)
		b.box.LLy = min(b.box.LLy, pt.Y)
		b.box.URx = max(b.box.URx, pt.X)
		b.box.URy = max(b.box.URy, pt.Y)
	}
}

// includeCubic adds the tight bounds of a cubic Bezier curve.
func (b *BoundsSink) includeCubic(p0, p1, p2, p3 vec.Vec2) {
	b.include(p0, p3)
	p := [4]vec.Vec2{p0, p1, p2, p3}
	for _, t := range cubicExtrema(p0.X, p1.X, p2.X, p3.X) {
		b.include(cubicPoint(p, t))
	}
	for _, t := range cubicExtrema(p0.Y, p1.Y, p2.Y, p3.Y) {
		b.include(cubicPoint(p, t))
	}
}

// StartWith implements the [Sink] interface.
func (b *BoundsSink) StartWith(pts [2]vec.Vec2) error {
	b.include(pts[:]...)
	b.cur = pts
	return nil
}

// SetCurrentPoints implements the [Sink] interface.
func (b *BoundsSink) SetCurrentPoints(pts [2]vec.Vec2) error {
	b.include(pts[:]...)
	b.cur = pts
	return nil
}

// QuadTo implements the [Sink] interface.
func (b *BoundsSink) QuadTo(pts [2]vec.Vec2) error {
	b.include(pts[:]...)
	b.cur = pts
	return nil
}

// CurveQuadTo implements the [Sink] interface.
// Where a rail folds back over the spine, the spine points are part of
// the stroke as well.
func (b *BoundsSink) CurveQuadTo(pts [2]vec.Vec2, segDir, spine, spinePrev vec.Vec2) error {
	for i, pt := range pts {
		if pt.Sub(b.cur[i]).Dot(segDir) < 0 {
			b.include(spinePrev, spine)
		}
		b.include(pt)
	}
	b.cur = pts
	return nil
}

// CurveWedge implements the [Sink] interface.
func (b *BoundsSink) CurveWedge(side Side, b1, b2, b3 vec.Vec2) error {
	b.includeCubic(b.cur[side], b1, b2, b3)
	b.cur[side] = b3
	return nil
}

// BezierCap implements the [Sink] interface.
func (b *BoundsSink) BezierCap(start, c1, c2, mid, c3, c4, end vec.Vec2) error {
	b.includeCubic(start, c1, c2, mid)
	b.includeCubic(mid, c3, c4, end)
	return nil
}

// DoInnerCorner implements the [Sink] interface.
func (b *BoundsSink) DoInnerCorner(side Side, _ vec.Vec2, next [2]vec.Vec2) error {
	b.cur[side] = next[side]
	b.include(next[side])
	return nil
}

// CapTriangle implements the [Sink] interface.
func (b *BoundsSink) CapTriangle(start, apex, end vec.Vec2) error {
	b.include(start, apex, end)
	return nil
}

// CapFlat implements the [Sink] interface.
func (b *BoundsSink) CapFlat([2]vec.Vec2, Side) error {
	return nil
}

// PolylineWedge implements the [Sink] interface.
func (b *BoundsSink) PolylineWedge(side Side, pts []vec.Vec2) error {
	if len(pts) == 0 {
		return nil
	}
	b.include(pts...)
	b.cur[side] = pts[len(pts)-1]
	return nil
}

// AddFigure implements the [Sink] interface.
func (b *BoundsSink) AddFigure() error {
	return nil
}

// SwitchSides implements the [Sink] interface.
func (b *BoundsSink) SwitchSides() error {
	b.cur[Left], b.cur[Right] = b.cur[Right], b.cur[Left]
	return nil
}

// Aborted implements the [Sink] interface.
func (b *BoundsSink) Aborted() bool {
	return false
}

// cubicExtrema returns the parameters in (0, 1) where the derivative of
// the one-dimensional cubic Bezier curve with control values a, b, c, d
// vanishes.
func cubicExtrema(a, b, c, d float64) []float64 {
	// derivative / 3 = qa t^2 + qb t + qc
	qa := -a + 3*b - 3*c + d
	qb := 2 * (a - 2*b + c)
	qc := b - a

	var res []float64
	add := func(t float64) {
		if t > 0 && t < 1 {
			res = append(res, t)
		}
	}

	if math.Abs(qa) < 1e-12 {
		if qb != 0 {
			add(-qc / qb)
		}
		return res
	}
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	add((-qb + sq) / (2 * qa))
	add((-qb - sq) / (2 * qa))
	return res
}
