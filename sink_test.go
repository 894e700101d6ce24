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
	"fmt"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// wedge is a recorded call to PolylineWedge.
type wedge struct {
	side Side
	pts  []vec.Vec2
}

// piece is the part of the spine covered by one stroke piece, from the
// StartWith call to the matching AddFigure.
type piece struct {
	start, end vec.Vec2
}

// recordSink records the calls which are of interest to the tests.
type recordSink struct {
	cur     [2]vec.Vec2
	wedges  []wedge
	pieces  []piece
	curves  int
	caps    int
	started bool
	first   vec.Vec2
}

func mid(pts [2]vec.Vec2) vec.Vec2 {
	return pts[0].Add(pts[1]).Mul(0.5)
}

func (r *recordSink) StartWith(pts [2]vec.Vec2) error {
	r.cur = pts
	r.first = mid(pts)
	r.started = true
	return nil
}

func (r *recordSink) SetCurrentPoints(pts [2]vec.Vec2) error {
	r.cur = pts
	return nil
}

func (r *recordSink) QuadTo(pts [2]vec.Vec2) error {
	r.cur = pts
	return nil
}

func (r *recordSink) CurveQuadTo(pts [2]vec.Vec2, _, _, _ vec.Vec2) error {
	r.cur = pts
	return nil
}

func (r *recordSink) CurveWedge(side Side, _, _, b3 vec.Vec2) error {
	r.cur[side] = b3
	r.curves++
	return nil
}

func (r *recordSink) BezierCap(_, _, _, _, _, _, _ vec.Vec2) error {
	r.caps++
	return nil
}

func (r *recordSink) DoInnerCorner(side Side, _ vec.Vec2, next [2]vec.Vec2) error {
	r.cur[side] = next[side]
	return nil
}

func (r *recordSink) CapTriangle(_, _, _ vec.Vec2) error {
	r.caps++
	return nil
}

func (r *recordSink) CapFlat([2]vec.Vec2, Side) error {
	return nil
}

func (r *recordSink) PolylineWedge(side Side, pts []vec.Vec2) error {
	r.wedges = append(r.wedges, wedge{side, append([]vec.Vec2(nil), pts...)})
	if len(pts) > 0 {
		r.cur[side] = pts[len(pts)-1]
	}
	return nil
}

func (r *recordSink) AddFigure() error {
	if r.started {
		r.pieces = append(r.pieces, piece{r.first, mid(r.cur)})
	}
	r.started = false
	return nil
}

func (r *recordSink) SwitchSides() error {
	r.cur[Left], r.cur[Right] = r.cur[Right], r.cur[Left]
	return nil
}

func (r *recordSink) Aborted() bool {
	return false
}

func near(a, b vec.Vec2, eps float64) bool {
	return a.Sub(b).Length() <= eps
}

func polylinePath(pts ...vec.Vec2) *path.Data {
	p := (&path.Data{}).MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p.LineTo(pt)
	}
	return p
}

func squarePath(x0, y0, x1, y1 float64) *path.Data {
	return polylinePath(
		vec.Vec2{X: x0, Y: y0}, vec.Vec2{X: x1, Y: y0},
		vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x0, Y: y1}).Close()
}

// railSink checks that the primitives form two continuous rails.  It
// tracks the current rail points the way BoundsSink does, and records
// every primitive which does not continue from them.
type railSink struct {
	cur  [2]vec.Vec2
	open bool
	errs []string
}

const railEps = 1e-6

func (r *railSink) fail(format string, args ...any) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}

func (r *railSink) drawing(name string) {
	if !r.open {
		r.fail("%s outside of a piece", name)
	}
}

// joins checks that a and b are the two current rail points, in either
// order.
func (r *railSink) joins(name string, a, b vec.Vec2) {
	if near(a, r.cur[Left], railEps) && near(b, r.cur[Right], railEps) ||
		near(a, r.cur[Right], railEps) && near(b, r.cur[Left], railEps) {
		return
	}
	r.fail("%s from %v to %v, rails at %v", name, a, b, r.cur)
}

func (r *railSink) StartWith(pts [2]vec.Vec2) error {
	if r.open {
		r.fail("StartWith inside a piece")
	}
	r.open = true
	r.cur = pts
	return nil
}

func (r *railSink) SetCurrentPoints(pts [2]vec.Vec2) error {
	r.drawing("SetCurrentPoints")
	r.cur = pts
	return nil
}

func (r *railSink) QuadTo(pts [2]vec.Vec2) error {
	r.drawing("QuadTo")
	r.cur = pts
	return nil
}

func (r *railSink) CurveQuadTo(pts [2]vec.Vec2, _, spine, _ vec.Vec2) error {
	r.drawing("CurveQuadTo")
	if !near(mid(pts), spine, railEps) {
		r.fail("CurveQuadTo to %v, spine at %v", pts, spine)
	}
	r.cur = pts
	return nil
}

func (r *railSink) CurveWedge(side Side, _, _, b3 vec.Vec2) error {
	r.drawing("CurveWedge")
	r.cur[side] = b3
	return nil
}

func (r *railSink) BezierCap(start, _, _, _, _, _, end vec.Vec2) error {
	r.drawing("BezierCap")
	r.joins("BezierCap", start, end)
	return nil
}

func (r *railSink) DoInnerCorner(side Side, center vec.Vec2, next [2]vec.Vec2) error {
	r.drawing("DoInnerCorner")
	// both rails end at the corner
	if !near(mid(r.cur), center, railEps) {
		r.fail("corner at %v, rails at %v", center, r.cur)
	}
	r.cur[side] = next[side]
	return nil
}

func (r *railSink) CapTriangle(start, _, end vec.Vec2) error {
	r.drawing("CapTriangle")
	r.joins("CapTriangle", start, end)
	return nil
}

func (r *railSink) CapFlat(pts [2]vec.Vec2, _ Side) error {
	r.drawing("CapFlat")
	r.joins("CapFlat", pts[Left], pts[Right])
	return nil
}

func (r *railSink) PolylineWedge(side Side, pts []vec.Vec2) error {
	r.drawing("PolylineWedge")
	if len(pts) > 0 {
		r.cur[side] = pts[len(pts)-1]
	}
	return nil
}

func (r *railSink) AddFigure() error {
	if !r.open {
		r.fail("AddFigure without a piece")
	}
	r.open = false
	return nil
}

func (r *railSink) SwitchSides() error {
	r.drawing("SwitchSides")
	r.cur[Left], r.cur[Right] = r.cur[Right], r.cur[Left]
	return nil
}

func (r *railSink) Aborted() bool {
	return false
}
