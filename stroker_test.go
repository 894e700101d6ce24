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
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/tdewolff/test"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func rectNear(a, b rect.Rect, eps float64) bool {
	return math.Abs(a.LLx-b.LLx) <= eps && math.Abs(a.LLy-b.LLy) <= eps &&
		math.Abs(a.URx-b.URx) <= eps && math.Abs(a.URy-b.URy) <= eps
}

func TestClosedSeam(t *testing.T) {
	g := NewGeometry(4)
	g.Join = JoinMiter

	closed := squarePath(10, 10, 50, 50)
	open := polylinePath(
		vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 50, Y: 10},
		vec.Vec2{X: 50, Y: 50}, vec.Vec2{X: 10, Y: 50},
		vec.Vec2{X: 10, Y: 10})

	corner := vec.Vec2{X: 8.5, Y: 8.5}
	side := vec.Vec2{X: 9, Y: 30}

	hit, err := HitTest(closed.Iter(), g, matrix.Identity, 0.1, corner)
	test.Error(t, err)
	test.That(t, hit, "closed figure must be joined at the start")

	hit, err = HitTest(open.Iter(), g, matrix.Identity, 0.1, corner)
	test.Error(t, err)
	test.That(t, !hit, "open figure must be capped at the start")

	for _, p := range []*path.Data{closed, open} {
		hit, err = HitTest(p.Iter(), g, matrix.Identity, 0.1, side)
		test.Error(t, err)
		test.That(t, hit)
	}

	b, err := Bounds(closed.Iter(), g, matrix.Identity, 0.1)
	test.Error(t, err)
	test.That(t, rectNear(b, rect.Rect{LLx: 8, LLy: 8, URx: 52, URy: 52}, 1e-9), b)
}

func TestRoundPoint(t *testing.T) {
	// A closed figure without extent is drawn as a round dot.
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 20, Y: 20}).
		LineTo(vec.Vec2{X: 20, Y: 20}).
		Close()
	g := NewGeometry(6)

	b, err := Bounds(p.Iter(), g, matrix.Identity, 0.1)
	test.Error(t, err)
	test.That(t, rectNear(b, rect.Rect{LLx: 17, LLy: 17, URx: 23, URy: 23}, 1e-9), b)

	for _, tc := range []struct {
		pt  vec.Vec2
		hit bool
	}{
		{vec.Vec2{X: 22, Y: 20.5}, true},
		{vec.Vec2{X: 19, Y: 18}, true},
		{vec.Vec2{X: 23.5, Y: 20}, false},
		{vec.Vec2{X: 22.2, Y: 22.2}, false},
	} {
		hit, err := HitTest(p.Iter(), g, matrix.Identity, 0.1, tc.pt)
		test.Error(t, err)
		test.T(t, hit, tc.hit, tc.pt)
	}
}

func TestMoveOnly(t *testing.T) {
	p := (&path.Data{}).MoveTo(vec.Vec2{X: 5, Y: 5}).MoveTo(vec.Vec2{X: 7, Y: 7})
	b, err := Bounds(p.Iter(), NewGeometry(2), matrix.Identity, 0.25)
	test.Error(t, err)
	test.T(t, b, rect.Rect{})
}

func TestDrawBeforeMove(t *testing.T) {
	p := &path.Data{
		Cmds:   []path.Command{path.CmdLineTo, path.CmdMoveTo, path.CmdLineTo},
		Coords: []vec.Vec2{{X: 100, Y: 100}, {X: 0, Y: 0}, {X: 10, Y: 0}},
	}
	b, err := Bounds(p.Iter(), NewGeometry(2), matrix.Identity, 0.25)
	test.Error(t, err)
	test.That(t, rectNear(b, rect.Rect{LLx: 0, LLy: -1, URx: 10, URy: 1}, 1e-9), b)
}

func TestDrawAfterClose(t *testing.T) {
	// After a ClosePath, drawing continues at the start of the subpath.
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		Close().
		LineTo(vec.Vec2{X: 0, Y: 10})
	g := NewGeometry(2)
	g.Join = JoinRound

	b, err := Bounds(p.Iter(), g, matrix.Identity, 0.1)
	test.Error(t, err)
	test.That(t, rectNear(b, rect.Rect{LLx: -1, LLy: -1, URx: 11, URy: 10}, 1e-9), b)
}

func TestQuadraticBezier(t *testing.T) {
	g := NewGeometry(2)
	a, c, e := vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 20}, vec.Vec2{X: 20, Y: 0}

	quad := &BoundsSink{}
	s := NewStroker()
	s.Tolerance = 0.01
	test.Error(t, s.Set(g, quad))
	s.BeginFigure(a)
	s.AddQuadraticBezier(c, e)
	s.EndFigure(false)
	test.Error(t, s.Close())

	cubic := &BoundsSink{}
	test.Error(t, s.Set(g, cubic))
	s.BeginFigure(a)
	s.AddBezier(a.Add(c.Mul(2)).Mul(1.0/3), c.Mul(2).Add(e).Mul(1.0/3), e)
	s.EndFigure(false)
	test.Error(t, s.Close())

	test.That(t, rectNear(quad.Bounds(), cubic.Bounds(), 1e-9), quad.Bounds(), cubic.Bounds())

	// the curve reaches y = 10, and the pen adds 1
	test.That(t, math.Abs(quad.Bounds().URy-11) < 0.05, quad.Bounds())
}

func TestAddBeziersIncomplete(t *testing.T) {
	g := NewGeometry(2)
	pts := []vec.Vec2{{X: 0, Y: 20}, {X: 20, Y: 20}, {X: 20, Y: 0}, {X: 50, Y: 50}}

	stroke := func(pts []vec.Vec2) rect.Rect {
		b := &BoundsSink{}
		s := NewStroker()
		test.Error(t, s.Set(g, b))
		s.BeginFigure(vec.Vec2{})
		s.AddBeziers(pts)
		s.EndFigure(false)
		test.Error(t, s.Close())
		return b.Bounds()
	}
	test.T(t, stroke(pts), stroke(pts[:3]))
}

func TestAddArc(t *testing.T) {
	g := NewGeometry(2)
	g.Join = JoinRound

	b := &BoundsSink{}
	s := NewStroker()
	s.Tolerance = 0.01
	test.Error(t, s.Set(g, b))
	s.BeginFigure(vec.Vec2{X: 0, Y: 50})
	s.AddArc(Arc{Radii: vec.Vec2{X: 10, Y: 10}, Clockwise: true, End: vec.Vec2{X: 20, Y: 50}})
	s.EndFigure(false)
	test.Error(t, s.Close())

	// a half circle above the chord
	bb := b.Bounds()
	test.That(t, math.Abs(bb.LLy-39) < 0.05, bb)
	test.That(t, math.Abs(bb.URy-50) < 1e-9, bb)

	// a degenerate arc is a line
	b.Reset()
	test.Error(t, s.Set(g, b))
	s.BeginFigure(vec.Vec2{X: 0, Y: 0})
	s.AddArc(Arc{End: vec.Vec2{X: 10, Y: 0}})
	s.EndFigure(false)
	test.Error(t, s.Close())
	test.That(t, rectNear(b.Bounds(), rect.Rect{LLx: 0, LLy: -1, URx: 10, URy: 1}, 1e-9), b.Bounds())
}

func TestStrokerError(t *testing.T) {
	g := NewGeometry(2)
	g.Dashes = []float64{1}

	s := NewStroker()
	err := s.Set(g, &recordSink{})
	test.That(t, errors.Is(err, ErrInvalidDash))

	// further input is ignored
	s.BeginFigure(vec.Vec2{})
	s.AddLine(vec.Vec2{X: 10})
	s.EndFigure(false)
	test.That(t, errors.Is(s.Close(), ErrInvalidDash))

	err = s.StrokePath(polylinePath(vec.Vec2{}, vec.Vec2{X: 10}).Iter())
	test.That(t, errors.Is(err, ErrInvalidDash))

	// a new Set starts afresh
	test.Error(t, s.Set(NewGeometry(2), &recordSink{}))
}

func TestHitTestAborts(t *testing.T) {
	h := NewHitTestSink(vec.Vec2{X: 5, Y: 0}, 0.1)
	test.That(t, !h.Aborted())

	// the second subpath is never reached
	p := polylinePath(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0})
	p.MoveTo(vec.Vec2{X: 0, Y: 50}).LineTo(vec.Vec2{X: 10, Y: 50})
	err := Stroke(p.Iter(), NewGeometry(2), matrix.Identity, 0.1, h)
	test.Error(t, err)
	test.That(t, h.Hit())
	test.That(t, h.Aborted())
}

func TestTransformedStroke(t *testing.T) {
	// A translation moves the stroke, the tolerance applies in device
	// space.
	p := polylinePath(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0})
	ctm := matrix.Matrix{1, 0, 0, 1, 100, 200}
	b, err := Bounds(p.Iter(), NewGeometry(2), ctm, 0.25)
	test.Error(t, err)
	test.That(t, rectNear(b, rect.Rect{LLx: 100, LLy: 199, URx: 110, URy: 201}, 1e-9), b)

	// A rotation by 90 degrees maps the x axis to the y axis.
	ctm = matrix.Matrix{0, 1, -1, 0, 0, 0}
	b, err = Bounds(p.Iter(), NewGeometry(2), ctm, 0.25)
	test.Error(t, err)
	test.That(t, rectNear(b, rect.Rect{LLx: -1, LLy: 0, URx: 1, URy: 10}, 1e-9), b)
}

func TestRailContinuity(t *testing.T) {
	type stroke struct {
		name string
		p    *path.Data
		g    *Geometry
		ctm  matrix.Matrix
	}

	pen := func(width float64, join Join) *Geometry {
		g := NewGeometry(width)
		g.Join = join
		g.StartCap = CapRound
		g.EndCap = CapTriangle
		g.DashCap = CapSquare
		return g
	}
	dashed := pen(2, JoinMiter)
	dashed.Dashes = []float64{3, 2}
	dashed.DashOffset = 1
	elliptic := pen(6, JoinRound)
	elliptic.Height = 2
	elliptic.Angle = 0.5

	zigzag := polylinePath(
		vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 30, Y: 80},
		vec.Vec2{X: 50, Y: 10}, vec.Vec2{X: 70, Y: 80})
	uTurn := polylinePath(
		vec.Vec2{X: 10, Y: 30}, vec.Vec2{X: 50, Y: 30}, vec.Vec2{X: 20, Y: 30})
	curve := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 50}).
		CubeTo(vec.Vec2{X: 100, Y: 50}, vec.Vec2{X: 100, Y: 60}, vec.Vec2{X: 10, Y: 60}).
		QuadTo(vec.Vec2{X: 40, Y: 90}, vec.Vec2{X: 70, Y: 70}).
		Close()

	strokes := []stroke{
		{"open miter", zigzag, pen(4, JoinMiter), matrix.Identity},
		{"open round", zigzag, pen(4, JoinRound), matrix.Identity},
		{"closed miter", squarePath(10, 10, 50, 50), pen(4, JoinMiter), matrix.Identity},
		{"closed bevel", squarePath(10, 10, 50, 50), pen(4, JoinBevel), matrix.Identity},
		{"closed clipped", squarePath(10, 10, 50, 50), pen(4, JoinMiterClipped), matrix.Identity},
		{"closed dashed", squarePath(10, 10, 30, 30), dashed, matrix.Identity},
		{"dashed curve", curve, dashed, matrix.Identity},
		{"u-turn miter", uTurn, pen(4, JoinMiter), matrix.Identity},
		{"u-turn bevel", uTurn, pen(4, JoinBevel), matrix.Identity},
		{"elliptic curve", curve, elliptic, matrix.Identity},
		{"elliptic closed", squarePath(10, 10, 50, 50), elliptic, matrix.Identity},
		{"skewed curve", curve, pen(3, JoinRound), matrix.Matrix{1, 0.5, 0.2, 1, 5, 5}},
	}
	r := rand.New(rand.NewPCG(5, 6))
	for i := range 40 {
		strokes = append(strokes, stroke{fmt.Sprint("random ", i), randomPath(r), randomGeometry(r), randomCTM(r)})
	}

	for _, s := range strokes {
		rs := &railSink{}
		err := Stroke(s.p.Iter(), s.g, s.ctm, 0.1, rs)
		test.Error(t, err)
		test.That(t, !rs.open, s.name, "unfinished piece")
		test.T(t, len(rs.errs), 0, s.name, rs.errs)
	}
}
