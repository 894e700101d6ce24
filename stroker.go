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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Stroker accepts a path figure by figure and widens it.
//
// The path is given in user space.  Errors are kept until [Stroker.Close]
// is called; after an error all further input is ignored.
//
// Typical use:
//
//	s := NewStroker()
//	s.CTM = ctm
//	if err := s.Set(g, sink); err != nil {
//		...
//	}
//	s.BeginFigure(p0)
//	s.AddLine(p1)
//	s.EndFigure(false)
//	err := s.Close()
type Stroker struct {
	Widener

	err error

	seg segment

	// pt and vecIn are the device space end point and direction of the
	// last widened segment.
	pt, vecIn vec.Vec2
	vecOut    vec.Vec2

	// ptStart and vecStart are where the first piece of the figure began.
	// The start cap is drawn there once the figure is complete.
	ptStart, vecStart vec.Vec2

	// inputStart and lastVertex are in user space.
	inputStart, lastVertex vec.Vec2

	isPenDown       bool
	shouldPenBeDown bool

	skipped      bool
	skippedFirst bool

	startedWithoutCap bool

	lastSegWasGap   bool
	firstSegReached bool
	firstSegWasGap  bool
	containsGap     bool
}

// NewStroker returns a Stroker with the identity transformation and the
// default tolerance.
func NewStroker() *Stroker {
	s := &Stroker{}
	s.init()
	return s
}

// Set prepares the Stroker for a new path, stroked with pen g.
// See [Widener.Set].
func (s *Stroker) Set(g *Geometry, sink Sink) error {
	s.err = s.Widener.Set(g, sink)
	return s.err
}

// BeginFigure starts a new figure at pt.
func (s *Stroker) BeginFigure(pt vec.Vec2) {
	s.isPenDown = false
	s.skippedFirst = false
	s.shouldPenBeDown = false
	s.startedWithoutCap = false
	s.lastSegWasGap = false
	s.firstSegReached = false
	s.firstSegWasGap = false
	s.containsGap = false

	s.lastVertex = pt
	s.inputStart = pt
}

// EndFigure completes the current figure.  If closed is set, the figure
// is closed with a straight line back to its start point and the two ends
// are joined instead of capped.
func (s *Stroker) EndFigure(closed bool) {
	if s.err != nil {
		return
	}
	s.setErr(s.endFigure(closed))
}

func (s *Stroker) endFigure(closed bool) error {
	if closed && s.inputStart != s.lastVertex {
		err := s.addSegments([]vec.Vec2{s.inputStart}, 1)
		if err != nil {
			return err
		}
	}

	endedWithGap := !s.shouldPenBeDown
	abutting := closed && !s.firstSegWasGap && !endedWithGap

	if s.shouldPenBeDown {
		var err error
		switch {
		case abutting && s.isPenDown:
			err = s.target.DoCorner(s.ptStart, s.vecIn, s.vecStart, s.join,
				s.skipped || s.skippedFirst, s.joinIsSmooth(), true)
			if err == nil {
				err = s.target.EndStrokeClosed(s.ptStart, s.vecStart)
			}

		case !s.isPenDown && closed && !s.containsGap:
			// The whole figure was degenerate.  Draw a single point with
			// round caps.
			err = s.target.EndStrokeOpen(false, s.pt, s.vecIn, CapRound, CapRound)

		default:
			startCap := s.startCap
			if s.containsGap {
				startCap = s.dashCap
			}
			endCap := s.endCap
			if closed && s.firstSegWasGap {
				endCap = s.dashCap
			}
			err = s.target.EndStrokeOpen(s.isPenDown, s.pt, s.vecIn, endCap, startCap)
		}
		if err != nil {
			return err
		}
	}

	// The start cap was deferred until now.  It is drawn as a separate
	// piece of zero length.
	if s.startedWithoutCap {
		var c Cap
		switch {
		case !closed:
			c = s.startCap
		case endedWithGap:
			c = s.dashCap
		default:
			c = CapFlat
		}
		if c != CapFlat {
			err := s.target.StartFigure(s.ptStart, s.vecStart, false, c)
			if err != nil {
				return err
			}
			return s.target.EndStrokeClosed(s.ptStart, s.vecStart)
		}
	}
	return nil
}

// AddLine adds a straight line to pt.
func (s *Stroker) AddLine(pt vec.Vec2) {
	s.AddLines([]vec.Vec2{pt})
}

// AddLines adds a polyline through the given points.
func (s *Stroker) AddLines(pts []vec.Vec2) {
	if s.err != nil {
		return
	}
	s.setErr(s.addSegments(pts, 1))
}

// AddBezier adds a cubic Bezier curve.
func (s *Stroker) AddBezier(c1, c2, pt vec.Vec2) {
	s.AddBeziers([]vec.Vec2{c1, c2, pt})
}

// AddBeziers adds a sequence of cubic Bezier curves, given as two control
// points and an end point each.  Incomplete trailing points are ignored.
func (s *Stroker) AddBeziers(pts []vec.Vec2) {
	if s.err != nil {
		return
	}
	s.setErr(s.addSegments(pts[:len(pts)/3*3], 3))
}

// AddQuadraticBezier adds a quadratic Bezier curve.
func (s *Stroker) AddQuadraticBezier(c, pt vec.Vec2) {
	s.AddQuadraticBeziers([]vec.Vec2{c, pt})
}

// AddQuadraticBeziers adds a sequence of quadratic Bezier curves, given
// as a control point and an end point each.
func (s *Stroker) AddQuadraticBeziers(pts []vec.Vec2) {
	for i := 0; i+1 < len(pts); i += 2 {
		if s.err != nil {
			return
		}
		c, pt := pts[i], pts[i+1]
		cubic := []vec.Vec2{
			s.lastVertex.Mul(1.0 / 3).Add(c.Mul(2.0 / 3)),
			c.Mul(2.0 / 3).Add(pt.Mul(1.0 / 3)),
			pt,
		}
		s.setErr(s.addSegments(cubic, 3))
	}
}

// AddArc adds an elliptical arc.
func (s *Stroker) AddArc(a Arc) {
	pts := a.Beziers(s.lastVertex)
	if len(pts) == 0 {
		s.AddLine(a.End)
		return
	}
	s.AddBeziers(pts)
}

// Close returns the first error encountered since [Stroker.Set].
func (s *Stroker) Close() error {
	return s.err
}

// StrokePath widens all subpaths of p.  Subpaths without drawing
// operations are ignored.  Processing stops early once the sink reports
// that it has seen enough.
func (s *Stroker) StrokePath(p path.Path) error {
	if s.err != nil {
		return s.err
	}

	inFigure := false
	var start vec.Vec2
	haveStart := false
	for cmd, pts := range p {
		if s.err != nil || s.Aborted() {
			return s.err
		}

		if cmd == path.CmdMoveTo {
			if inFigure {
				s.EndFigure(false)
			}
			start = pts[0]
			haveStart = true
			s.BeginFigure(start)
			inFigure = true
			continue
		}
		if !inFigure {
			if !haveStart {
				continue
			}
			// drawing after a ClosePath continues from the subpath start
			s.BeginFigure(start)
			inFigure = true
		}

		switch cmd {
		case path.CmdLineTo:
			s.AddLine(pts[0])
		case path.CmdQuadTo:
			s.AddQuadraticBezier(pts[0], pts[1])
		case path.CmdCubeTo:
			s.AddBezier(pts[0], pts[1], pts[2])
		case path.CmdClose:
			s.EndFigure(true)
			inFigure = false
		}
	}
	if inFigure && !s.Aborted() {
		s.EndFigure(false)
	}
	return s.Close()
}

func (s *Stroker) setErr(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

// addSegments widens the segments in pts, each consisting of perSeg
// points.
func (s *Stroker) addSegments(pts []vec.Vec2, perSeg int) error {
	if len(pts) == 0 {
		return nil
	}

	if s.segmentIsGap() {
		err := s.doGap()
		if err != nil {
			return err
		}
		if !s.firstSegReached {
			s.firstSegWasGap = true
		}
		s.containsGap = true
		s.lastVertex = pts[len(pts)-1]
	} else {
		for i := 0; i+perSeg <= len(pts); i += perSeg {
			err := s.doSegment(pts[i : i+perSeg])
			if err != nil {
				return err
			}
			s.lastVertex = pts[i+perSeg-1]
		}
	}

	s.firstSegReached = true
	return nil
}

// doGap ends the current piece with a dash cap.
func (s *Stroker) doGap() error {
	if s.shouldPenBeDown {
		err := s.target.EndStrokeOpen(s.isPenDown, s.pt, s.vecIn, s.dashCap, CapFlat)
		if err != nil {
			return err
		}
		s.shouldPenBeDown = false
		s.isPenDown = false
	}
	s.lastSegWasGap = true
	return nil
}

// doSegment widens a line (one point) or a cubic Bezier curve (three
// points) starting at the last vertex.
func (s *Stroker) doSegment(pts []vec.Vec2) error {
	if !s.shouldPenBeDown {
		s.pt = transform(s.ctm, s.lastVertex)
		s.shouldPenBeDown = true
	}

	if len(pts) == 3 {
		s.cubic.Set(0, 1, s.pt, [3]vec.Vec2{pts[0], pts[1], pts[2]}, s.ctm)
		s.seg = &s.cubic
	} else {
		s.line.Set(0, 1, s.pt, pts[0], s.ctm)
		s.seg = &s.line
	}

	vecOut, ok := s.seg.FirstTangent()
	if !ok {
		s.skipped = true
		if !s.isPenDown {
			s.skippedFirst = true
		}
		return nil
	}
	s.vecOut = vecOut

	if s.isPenDown {
		err := s.target.DoCorner(s.pt, s.vecIn, s.vecOut, s.join,
			s.skipped, s.joinIsSmooth(), false)
		if err != nil {
			return err
		}
	} else {
		c := s.dashCap
		if !s.lastSegWasGap {
			// The real start of the stroke.  The start cap is added in
			// EndFigure, once it is known whether the figure is closed.
			s.startedWithoutCap = true
			c = CapFlat
			s.ptStart = s.pt
			s.vecStart = s.vecOut
		}
		err := s.target.StartFigure(s.pt, s.vecOut, !s.lastSegWasGap, c)
		if err != nil {
			return err
		}
		s.isPenDown = true
	}

	end, dir, err := s.seg.Widen(s.target)
	if err != nil {
		return err
	}
	s.pt, s.vecIn = end, dir
	s.skipped = false
	s.lastSegWasGap = false
	return nil
}

// segmentIsGap reports whether the current segment is left out of the
// stroke.  Gap segments are not supported by the input methods yet.
func (s *Stroker) segmentIsGap() bool {
	return false
}

// joinIsSmooth reports whether the current corner must be rounded
// regardless of the join style.
func (s *Stroker) joinIsSmooth() bool {
	return false
}
