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

// pieceSink turns every outline primitive into a small closed figure and
// hands it to emit.  The union of all figures is the stroke.
type pieceSink struct {
	cur  [2]vec.Vec2
	fig  path.Data
	emit func(fig *path.Data) error
}

func (s *pieceSink) begin(pt vec.Vec2) {
	s.fig.Cmds = s.fig.Cmds[:0]
	s.fig.Coords = s.fig.Coords[:0]
	s.fig.MoveTo(pt)
}

func (s *pieceSink) finish() error {
	s.fig.Close()
	return s.emit(&s.fig)
}

// StartWith implements the [Sink] interface.
func (s *pieceSink) StartWith(pts [2]vec.Vec2) error {
	s.cur = pts
	return nil
}

// SetCurrentPoints implements the [Sink] interface.
func (s *pieceSink) SetCurrentPoints(pts [2]vec.Vec2) error {
	s.cur = pts
	return nil
}

// QuadTo implements the [Sink] interface.
func (s *pieceSink) QuadTo(pts [2]vec.Vec2) error {
	s.begin(s.cur[Right])
	s.fig.LineTo(s.cur[Left]).LineTo(pts[Left]).LineTo(pts[Right])
	s.cur = pts
	return s.finish()
}

// CurveQuadTo implements the [Sink] interface.
//
// If a rail moves against the chord, the rail has folded back over the
// spine.  The figure then detours through the spine points, so that the
// area between the spine and the folded rail is covered.
func (s *pieceSink) CurveQuadTo(pts [2]vec.Vec2, segDir, spine, spinePrev vec.Vec2) error {
	left := pts[Left].Sub(s.cur[Left])
	if left.Dot(segDir) < 0 {
		if det(left, pts[Left].Sub(spine)) > 0 {
			s.begin(spinePrev)
			s.fig.LineTo(pts[Left])
		} else {
			s.begin(pts[Left])
			s.fig.LineTo(spinePrev)
		}
		s.fig.LineTo(s.cur[Left]).LineTo(spine)
	} else {
		s.begin(s.cur[Left])
	}
	s.fig.LineTo(pts[Left]).LineTo(pts[Right])

	right := pts[Right].Sub(s.cur[Right])
	if right.Dot(segDir) < 0 {
		s.fig.LineTo(spine).LineTo(s.cur[Right])
		if det(right, pts[Right].Sub(spine)) > 0 {
			s.fig.LineTo(spinePrev).LineTo(pts[Right])
		} else {
			s.fig.LineTo(pts[Right]).LineTo(spinePrev)
		}
	} else {
		s.fig.LineTo(s.cur[Right])
	}

	s.cur = pts
	return s.finish()
}

// CurveWedge implements the [Sink] interface.
func (s *pieceSink) CurveWedge(side Side, b1, b2, b3 vec.Vec2) error {
	s.begin(s.cur[side.Opposite()])
	s.fig.LineTo(s.cur[side]).CubeTo(b1, b2, b3)
	s.cur[side] = b3
	return s.finish()
}

// BezierCap implements the [Sink] interface.
func (s *pieceSink) BezierCap(start, c1, c2, mid, c3, c4, end vec.Vec2) error {
	s.begin(start)
	s.fig.CubeTo(c1, c2, mid).CubeTo(c3, c4, end)
	return s.finish()
}

// DoInnerCorner implements the [Sink] interface.
func (s *pieceSink) DoInnerCorner(side Side, _ vec.Vec2, next [2]vec.Vec2) error {
	s.cur[side] = next[side]
	return nil
}

// CapTriangle implements the [Sink] interface.
func (s *pieceSink) CapTriangle(start, apex, end vec.Vec2) error {
	s.begin(start)
	s.fig.LineTo(apex).LineTo(end)
	return s.finish()
}

// CapFlat implements the [Sink] interface.
func (s *pieceSink) CapFlat([2]vec.Vec2, Side) error {
	return nil
}

// PolylineWedge implements the [Sink] interface.
func (s *pieceSink) PolylineWedge(side Side, pts []vec.Vec2) error {
	if len(pts) == 0 {
		return nil
	}
	s.begin(s.cur[side.Opposite()])
	s.fig.LineTo(s.cur[side])
	for _, pt := range pts {
		s.fig.LineTo(pt)
	}
	s.cur[side] = pts[len(pts)-1]
	return s.finish()
}

// AddFigure implements the [Sink] interface.
func (s *pieceSink) AddFigure() error {
	return nil
}

// SwitchSides implements the [Sink] interface.
func (s *pieceSink) SwitchSides() error {
	s.cur[Left], s.cur[Right] = s.cur[Right], s.cur[Left]
	return nil
}
