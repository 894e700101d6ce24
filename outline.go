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

// OutlineSink is a [Sink] which collects the stroke as a path in device
// space.  The path consists of many small, positively oriented closed
// subpaths.  Filling it with the nonzero winding rule gives the stroke.
type OutlineSink struct {
	pieceSink

	// Path receives the outline.
	Path *path.Data
}

// NewOutlineSink returns a sink which appends to a new, empty path.
func NewOutlineSink() *OutlineSink {
	s := &OutlineSink{Path: &path.Data{}}
	s.emit = s.appendFigure
	return s
}

// Aborted implements the [Sink] interface.
func (s *OutlineSink) Aborted() bool {
	return false
}

// appendFigure appends the single closed subpath fig to the outline,
// reversing it if needed.
func (s *OutlineSink) appendFigure(fig *path.Data) error {
	if signedArea(fig.Coords) >= 0 {
		s.Path.Cmds = append(s.Path.Cmds, fig.Cmds...)
		s.Path.Coords = append(s.Path.Coords, fig.Coords...)
		return nil
	}

	// Walk the segments backwards.  Each segment ends in the last of its
	// points and starts at the last point of the segment before.
	type seg struct {
		cmd path.Command
		k   int // index of the first point
		n   int
	}
	var segs []seg
	k := 0
	for _, cmd := range fig.Cmds {
		n := 0
		switch cmd {
		case path.CmdMoveTo, path.CmdLineTo:
			n = 1
		case path.CmdQuadTo:
			n = 2
		case path.CmdCubeTo:
			n = 3
		}
		if cmd != path.CmdMoveTo && cmd != path.CmdClose {
			segs = append(segs, seg{cmd, k, n})
		}
		k += n
	}
	if len(segs) == 0 {
		return nil
	}

	c := fig.Coords
	out := s.Path
	last := segs[len(segs)-1]
	out.MoveTo(c[last.k+last.n-1])
	for i := len(segs) - 1; i >= 0; i-- {
		sg := segs[i]
		start := c[sg.k-1]
		switch sg.cmd {
		case path.CmdLineTo:
			out.LineTo(start)
		case path.CmdQuadTo:
			out.QuadTo(c[sg.k], start)
		case path.CmdCubeTo:
			out.CubeTo(c[sg.k+1], c[sg.k], start)
		}
	}
	out.Close()
	return nil
}

// signedArea returns twice the signed area of the polygon through pts.
func signedArea(pts []vec.Vec2) float64 {
	if len(pts) < 3 {
		return 0
	}
	var a float64
	prev := pts[len(pts)-1]
	for _, pt := range pts {
		a += det(prev, pt)
		prev = pt
	}
	return a
}
