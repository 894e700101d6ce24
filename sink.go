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

import "seehuhn.de/go/geom/vec"

// Sink receives the outline of a widened stroke as a sequence of
// primitive drawing operations.
//
// The outline is described by two rails, the left and the right offset
// curve, each with a current point.  Every method starts from the current
// points left by the previous call and updates them.  Index [Left] of
// a point pair refers to the left rail, index [Right] to the right rail.
type Sink interface {
	// StartWith begins a new stroke piece at the given rail points.
	StartWith(pts [2]vec.Vec2) error

	// SetCurrentPoints moves both rails without drawing.
	SetCurrentPoints(pts [2]vec.Vec2) error

	// QuadTo draws the quadrangle between the current rail points and pts.
	QuadTo(pts [2]vec.Vec2) error

	// CurveQuadTo is like QuadTo, for a chord of a flattened curve.
	// segDir is the direction of the chord, and spine and spinePrev are
	// its end and start points on the spine.  A rail which moves against
	// segDir has folded back over the spine.
	CurveQuadTo(pts [2]vec.Vec2, segDir, spine, spinePrev vec.Vec2) error

	// CurveWedge draws the region between the opposite rail's current
	// point and a cubic Bezier curve from the current point of side,
	// with control points b1, b2 and end point b3.
	CurveWedge(side Side, b1, b2, b3 vec.Vec2) error

	// BezierCap draws a cap made of two cubic Bezier arcs, from start
	// through mid to end.
	BezierCap(start, c1, c2, mid, c3, c4, end vec.Vec2) error

	// DoInnerCorner moves the rail on the inner side of a corner to the
	// start point of the next segment.
	DoInnerCorner(side Side, center vec.Vec2, next [2]vec.Vec2) error

	// CapTriangle draws a triangular cap.
	CapTriangle(start, apex, end vec.Vec2) error

	// CapFlat marks a flat cap.  It draws nothing.
	CapFlat(pts [2]vec.Vec2, side Side) error

	// PolylineWedge draws the region between the opposite rail's current
	// point and the polyline from the current point of side through pts.
	PolylineWedge(side Side, pts []vec.Vec2) error

	// AddFigure is called after each completed stroke piece.
	AddFigure() error

	// SwitchSides exchanges the two rails.  This is used at 180 degree
	// turns.
	SwitchSides() error

	// Aborted reports whether the sink needs no further input.
	Aborted() bool
}

// Target receives a flattened path, one segment and corner at a time.
// It is implemented by [*Pen], for solid lines, and by [*Dasher].
type Target interface {
	// StartFigure starts a stroke piece at pt, heading in direction dir.
	// closed indicates that the figure may later be closed.
	StartFigure(pt, dir vec.Vec2, closed bool, c Cap) error

	// AcceptLinePoint continues the current piece with a straight line to pt.
	AcceptLinePoint(pt vec.Vec2) error

	// AcceptCurvePoint continues the current piece along a flattened
	// curve to pt, where tan is the tangent of the curve at pt and last is
	// set for the final point of the curve.
	AcceptCurvePoint(pt, tan vec.Vec2, last bool) error

	// DoCorner joins the incoming direction in and the outgoing direction
	// out at pt.
	DoCorner(pt, in, out vec.Vec2, join Join, skipped, round, closing bool) error

	// EndStrokeOpen ends the current piece at pt with direction dir.
	// If started is false, nothing was drawn yet and the piece is
	// started first.
	EndStrokeOpen(started bool, pt, dir vec.Vec2, endCap, startCap Cap) error

	// EndStrokeClosed ends a closed figure at pt.
	EndStrokeClosed(pt, dir vec.Vec2) error

	// UpdateOffset sets the offset for a new segment direction.
	UpdateOffset(dir vec.Vec2) error

	// Aborted reports whether the sink needs no further input.
	Aborted() bool
}
