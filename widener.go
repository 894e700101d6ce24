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
	"seehuhn.de/go/geom/matrix"
)

// Widener turns the segments of a path into calls to a [Sink].
//
// The exported fields may be changed between strokes.  Changes take
// effect on the next call to [Widener.Set].
type Widener struct {
	// CTM maps user space to device space.  The pen and the dash pattern
	// are given in user space, the tolerance and the output in device
	// space.
	CTM matrix.Matrix

	// Tolerance is the maximal distance between a curve and the polygon
	// used to approximate it, in device space units.
	Tolerance float64

	// Tuning holds the numerical tolerances.
	Tuning Tuning

	pen    Pen
	dasher Dasher

	// target is the pen for solid strokes, and the dasher otherwise.
	target Target

	ctm *matrix.Matrix

	startCap, endCap, dashCap Cap
	join                      Join

	line  lineSegment
	cubic cubicSegment
}

// NewWidener returns a Widener with the identity transformation and the
// default tolerance.
func NewWidener() *Widener {
	w := &Widener{}
	w.init()
	return w
}

func (w *Widener) init() {
	w.CTM = matrix.Identity
	w.Tolerance = defaultTolerance
	w.Tuning = DefaultTuning
	w.join = JoinRound
	w.target = &w.pen
}

// Set prepares the Widener for stroking with pen g.  Output is written
// to sink.
//
// Set returns an error wrapping [ErrInvalidDash] if the dash pattern of
// g cannot be used, and otherwise [ErrEmptyPen] if the pen is too small
// to produce visible output.
func (w *Widener) Set(g *Geometry, sink Sink) error {
	tol := max(w.Tolerance, MinTolerance)

	w.ctm = nil
	if w.CTM != matrix.Identity {
		ctm := w.CTM
		w.ctm = &ctm
	}

	w.startCap = g.StartCap
	w.endCap = g.EndCap
	w.dashCap = g.DashCap
	w.join = g.Join

	w.line.fuzz = w.Tuning.LengthFuzz * tol
	w.cubic.fuzz = w.Tuning.LengthFuzz * tol
	w.cubic.tolerance = tol

	// An invalid dash array is reported even if the pen is empty.
	w.target = &w.pen
	if g.IsDashed() {
		err := w.dasher.Set(g, w.ctm, w.Tuning, &w.pen)
		if err != nil {
			return err
		}
		w.target = &w.dasher
	}

	return w.pen.Set(g, w.ctm, tol, w.Tuning, sink)
}

// Aborted reports whether the sink has seen enough output.
func (w *Widener) Aborted() bool {
	return w.target.Aborted()
}
