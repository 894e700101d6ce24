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
	"log/slog"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Pen converts a flattened path in device space into the outline of the
// stroke, and sends the outline to a [Sink].
//
// The pen tip is the image of a circle ("nominal circle") under a linear
// map.  For every direction along the path, the pen finds the point on the
// nominal circle whose image points in that direction (the "radius
// vector").  The radius vector turned by 90 degrees and mapped to device
// space gives the offset from the spine to the two rails.
//
// Curves are approximated by chords.  When consecutive chord directions
// differ by more than the approximation tolerance allows for the given pen
// size, extra round joins are inserted so that the outside of wide curved
// strokes does not look faceted.
//
// A Pen is set up by [Widener.Set] and used for a single stroke.
type Pen struct {
	sink   Sink
	tuning Tuning

	matrix   Matrix22 // pen space to device space
	inverse  Matrix22
	wToD     Matrix22 // world space to device space
	circular bool

	radius       float64
	radSq        float64
	nominalLimit float64
	miterLimit   float64
	miterLimitSq float64

	// threshold is compared to the dot product of consecutive radius
	// vectors, to decide whether a curve needs to be rounded.
	threshold float64

	// running state
	rad     vec.Vec2    // current radius vector
	offset  vec.Vec2    // current offset vector
	cur     [2]vec.Vec2 // current points of the left and right rail
	prev    vec.Vec2    // previous point on the spine
	vecPrev vec.Vec2    // previous direction on the spine
}

// Set configures the pen for geometry g under the transformation ctm,
// which maps user space to device space.  A nil ctm means the identity.
// Set returns [ErrEmptyPen] if the pen is too thin to draw anything at
// approximation tolerance tol.
func (p *Pen) Set(g *Geometry, ctm *matrix.Matrix, tol float64, tuning Tuning, sink Sink) error {
	p.sink = sink
	p.tuning = tuning

	if !p.setShape(g, ctm, tol*penThresholdFactor) {
		Logger().Warn("empty pen",
			slog.Float64("width", g.Width),
			slog.Float64("height", g.Height),
			slog.Float64("tolerance", tol))
		return ErrEmptyPen
	}

	p.wToD.Reset()
	if ctm != nil {
		p.wToD = Linear(*ctm)
	}

	p.nominalLimit = max(g.MiterLimit, 1)
	p.miterLimit = p.nominalLimit * p.radius
	p.miterLimitSq = p.miterLimit * p.miterLimit
	p.radSq = p.radius * p.radius

	p.setThreshold(ctm, tol)

	Logger().Debug("pen set",
		slog.Float64("radius", p.radius),
		slog.Bool("circular", p.circular),
		slog.Float64("threshold", p.threshold))
	return nil
}

// setShape computes the pen matrix, radius and the circular flag.
// It returns false if the pen is empty at the given threshold.
//
// A circular pen is modelled as a circle of the given radius, with the
// identity matrix.  Any other pen is the unit circle mapped by the matrix.
func (p *Pen) setShape(g *Geometry, ctm *matrix.Matrix, thr float64) bool {
	w := g.Width / 2
	h := g.Height / 2
	thrSq := thr * thr

	if g.Angle == 0 {
		p.matrix = Matrix22{M11: w, M22: h}
	} else {
		s, c := math.Sincos(g.Angle)
		p.matrix = Matrix22{
			M11: w * c, M12: -w * s,
			M21: h * s, M22: h * c,
		}
	}

	var ok bool
	if ctm != nil {
		p.matrix.Prepend(*ctm)
		sqMax, iso := p.matrix.IsIsotropic()
		if !(sqMax >= thrSq) {
			return false
		}
		p.circular = iso
		if iso {
			p.radius = math.Sqrt(sqMax)
			p.matrix.Reset()
			return true
		}
		p.inverse, ok = p.matrix.Finalize(thrSq)
		p.radius = 1
		return ok
	}

	p.circular = g.Width == g.Height
	if p.circular {
		p.radius = w
		return w >= thr
	}
	p.inverse, ok = p.matrix.Finalize(thrSq)
	p.radius = 1
	return ok
}

// setThreshold sets the threshold for refining the flattening of curves.
//
// Under the transformation, the nominal circle is contained in a circle of
// radius r.  The chord between two directions at angle a deviates from the
// arc by r*(1 - cos(a/2)).  This is within tol if
// cos(a) >= 2*(1 - tol/r)^2 - 1.  The test is applied to the dot product
// of two radius vectors, so the threshold is scaled by radius^2.
func (p *Pen) setThreshold(ctm *matrix.Matrix, tol float64) {
	r := p.radius
	if ctm != nil {
		r *= Linear(*ctm).MaxFactor()
	}
	if r < tol {
		p.threshold = -2
	} else {
		t := 1 - tol/r
		p.threshold = 2*t*t - 1
	}
	p.threshold *= p.radSq
}

// computeRadiusVector returns the radius vector for a direction in device
// space.  It returns false if the direction is too short.
func (p *Pen) computeRadiusVector(dir vec.Vec2) (vec.Vec2, bool) {
	rad := dir
	if !p.circular {
		rad = p.inverse.Transform(rad)
	}
	l := rad.Length()
	if !(l > p.radius*p.tuning.Fuzz) {
		return vec.Vec2{}, false
	}
	return rad.Mul(p.radius / l), true
}

// offsetVector returns the offset from the spine to the right rail, for the
// given radius vector.
func (p *Pen) offsetVector(rad vec.Vec2) vec.Vec2 {
	off := turnRight(rad)
	if !p.circular {
		off = p.matrix.Transform(off)
	}
	return off
}

// penVector maps a radius vector to device space.
func (p *Pen) penVector(rad vec.Vec2) vec.Vec2 {
	if p.circular {
		return rad
	}
	return p.matrix.Transform(rad)
}

func (p *Pen) setRadiusVector(rad vec.Vec2) {
	p.rad = rad
	p.offset = p.offsetVector(rad)
}

// UpdateOffset implements the [Target] interface.
// It returns [errDegenerate] if dir is too short.
func (p *Pen) UpdateOffset(dir vec.Vec2) error {
	rad, ok := p.computeRadiusVector(dir)
	if !ok {
		return errDegenerate
	}
	p.setRadiusVector(rad)
	return nil
}

// turningInfo classifies the corner between the directions in and out.
// It returns false if the corner is not a turn at all.  Otherwise, side is
// the outer side of the turn.
func (p *Pen) turningInfo(in, out vec.Vec2) (d, dot float64, side Side, is180, ok bool) {
	d = det(in, out)
	dot = in.Dot(out)
	side = Right
	if math.Abs(d) <= math.Abs(dot)*p.tuning.LengthFuzz {
		if dot > 0 {
			return d, dot, side, false, false
		}
		is180 = true
	} else if d > 0 {
		side = Left
	}
	return d, dot, side, is180, true
}

// setCurrentPoints moves both rails without drawing.
func (p *Pen) setCurrentPoints(left, right vec.Vec2) error {
	p.cur = [2]vec.Vec2{left, right}
	return p.sink.SetCurrentPoints(p.cur)
}

// railPoints returns the left and right rail points for spine point pt.
func (p *Pen) railPoints(pt vec.Vec2) [2]vec.Vec2 {
	return [2]vec.Vec2{pt.Sub(p.offset), pt.Add(p.offset)}
}

// StartFigure implements the [Target] interface.
// If dir is too short, the piece starts in the device space image of the
// horizontal direction.
func (p *Pen) StartFigure(pt, dir vec.Vec2, _ bool, c Cap) error {
	err := p.UpdateOffset(dir)
	if err != nil {
		dir = p.wToD.Transform(vec.Vec2{X: 1})
		err = p.UpdateOffset(dir)
		if err != nil {
			return err
		}
	}
	p.prev = pt
	p.vecPrev = dir
	p.cur = p.railPoints(pt)
	err = p.sink.StartWith(p.cur)
	if err != nil {
		return err
	}
	return p.baseCap(Start, pt, dir.Mul(-1), c)
}

// AcceptLinePoint implements the [Target] interface.
func (p *Pen) AcceptLinePoint(pt vec.Vec2) error {
	p.cur = p.railPoints(pt)
	p.prev = pt
	return p.sink.QuadTo(p.cur)
}

// AcceptCurvePoint implements the [Target] interface.
//
// If the pen turns by too much between the previous point and pt, the
// chord is drawn as a straight segment with round joins at both ends.
// The round join at pt only moves the outer rail.  The inner rail is fixed
// by the next chord, or by an extra step after the last one.
func (p *Pen) AcceptCurvePoint(pt, tan vec.Vec2, last bool) error {
	rad, ok := p.computeRadiusVector(tan)
	if !ok {
		return nil
	}

	seg := pt.Sub(p.prev)
	var err error
	if p.rad.Dot(rad) < p.threshold {
		if segRad, ok := p.computeRadiusVector(seg); ok {
			err = p.roundTo(segRad, p.prev, p.vecPrev, seg)
		}
		if err == nil {
			err = p.processCurvePoint(pt, seg)
		}
		if err == nil {
			err = p.roundTo(rad, pt, seg, tan)
		}
		if err == nil && last {
			err = p.processCurvePoint(pt, tan)
		}
	} else {
		p.setRadiusVector(rad)
		err = p.processCurvePoint(pt, seg)
	}

	p.vecPrev = tan
	p.prev = pt
	return err
}

func (p *Pen) processCurvePoint(pt, seg vec.Vec2) error {
	p.cur = p.railPoints(pt)
	return p.sink.CurveQuadTo(p.cur, seg, pt, p.prev)
}

// EndStrokeOpen implements the [Target] interface.
// If started is false, the stroke is drawn as a single point with
// a horizontal direction.
func (p *Pen) EndStrokeOpen(started bool, pt, dir vec.Vec2, endCap, startCap Cap) error {
	if !started {
		v := p.wToD.Transform(vec.Vec2{X: 1})
		err := p.StartFigure(pt, v, false, startCap)
		if err != nil {
			return err
		}
	}
	err := p.baseCap(End, pt, dir, endCap)
	if err != nil {
		return err
	}
	return p.sink.AddFigure()
}

// EndStrokeClosed implements the [Target] interface.
func (p *Pen) EndStrokeClosed(pt, dir vec.Vec2) error {
	err := p.baseCap(End, pt, dir, CapFlat)
	if err != nil {
		return err
	}
	return p.sink.AddFigure()
}

// Aborted implements the [Target] interface.
func (p *Pen) Aborted() bool {
	return p.sink.Aborted()
}
