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

	"seehuhn.de/go/geom/vec"
)

// DoCorner implements the [Target] interface.
//
// If skipped is set, the corner straddles a degenerate segment.  Such
// corners are mitered with miter limit 1, so that they look like a very
// short segment, unless the join is round.  If round is set, the corner is
// rounded whatever the join style.
func (p *Pen) DoCorner(center, in, out vec.Vec2, join Join, skipped, round, closing bool) error {
	if round {
		join = JoinRound
	} else if skipped && join != JoinRound {
		savedNominal, savedLimit, savedLimitSq := p.nominalLimit, p.miterLimit, p.miterLimitSq
		defer func() {
			p.nominalLimit, p.miterLimit, p.miterLimitSq = savedNominal, savedLimit, savedLimitSq
		}()
		p.nominalLimit = 1
		p.miterLimit = p.radius
		p.miterLimitSq = p.radSq
		join = JoinMiter
	}

	rad, ok := p.computeRadiusVector(out)
	if !ok {
		return nil
	}
	off := p.offsetVector(rad)
	next := [2]vec.Vec2{center.Sub(off), center.Add(off)}

	d, _, side, is180, ok := p.turningInfo(in, out)
	if !ok {
		// not a turn, keep the current points
		return nil
	}

	var err error
	switch join {
	case JoinMiterClipped, JoinBevel:
		if is180 {
			err = p.switchSides()
			break
		}
		err = p.innerCorner(side.Opposite(), center, next)
		if err != nil {
			break
		}
		if join == JoinMiterClipped {
			if _, miter, ok := p.miterPoint(rad, d, p.cur[side], in, next[side], out); ok {
				err = p.miterTo(side, miter, next[side], closing)
				break
			}
		}
		err = p.bevelCorner(side, next[side])

	case JoinMiter:
		if is180 {
			err = p.do180DegreesMiter()
			break
		}
		err = p.innerCorner(side.Opposite(), center, next)
		if err != nil {
			break
		}
		dot, miter, ok := p.miterPoint(rad, d, p.cur[side], in, next[side], out)
		if ok {
			err = p.miterTo(side, miter, next[side], closing)
		} else {
			err = p.limitedMiter(next[side], dot, rad, side)
		}

	case JoinRound:
		err = p.innerCorner(side.Opposite(), center, next)
		if err == nil {
			err = p.roundCorner(center, p.cur[side], next[side], rad, side)
		}
	}
	if err != nil {
		return err
	}

	p.rad = rad
	p.offset = off
	p.prev = center
	p.vecPrev = out
	return nil
}

// innerCorner moves the rail on the inner side of a corner to the start
// of the next segment.
func (p *Pen) innerCorner(side Side, center vec.Vec2, next [2]vec.Vec2) error {
	p.cur[side] = next[side]
	return p.sink.DoInnerCorner(side, center, next)
}

// switchSides exchanges the rails after a 180 degree turn.
func (p *Pen) switchSides() error {
	p.cur[Left], p.cur[Right] = p.cur[Right], p.cur[Left]
	return p.sink.SwitchSides()
}

// roundTo rounds the outer corner from the current direction to the
// direction with radius vector rad.  Only the outer rail is updated.
func (p *Pen) roundTo(rad, center, in, out vec.Vec2) error {
	off := p.offsetVector(rad)
	next := [2]vec.Vec2{center.Sub(off), center.Add(off)}

	side := Right
	if det(in, out) > 0 {
		side = Left
	}
	err := p.roundCorner(center, p.cur[side], next[side], rad, side)
	if err != nil {
		return err
	}

	p.rad = rad
	p.offset = off
	p.prev = center
	return nil
}

// miterTo draws the outer corner to the miter point.  On the closing
// corner of a figure the rail continues to nextStart, so that it ends
// exactly where the figure started.
func (p *Pen) miterTo(side Side, miter, nextStart vec.Vec2, extended bool) error {
	if extended {
		p.cur[side] = nextStart
		return p.sink.PolylineWedge(side, []vec.Vec2{miter, nextStart})
	}
	p.cur[side] = miter
	return p.sink.PolylineWedge(side, []vec.Vec2{miter})
}

// bevelCorner connects the outer rail straight to next.
func (p *Pen) bevelCorner(side Side, next vec.Vec2) error {
	p.cur[side] = next
	return p.sink.PolylineWedge(side, []vec.Vec2{next})
}

// miterPoint computes the outer miter point of a corner, where ptIn and
// ptNext are the outer rail points of the incoming and outgoing segment.
// It returns false if no miter can be drawn within the miter limit.
// In either case dot is minus the dot product of the two radius vectors.
//
// The miter point is ptIn + s*in = ptNext + t*out with s > 0 and t < 0.
// By Cramer's rule, s = det(ptNext-ptIn, out) / det(in, out) and
// t = det(ptNext-ptIn, in) / det(in, out).  The signs are checked before
// dividing.
//
// In pen space the distance from the corner to the miter point is
// R/sin(a/2) where a is the angle at the corner.  This is at most L if
// cos(a) <= 1 - 2R^2/L^2.  With R^2 cos(a) = dot this becomes
// dot*L^2 <= R^2 (L^2 - 2R^2).
func (p *Pen) miterPoint(rad vec.Vec2, d float64, ptIn, in, ptNext, out vec.Vec2) (dot float64, miter vec.Vec2, ok bool) {
	dot = -rad.Dot(p.rad)

	pt := ptNext.Sub(ptIn)
	inNum := det(pt, out)
	outNum := det(pt, in)
	fuzz := p.tuning.Fuzz
	if d < 0 {
		ok = inNum < 0 && outNum > 0 && d < inNum*fuzz
	} else {
		ok = inNum > 0 && outNum < 0 && d > inNum*fuzz
	}
	if !ok {
		// The segments are almost collinear.  A smooth join is glossed
		// over, a near 180 degree turn cannot be mitered.
		if dot < 0 {
			return dot, ptNext, true
		}
		return dot, vec.Vec2{}, false
	}

	miter = ptIn.Add(in.Mul(inNum / d))
	ok = dot*p.miterLimitSq <= p.radSq*(p.miterLimitSq-2*p.radSq)
	return dot, miter, ok
}

// limitedMiter clips a corner whose miter exceeds the miter limit.
//
// In pen space, the clipping line is at distance L*r from the corner.
// Along the outer rail, the clip point is s away from the offset point,
// where s/r = (L - sin(a/2)) / cos(a/2).  With the half angle formulas
// and cos(a) = dot/r^2 this becomes
// s/r = (L*r - sqrt((r^2-dot)/2)) / sqrt((r^2+dot)/2).
// The vector from the offset point to the clip point is s/r times the
// radius vector mapped to device space.
func (p *Pen) limitedMiter(ptNext vec.Vec2, dot float64, radNext vec.Vec2, side Side) error {
	denom := (p.radSq + dot) / 2
	if !(denom > 0) {
		return nil
	}
	denom = math.Sqrt(denom)
	ratio := math.Sqrt(max(0, (p.radSq-dot)/2))
	ratio = max(0, p.miterLimit-ratio)
	if !(denom > ratio*p.tuning.Fuzz) {
		return nil
	}
	ratio /= denom

	v := p.penVector(p.rad)
	w := p.penVector(radNext)
	pts := []vec.Vec2{
		p.cur[side].Add(v.Mul(ratio)),
		ptNext.Sub(w.Mul(ratio)),
		ptNext,
	}
	p.cur[side] = ptNext
	return p.sink.PolylineWedge(side, pts)
}

// do180DegreesMiter handles a miter join where the path turns back on
// itself.  Both rails are pushed forward to the miter limit and then
// exchanged.
func (p *Pen) do180DegreesMiter() error {
	v := p.penVector(p.rad).Mul(p.nominalLimit)
	err := p.setCurrentPoints(p.cur[Left].Add(v), p.cur[Right].Add(v))
	if err != nil {
		return err
	}
	return p.switchSides()
}

// roundCorner draws the arc of the pen around the outer side of a corner,
// from ptIn to ptNext.  rad is the radius vector of the outgoing segment.
//
// The arc is computed in pen space, where it is circular, and uses one
// Bezier curve for turns up to 90 degrees and two otherwise.
func (p *Pen) roundCorner(center, ptIn, ptNext, rad vec.Vec2, side Side) error {
	defer func() { p.cur[side] = ptNext }()

	r := rad.Dot(p.rad)
	switch {
	case r > p.threshold:
		// flat enough for a straight line
		return p.sink.PolylineWedge(side, []vec.Vec2{ptNext})

	case r >= 0:
		k := bezierDistance(r, p.radius)
		b1 := ptIn.Add(p.penVector(p.rad).Mul(k))
		b2 := ptNext.Sub(p.penVector(rad).Mul(k))
		return p.sink.CurveWedge(side, b1, b2, ptNext)
	}

	// The midpoint of the arc has radius vector c with c^2 = a*b, where
	// a and b are the two radius vectors read as complex numbers.
	c2Real := rad.X*p.rad.X - rad.Y*p.rad.Y
	c2Imag := rad.X*p.rad.Y + rad.Y*p.rad.X
	l := p.radius * p.radius
	mid := vec.Vec2{
		X: math.Sqrt(math.Abs(0.5 * (l + c2Real))),
		Y: math.Sqrt(math.Abs(0.5 * (l - c2Real))),
	}
	if !(c2Imag > 0) {
		mid.Y = -mid.Y
	}

	// -c is the other square root; pick the one on the outer side.
	dir := turnRight(rad)
	if side == Left {
		dir = dir.Mul(-1)
	}
	if mid.Dot(dir) < 0 {
		mid = mid.Mul(-1)
	}

	k := bezierDistance(math.Abs(rad.Dot(mid)), p.radius)

	ptMid := turnRight(mid)
	if side == Left {
		ptMid = ptMid.Mul(-1)
	}
	if !p.circular {
		ptMid = p.matrix.Transform(ptMid)
	}
	ptMid = ptMid.Add(center)

	bm := p.penVector(mid).Mul(k)
	err := p.sink.CurveWedge(side, ptIn.Add(p.penVector(p.rad).Mul(k)), ptMid.Sub(bm), ptMid)
	if err != nil {
		return err
	}
	return p.sink.CurveWedge(side, ptMid.Add(bm), ptNext.Sub(p.penVector(rad).Mul(k)), ptNext)
}

// bezierDistance returns the relative distance of the control points of
// a cubic Bezier arc from its end points, for a circular arc of radius
// r between two radius vectors with dot product dot.
//
// For an arc of angle a the distance is 4/3*tan(a/4).  Using
// tan(a/4) = sin(a/2) / (1 + cos(a/2)) and the half angle formulas,
// this is 4/3 * sqrt((r^2-dot)/2) / (r + sqrt((r^2+dot)/2)).
func bezierDistance(dot, r float64) float64 {
	rSq := r * r
	s := math.Sqrt(max(0, (rSq-dot)/2))
	c := math.Sqrt(max(0, (rSq+dot)/2))
	denom := r + c
	if !(denom > 0) {
		return 0
	}
	return 4.0 / 3.0 * s / denom
}
