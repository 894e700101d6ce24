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

// terminalSide maps the start of a piece to the left rail and the end
// to the right rail.  A cap is drawn from the opposite rail to this one.
func terminalSide(t Terminal) Side {
	if t == Start {
		return Left
	}
	return Right
}

// baseCap connects the two rails at one end of a stroke piece.
// dir is the direction of the path at center, pointing away from the piece.
func (p *Pen) baseCap(t Terminal, center, dir vec.Vec2, c Cap) error {
	switch c {
	case CapSquare:
		return p.squareCap(t)

	case CapTriangle:
		apex := p.penVector(p.rad)
		if t == Start {
			apex = center.Sub(apex)
		} else {
			apex = center.Add(apex)
		}
		side := terminalSide(t)
		return p.sink.CapTriangle(p.cur[side.Opposite()], apex, p.cur[side])

	case CapRound:
		return p.roundCap(t, center)

	default:
		return p.sink.CapFlat(p.cur, terminalSide(t))
	}
}

// squareCap extends the piece by half the pen size and caps it flat.
func (p *Pen) squareCap(t Terminal) error {
	v := p.penVector(p.rad)

	if t == End {
		err := p.AcceptLinePoint(p.prev.Add(v))
		if err != nil {
			return err
		}
		return p.sink.CapFlat(p.cur, terminalSide(End))
	}

	// Move the start back by v and draw a quad to the original start.
	savedPrev := p.prev
	saved := p.cur
	err := p.setCurrentPoints(p.cur[Left].Sub(v), p.cur[Right].Sub(v))
	if err != nil {
		return err
	}
	p.prev = p.prev.Sub(v)
	err = p.sink.CapFlat(p.cur, terminalSide(Start))
	if err != nil {
		return err
	}
	err = p.sink.QuadTo(saved)
	if err != nil {
		return err
	}
	p.prev = savedPrev
	p.cur = saved
	return nil
}

// roundCap draws a half ellipse as two quarter arcs.
func (p *Pen) roundCap(t Terminal, center vec.Vec2) error {
	side := terminalSide(t)
	end := p.cur[side]
	start := p.cur[side.Opposite()]

	across := end.Sub(center).Mul(arcAsBezier)
	along := p.penVector(p.rad)
	if t == Start {
		along = along.Mul(-1)
	}
	mid := center.Add(along)
	along = along.Mul(arcAsBezier)

	return p.sink.BezierCap(start,
		start.Add(along),
		mid.Sub(across),
		mid,
		mid.Add(across),
		end.Add(along),
		end)
}
