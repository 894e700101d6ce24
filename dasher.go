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
	"log/slog"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Dasher sits between a [Widener] and its [Pen] and cuts the stroke
// into dashes.
//
// An edge is a smooth piece of a figure between two corners.  The dasher
// buffers the chords of the current edge, and at the next corner or at the
// end of the figure it walks along the edge and the dash pattern in lock
// step.  The pen is started, extended and ended at the dash boundaries.
//
// If a closed figure starts inside a dash, this first dash is started with
// a flat cap and left open.  The last dash of the figure then turns the
// closing corner and abuts it, so that the seam is invisible.
type Dasher struct {
	pen     *Pen
	dashCap Cap
	minLen  float64

	penDown         bool
	firstCapPending bool

	segs   segments
	dashes dashSequence
}

// Set configures the dasher for geometry g.  It returns an error wrapping
// [ErrInvalidDash] if the dash array cannot be used.
func (d *Dasher) Set(g *Geometry, ctm *matrix.Matrix, tuning Tuning, pen *Pen) error {
	d.pen = pen
	d.dashCap = g.DashCap
	d.minLen = tuning.MinDashLength
	d.penDown = false
	d.firstCapPending = false

	d.segs.fuzz = tuning.Fuzz
	d.segs.cxx, d.segs.cxy, d.segs.cyy = 1, 0, 1
	if ctm != nil {
		d.segs.cxx, d.segs.cxy, d.segs.cyy = Linear(*ctm).InverseQuadratic(tuning.Fuzz)
	}
	d.segs.Reset()

	err := d.dashes.Set(g, tuning.MinDashLength)
	if err != nil {
		Logger().Warn("dash array rejected",
			slog.Any("dashes", g.Dashes),
			slog.String("error", err.Error()))
		return err
	}
	Logger().Debug("dash pattern",
		slog.Any("boundaries", d.dashes.d),
		slog.Int("start", d.dashes.start))
	return nil
}

// StartFigure implements the [Target] interface.
func (d *Dasher) StartFigure(pt, dir vec.Vec2, closed bool, c Cap) error {
	d.dashes.Reset()

	d.penDown = d.dashes.IsOnDash()
	d.firstCapPending = false
	if d.penDown {
		if closed {
			// the last dash will abut the first one
			d.firstCapPending = true
			c = CapFlat
		}
		err := d.pen.StartFigure(pt, dir, false, c)
		if err != nil {
			return err
		}
	}

	d.segs.StartWith(pt, dir)
	return nil
}

// AcceptLinePoint implements the [Target] interface.
func (d *Dasher) AcceptLinePoint(pt vec.Vec2) error {
	d.segs.Add(pt, nil)
	return nil
}

// AcceptCurvePoint implements the [Target] interface.
func (d *Dasher) AcceptCurvePoint(pt, tan vec.Vec2, _ bool) error {
	d.segs.Add(pt, &tan)
	return nil
}

// DoCorner implements the [Target] interface.
// Corners inside smooth curves are ignored.
func (d *Dasher) DoCorner(pt, in, out vec.Vec2, join Join, skipped, round, closing bool) error {
	if round {
		return nil
	}

	err := d.flush(false)
	if err != nil {
		return err
	}
	if d.penDown {
		err = d.pen.DoCorner(pt, in, out, join, skipped, round, closing)
		if err != nil {
			return err
		}
	}
	d.segs.StartWith(pt, out)
	return nil
}

// EndStrokeOpen implements the [Target] interface.
func (d *Dasher) EndStrokeOpen(started bool, pt, dir vec.Vec2, endCap, startCap Cap) error {
	err := d.flush(true)
	if err != nil {
		return err
	}
	if d.penDown || (!started && d.dashes.IsOnDash()) {
		return d.pen.EndStrokeOpen(started, pt, dir, endCap, startCap)
	}
	return nil
}

// EndStrokeClosed implements the [Target] interface.
func (d *Dasher) EndStrokeClosed(pt, dir vec.Vec2) error {
	err := d.flush(!d.firstCapPending)
	if err != nil {
		return err
	}

	if d.penDown {
		if d.firstCapPending {
			// the first dash is waiting for this one
			return d.pen.EndStrokeClosed(pt, dir)
		}
		// the figure started with a gap
		return d.pen.EndStrokeOpen(true, pt, dir, d.dashCap, CapFlat)
	}
	if d.firstCapPending && d.dashCap != CapFlat {
		// The first dash was left open but no last dash arrived.
		// Finish it with a zero length dash.
		err = d.pen.StartFigure(pt, dir, false, d.dashCap)
		if err != nil {
			return err
		}
		return d.pen.EndStrokeClosed(pt, dir)
	}
	return nil
}

// UpdateOffset implements the [Target] interface.
func (d *Dasher) UpdateOffset(dir vec.Vec2) error {
	return d.pen.UpdateOffset(dir)
}

// Aborted implements the [Target] interface.
func (d *Dasher) Aborted() bool {
	return d.pen.Aborted()
}

// flush lays out the dashes along the buffered edge and empties the buffer.
func (d *Dasher) flush(lastEdge bool) error {
	defer d.segs.Reset()

	if d.segs.IsEmpty() {
		return nil
	}

	// A corner may fall exactly on a dash boundary.
	onDash := d.dashes.IsOnDash()
	if onDash != d.penDown {
		var err error
		if !d.penDown {
			err = d.startDash(0, false)
		} else {
			err = d.terminateDash(0, false)
		}
		if err != nil {
			return err
		}
	}

	d.dashes.PrepareForNewEdge()

	for done := false; !done; {
		dashEnd := d.dashes.NextEndpoint()
		segEnd := d.segs.CurrentEnd()
		onDash = d.dashes.IsOnDash()

		var err error
		switch {
		case d.segs.IsLast() && math.Abs(dashEnd-segEnd) < d.minLen:
			// dash and edge end together
			if d.penDown {
				err = d.extendDash(segEnd, true)
			}
			if err == nil {
				err = d.dashOrGapEndAtEdgeEnd(lastEdge, onDash)
			}
			done = true

		case dashEnd > segEnd:
			// the segment ends first
			if d.penDown {
				err = d.extendDash(segEnd, true)
			}
			done = d.segs.Increment()
			if err == nil && !done && d.segs.IsAtALine() {
				err = d.pen.UpdateOffset(d.segs.CurrentDirection())
				if errors.Is(err, errDegenerate) {
					// keep the previous offset for a segment without direction
					Logger().Debug("degenerate dash segment",
						slog.Float64("at", segEnd))
					err = nil
				}
			}
			d.dashes.AdvanceTo(segEnd)

		default:
			// the dash or gap ends first
			if d.penDown {
				if onDash {
					err = d.terminateDash(dashEnd, false)
				}
			} else if !onDash {
				err = d.startDash(dashEnd, false)
			}
			d.dashes.Increment()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// dashOrGapEndAtEdgeEnd handles a dash boundary which coincides with the
// end of the edge.
func (d *Dasher) dashOrGapEndAtEdgeEnd(lastEdge, onDash bool) error {
	if lastEdge {
		if !onDash {
			// A gap ends with the figure.  Start a zero length dash there,
			// so that the figure's end cap is drawn.
			return d.startDash(d.segs.Length(), true)
		}
		return nil
	}

	var err error
	if onDash {
		// Do not carry a dash which ends here around the corner.
		err = d.terminateDash(d.segs.Length(), true)
	}
	d.dashes.Increment()
	return err
}

func (d *Dasher) startDash(loc float64, atVertex bool) error {
	pt, _, seg := d.segs.PointAt(loc, atVertex)
	d.penDown = true
	return d.pen.StartFigure(pt, seg, false, d.dashCap)
}

func (d *Dasher) extendDash(loc float64, atVertex bool) error {
	pt, _, seg := d.segs.PointAt(loc, atVertex)
	if d.segs.IsAtALine() {
		return d.pen.AcceptLinePoint(pt)
	}
	return d.pen.AcceptCurvePoint(pt, seg, false)
}

func (d *Dasher) terminateDash(loc float64, atVertex bool) error {
	pt, _, seg := d.segs.PointAt(loc, atVertex)
	var err error
	if d.segs.IsAtALine() {
		err = d.pen.AcceptLinePoint(pt)
	} else {
		err = d.pen.AcceptCurvePoint(pt, seg, false)
	}
	if err != nil {
		return err
	}
	err = d.pen.EndStrokeOpen(true, pt, seg, d.dashCap, CapFlat)
	d.penDown = false
	return err
}

// segData describes the chord ending at one point of an edge.
type segData struct {
	isLine  bool
	end     vec.Vec2
	tangent vec.Vec2
	dir     vec.Vec2 // chord direction, per unit of user space length
	length  float64  // user space length of the edge up to end
}

// segments buffers the chords of one edge.  Entry 0 holds the start
// point of the edge.
type segments struct {
	data []segData
	cur  int

	// coefficients of the quadratic form giving user space lengths
	cxx, cxy, cyy float64
	fuzz          float64
}

// StartWith begins a new edge at pt.
func (s *segments) StartWith(pt, tan vec.Vec2) {
	s.data = append(s.data[:0], segData{
		isLine:  true,
		end:     pt,
		tangent: tan,
		dir:     tan,
	})
	s.cur = 1
}

// Add appends a chord ending at pt.  A nil tangent marks a straight line.
// Chords shorter than the fuzz are ignored.
func (s *segments) Add(pt vec.Vec2, tan *vec.Vec2) {
	if len(s.data) == 0 {
		return
	}
	last := &s.data[len(s.data)-1]
	v := pt.Sub(last.end)
	l := math.Sqrt(s.cxx*v.X*v.X + s.cxy*v.X*v.Y + s.cyy*v.Y*v.Y)
	if !(l >= s.fuzz) {
		return
	}

	seg := segData{
		isLine: tan == nil,
		end:    pt,
		dir:    v.Mul(1 / l),
		length: last.length + l,
	}
	if seg.isLine {
		seg.tangent = seg.dir
	} else {
		seg.tangent = *tan
	}
	s.data = append(s.data, seg)
}

func (s *segments) Reset() {
	s.data = s.data[:0]
	s.cur = 1
}

// IsEmpty reports whether the edge has no chords.
func (s *segments) IsEmpty() bool { return len(s.data) < 2 }

func (s *segments) IsLast() bool { return s.cur == len(s.data)-1 }

// Increment moves to the next chord and reports whether the edge is done.
func (s *segments) Increment() bool {
	s.cur++
	return s.cur >= len(s.data)
}

func (s *segments) CurrentEnd() float64 { return s.data[s.cur].length }

func (s *segments) Length() float64 { return s.data[len(s.data)-1].length }

func (s *segments) IsAtALine() bool { return s.data[s.cur].isLine }

func (s *segments) CurrentDirection() vec.Vec2 { return s.data[s.cur].dir }

// PointAt returns the point at edge length loc on the current chord,
// together with the tangent at the chord's end and the chord direction.
// If atEnd is set, the end of the chord is returned.
func (s *segments) PointAt(loc float64, atEnd bool) (pt, tan, dir vec.Vec2) {
	if s.cur >= len(s.data) {
		// nothing was added after the start point
		first := s.data[0]
		return first.end, first.dir, first.dir
	}

	c := s.data[s.cur]
	if atEnd || loc > c.length {
		return c.end, c.tangent, c.dir
	}
	p := s.data[s.cur-1]
	return p.end.Add(c.dir.Mul(max(0, loc-p.length))), c.tangent, c.dir
}

// dashSequence is a cursor into a periodic dash pattern.
//
// Locations inside the pattern ("dash space") are measured from the dash
// offset.  Locations along an edge ("edge space") are measured from the
// start of the edge.  The two differ by the location at the start of the
// edge and by the number of completed periods.
type dashSequence struct {
	// d holds the cumulative dash boundaries, shifted so that the dash
	// offset is at 0.  Odd indices end a dash, even indices end a gap.
	d      []float64
	length float64
	start  int

	cur   int     // index of the end of the current dash or gap
	iter  int     // periods completed since the start of the edge
	loc   float64 // current location in dash space
	edge0 float64 // loc at the start of the edge
}

// Set initialises the sequence from g.  Dash lengths are scaled by the pen
// size.  Patterns shorter than minLen are stretched to minLen, so that
// the dashing loop always makes progress.
func (q *dashSequence) Set(g *Geometry, minLen float64) error {
	n := len(g.Dashes)
	if n < 2 || n%2 != 0 {
		return fmt.Errorf("%w: %d entries", ErrInvalidDash, n)
	}

	penWidth := max(math.Abs(g.Width), math.Abs(g.Height))
	offset := g.DashOffset * penWidth

	q.d = append(q.d[:0], 0)
	for i, x := range g.Dashes {
		if x < 0 {
			return fmt.Errorf("%w: negative entry %g", ErrInvalidDash, x)
		}
		q.d = append(q.d, q.d[i]+x*penWidth)
	}
	if math.IsNaN(q.d[n]) || math.IsInf(q.d[n], 0) {
		return fmt.Errorf("%w: total length %g", ErrInvalidDash, q.d[n])
	}

	if q.d[n] < minLen {
		scale := minLen / q.d[n]
		for i := 0; i < n-1; i++ {
			x := q.d[i+1] * scale
			if !(x >= q.d[i]) {
				// includes NaN from a zero total
				x = q.d[i]
			} else if x > minLen {
				x = minLen
			}
			q.d[i+1] = x
		}
		q.d[n] = minLen
	}
	q.length = q.d[n]

	if !(offset >= 0 && offset < q.length) {
		offset = math.Mod(offset, q.length)
		if offset < 0 {
			offset += q.length
		}
		if !(offset >= 0 && offset < q.length) {
			offset = 0
		}
	}

	q.start = 1
	for q.start < n && q.d[q.start] < offset {
		q.start++
	}
	for i := range q.d {
		q.d[i] -= offset
	}

	q.cur = q.start
	q.loc = 0
	q.iter = 0
	return nil
}

// Reset moves the cursor back to the dash offset.
func (q *dashSequence) Reset() {
	q.cur = q.start
	q.loc = 0
}

// IsOnDash reports whether the cursor is inside a dash, rather than a gap.
func (q *dashSequence) IsOnDash() bool {
	return q.cur%2 == 1
}

// Increment moves to the next dash or gap.
func (q *dashSequence) Increment() {
	q.loc = q.d[q.cur]
	q.cur++
	if q.cur >= len(q.d) {
		q.cur = 1
		q.iter++
		q.loc = q.d[0]
	}
}

func (q *dashSequence) PrepareForNewEdge() {
	q.iter = 0
	q.edge0 = q.loc
}

// NextEndpoint returns the edge space location where the current dash or
// gap ends.
func (q *dashSequence) NextEndpoint() float64 {
	return q.toEdge(q.d[q.cur])
}

// AdvanceTo moves the cursor to the edge space location loc.
func (q *dashSequence) AdvanceTo(loc float64) {
	q.loc = loc - float64(q.iter)*q.length + q.edge0
}

func (q *dashSequence) toEdge(x float64) float64 {
	if q.iter == 0 {
		return x - q.edge0
	}
	return x - q.edge0 + float64(q.iter)*q.length
}
