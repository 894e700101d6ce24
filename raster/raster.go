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

// Package raster converts filled paths into anti-aliased pixel coverage.
//
// The main use is to display the outlines produced by the widen package,
// which must be filled with the nonzero winding rule.
package raster

import (
	"image"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Rule selects how the winding number of a point is mapped to coverage.
type Rule uint8

// These are the supported fill rules.
const (
	NonZero Rule = iota
	EvenOdd
)

func (r Rule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return "unknown rule"
	}
}

// Rasteriser computes pixel coverage for paths.
// One instance can be reused for many paths.  Internal buffers grow
// as needed and are kept between calls.
type Rasteriser struct {
	// CTM maps the path to device space.  It must be invertible.
	CTM matrix.Matrix

	// Clip is the device space output region.  The coordinates must be
	// integers.
	Clip rect.Rect

	// Flatness is the maximal distance between a curve and its polygonal
	// approximation, in device pixels.
	Flatness float64

	// smallArea is the largest bounding box area, in pixels, which is
	// rasterised with a full two-dimensional buffer.
	smallArea int

	edges []edge
	box   edgeBox

	cover     []float32
	area      []float32
	active    []int
	rowMin    []int
	rowMax    []int
	crossings []float64
}

// NewRasteriser returns a Rasteriser for the given clip rectangle, using
// the identity transformation and the default flatness.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the defaults of [NewRasteriser], keeping the allocated
// buffers.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.smallArea = smallPathThreshold

	r.edges = r.edges[:0]
	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.active = r.active[:0]
	r.rowMin = r.rowMin[:0]
	r.rowMax = r.rowMax[:0]
	r.crossings = r.crossings[:0]
}

// FillNonZero fills p with the nonzero winding rule.
// See [Rasteriser.Fill].
func (r *Rasteriser) FillNonZero(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.Fill(p, NonZero, emit)
}

// FillEvenOdd fills p with the even-odd rule.
// See [Rasteriser.Fill].
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.Fill(p, EvenOdd, emit)
}

// Fill computes the coverage of p and passes it to emit, one row at a
// time.  Rows without coverage are skipped, and zeros at both ends of a
// row are trimmed.  The coverage slice is only valid during the call.
func (r *Rasteriser) Fill(p *path.Data, rule Rule, emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := r.collectEdges(p)
	if !ok {
		return
	}

	if (xMax-xMin)*(yMax-yMin) < r.smallArea {
		r.fillSmall(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.fillLarge(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// Mask fills p and returns the coverage as an alpha mask covering the
// clip rectangle.
func (r *Rasteriser) Mask(p *path.Data, rule Rule) *image.Alpha {
	bounds := image.Rect(int(r.Clip.LLx), int(r.Clip.LLy), int(r.Clip.URx), int(r.Clip.URy))
	img := image.NewAlpha(bounds)
	r.Fill(p, rule, func(y, xMin int, coverage []float32) {
		row := img.Pix[img.PixOffset(xMin, y):]
		for i, c := range coverage {
			row[i] = uint8(math.Round(float64(c) * 255))
		}
	})
	return img
}

// edge is a non-horizontal line segment in device space.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

func (e *edge) top() float64    { return min(e.y0, e.y1) }
func (e *edge) bottom() float64 { return max(e.y0, e.y1) }

// xAt returns the x coordinate of the edge's line at height y.
func (e *edge) xAt(y float64) float64 {
	return e.x0 + e.dxdy*(y-e.y0)
}

// edgeBox is the device space bounding box of the collected edges.
type edgeBox struct {
	valid                  bool
	xMin, xMax, yMin, yMax float64
}

func (b *edgeBox) add(x, y float64) {
	if !b.valid {
		*b = edgeBox{true, x, x, y, y}
		return
	}
	b.xMin = min(b.xMin, x)
	b.xMax = max(b.xMax, x)
	b.yMin = min(b.yMin, y)
	b.yMax = max(b.yMax, y)
}

// collectEdges flattens p into device space edges.  The returned pixel
// range is the bounding box of the edges, clipped to r.Clip.
func (r *Rasteriser) collectEdges(p *path.Data) (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.box = edgeBox{}

	var current, start vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if current != start {
				r.addEdge(current, start)
			}
			current = p.Coords[k]
			start = current
			k++

		case path.CmdLineTo:
			r.addEdge(current, p.Coords[k])
			current = p.Coords[k]
			k++

		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1])
			current = p.Coords[k+1]
			k += 2

		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2])
			current = p.Coords[k+2]
			k += 3

		case path.CmdClose:
			if current != start {
				r.addEdge(current, start)
			}
			current = start
		}
	}
	// filling closes open subpaths
	if current != start {
		r.addEdge(current, start)
	}

	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.box.xMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.box.xMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.box.yMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.box.yMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// toDevice applies the CTM.
func (r *Rasteriser) toDevice(p vec.Vec2) vec.Vec2 {
	m := &r.CTM
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// addEdge records the user space line from a to b.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	a = r.toDevice(a)
	b = r.toDevice(b)

	dy := b.Y - a.Y
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: a.X, y0: a.Y,
		x1: b.X, y1: b.Y,
		dxdy: (b.X - a.X) / dy,
	})
	r.box.add(a.X, a.Y)
	r.box.add(b.X, b.Y)
}

// deviceLength returns the device space length of the user space
// vector v.
func (r *Rasteriser) deviceLength(v vec.Vec2) float64 {
	m := &r.CTM
	return math.Hypot(m[0]*v.X+m[2]*v.Y, m[1]*v.X+m[3]*v.Y)
}

// flattenQuadratic adds edges approximating a quadratic Bezier curve.
// The distance between curve and chord is bounded by |p0 - 2p1 + p2|/4.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2) {
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)) / 4
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// flattenCubic adds edges approximating a cubic Bezier curve.  The number
// of edges is found using Wang's formula.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	dev := max(
		r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)),
		r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3)))
	n := 1
	if nf := math.Sqrt(3 * dev / (4 * r.Flatness)); nf > 1 {
		n = int(math.Ceil(nf))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the smallest vertical extent of an edge
	// which contributes to the coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the default for Rasteriser.smallArea.
	smallPathThreshold = 65536
)
