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

package raster

import (
	"cmp"
	"math"
	"slices"
)

// Coverage is accumulated per pixel in two values.  cover is the signed
// height of all edge pieces inside the pixel, and area is the part of
// cover which lies to the right of the edge pieces.  Summing cover from
// the left and adding area gives the signed area covered in each pixel.
//
// Pieces of edges to the left of the buffer go fully into the first
// pixel.  Pieces to the right of the buffer have no effect.

// span is one row of the accumulation buffers, for pixels x0 <= x < x1.
type span struct {
	cover, area []float32
	x0, x1      int
}

// add records a piece of an edge inside pixel column pix.  h is the
// signed height of the piece and x its mean x coordinate.
func (s span) add(pix int, h float32, x float64) {
	switch {
	case pix < s.x0:
		s.cover[0] += h
		s.area[0] += h
	case pix < s.x1:
		i := pix - s.x0
		s.cover[i] += h
		s.area[i] += h * float32(1-(x-float64(pix)))
	}
}

// accumulate adds the part of e between y and y+1 to s.
func (r *Rasteriser) accumulate(e *edge, y int, s span) {
	yTop := max(float64(y), e.top())
	yBot := min(float64(y+1), e.bottom())
	if yBot <= yTop {
		return
	}

	var sign float32 = 1
	if e.y1 < e.y0 {
		sign = -1
	}

	xa, xb := e.xAt(yTop), e.xAt(yBot)
	left := int(math.Floor(min(xa, xb)))
	right := int(math.Floor(max(xa, xb)))

	if right < s.x0 {
		h := sign * float32(yBot-yTop)
		s.cover[0] += h
		s.area[0] += h
		return
	}
	if left >= s.x1 {
		return
	}

	if left == right {
		yMid := (yTop + yBot) / 2
		s.add(left, sign*float32(yBot-yTop), e.xAt(yMid))
		return
	}

	// Cut the edge where it crosses pixel boundaries.
	r.crossings = append(r.crossings[:0], yTop, yBot)
	dydx := 1 / e.dxdy
	for x := left + 1; x <= right; x++ {
		yx := e.y0 + dydx*(float64(x)-e.x0)
		if yx > yTop && yx < yBot {
			r.crossings = append(r.crossings, yx)
		}
	}
	slices.Sort(r.crossings)

	for i := 1; i < len(r.crossings); i++ {
		ya, yb := r.crossings[i-1], r.crossings[i]
		if yb <= ya {
			continue
		}
		xMid := e.xAt((ya + yb) / 2)
		s.add(int(math.Floor(xMid)), sign*float32(yb-ya), xMid)
	}
}

// integrate turns a row of accumulated values into coverage, in place.
func integrate(cover, area []float32, rule Rule) {
	var sum float32
	for i := range cover {
		raw := sum + area[i]
		sum += cover[i]

		raw = abs32(raw)
		if rule == NonZero {
			cover[i] = min(raw, 1)
		} else {
			m := raw - 2*float32(int(raw/2))
			cover[i] = 1 - abs32(1-m)
		}
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros returns the part of coverage between the first and the last
// non-zero value, and the index where it starts.
func trimZeros(coverage []float32) ([]float32, int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] == 0 {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage)
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

// rowHit returns the pixel index, relative to xMin, touched by e in the
// row starting at y.  It returns false if e does not reach the row.
func rowHit(e *edge, y float64, xMin, xMax int) (int, bool) {
	yTop := max(y, e.top())
	yBot := min(y+1, e.bottom())
	if yBot <= yTop {
		return 0, false
	}
	x := int(math.Floor(e.xAt((yTop + yBot) / 2)))
	x = min(max(x, xMin), xMax-1)
	return x - xMin, true
}

// fillSmall accumulates all rows at once in a two-dimensional buffer.
func (r *Rasteriser) fillSmall(xMin, xMax, yMin, yMax int, rule Rule, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	height := yMax - yMin

	n := width * height
	r.cover = slices.Grow(r.cover[:0], n)[:n]
	r.area = slices.Grow(r.area[:0], n)[:n]
	clear(r.cover)
	clear(r.area)

	r.rowMin = slices.Grow(r.rowMin[:0], height)[:height]
	r.rowMax = slices.Grow(r.rowMax[:0], height)[:height]
	for i := range height {
		r.rowMin[i] = width
		r.rowMax[i] = -1
	}

	for i := range r.edges {
		e := &r.edges[i]
		first := max(int(math.Floor(e.top())), yMin)
		last := min(int(math.Floor(e.bottom()))+1, yMax)
		for y := first; y < last; y++ {
			row := y - yMin
			off := row * width
			r.accumulate(e, y, span{
				cover: r.cover[off : off+width],
				area:  r.area[off : off+width],
				x0:    xMin,
				x1:    xMax,
			})
			if x, ok := rowHit(e, float64(y), xMin, xMax); ok {
				r.rowMin[row] = min(r.rowMin[row], x)
				r.rowMax[row] = max(r.rowMax[row], x)
			}
		}
	}

	for row := range height {
		if r.rowMax[row] < 0 {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		integrate(coverage, r.area[off:off+width], rule)
		if trimmed, lo := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+lo, trimmed)
		}
	}
}

// fillLarge processes one row at a time, using a list of the edges which
// intersect the current row.
func (r *Rasteriser) fillLarge(xMin, xMax, yMin, yMax int, rule Rule, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.top(), b.top())
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		for next < len(r.edges) && r.edges[next].top() < yf+1 {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		s := span{cover: r.cover, area: r.area, x0: xMin, x1: xMax}

		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.bottom() <= yf {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			r.accumulate(e, y, s)
			if _, ok := rowHit(e, yf, xMin, xMax); ok {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area, rule)
		if trimmed, lo := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+lo, trimmed)
		}
	}
}
