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
	"fmt"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/widen"
	"seehuhn.de/go/widen/testcases"
)

// BenchmarkRasteriserO measures filling an "O" shape.
func BenchmarkRasteriserO(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasteriser(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			center := float64(size) / 2
			oPath := makeOPath(center, center, float64(size)*0.45, float64(size)*0.30)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.FillEvenOdd(oPath, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorO measures x/image/vector drawing the same shape.
func BenchmarkVectorO(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			z := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})

			center := float32(size) / 2
			outerR := float32(size) * 0.45
			innerR := float32(size) * 0.30

			b.ReportAllocs()
			for b.Loop() {
				z.Reset(size, size)
				addCircleToVector(z, center, center, outerR, false)
				addCircleToVector(z, center, center, innerR, true)
				z.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkRasteriseAll reuses a single Rasteriser for all fixtures.
// Strokes are widened once, outside the timed loop.
func BenchmarkRasteriseAll(b *testing.B) {
	type job struct {
		p    *path.Data
		rule Rule
		ctm  matrix.Matrix
		w, h int
	}
	var jobs []job
	for name, tc := range testcases.Each {
		switch op := tc.Op.(type) {
		case testcases.Fill:
			rule := NonZero
			if op.Rule == testcases.EvenOdd {
				rule = EvenOdd
			}
			jobs = append(jobs, job{tc.Path, rule, tc.Transform(), tc.Width, tc.Height})
		case testcases.Stroke:
			g := widen.PDFGeometry(op.Width, op.Cap, op.Join, op.MiterLimit, op.Dash, op.DashPhase)
			outline, err := widen.Outline(tc.Path.Iter(), g, tc.Transform(), defaultFlatness)
			if err != nil {
				b.Fatalf("%s: %v", name, err)
			}
			jobs = append(jobs, job{outline, NonZero, matrix.Identity, tc.Width, tc.Height})
		}
	}

	r := NewRasteriser(rect.Rect{})
	emit := func(y, xMin int, coverage []float32) {}

	for b.Loop() {
		for _, j := range jobs {
			r.Clip = rect.Rect{URx: float64(j.w), URy: float64(j.h)}
			r.CTM = j.ctm
			r.Fill(j.p, j.rule, emit)
		}
	}
}

// makeOPath returns an "O" shape, made of two circles with opposite
// orientation.
func makeOPath(cx, cy, outerR, innerR float64) *path.Data {
	p := &path.Data{}
	addCircleToPath(p, cx, cy, outerR, false)
	addCircleToPath(p, cx, cy, innerR, true)
	return p
}

func addCircleToPath(p *path.Data, cx, cy, r float64, clockwise bool) {
	const k = 0.5522847498
	kr := k * r
	s := 1.0
	if clockwise {
		s = -1
	}

	p.MoveTo(vec.Vec2{X: cx, Y: cy - r})
	p.CubeTo(vec.Vec2{X: cx + s*kr, Y: cy - r}, vec.Vec2{X: cx + s*r, Y: cy - kr}, vec.Vec2{X: cx + s*r, Y: cy})
	p.CubeTo(vec.Vec2{X: cx + s*r, Y: cy + kr}, vec.Vec2{X: cx + s*kr, Y: cy + r}, vec.Vec2{X: cx, Y: cy + r})
	p.CubeTo(vec.Vec2{X: cx - s*kr, Y: cy + r}, vec.Vec2{X: cx - s*r, Y: cy + kr}, vec.Vec2{X: cx - s*r, Y: cy})
	p.CubeTo(vec.Vec2{X: cx - s*r, Y: cy - kr}, vec.Vec2{X: cx - s*kr, Y: cy - r}, vec.Vec2{X: cx, Y: cy - r})
	p.Close()
}

func addCircleToVector(z *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	const k = float32(0.5522847498)
	kr := k * radius
	s := float32(1)
	if clockwise {
		s = -1
	}

	z.MoveTo(cx, cy-radius)
	z.CubeTo(cx+s*kr, cy-radius, cx+s*radius, cy-kr, cx+s*radius, cy)
	z.CubeTo(cx+s*radius, cy+kr, cx+s*kr, cy+radius, cx, cy+radius)
	z.CubeTo(cx-s*kr, cy+radius, cx-s*radius, cy+kr, cx-s*radius, cy)
	z.CubeTo(cx-s*radius, cy-kr, cx-s*kr, cy-radius, cx, cy-radius)
	z.ClosePath()
}
