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
	"image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/tdewolff/test"
	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/widen/testcases"
)

// approaches lists the two code paths of the rasteriser.  A very large
// threshold always uses the two-dimensional buffer, zero always uses the
// active edge list.
var approaches = []struct {
	name      string
	smallArea int
}{
	{"small", 1 << 30},
	{"large", 0},
}

// TestTriangleCoverage checks exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	trianglePath := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	for _, a := range approaches {
		t.Run(a.name, func(t *testing.T) {
			r := NewRasteriser(rect.Rect{URx: 10, URy: 1})
			r.smallArea = a.smallArea

			coverage := make([]float32, 10)
			r.FillNonZero(trianglePath, func(y, xMin int, cov []float32) {
				if y == 0 {
					copy(coverage[xMin:], cov)
				}
			})

			for x := range 10 {
				expected := float32(2*x+1) / 20.0
				test.That(t, math.Abs(float64(coverage[x]-expected)) <= 1e-6,
					fmt.Sprintf("pixel %d: expected coverage %.4f, got %.4f", x, expected, coverage[x]))
			}
		})
	}
}

func TestMaskRectangle(t *testing.T) {
	// The left and right edges cut the pixels in half.
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2.5, Y: 1}).
		LineTo(vec.Vec2{X: 6.5, Y: 1}).
		LineTo(vec.Vec2{X: 6.5, Y: 3}).
		LineTo(vec.Vec2{X: 2.5, Y: 3}).
		Close()

	for _, a := range approaches {
		t.Run(a.name, func(t *testing.T) {
			r := NewRasteriser(rect.Rect{URx: 8, URy: 4})
			r.smallArea = a.smallArea
			mask := r.Mask(p, NonZero)

			test.T(t, mask.Bounds(), image.Rect(0, 0, 8, 4))
			test.T(t, mask.AlphaAt(1, 1).A, uint8(0))
			test.T(t, mask.AlphaAt(2, 1).A, uint8(128))
			test.T(t, mask.AlphaAt(4, 2).A, uint8(255))
			test.T(t, mask.AlphaAt(6, 2).A, uint8(128))
			test.T(t, mask.AlphaAt(4, 0).A, uint8(0))
			test.T(t, mask.AlphaAt(4, 3).A, uint8(0))
		})
	}
}

func TestFillRules(t *testing.T) {
	// two squares with the same orientation, one inside the other
	p := &path.Data{}
	for _, s := range []float64{1, 3} {
		p.MoveTo(vec.Vec2{X: s, Y: s})
		p.LineTo(vec.Vec2{X: 10 - s, Y: s})
		p.LineTo(vec.Vec2{X: 10 - s, Y: 10 - s})
		p.LineTo(vec.Vec2{X: s, Y: 10 - s})
		p.Close()
	}

	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	nonZero := r.Mask(p, NonZero)
	evenOdd := r.Mask(p, EvenOdd)

	test.T(t, nonZero.AlphaAt(5, 5).A, uint8(255))
	test.T(t, evenOdd.AlphaAt(5, 5).A, uint8(0))
	test.T(t, nonZero.AlphaAt(1, 5).A, uint8(255))
	test.T(t, evenOdd.AlphaAt(1, 5).A, uint8(255))
	test.T(t, nonZero.AlphaAt(0, 5).A, uint8(0))
}

func TestOpenSubpathsAreClosed(t *testing.T) {
	closed := (&path.Data{}).
		MoveTo(vec.Vec2{X: 1, Y: 1}).
		LineTo(vec.Vec2{X: 9, Y: 2}).
		LineTo(vec.Vec2{X: 4, Y: 8}).
		Close()
	open := (&path.Data{}).
		MoveTo(vec.Vec2{X: 1, Y: 1}).
		LineTo(vec.Vec2{X: 9, Y: 2}).
		LineTo(vec.Vec2{X: 4, Y: 8})

	r := NewRasteriser(rect.Rect{URx: 10, URy: 10})
	a := r.Mask(closed, NonZero)
	b := r.Mask(open, NonZero)
	test.T(t, a.Pix, b.Pix)
}

func TestClip(t *testing.T) {
	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: -5, Y: -5}).
		LineTo(vec.Vec2{X: 20, Y: -5}).
		LineTo(vec.Vec2{X: 20, Y: 20}).
		LineTo(vec.Vec2{X: -5, Y: 20}).
		Close()

	for _, a := range approaches {
		t.Run(a.name, func(t *testing.T) {
			r := NewRasteriser(rect.Rect{LLx: 2, LLy: 3, URx: 6, URy: 5})
			r.smallArea = a.smallArea
			count := 0
			r.FillNonZero(p, func(y, xMin int, coverage []float32) {
				test.That(t, y >= 3 && y < 5, "row outside clip")
				test.T(t, xMin, 2)
				test.T(t, len(coverage), 4)
				for _, c := range coverage {
					test.Float(t, float64(c), 1)
				}
				count++
			})
			test.T(t, count, 2)
		})
	}
}

// TestAgainstVector compares the nonzero fill fixtures against the
// rasteriser from golang.org/x/image/vector.
func TestAgainstVector(t *testing.T) {
	for name, tc := range testcases.Each {
		op, ok := tc.Op.(testcases.Fill)
		if !ok || op.Rule != testcases.NonZero {
			continue
		}
		w, h := tc.Width, tc.Height
		ref := vectorMask(tc.Path, tc.Transform(), w, h)

		for _, a := range approaches {
			t.Run(name+"_"+a.name, func(t *testing.T) {
				r := NewRasteriser(rect.Rect{URx: float64(w), URy: float64(h)})
				r.smallArea = a.smallArea
				r.CTM = tc.Transform()
				mask := r.Mask(tc.Path, NonZero)

				err := compareImages(name+"_"+a.name, ref.Pix, mask.Pix, w, h)
				test.Error(t, err)
			})
		}
	}
}

// vectorMask renders p with golang.org/x/image/vector.
func vectorMask(p *path.Data, ctm matrix.Matrix, w, h int) *image.Alpha {
	z := vector.NewRasterizer(w, h)
	dev := func(v vec.Vec2) (float32, float32) {
		return float32(ctm[0]*v.X + ctm[2]*v.Y + ctm[4]),
			float32(ctm[1]*v.X + ctm[3]*v.Y + ctm[5])
	}

	open := false
	for cmd, pts := range p.Iter() {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(dev(pts[0]))
			open = true
		case path.CmdLineTo:
			z.LineTo(dev(pts[0]))
		case path.CmdQuadTo:
			x1, y1 := dev(pts[0])
			x2, y2 := dev(pts[1])
			z.QuadTo(x1, y1, x2, y2)
		case path.CmdCubeTo:
			x1, y1 := dev(pts[0])
			x2, y2 := dev(pts[1])
			x3, y3 := dev(pts[2])
			z.CubeTo(x1, y1, x2, y2, x3, y3)
		case path.CmdClose:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.NewUniform(color.Alpha{A: 255}), image.Point{})
	return dst
}

// compareImages checks that two coverage images agree up to small
// differences along edges.
func compareImages(name string, expected, actual []byte, w, h int) error {
	total := w * h

	diffs := make([]int, total)
	for i := range total {
		diff := int(expected[i]) - int(actual[i])
		if diff < 0 {
			diff = -diff
		}
		diffs[i] = diff
	}
	sort.Ints(diffs)

	p80 := diffs[int(math.Round(0.80*float64(total-1)))]
	p95 := diffs[int(math.Round(0.95*float64(total-1)))]
	p99 := diffs[int(math.Round(0.99*float64(total-1)))]

	// at least 80% of pixels agree within rounding, 95% are within 64
	// and 99% within 128
	var failures []string
	if p80 > 1 {
		failures = append(failures, fmt.Sprintf("80th percentile diff is %d (want <=1)", p80))
	}
	if p95 >= 64 {
		failures = append(failures, fmt.Sprintf("95th percentile diff is %d (want <64)", p95))
	}
	if p99 >= 128 {
		failures = append(failures, fmt.Sprintf("99th percentile diff is %d (want <128)", p99))
	}

	if len(failures) > 0 {
		_ = writeDiffImage(name, expected, actual, w, h)
		return fmt.Errorf("%s", strings.Join(failures, "; "))
	}
	return nil
}

// writeDiffImage stores a three panel image for failed comparisons:
// actual output (left), difference (middle) and reference (right).
// In the middle panel, green marks missing and red marks excess coverage.
func writeDiffImage(name string, expected, actual []byte, w, h int) (err error) {
	if err := os.MkdirAll("debug", 0o755); err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, w*3, h))
	for y := range h {
		for x := range w {
			i := y*w + x

			a := actual[i]
			img.Set(x, y, color.RGBA{R: a, G: a, B: a, A: 255})

			diff := int(expected[i]) - int(actual[i])
			var dc color.RGBA
			switch {
			case diff > 0:
				dc = color.RGBA{G: uint8(diff), A: 255}
			case diff < 0:
				dc = color.RGBA{R: uint8(-diff), A: 255}
			default:
				dc = color.RGBA{A: 255}
			}
			img.Set(x+w, y, dc)

			e := expected[i]
			img.Set(x+w*2, y, color.RGBA{R: e, G: e, B: e, A: 255})
		}
	}

	f, err := os.Create(filepath.Join("debug", name+".png"))
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
