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

package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/widen"
	"seehuhn.de/go/widen/raster"
	"seehuhn.de/go/widen/testcases"
)

// PNG renders the fixtures using the widen and raster packages.
type PNG struct {
	Dir       string  `short:"d" default:"out" desc:"Output directory"`
	Category  string  `short:"c" desc:"Only render this category"`
	Tolerance float64 `short:"t" default:"0.25" desc:"Approximation tolerance in pixels"`
	Verbose   bool    `short:"v" desc:"Log widening details"`
}

func (cmd *PNG) Run() error {
	setupLogging(cmd.Verbose)
	err := os.MkdirAll(cmd.Dir, 0o755)
	if err != nil {
		return err
	}

	r := raster.NewRasteriser(rect.Rect{})
	for name, tc := range fixtures(cmd.Category) {
		p, rule, ctm, err := devicePath(tc, cmd.Tolerance)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		r.Reset(rect.Rect{URx: float64(tc.Width), URy: float64(tc.Height)})
		r.CTM = ctm
		r.Flatness = cmd.Tolerance
		mask := r.Mask(p, rule)

		err = writePNG(filepath.Join(cmd.Dir, name+".png"), mask)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// PDF writes one PDF file per fixture.  Normally the page fills the
// outline computed by the widen package.  With Native set, the page
// strokes the path itself, for comparison.
type PDF struct {
	Dir       string  `short:"d" default:"out" desc:"Output directory"`
	Category  string  `short:"c" desc:"Only render this category"`
	Tolerance float64 `short:"t" default:"0.25" desc:"Approximation tolerance in pixels"`
	Native    bool    `short:"n" desc:"Let the PDF viewer stroke the paths"`
	Verbose   bool    `short:"v" desc:"Log widening details"`
}

func (cmd *PDF) Run() error {
	setupLogging(cmd.Verbose)
	err := os.MkdirAll(cmd.Dir, 0o755)
	if err != nil {
		return err
	}

	for name, tc := range fixtures(cmd.Category) {
		suffix := ""
		if cmd.Native {
			suffix = "_native"
		}
		fname := filepath.Join(cmd.Dir, name+suffix+".pdf")
		err := cmd.writePDF(tc, fname)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (cmd *PDF) writePDF(tc testcases.TestCase, fname string) error {
	paper := &pdf.Rectangle{
		URx: float64(tc.Width),
		URy: float64(tc.Height),
	}
	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// white on black, so that the page shows the coverage
	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, float64(tc.Width), float64(tc.Height))
	page.Fill()
	page.SetFillColor(color.DeviceGray(1))
	page.SetStrokeColor(color.DeviceGray(1))

	// The fixtures use a y-down coordinate system.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(tc.Height)})

	op, isStroke := tc.Op.(testcases.Stroke)
	if !isStroke || cmd.Native {
		if ctm := tc.Transform(); ctm != matrix.Identity {
			page.Transform(ctm)
		}
		if isStroke {
			page.SetLineWidth(op.Width)
			page.SetLineCap(op.Cap)
			page.SetLineJoin(op.Join)
			page.SetMiterLimit(op.MiterLimit)
			if len(op.Dash) > 0 {
				page.SetLineDash(op.Dash, op.DashPhase)
			}
		}
		drawPath(page, tc.Path)
		switch {
		case isStroke:
			page.Stroke()
		case tc.Op.(testcases.Fill).Rule == testcases.EvenOdd:
			page.FillEvenOdd()
		default:
			page.Fill()
		}
		return page.Close()
	}

	outline, err := widen.Outline(tc.Path.Iter(), strokeGeometry(op), tc.Transform(), cmd.Tolerance)
	if err != nil {
		_ = page.Close()
		return err
	}
	drawPath(page, outline)
	page.Fill()
	return page.Close()
}

// pathBuilder is the part of the PDF content stream writer used by
// drawPath.
type pathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

// drawPath adds p to the current page.  PDF has no quadratic curves, so
// these are converted to cubic ones.
func drawPath(page pathBuilder, p *path.Data) {
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			page.ClosePath()
		}
	}
}

// JSON exports the fixtures, together with the bounding boxes of the
// strokes.
type JSON struct {
	Output    string  `short:"o" default:"testcases.json" desc:"Output file"`
	Tolerance float64 `short:"t" default:"0.25" desc:"Approximation tolerance in pixels"`
	Verbose   bool    `short:"v" desc:"Log widening details"`
}

type jsonTestCase struct {
	Name       string        `json:"name"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	CTM        []float64     `json:"ctm"`
	Path       []jsonSegment `json:"path"`
	Op         string        `json:"op"`
	FillRule   string        `json:"fill_rule,omitempty"`
	LineWidth  float64       `json:"line_width,omitempty"`
	LineCap    string        `json:"line_cap,omitempty"`
	LineJoin   string        `json:"line_join,omitempty"`
	MiterLimit float64       `json:"miter_limit,omitempty"`
	Dash       []float64     `json:"dash,omitempty"`
	DashPhase  float64       `json:"dash_phase,omitempty"`
	Bounds     []float64     `json:"bounds,omitempty"`
}

type jsonSegment struct {
	Cmd string      `json:"cmd"`
	Pts [][]float64 `json:"pts"`
}

func (cmd *JSON) Run() error {
	setupLogging(cmd.Verbose)

	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}
	for name, tc := range fixtures("") {
		jtc, err := cmd.toJSON(name, tc)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out.TestCases = append(out.TestCases, jtc)
	}

	f, err := os.Create(cmd.Output)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	err = enc.Encode(out)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func (cmd *JSON) toJSON(name string, tc testcases.TestCase) (jsonTestCase, error) {
	ctm := tc.Transform()
	jtc := jsonTestCase{
		Name:   name,
		Width:  tc.Width,
		Height: tc.Height,
		CTM:    ctm[:],
		Path:   pathToJSON(tc.Path),
	}

	switch op := tc.Op.(type) {
	case testcases.Fill:
		jtc.Op = "fill"
		jtc.FillRule = op.Rule.String()
	case testcases.Stroke:
		jtc.Op = "stroke"
		jtc.LineWidth = op.Width
		jtc.LineCap = op.Cap.String()
		jtc.LineJoin = op.Join.String()
		jtc.MiterLimit = op.MiterLimit
		jtc.Dash = op.Dash
		jtc.DashPhase = op.DashPhase

		b, err := widen.Bounds(tc.Path.Iter(), strokeGeometry(op), ctm, cmd.Tolerance)
		if err != nil {
			return jtc, err
		}
		jtc.Bounds = []float64{b.LLx, b.LLy, b.URx, b.URy}
	}
	return jtc, nil
}

func pathToJSON(p *path.Data) []jsonSegment {
	var segs []jsonSegment
	for cmd, pts := range p.Iter() {
		seg := jsonSegment{Pts: make([][]float64, len(pts))}
		switch cmd {
		case path.CmdMoveTo:
			seg.Cmd = "M"
		case path.CmdLineTo:
			seg.Cmd = "L"
		case path.CmdQuadTo:
			seg.Cmd = "Q"
		case path.CmdCubeTo:
			seg.Cmd = "C"
		case path.CmdClose:
			seg.Cmd = "Z"
		}
		for i, pt := range pts {
			seg.Pts[i] = []float64{pt.X, pt.Y}
		}
		segs = append(segs, seg)
	}
	return segs
}

// fixtures iterates over the test cases of one category, or of all
// categories if category is empty.
func fixtures(category string) func(yield func(string, testcases.TestCase) bool) {
	return func(yield func(string, testcases.TestCase) bool) {
		for name, tc := range testcases.Each {
			if category != "" && !hasCategory(name, category) {
				continue
			}
			if !yield(name, tc) {
				return
			}
		}
	}
}

func hasCategory(name, category string) bool {
	return len(name) > len(category) && name[:len(category)] == category && name[len(category)] == '_'
}

// strokeGeometry converts the PDF stroke parameters of a fixture.
func strokeGeometry(op testcases.Stroke) *widen.Geometry {
	return widen.PDFGeometry(op.Width, op.Cap, op.Join, op.MiterLimit, op.Dash, op.DashPhase)
}

// devicePath returns the path which must be filled to paint tc, together
// with the fill rule and the transformation to apply.  Strokes are
// widened, the resulting outline is already in device space.
func devicePath(tc testcases.TestCase, tol float64) (*path.Data, raster.Rule, matrix.Matrix, error) {
	switch op := tc.Op.(type) {
	case testcases.Fill:
		rule := raster.NonZero
		if op.Rule == testcases.EvenOdd {
			rule = raster.EvenOdd
		}
		return tc.Path, rule, tc.Transform(), nil
	case testcases.Stroke:
		outline, err := widen.Outline(tc.Path.Iter(), strokeGeometry(op), tc.Transform(), tol)
		return outline, raster.NonZero, matrix.Identity, err
	}
	return nil, 0, matrix.Identity, fmt.Errorf("unknown operation %T", tc.Op)
}

// writePNG stores a coverage mask as a grayscale image.
func writePNG(fname string, mask *image.Alpha) error {
	gray := &image.Gray{Pix: mask.Pix, Stride: mask.Stride, Rect: mask.Rect}
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = png.Encode(f, gray)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
