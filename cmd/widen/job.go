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
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/widen"
	"seehuhn.de/go/widen/raster"
)

// Job renders the strokes described in a TOML file.
//
// Example:
//
//	width = 200
//	height = 100
//	output = "job.png"
//
//	[[stroke]]
//	path = "M 20 50 C 60 0 140 100 180 50"
//	width = 12
//	start_cap = "round"
//	end_cap = "triangle"
//	join = "round"
//
//	[[hit]]
//	x = 20
//	y = 50
type Job struct {
	File    string `index:"0" desc:"TOML file describing the job"`
	Output  string `short:"o" desc:"Output file, overrides the job file"`
	Verbose bool   `short:"v" desc:"Log widening details"`
}

// jobFile is the contents of a job file.
type jobFile struct {
	Width     int         `toml:"width"`
	Height    int         `toml:"height"`
	Tolerance float64     `toml:"tolerance"`
	CTM       []float64   `toml:"ctm"`
	Output    string      `toml:"output"`
	Strokes   []jobStroke `toml:"stroke"`
	Hits      []jobHit    `toml:"hit"`
}

// jobStroke is one stroked path.  Lengths are in user space, dash lengths
// in multiples of the pen width.
type jobStroke struct {
	Path       string    `toml:"path"`
	Width      float64   `toml:"width"`
	Height     float64   `toml:"height"`
	Angle      float64   `toml:"angle"` // degrees
	StartCap   string    `toml:"start_cap"`
	EndCap     string    `toml:"end_cap"`
	DashCap    string    `toml:"dash_cap"`
	Join       string    `toml:"join"`
	MiterLimit float64   `toml:"miter_limit"`
	Dashes     []float64 `toml:"dashes"`
	DashOffset float64   `toml:"dash_offset"`
}

// jobHit is a device space point to hit test against every stroke.
type jobHit struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

func (cmd *Job) Run() error {
	setupLogging(cmd.Verbose)
	if cmd.File == "" {
		return errors.New("missing job file")
	}

	job, err := readJob(cmd.File)
	if err != nil {
		return err
	}
	if cmd.Output != "" {
		job.Output = cmd.Output
	}

	ctm := matrix.Identity
	if job.CTM != nil {
		copy(ctm[:], job.CTM)
	}

	outline := &path.Data{}
	for i, js := range job.Strokes {
		name := fmt.Sprintf("stroke %d", i+1)

		g, err := js.geometry()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		p, err := parseSVGPath(js.Path)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		s := widen.NewStroker()
		s.CTM = ctm
		s.Tolerance = job.Tolerance

		b := &widen.BoundsSink{}
		err = runStroke(s, g, b, p)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		bbox := b.Bounds()
		fmt.Printf("%s: bounds [%.3f %.3f %.3f %.3f]\n",
			name, bbox.LLx, bbox.LLy, bbox.URx, bbox.URy)

		for _, hp := range job.Hits {
			pt := vec.Vec2{X: hp.X, Y: hp.Y}
			h := widen.NewHitTestSink(pt, job.Tolerance)
			err = runStroke(s, g, h, p)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			fmt.Printf("%s: (%g, %g) hit=%t\n", name, pt.X, pt.Y, h.Hit())
		}

		o := widen.NewOutlineSink()
		o.Path = outline
		err = runStroke(s, g, o, p)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	if job.Output == "" {
		return nil
	}
	clip := rect.Rect{URx: float64(job.Width), URy: float64(job.Height)}
	r := raster.NewRasteriser(clip)
	r.Flatness = job.Tolerance
	mask := r.Mask(outline, raster.NonZero)
	return writePNG(job.Output, mask)
}

// runStroke widens p into sink.  An empty pen draws nothing.
func runStroke(s *widen.Stroker, g *widen.Geometry, sink widen.Sink, p svgPath) error {
	err := s.Set(g, sink)
	if errors.Is(err, widen.ErrEmptyPen) {
		return nil
	} else if err != nil {
		return err
	}
	p.feed(s)
	return s.Close()
}

func readJob(fname string) (*jobFile, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	job := &jobFile{
		Width:     256,
		Height:    256,
		Tolerance: 0.25,
	}
	err = toml.NewDecoder(f).DisallowUnknownFields().Decode(job)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}

	if job.Width <= 0 || job.Height <= 0 {
		return nil, fmt.Errorf("%s: invalid image size %dx%d", fname, job.Width, job.Height)
	}
	if job.CTM != nil && len(job.CTM) != 6 {
		return nil, fmt.Errorf("%s: ctm must have 6 entries", fname)
	}
	return job, nil
}

// geometry converts the pen description.  Missing values default to a
// circular pen with the PDF default parameters.
func (js *jobStroke) geometry() (*widen.Geometry, error) {
	if js.Width <= 0 {
		return nil, fmt.Errorf("invalid pen width %g", js.Width)
	}
	g := widen.NewGeometry(js.Width)
	if js.Height > 0 {
		g.Height = js.Height
	}
	g.Angle = js.Angle * math.Pi / 180

	var err error
	if g.StartCap, err = parseCap(js.StartCap, g.StartCap); err != nil {
		return nil, err
	}
	if g.EndCap, err = parseCap(js.EndCap, g.EndCap); err != nil {
		return nil, err
	}
	if g.DashCap, err = parseCap(js.DashCap, g.DashCap); err != nil {
		return nil, err
	}
	if g.Join, err = parseJoin(js.Join, g.Join); err != nil {
		return nil, err
	}
	if js.MiterLimit > 0 {
		g.MiterLimit = js.MiterLimit
	}
	g.Dashes = js.Dashes
	g.DashOffset = js.DashOffset
	return g, nil
}

var (
	capNames  = []widen.Cap{widen.CapFlat, widen.CapSquare, widen.CapRound, widen.CapTriangle}
	joinNames = []widen.Join{widen.JoinMiter, widen.JoinBevel, widen.JoinRound, widen.JoinMiterClipped}
)

func parseCap(s string, def widen.Cap) (widen.Cap, error) {
	if s == "" {
		return def, nil
	}
	for _, c := range capNames {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return def, fmt.Errorf("unknown cap style %q", s)
}

func parseJoin(s string, def widen.Join) (widen.Join, error) {
	if s == "" {
		return def, nil
	}
	for _, j := range joinNames {
		if strings.EqualFold(s, j.String()) {
			return j, nil
		}
	}
	return def, fmt.Errorf("unknown join style %q", s)
}
