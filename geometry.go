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
	"math"

	"seehuhn.de/go/pdf/graphics"
)

// Cap is the shape drawn at the open end of a stroke.
type Cap uint8

// These are the supported cap styles.
const (
	CapFlat Cap = iota
	CapSquare
	CapRound
	CapTriangle
)

func (c Cap) String() string {
	switch c {
	case CapFlat:
		return "flat"
	case CapSquare:
		return "square"
	case CapRound:
		return "round"
	case CapTriangle:
		return "triangle"
	default:
		return "unknown cap"
	}
}

// CapFromPDF converts a PDF line cap style.
func CapFromPDF(c graphics.LineCapStyle) Cap {
	switch c {
	case graphics.LineCapRound:
		return CapRound
	case graphics.LineCapSquare:
		return CapSquare
	default:
		return CapFlat
	}
}

// Join is the shape drawn where two segments of a stroke meet.
type Join uint8

// These are the supported join styles.
const (
	JoinMiter Join = iota
	JoinBevel
	JoinRound
	JoinMiterClipped
)

func (j Join) String() string {
	switch j {
	case JoinMiter:
		return "miter"
	case JoinBevel:
		return "bevel"
	case JoinRound:
		return "round"
	case JoinMiterClipped:
		return "miter-clipped"
	default:
		return "unknown join"
	}
}

// JoinFromPDF converts a PDF line join style.
func JoinFromPDF(j graphics.LineJoinStyle) Join {
	switch j {
	case graphics.LineJoinRound:
		return JoinRound
	case graphics.LineJoinBevel:
		return JoinBevel
	default:
		return JoinMiter
	}
}

// Geometry describes the pen used to stroke a path.
// The widening code never modifies a Geometry.
type Geometry struct {
	// Width and Height are the extents of the elliptical pen in user space.
	// For a circular pen both are equal to the line width.
	Width, Height float64

	// Angle rotates the pen ellipse, in radians.
	Angle float64

	StartCap Cap
	EndCap   Cap

	// DashCap is used at both ends of every dash.
	DashCap Cap

	Join Join

	// MiterLimit is the maximal ratio between miter length and line width.
	// Values below 1 are treated as 1.
	MiterLimit float64

	// Dashes alternates between dash and gap lengths, in multiples of the
	// pen width.  The number of entries must be even.  An empty slice
	// gives a solid line.
	Dashes []float64

	// DashOffset is the distance into the dash pattern at which the stroke
	// begins, in multiples of the pen width.
	DashOffset float64
}

// NewGeometry returns a circular pen of the given width with
// the PDF default parameters: flat caps, miter joins, miter limit 10
// and no dashes.
func NewGeometry(width float64) *Geometry {
	return &Geometry{
		Width:      width,
		Height:     width,
		StartCap:   CapFlat,
		EndCap:     CapFlat,
		DashCap:    CapFlat,
		Join:       JoinMiter,
		MiterLimit: defaultMiterLimit,
	}
}

// PDFGeometry converts PDF stroke parameters into a Geometry.
// The dash array and phase are given in user space units, as in the PDF
// "d" operator.  An array with an odd number of entries is repeated once,
// and an array where all entries are zero gives a solid line.
func PDFGeometry(width float64, lineCap graphics.LineCapStyle, join graphics.LineJoinStyle, miterLimit float64, dash []float64, phase float64) *Geometry {
	g := NewGeometry(width)
	c := CapFromPDF(lineCap)
	g.StartCap, g.EndCap, g.DashCap = c, c, c
	g.Join = JoinFromPDF(join)
	g.MiterLimit = miterLimit

	if len(dash) == 0 || width == 0 {
		return g
	}
	allZero := true
	for _, d := range dash {
		if d != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return g
	}

	w := math.Abs(width)
	n := len(dash)
	if n%2 == 1 {
		n *= 2
	}
	g.Dashes = make([]float64, n)
	for i := range g.Dashes {
		g.Dashes[i] = math.Abs(dash[i%len(dash)]) / w
	}
	g.DashOffset = phase / w
	return g
}

// IsDashed reports whether strokes with g are dashed.
func (g *Geometry) IsDashed() bool {
	return len(g.Dashes) > 0
}

// Tuning holds the numerical tolerances of the widening code.
type Tuning struct {
	// Fuzz is the relative tolerance for degenerate vectors and
	// nearly parallel lines.
	Fuzz float64

	// LengthFuzz is the relative tolerance for squared lengths and
	// for detecting 180 degree turns.
	LengthFuzz float64

	// MinDashLength is the smallest total length of a dash pattern,
	// and the distance below which dash and segment boundaries are merged.
	MinDashLength float64
}

// DefaultTuning contains the tolerances used by [NewWidener].
var DefaultTuning = Tuning{
	Fuzz:          1e-6,
	LengthFuzz:    1e-4,
	MinDashLength: 0.1,
}

// Side selects one of the two rails of a stroke.
type Side uint8

// The two sides of a stroke, as seen when walking along the path
// in a y-down coordinate system.
const (
	Left Side = iota
	Right
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	return 1 - s
}

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Terminal selects the start or the end of a stroke piece.
type Terminal uint8

// The two ends of a stroke piece.
const (
	Start Terminal = iota
	End
)

// Errors returned when configuring a [Widener].
var (
	ErrEmptyPen    = errors.New("widen: empty pen")
	ErrInvalidDash = errors.New("widen: invalid dash array")

	errDegenerate = errors.New("widen: degenerate direction")
)

const (
	// MinTolerance is the smallest approximation tolerance accepted by
	// a [Widener].  Smaller values are rounded up.
	MinTolerance = 1e-6

	// defaultTolerance is the approximation tolerance in device units.
	defaultTolerance = 0.25

	// defaultMiterLimit matches PDF and PostScript.
	defaultMiterLimit = 10.0

	// penThresholdFactor relates the approximation tolerance to the
	// smallest pen which is not considered empty.
	penThresholdFactor = 0.004

	// arcAsBezier is the control point distance of a cubic Bezier curve
	// approximating a quarter circle of radius 1.
	arcAsBezier = 0.5522847498307933984
)
