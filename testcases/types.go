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

package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// TestCase is a path together with the way it is painted.
type TestCase struct {
	Name   string        // lowercase a-z, 0-9 and _ only
	Path   *path.Data    // in user space
	Width  int           // canvas width in pixels
	Height int           // canvas height in pixels
	Op     Operation     // fill or stroke
	CTM    matrix.Matrix // user space to device space; the zero value means identity
}

// Transform returns the CTM of the test case.
func (tc *TestCase) Transform() matrix.Matrix {
	if tc.CTM == (matrix.Matrix{}) {
		return matrix.Identity
	}
	return tc.CTM
}

// Operation is the painting operation applied to the path.
type Operation interface {
	isOperation()
}

// FillRule selects the fill rule of a [Fill].
type FillRule int

// These are the PDF fill rules.
const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// Fill fills the path.
type Fill struct {
	Rule FillRule
}

func (Fill) isOperation() {}

// Stroke strokes the path, with the PDF graphics state parameters.
type Stroke struct {
	Width      float64
	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64
	Dash       []float64 // nil for solid lines
	DashPhase  float64
}

func (Stroke) isOperation() {}

// solid returns a solid stroke with miter limit 10.
func solid(width float64, lineCap graphics.LineCapStyle, join graphics.LineJoinStyle) Stroke {
	return Stroke{Width: width, Cap: lineCap, Join: join, MiterLimit: 10}
}

// dashed returns a dashed stroke with butt caps and miter joins.
func dashed(width float64, phase float64, dash ...float64) Stroke {
	return Stroke{
		Width:      width,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: 10,
		Dash:       dash,
		DashPhase:  phase,
	}
}

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
