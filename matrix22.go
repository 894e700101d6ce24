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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Matrix22 is the linear part of an affine transformation.
//
// Vectors are treated as rows, as in [matrix.Matrix]: a vector (x, y) maps
// to (M11*x + M21*y, M12*x + M22*y).
type Matrix22 struct {
	M11, M12, M21, M22 float64
}

// Identity22 is the identity transformation.
var Identity22 = Matrix22{M11: 1, M22: 1}

// Linear returns the linear part of m.
func Linear(m matrix.Matrix) Matrix22 {
	return Matrix22{M11: m[0], M12: m[1], M21: m[2], M22: m[3]}
}

// Reset sets the matrix to the identity.
func (m *Matrix22) Reset() {
	*m = Identity22
}

// Prepend replaces m by the transformation which first applies m
// and then the linear part of k.  The translation of k is ignored.
func (m *Matrix22) Prepend(k matrix.Matrix) {
	m11, m12 := m.M11, m.M12
	m.M11 = m11*k[0] + m12*k[2]
	m.M12 = m11*k[1] + m12*k[3]
	m21, m22 := m.M21, m.M22
	m.M21 = m21*k[0] + m22*k[2]
	m.M22 = m21*k[1] + m22*k[3]
}

// Det returns the determinant.
func (m Matrix22) Det() float64 {
	return m.M11*m.M22 - m.M12*m.M21
}

// Finalize prepares the matrix for use as a pen transformation and returns
// its inverse.  If |det| is below thrSq, the pen is too thin in some
// direction and ok is false.
//
// Orientation reversing matrices get an x-flip prepended.  Since the pen
// is the image of a circle this does not change its shape, but it keeps
// the left and right rails on the correct sides.
func (m *Matrix22) Finalize(thrSq float64) (inv Matrix22, ok bool) {
	det := m.Det()
	if math.Abs(det) < thrSq || math.IsNaN(det) {
		return Matrix22{}, false
	}
	if det < 0 {
		m.PreFlipX()
		det = -det
	}
	det = 1 / det
	inv = Matrix22{
		M11: m.M22 * det,
		M12: -m.M12 * det,
		M21: -m.M21 * det,
		M22: m.M11 * det,
	}
	return inv, true
}

// PreFlipX prepends a reflection in the y axis.
func (m *Matrix22) PreFlipX() {
	m.M11 = -m.M11
	m.M12 = -m.M12
}

// IsIsotropic reports whether the matrix maps circles to circles.
// The test is exact.  sqMax is the squared scale factor for isotropic
// matrices and an upper bound for it (the sum of squared entries) otherwise.
func (m Matrix22) IsIsotropic() (sqMax float64, iso bool) {
	iso = m.M11 == m.M22 && m.M12 == -m.M21
	sqMax = m.M11*m.M11 + m.M12*m.M12
	if !iso {
		sqMax += m.M21*m.M21 + m.M22*m.M22
	}
	return sqMax, iso
}

// Invert replaces the matrix by its inverse.  It returns false, leaving
// the matrix unchanged, if |det| < fuzz.
func (m *Matrix22) Invert(fuzz float64) bool {
	det := m.Det()
	if !(math.Abs(det) >= fuzz) {
		return false
	}
	det = 1 / det
	*m = Matrix22{
		M11: m.M22 * det,
		M12: -m.M12 * det,
		M21: -m.M21 * det,
		M22: m.M11 * det,
	}
	return true
}

// InverseQuadratic returns the coefficients of the quadratic form
// cxx*x^2 + cxy*x*y + cyy*y^2 which gives the squared length of the
// pre-image of the vector (x, y).  A singular matrix yields the
// Euclidean form (1, 0, 1).
func (m Matrix22) InverseQuadratic(fuzz float64) (cxx, cxy, cyy float64) {
	if !m.Invert(fuzz) {
		return 1, 0, 1
	}
	cxx = m.M11*m.M11 + m.M12*m.M12
	cxy = 2 * (m.M11*m.M21 + m.M12*m.M22)
	cyy = m.M21*m.M21 + m.M22*m.M22
	return cxx, cxy, cyy
}

// Transform applies the matrix to a row vector.
func (m Matrix22) Transform(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m.M11*v.X + m.M21*v.Y,
		Y: m.M12*v.X + m.M22*v.Y,
	}
}

// TransformColumn multiplies a column vector by the matrix, which is
// the same as applying the transpose to a row vector.
func (m Matrix22) TransformColumn(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m.M11*v.X + m.M12*v.Y,
		Y: m.M21*v.X + m.M22*v.Y,
	}
}

// MaxFactor returns the largest factor by which the matrix stretches
// any vector, i.e. its largest singular value.
func (m Matrix22) MaxFactor() float64 {
	s := m.M11*m.M11 + m.M12*m.M12 + m.M21*m.M21 + m.M22*m.M22
	det := m.Det()
	disc := s*s - 4*det*det
	if disc < 0 {
		disc = 0
	}
	return math.Sqrt((s + math.Sqrt(disc)) / 2)
}

// det returns the determinant of the matrix with rows a and b.
func det(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// turnRight rotates v by 90 degrees.  In a y-down coordinate system this
// is a clockwise, visually rightwards turn.
func turnRight(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -v.Y, Y: v.X}
}
