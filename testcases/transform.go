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
	"seehuhn.de/go/pdf/graphics"
)

var transformCases = []TestCase{
	{
		Name:   "scale",
		Path:   polyline(pt(0, 20), pt(10, 0), pt(20, 20)),
		Width:  64,
		Height: 64,
		Op:     solid(2, graphics.LineCapRound, graphics.LineJoinMiter),
		CTM:    matrix.Scale(2, 2).Translate(12, 10),
	},
	{
		Name:   "rotate",
		Path:   line(-20, 0, 20, 0),
		Width:  64,
		Height: 64,
		Op:     solid(6, graphics.LineCapSquare, graphics.LineJoinMiter),
		CTM:    matrix.RotateDeg(30).Translate(32, 32),
	},
	{
		Name:   "anisotropic",
		Path:   circle(0, 0, 8),
		Width:  64,
		Height: 64,
		Op:     solid(3, graphics.LineCapButt, graphics.LineJoinMiter),
		CTM:    matrix.Scale(3, 1).Translate(32, 32),
	},
	{
		Name:   "anisotropic_corner",
		Path:   polyline(pt(-8, 10), pt(0, -10), pt(8, 10)),
		Width:  64,
		Height: 64,
		Op:     solid(3, graphics.LineCapRound, graphics.LineJoinRound),
		CTM:    matrix.Scale(3, 1.5).Translate(32, 32),
	},
	{
		Name:   "skew",
		Path:   rectangle(-12, -12, 12, 12),
		Width:  64,
		Height: 64,
		Op:     solid(3, graphics.LineCapButt, graphics.LineJoinMiter),
		CTM:    matrix.Matrix{1, 0, 0.5, 1, 32, 32},
	},
	{
		Name:   "flip",
		Path:   polyline(pt(10, 10), pt(54, 20), pt(20, 54)),
		Width:  64,
		Height: 64,
		Op:     solid(5, graphics.LineCapButt, graphics.LineJoinBevel),
		CTM:    matrix.Matrix{1, 0, 0, -1, 0, 64},
	},
	{
		Name:   "dash_scaled",
		Path:   line(0, 0, 25, 0),
		Width:  64,
		Height: 64,
		Op:     dashed(2, 0, 4, 2),
		CTM:    matrix.Scale(2, 2).Translate(7, 32),
	},
}
