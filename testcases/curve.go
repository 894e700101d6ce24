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

import "seehuhn.de/go/pdf/graphics"

var curveCases = []TestCase{
	{
		Name:   "quadratic",
		Path:   quadratic(10, 50, 32, 10, 54, 50),
		Width:  64,
		Height: 64,
		Op:     solid(4, graphics.LineCapRound, graphics.LineJoinRound),
	},
	{
		Name:   "cubic_arch",
		Path:   cubic(10, 50, 15, 5, 49, 5, 54, 50),
		Width:  64,
		Height: 64,
		Op:     solid(5, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "cubic_inflection",
		Path:   cubic(10, 50, 10, 10, 54, 54, 54, 14),
		Width:  64,
		Height: 64,
		Op:     solid(5, graphics.LineCapSquare, graphics.LineJoinMiter),
	},
	{
		Name:   "cubic_loop",
		Path:   cubic(10, 32, 60, 5, 4, 59, 54, 32),
		Width:  64,
		Height: 64,
		Op:     solid(4, graphics.LineCapButt, graphics.LineJoinRound),
	},
	{
		Name:   "cubic_cusp",
		Path:   cubic(10, 50, 54, 10, 10, 10, 54, 50),
		Width:  64,
		Height: 64,
		Op:     solid(4, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "tight_turn",
		Path:   cubic(20, 54, 60, 4, 4, 4, 44, 54),
		Width:  64,
		Height: 64,
		Op:     solid(12, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "circle",
		Path:   circle(32, 32, 22),
		Width:  64,
		Height: 64,
		Op:     solid(4, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name: "line_into_curve",
		Path: polyline(pt(6, 32), pt(24, 32)).
			CubeTo(pt(34, 32), pt(40, 10), pt(58, 10)),
		Width:  64,
		Height: 64,
		Op:     solid(6, graphics.LineCapRound, graphics.LineJoinMiter),
	},
}
