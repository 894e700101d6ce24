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

var strokeCases = []TestCase{
	{
		Name:   "line_butt",
		Path:   line(10, 32, 54, 32),
		Width:  64,
		Height: 64,
		Op:     solid(8, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "line_round",
		Path:   line(10, 32, 54, 32),
		Width:  64,
		Height: 64,
		Op:     solid(8, graphics.LineCapRound, graphics.LineJoinMiter),
	},
	{
		Name:   "line_square",
		Path:   line(10, 32, 54, 32),
		Width:  64,
		Height: 64,
		Op:     solid(8, graphics.LineCapSquare, graphics.LineJoinMiter),
	},
	{
		Name:   "line_diagonal",
		Path:   line(12, 52, 52, 12),
		Width:  64,
		Height: 64,
		Op:     solid(5, graphics.LineCapRound, graphics.LineJoinMiter),
	},
	{
		Name:   "corner_miter",
		Path:   polyline(pt(10, 50), pt(32, 14), pt(54, 50)),
		Width:  64,
		Height: 64,
		Op:     solid(6, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "corner_round",
		Path:   polyline(pt(10, 50), pt(32, 14), pt(54, 50)),
		Width:  64,
		Height: 64,
		Op:     solid(6, graphics.LineCapButt, graphics.LineJoinRound),
	},
	{
		Name:   "corner_bevel",
		Path:   polyline(pt(10, 50), pt(32, 14), pt(54, 50)),
		Width:  64,
		Height: 64,
		Op:     solid(6, graphics.LineCapButt, graphics.LineJoinBevel),
	},
	{
		Name:   "corner_sharp_limited",
		Path:   polyline(pt(10, 54), pt(32, 10), pt(36, 54)),
		Width:  64,
		Height: 64,
		Op: Stroke{
			Width:      6,
			Cap:        graphics.LineCapButt,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 2,
		},
	},
	{
		Name:   "zigzag_miter",
		Path:   zigzag(6, 58, 16, 48, 4),
		Width:  64,
		Height: 64,
		Op:     solid(4, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "rectangle_closed",
		Path:   rectangle(14, 14, 50, 50),
		Width:  64,
		Height: 64,
		Op:     solid(6, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "triangle_closed_round",
		Path:   polygon(pt(12, 50), pt(32, 12), pt(52, 50)),
		Width:  64,
		Height: 64,
		Op:     solid(6, graphics.LineCapButt, graphics.LineJoinRound),
	},
	{
		Name:   "hairline",
		Path:   polyline(pt(8, 8), pt(56, 20), pt(8, 32), pt(56, 56)),
		Width:  64,
		Height: 64,
		Op:     solid(0.5, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "wide_round",
		Path:   polyline(pt(16, 16), pt(48, 24), pt(24, 48)),
		Width:  64,
		Height: 64,
		Op:     solid(20, graphics.LineCapRound, graphics.LineJoinRound),
	},
}
