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

var dashCases = []TestCase{
	{
		Name:   "basic",
		Path:   line(5, 32, 59, 32),
		Width:  64,
		Height: 64,
		Op:     dashed(4, 0, 8, 4),
	},
	{
		Name:   "phase",
		Path:   line(5, 32, 59, 32),
		Width:  64,
		Height: 64,
		Op:     dashed(4, 6, 8, 4),
	},
	{
		Name:   "negative_phase",
		Path:   line(5, 32, 59, 32),
		Width:  64,
		Height: 64,
		Op:     dashed(4, -3, 8, 4),
	},
	{
		Name:   "odd_length",
		Path:   line(5, 32, 59, 32),
		Width:  64,
		Height: 64,
		Op:     dashed(4, 0, 5, 3, 8),
	},
	{
		Name:   "many_elements",
		Path:   line(5, 32, 59, 32),
		Width:  64,
		Height: 64,
		Op:     dashed(4, 0, 2, 2, 6, 2, 2, 10),
	},
	{
		Name:   "dots",
		Path:   line(8, 32, 56, 32),
		Width:  64,
		Height: 64,
		Op: Stroke{
			Width:      5,
			Cap:        graphics.LineCapRound,
			Join:       graphics.LineJoinRound,
			MiterLimit: 10,
			Dash:       []float64{0, 8},
		},
	},
	{
		Name:   "corner",
		Path:   polyline(pt(8, 52), pt(32, 12), pt(56, 52)),
		Width:  64,
		Height: 64,
		Op:     dashed(4, 0, 10, 5),
	},
	{
		Name:   "rectangle",
		Path:   rectangle(12, 12, 52, 52),
		Width:  64,
		Height: 64,
		Op:     dashed(4, 2, 12, 6),
	},
	{
		Name:   "rectangle_seam",
		Path:   rectangle(12, 12, 52, 52),
		Width:  64,
		Height: 64,
		Op:     dashed(4, 0, 20, 20),
	},
	{
		Name:   "circle",
		Path:   circle(32, 32, 22),
		Width:  64,
		Height: 64,
		Op: Stroke{
			Width:      4,
			Cap:        graphics.LineCapSquare,
			Join:       graphics.LineJoinMiter,
			MiterLimit: 10,
			Dash:       []float64{6, 4},
		},
	},
	{
		Name:   "all_zero",
		Path:   line(5, 32, 59, 32),
		Width:  64,
		Height: 64,
		Op:     dashed(4, 0, 0, 0),
	},
}
