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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"
)

var degenerateCases = []TestCase{
	{
		Name:   "point_round",
		Path:   line(32, 32, 32, 32),
		Width:  64,
		Height: 64,
		Op:     solid(10, graphics.LineCapRound, graphics.LineJoinRound),
	},
	{
		Name:   "point_closed",
		Path:   line(32, 32, 32, 32).Close(),
		Width:  64,
		Height: 64,
		Op:     solid(10, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "u_turn_miter",
		Path:   polyline(pt(10, 32), pt(50, 32), pt(20, 32)),
		Width:  64,
		Height: 64,
		Op:     solid(6, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "u_turn_round",
		Path:   polyline(pt(10, 32), pt(50, 32), pt(20, 32)),
		Width:  64,
		Height: 64,
		Op:     solid(6, graphics.LineCapButt, graphics.LineJoinRound),
	},
	{
		Name:   "repeated_points",
		Path:   polyline(pt(10, 50), pt(32, 14), pt(32, 14), pt(32, 14), pt(54, 50)),
		Width:  64,
		Height: 64,
		Op:     solid(6, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "subpaths",
		Path:   line(10, 16, 54, 16).MoveTo(pt(10, 48)).LineTo(pt(54, 48)),
		Width:  64,
		Height: 64,
		Op:     solid(6, graphics.LineCapRound, graphics.LineJoinMiter),
	},
	{
		Name: "after_close",
		Path: rectangle(10, 10, 30, 30).
			LineTo(pt(54, 54)),
		Width:  64,
		Height: 64,
		Op:     solid(4, graphics.LineCapButt, graphics.LineJoinMiter),
	},
	{
		Name:   "move_only",
		Path:   (&path.Data{}).MoveTo(pt(32, 32)),
		Width:  64,
		Height: 64,
		Op:     solid(10, graphics.LineCapRound, graphics.LineJoinRound),
	},
}
