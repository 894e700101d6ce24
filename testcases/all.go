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

// All contains all test cases, grouped by category.
// Category and test case name together form a unique file name.
var All = map[string][]TestCase{
	"fill":       fillCases,
	"stroke":     strokeCases,
	"curve":      curveCases,
	"dash":       dashCases,
	"transform":  transformCases,
	"degenerate": degenerateCases,
}

// Each calls yield for every test case, together with its unique name.
func Each(yield func(name string, tc TestCase) bool) {
	for _, category := range []string{"fill", "stroke", "curve", "dash", "transform", "degenerate"} {
		for _, tc := range All[category] {
			if !yield(category+"_"+tc.Name, tc) {
				return
			}
		}
	}
}
