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
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Stroke widens p with pen g and sends the outline to sink.
// The path is given in user space, ctm maps it to device space and tol is
// the approximation tolerance in device space.
//
// A pen too small to be visible draws nothing and is not an error.
func Stroke(p path.Path, g *Geometry, ctm matrix.Matrix, tol float64, sink Sink) error {
	s := NewStroker()
	s.CTM = ctm
	s.Tolerance = tol
	err := s.Set(g, sink)
	if errors.Is(err, ErrEmptyPen) {
		return nil
	} else if err != nil {
		return err
	}
	err = s.StrokePath(p)
	if err != nil {
		return fmt.Errorf("stroke: %w", err)
	}
	return nil
}

// Bounds returns the device space bounding box of p, stroked with pen g.
// If the stroke is empty, the zero rectangle is returned.
func Bounds(p path.Path, g *Geometry, ctm matrix.Matrix, tol float64) (rect.Rect, error) {
	b := &BoundsSink{}
	err := Stroke(p, g, ctm, tol, b)
	if err != nil {
		return rect.Rect{}, err
	}
	return b.Bounds(), nil
}

// HitTest reports whether the device space point pt lies inside the
// stroke of p with pen g.
func HitTest(p path.Path, g *Geometry, ctm matrix.Matrix, tol float64, pt vec.Vec2) (bool, error) {
	h := NewHitTestSink(pt, tol)
	err := Stroke(p, g, ctm, tol, h)
	if err != nil {
		return false, err
	}
	return h.Hit(), nil
}

// Outline returns the stroke of p with pen g as a path in device space.
// The result must be filled with the nonzero winding rule.
func Outline(p path.Path, g *Geometry, ctm matrix.Matrix, tol float64) (*path.Data, error) {
	o := NewOutlineSink()
	err := Stroke(p, g, ctm, tol, o)
	if err != nil {
		return nil, err
	}
	return o.Path, nil
}
