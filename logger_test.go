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
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	buf := &bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	err := NewStroker().Set(NewGeometry(0), &BoundsSink{})
	test.That(t, errors.Is(err, ErrEmptyPen), err)
	test.That(t, strings.Contains(buf.String(), "empty pen"), buf.String())

	SetLogger(nil)
	test.That(t, !Logger().Enabled(t.Context(), slog.LevelError))
}
