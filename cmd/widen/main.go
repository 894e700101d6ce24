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

// Command widen strokes paths and writes the results as images.
//
// The fixtures of the testcases package can be rendered to PNG or PDF
// files, or exported as JSON together with their stroke bounds.  Stroke
// jobs described in TOML files are rendered to PNG.
package main

import (
	"log/slog"
	"os"

	"github.com/tdewolff/argp"

	"seehuhn.de/go/widen"
)

// Widen is the root command.
type Widen struct{}

func (cmd *Widen) Run() error {
	return argp.ShowUsage
}

func main() {
	root := argp.NewCmd(&Widen{}, "Stroke widening for 2D vector paths")
	root.AddCmd(&PNG{}, "png", "Render the test fixtures to PNG files")
	root.AddCmd(&PDF{}, "pdf", "Write the test fixtures as PDF files")
	root.AddCmd(&JSON{}, "json", "Export the test fixtures with stroke bounds")
	root.AddCmd(&Job{}, "job", "Render a stroke job described in a TOML file")
	root.Parse()
	root.PrintHelp()
}

// setupLogging sends the log messages of the widen package to stderr.
func setupLogging(verbose bool) {
	if !verbose {
		return
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	widen.SetLogger(slog.New(h))
}
