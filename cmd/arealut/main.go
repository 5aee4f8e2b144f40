// seehuhn.de/go/mlaa - morphological antialiasing lookup tables
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

// Command arealut writes the area lookup table for morphological
// antialiasing to a PNG file.  Optionally it also writes an enlarged
// preview image and a PDF rendering, and cross-checks the table against
// rasterized coverage.
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"

	"seehuhn.de/go/mlaa"
	"seehuhn.de/go/mlaa/preview"
	"seehuhn.de/go/mlaa/texture"
)

func main() {
	var (
		maxDistance = flag.Int("max-distance", mlaa.DefaultMaxDistance, "maximal search distance")
		output      = flag.String("o", "area.png", "output file for the lookup table")
		previewOut  = flag.String("preview", "", "output file for an enlarged preview (optional)")
		scale       = flag.Int("scale", 8, "preview scale factor")
		falseColor  = flag.Bool("false-color", false, "use false colours in the preview")
		pdfOut      = flag.String("pdf", "", "output file for a PDF rendering (optional)")
		verify      = flag.Bool("verify", false, "cross-check the table against rasterized coverage")
		verbose     = flag.Bool("v", false, "enable debug output")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	mlaa.SetLogger(logger)

	err := run(*maxDistance, *output, *previewOut, *pdfOut, *scale, *falseColor, *verify)
	if err != nil {
		logger.Error("arealut failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(maxDistance int, output, previewOut, pdfOut string, scale int, falseColor, verify bool) error {
	lookup, err := texture.NewLookup(texture.Config{MaxDistance: maxDistance})
	if err != nil {
		return err
	}
	defer lookup.Close()

	d := lookup.MaxDistance()
	if d != maxDistance {
		mlaa.Logger().Info("search distance adjusted",
			slog.Int("requested", maxDistance),
			slog.Int("used", d))
	}
	img := lookup.Image()

	if verify {
		if err := mlaa.Verify(img, d, 1); err != nil {
			return fmt.Errorf("verification: %w", err)
		}
		mlaa.Logger().Info("table verified", slog.Int("maxDistance", d))
	}

	if err := lookup.Texture().Pixmap().SavePNG(output); err != nil {
		return fmt.Errorf("%s: %w", output, err)
	}
	mlaa.Logger().Info("lookup table written",
		slog.String("file", output),
		slog.Int("size", lookup.Texture().Size()))

	if previewOut != "" {
		out := preview.Render(img, preview.Options{Scale: scale, FalseColor: falseColor})
		if err := writePNG(previewOut, out); err != nil {
			return err
		}
		mlaa.Logger().Info("preview written", slog.String("file", previewOut))
	}

	if pdfOut != "" {
		if err := preview.WritePDF(pdfOut, img, d); err != nil {
			return fmt.Errorf("%s: %w", pdfOut, err)
		}
		mlaa.Logger().Info("PDF written", slog.String("file", pdfOut))
	}

	return nil
}

func writePNG(path string, img *image.RGBA) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("%s: %w", path, cerr)
		}
	}()

	if err := preview.WritePNG(f, img); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
