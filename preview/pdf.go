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

package preview

import (
	"errors"
	"image"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/mlaa"
)

// Layout of the PDF output, in PDF points.
const (
	cellSize = 4.0
	margin   = 18.0
)

// ErrNotSquare is returned by WritePDF for images which are not square.
var ErrNotSquare = errors.New("table is not square")

// panels returns the areas used to show the red and the green channel of
// a table with the given side length, in top-down coordinates.
func panels(size int) [2]rect.Rect {
	w := float64(size) * cellSize
	return [2]rect.Rect{
		{LLx: margin, LLy: margin, URx: margin + w, URy: margin + w},
		{LLx: 2*margin + w, LLy: margin, URx: 2*margin + 2*w, URy: margin + w},
	}
}

// WritePDF writes a one-page PDF file showing the table.  The left panel
// shows the area from the red channel, the right panel the opposite area
// from the green channel, as gray levels on black.  Thin lines mark the
// pattern blocks.
func WritePDF(path string, img *image.RGBA, maxDistance int) error {
	b := img.Bounds()
	if b.Dx() != b.Dy() {
		return ErrNotSquare
	}
	size := b.Dx()
	p := panels(size)

	paper := &pdf.Rectangle{
		URx: p[1].URx + margin,
		URy: p[1].URy + margin,
	}
	page, err := document.CreateSinglePage(path, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// Table rows run top to bottom, PDF coordinates bottom to top.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, paper.URy})

	for ch, panel := range p {
		page.SetFillColor(color.DeviceGray(0))
		page.Rectangle(panel.LLx, panel.LLy, panel.URx-panel.LLx, panel.URy-panel.LLy)
		page.Fill()

		for y := range size {
			for x := range size {
				v := img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)+ch]
				if v == 0 {
					continue
				}
				page.SetFillColor(color.DeviceGray(float64(v) / 255))
				page.Rectangle(panel.LLx+float64(x)*cellSize, panel.LLy+float64(y)*cellSize, cellSize, cellSize)
				page.Fill()
			}
		}

		step := float64(mlaa.ClampDistance(maxDistance)) * cellSize
		page.SetStrokeColor(color.DeviceGray(0.5))
		page.SetLineWidth(0.25)
		for pos := panel.LLx; pos <= panel.URx+0.5; pos += step {
			page.MoveTo(pos, panel.LLy)
			page.LineTo(pos, panel.URy)
		}
		for pos := panel.LLy; pos <= panel.URy+0.5; pos += step {
			page.MoveTo(panel.LLx, pos)
			page.LineTo(panel.URx, pos)
		}
		page.Stroke()
	}

	return page.Close()
}
