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

// Package preview renders area lookup tables for inspection.
package preview

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// Options controls Render.
type Options struct {
	// Scale is the number of output pixels per table entry, in each
	// direction.  Values below 1 are treated as 1.
	Scale int

	// FalseColor maps the two blend weights to a colour scale instead of
	// showing the raw red and green channels.
	FalseColor bool
}

// Colours used by the false colour mode.
var (
	areaColor     = colorful.Color{R: 1, G: 0.55, B: 0.1}
	oppositeColor = colorful.Color{R: 0.15, G: 0.45, B: 1}
	black         = colorful.Color{}
)

// Render returns an enlarged copy of the table.  Table entries are
// replicated, never interpolated.
func Render(img *image.RGBA, opt Options) *image.RGBA {
	scale := max(opt.Scale, 1)

	var src image.Image = img
	if opt.FalseColor {
		src = falseColor(img)
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// falseColor maps each entry to a colour whose hue shows which side of the
// edge dominates, and whose brightness shows the total weight.
func falseColor(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	res := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			res.SetRGBA(x, y, weightColor(float64(c.R)/255, float64(c.G)/255))
		}
	}
	return res
}

func weightColor(area, opposite float64) color.RGBA {
	if area == 0 && opposite == 0 {
		return color.RGBA{A: 255}
	}
	hue := oppositeColor.BlendLab(areaColor, area/(area+opposite))
	// blend weights rarely exceed 0.5
	level := min(1, 2*max(area, opposite))
	r, g, b := black.BlendLab(hue, level).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
