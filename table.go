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

package mlaa

import (
	"image"
	"math"

	"seehuhn.de/go/geom/vec"
)

// blocksPerSide is the number of pattern blocks along each side of a table.
const blocksPerSide = 5

// table is the pixel buffer of a lookup table under construction.
// The image is divided into blocksPerSide×blocksPerSide blocks of
// maxDist×maxDist pixels.
type table struct {
	maxDist int
	size    int
	img     *image.RGBA

	offsetX, offsetY int
}

func newTable(maxDist int) *table {
	size := maxDist * blocksPerSide
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return &table{
		maxDist: maxDist,
		size:    size,
		img:     img,
	}
}

// selectBlock directs subsequent writes to the given block.
func (t *table) selectBlock(blockX, blockY int) {
	t.offsetX = blockX * t.maxDist
	t.offsetY = blockY * t.maxDist
}

// set stores v at column x and row y of the current block, and at the
// mirrored position on the other side of the main diagonal.  Keeping both
// writes here makes the table symmetric, which the pattern layout relies on.
func (t *table) set(x, y int, v vec.Vec2) {
	r, g := quantize(v.X), quantize(v.Y)

	i := t.img.PixOffset(t.offsetX+x, t.offsetY+y)
	t.img.Pix[i] = r
	t.img.Pix[i+1] = g

	i = t.img.PixOffset(t.offsetY+y, t.offsetX+x)
	t.img.Pix[i] = r
	t.img.Pix[i+1] = g
}

// image returns the finished table.  The table must not be modified
// afterwards.
func (t *table) image() *image.RGBA {
	img := t.img
	t.img = nil
	return img
}

// quantize converts a coverage value to a byte, saturating values outside
// [0, 1].
func quantize(v float64) uint8 {
	if !(v > 0) { // also catches NaN
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
