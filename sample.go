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

	"seehuhn.de/go/geom/vec"
)

// Sample looks up the blend weights for pattern p and the search distances
// left and right in a table produced by Generate(maxDistance).  Distances
// outside [0, maxDistance) are clamped, as with point sampling of a texture
// in clamp-to-edge mode.
//
// The X component of the result is the area from the red channel, the Y
// component the area from the green channel.
func Sample(img *image.RGBA, maxDistance int, p Pattern, left, right int) vec.Vec2 {
	maxDist := ClampDistance(maxDistance)
	left = min(max(left, 0), maxDist-1)
	right = min(max(right, 0), maxDist-1)

	o := p.Origin(maxDist)
	i := img.PixOffset(img.Rect.Min.X+o.X+left, img.Rect.Min.Y+o.Y+right)
	return vec.Vec2{
		X: float64(img.Pix[i]) / 255,
		Y: float64(img.Pix[i+1]) / 255,
	}
}
