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
	"errors"
	"fmt"
	"image"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/mlaa/internal/raster"
)

// Errors returned by Verify.
var (
	ErrSize     = errors.New("wrong table size")
	ErrChannel  = errors.New("unexpected blue or alpha value")
	ErrSymmetry = errors.New("table is not symmetric")
	ErrMismatch = errors.New("table differs from reference")
)

// referenceCoverage computes pixel coverage by rasterizing the pixel column
// under a line segment.  The baseline is at device y=1, so that row 1 of
// the output holds the area above the baseline and row 0 the area below.
type referenceCoverage struct {
	r    *raster.Rasteriser
	poly [][]vec.Vec2
	rows [2]float64
}

func newReferenceCoverage() *referenceCoverage {
	return &referenceCoverage{
		r:    raster.NewRasteriser(rect.Rect{LLx: 0, LLy: 0, URx: 1, URy: 2}),
		poly: [][]vec.Vec2{make([]vec.Vec2, 4)},
	}
}

// both returns the area above (X) and below (Y) the baseline, for line
// heights in [-1, 1].
func (rc *referenceCoverage) both(left, right float64) vec.Vec2 {
	p := rc.poly[0]
	p[0] = vec.Vec2{X: 0, Y: 1}
	p[1] = vec.Vec2{X: 1, Y: 1}
	p[2] = vec.Vec2{X: 1, Y: 1 + right}
	p[3] = vec.Vec2{X: 0, Y: 1 + left}

	rc.rows = [2]float64{}
	rc.r.FillNonZero(rc.poly, rc.emit)
	return vec.Vec2{X: rc.rows[1], Y: rc.rows[0]}
}

func (rc *referenceCoverage) emit(y, xMin int, coverage []float32) {
	if xMin == 0 && y >= 0 && y < 2 {
		rc.rows[y] = float64(coverage[0])
	}
}

// positive has the same signature as PixelCoverage.
func (rc *referenceCoverage) positive(left, right float64) float64 {
	return rc.both(left, right).X
}

// ReferenceCoverage computes the area of the unit pixel between the x-axis
// and the line through (0, left) and (1, right) by rasterizing the region.
// X is the area above the axis, Y the area below.  The heights must be in
// the range [-1, 1].
//
// The X component equals PixelCoverage(left, right) up to rounding.
func ReferenceCoverage(left, right float64) vec.Vec2 {
	return newReferenceCoverage().both(left, right)
}

// Verify checks a table produced by Generate(maxDistance).  The blend
// weights are recomputed with rasterized coverage in place of the closed
// form, and every red and green value must agree with the recomputed value
// within tolerance.  Verify also checks the image size, the blue and alpha
// channels, and the symmetry of the table.
func Verify(img *image.RGBA, maxDistance int, tolerance int) error {
	size := Size(maxDistance)
	b := img.Bounds()
	if b.Dx() != size || b.Dy() != size {
		return fmt.Errorf("%w: %dx%d, expected %dx%d",
			ErrSize, b.Dx(), b.Dy(), size, size)
	}

	at := func(x, y int) []uint8 {
		i := img.PixOffset(b.Min.X+x, b.Min.Y+y)
		return img.Pix[i : i+4 : i+4]
	}

	for y := range size {
		for x := range size {
			px := at(x, y)
			if px[2] != 0 || px[3] != 255 {
				return fmt.Errorf("%w at (%d,%d): blue=%d alpha=%d",
					ErrChannel, x, y, px[2], px[3])
			}
			if x < y {
				continue
			}
			tr := at(y, x)
			if px[0] != tr[0] || px[1] != tr[1] {
				return fmt.Errorf("%w: (%d,%d)=(%d,%d) but (%d,%d)=(%d,%d)",
					ErrSymmetry, x, y, px[0], px[1], y, x, tr[0], tr[1])
			}
		}
	}

	rc := newReferenceCoverage()
	ref := generate(maxDistance, rc.positive)

	count := 0
	var first string
	for y := range size {
		for x := range size {
			got := at(x, y)
			i := ref.PixOffset(x, y)
			want := ref.Pix[i : i+2]
			if absDiff(got[0], want[0]) <= tolerance && absDiff(got[1], want[1]) <= tolerance {
				continue
			}
			count++
			if count == 1 {
				first = fmt.Sprintf("(%d,%d): got (%d,%d), want (%d,%d)",
					x, y, got[0], got[1], want[0], want[1])
			}
		}
	}
	if count > 0 {
		return fmt.Errorf("%w: %d texels differ, first at %s", ErrMismatch, count, first)
	}
	return nil
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
