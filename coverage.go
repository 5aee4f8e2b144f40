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
	"math"

	"seehuhn.de/go/geom/vec"
)

// PixelCoverage returns the area of the unit pixel [0,1]×[0,1] between the
// x-axis and a straight line, where left and right are the heights of the
// line at x=0 and x=1.  Only the part of the line above the axis
// contributes.  The result is never negative, but is not limited to 1.
func PixelCoverage(left, right float64) float64 {
	// The line crosses the axis inside the pixel: a single triangle.
	if left*right < 0 {
		pos := max(left, right)
		neg := min(left, right)
		a := pos / (pos - neg) // width of the triangle
		return max(0, pos*a*0.5)
	}

	// A trapezoid.
	return max(0, (left+right)*0.5)
}

// Line describes one edge of a pattern.  Heights are given in pixels,
// relative to the boundary between the two pixel rows, at the left and right
// end of the search span.
//
// The zero Line has the clamp range [0, 0]; use NewLine or NewClampedLine.
type Line struct {
	YLeft, YRight float64

	// The line heights at the edges of the current pixel are clamped to
	// [ClampMin, ClampMax] before computing the clamped coverage.
	ClampMin, ClampMax float64
}

// NewLine returns an unclamped line.
func NewLine(yLeft, yRight float64) Line {
	return Line{
		YLeft:    yLeft,
		YRight:   yRight,
		ClampMin: math.Inf(-1),
		ClampMax: math.Inf(+1),
	}
}

// NewClampedLine returns a line whose heights are limited to the range
// [clampMin, clampMax].
func NewClampedLine(yLeft, yRight, clampMin, clampMax float64) Line {
	return Line{
		YLeft:    yLeft,
		YRight:   yRight,
		ClampMin: clampMin,
		ClampMax: clampMax,
	}
}

// Unclamped returns a copy of l without clamp range.
func (l Line) Unclamped() Line {
	return NewLine(l.YLeft, l.YRight)
}

// Area returns the coverage of the pixel at distance left from the left end
// and distance right from the right end of the line.  The X component of
// the result is the area above the boundary, the Y component is the area
// below the boundary.
//
// Clamping only ever reduces the coverage: in some configurations the
// clamped heights turn a triangle into a larger trapezoid, so the minimum
// of the clamped and the unclamped values is returned.
func (l Line) Area(left, right int) vec.Vec2 {
	return l.area(left, right, PixelCoverage)
}

// area implements Area with a configurable coverage function.
func (l Line) area(left, right int, coverage func(left, right float64) float64) vec.Vec2 {
	span := float64(left + right + 1)
	slope := (l.YRight - l.YLeft) / span

	y0 := l.YLeft + slope*float64(left)
	y1 := y0 + slope
	area := coverage(y0, y1)
	areaOpp := coverage(-y0, -y1)

	y0 = min(max(y0, l.ClampMin), l.ClampMax)
	y1 = min(max(y1, l.ClampMin), l.ClampMax)
	area = min(area, coverage(y0, y1))
	areaOpp = min(areaOpp, coverage(-y0, -y1))

	return vec.Vec2{X: area, Y: areaOpp}
}
