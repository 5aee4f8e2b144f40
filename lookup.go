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
	"fmt"
	"image"
	"log/slog"

	"seehuhn.de/go/geom/vec"
)

const (
	// MinDistance is the smallest supported maximal search distance.
	// Smaller values give degenerate pattern geometry.
	MinDistance = 2

	// DefaultMaxDistance is the maximal search distance used when none is
	// configured.
	DefaultMaxDistance = 9
)

// Pattern identifies one of the edge shapes stored in a lookup table.
type Pattern int

// These are the patterns stored in a lookup table, in generation order.
const (
	PatternZ   Pattern = iota // straight diagonal edge
	PatternLA                 // corner, left variant
	PatternLB                 // corner, right variant
	PatternUA                 // double corner, lower variant
	PatternUB                 // double corner, upper variant
	PatternT                  // junction
	PatternLTA                // corner plus junction
	PatternLTB                // corner plus junction, mirrored
	PatternTT                 // two junctions
	numPatterns
)

// patternInfo describes how the block of a pattern is filled.
// The block coordinates are in units of the maximal search distance.
// If two lines are given, the average of their coverage is stored.
type patternInfo struct {
	name  string
	block image.Point
	lines []Line
}

// patterns is the catalogue of all patterns.  Heights are in pixels,
// relative to the boundary between the two pixel rows.
//
// The block positions are chosen so that each block is either on the main
// diagonal of the table or its mirror image holds the mirrored pattern.
var patterns = [numPatterns]patternInfo{
	PatternZ: {
		name:  "Z",
		block: image.Pt(3, 1),
		lines: []Line{NewLine(0.5, -0.5)},
	},
	PatternLA: {
		name:  "L/A",
		block: image.Pt(1, 0),
		lines: []Line{NewClampedLine(-0.5, 0.5, -5, 0)},
	},
	PatternLB: {
		name:  "L/B",
		block: image.Pt(3, 0),
		lines: []Line{NewClampedLine(0.5, -0.5, 0, 0.5)},
	},
	PatternUA: {
		name:  "U/A",
		block: image.Pt(1, 1),
		lines: []Line{
			NewClampedLine(-0.5, 0.5, -5, 0),
			NewClampedLine(0.5, -0.5, -5, 0),
		},
	},
	PatternUB: {
		name:  "U/B",
		block: image.Pt(3, 3),
		lines: []Line{
			NewClampedLine(0.5, -0.5, 0, 0.5),
			NewClampedLine(-0.5, 0.5, 0, 0.5),
		},
	},
	PatternT: {
		name:  "T",
		block: image.Pt(0, 4),
		lines: []Line{
			NewClampedLine(-0.5, 0.5, 0, 0.5),
			NewClampedLine(0.5, -0.5, -0.5, 0),
		},
	},
	PatternLTA: {
		name:  "LT/A",
		block: image.Pt(4, 1),
		lines: []Line{
			NewLine(0.5, -0.5),
			NewClampedLine(-0.5, 0.5, -0.5, 0),
		},
	},
	PatternLTB: {
		name:  "LT/B",
		block: image.Pt(4, 3),
		lines: []Line{
			NewLine(-0.5, 0.5),
			NewClampedLine(0.5, -0.5, 0, 0.5),
		},
	},
	PatternTT: {
		name:  "TT",
		block: image.Pt(4, 4),
		lines: []Line{
			NewLine(-0.5, 0.5),
			NewLine(0.5, -0.5),
		},
	},
}

// Patterns returns all patterns, in generation order.
func Patterns() []Pattern {
	res := make([]Pattern, numPatterns)
	for i := range res {
		res[i] = Pattern(i)
	}
	return res
}

func (p Pattern) String() string {
	if p < 0 || p >= numPatterns {
		return fmt.Sprintf("Pattern(%d)", int(p))
	}
	return patterns[p].name
}

// Block returns the block coordinates of the pattern, in units of the
// maximal search distance.
func (p Pattern) Block() image.Point {
	return patterns[p].block
}

// Origin returns the pixel coordinates of the top-left corner of the
// pattern's block, in a table generated for the given maximal distance.
func (p Pattern) Origin(maxDistance int) image.Point {
	return patterns[p].block.Mul(ClampDistance(maxDistance))
}

// Lines returns the edges which make up the pattern.
func (p Pattern) Lines() []Line {
	return append([]Line(nil), patterns[p].lines...)
}

// ClampDistance returns the maximal search distance which is actually used
// for the given value.
func ClampDistance(maxDistance int) int {
	return max(maxDistance, MinDistance)
}

// Size returns the side length, in pixels, of the table generated for the
// given maximal distance.
func Size(maxDistance int) int {
	return ClampDistance(maxDistance) * blocksPerSide
}

// Generate computes the area lookup table for the given maximal search
// distance.  Values below MinDistance are replaced by MinDistance.
//
// The result is a square image of side Size(maxDistance).  For every
// pattern and every pair (left, right) of search distances in
// [0, maxDistance), the red channel of the pixel at
// Origin + (left, right) holds the area to blend from one side of the
// edge, and the green channel holds the area from the opposite side.
// Blue is zero and alpha is 255.  The image is symmetric under
// transposition.
func Generate(maxDistance int) *image.RGBA {
	return generate(maxDistance, PixelCoverage)
}

func generate(maxDistance int, coverage func(left, right float64) float64) *image.RGBA {
	maxDist := ClampDistance(maxDistance)
	t := newTable(maxDist)

	for p := range numPatterns {
		info := &patterns[p]
		t.selectBlock(info.block.X, info.block.Y)
		fill(t, maxDist, info.lines, coverage)
	}

	Logger().Debug("area lookup table generated",
		slog.Int("maxDistance", maxDist),
		slog.Int("size", t.size))

	return t.image()
}

// fill writes the coverage of the given lines for all pairs of distances
// into the current block.  For more than one line, the average is stored.
func fill(t *table, maxDist int, lines []Line, coverage func(left, right float64) float64) {
	scale := 1 / float64(len(lines))
	for left := range maxDist {
		for right := range maxDist {
			var sum vec.Vec2
			for _, l := range lines {
				sum = sum.Add(l.area(left, right, coverage))
			}
			if len(lines) > 1 {
				sum = sum.Mul(scale)
			}
			t.set(left, right, sum)
		}
	}
}
