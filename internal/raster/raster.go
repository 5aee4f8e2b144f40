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

// Package raster computes exact pixel coverage of polygons.
//
// The lookup tables in the parent package are computed from a closed-form
// coverage formula. This package provides an independent way to obtain
// the same numbers, by accumulating signed edge contributions per pixel,
// and is used to cross-check the tables.
package raster

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// edge is a polygon edge in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasteriser converts polygons to pixel coverage values, the fraction of
// each pixel's area inside the polygon, from 0 (outside) to 1 (inside).
// Internal buffers grow as needed but never shrink.
//
// A Rasteriser is not safe for concurrent use.
type Rasteriser struct {
	// CTM maps polygon coordinates to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip bounds output to this device-coordinate rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	cover       []float32 // cover change per pixel; reused as output
	area        []float32 // area within pixel
	edges       []edge
	rowHasEdges []bool

	bboxFirst bool
	bboxXMin  float64
	bboxXMax  float64
	bboxYMin  float64
	bboxYMax  float64
}

// NewRasteriser returns a Rasteriser with the given clip rectangle and the
// identity transformation.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:  matrix.Identity,
		Clip: clip,
	}
}

// Reset restores the initial state with a new clip rectangle, keeping the
// capacity of internal buffers.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.rowHasEdges = r.rowHasEdges[:0]
}

// FillNonZero fills the polygons using the nonzero winding rule.
// Each polygon is implicitly closed. The emit callback receives coverage
// row by row; its slice argument is valid only during the call.
func (r *Rasteriser) FillNonZero(polys [][]vec.Vec2, emit func(y, xMin int, coverage []float32)) {
	r.fill(polys, fillNonZero, emit)
}

// FillEvenOdd fills the polygons using the even-odd rule.
// Each polygon is implicitly closed. The emit callback receives coverage
// row by row; its slice argument is valid only during the call.
func (r *Rasteriser) FillEvenOdd(polys [][]vec.Vec2, emit func(y, xMin int, coverage []float32)) {
	r.fill(polys, fillEvenOdd, emit)
}

type fillRule int

const (
	fillNonZero fillRule = iota
	fillEvenOdd
)

func (r *Rasteriser) fill(polys [][]vec.Vec2, rule fillRule, emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := r.collectEdges(polys)
	if !ok {
		return
	}
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)
	r.rowHasEdges = slices.Grow(r.rowHasEdges[:0], height)[:height]
	clear(r.rowHasEdges)

	for i := range r.edges {
		e := &r.edges[i]

		lo := int(math.Floor(min(e.y0, e.y1)))
		hi := int(math.Floor(max(e.y0, e.y1))) + 1
		lo = max(lo, yMin)
		hi = min(hi, yMax)

		for y := lo; y < hi; y++ {
			row := y - yMin
			off := row * width
			accumulateEdge(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			r.rowHasEdges[row] = true
		}
	}

	for row := range height {
		if !r.rowHasEdges[row] {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		if rule == fillNonZero {
			integrateNonZero(coverage, r.area[off:off+width])
		} else {
			integrateEvenOdd(coverage, r.area[off:off+width])
		}
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// collectEdges transforms all polygon edges to device space.
// The returned bounding box is clamped to the clip rectangle.
func (r *Rasteriser) collectEdges(polys [][]vec.Vec2) (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.bboxFirst = true

	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		prev := poly[len(poly)-1]
		for _, p := range poly {
			r.addEdge(prev, p)
			prev = p
		}
	}
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.bboxXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bboxXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.bboxYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.bboxYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	m := r.CTM
	x0 := m[0]*p0.X + m[2]*p0.Y + m[4]
	y0 := m[1]*p0.X + m[3]*p0.Y + m[5]
	x1 := m[0]*p1.X + m[2]*p1.Y + m[4]
	y1 := m[1]*p1.X + m[3]*p1.Y + m[5]

	dy := y1 - y0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	r.edges = append(r.edges, edge{
		x0: x0, y0: y0,
		x1: x1, y1: y1,
		dxdy: (x1 - x0) / dy,
	})

	if r.bboxFirst {
		r.bboxXMin, r.bboxXMax = min(x0, x1), max(x0, x1)
		r.bboxYMin, r.bboxYMax = min(y0, y1), max(y0, y1)
		r.bboxFirst = false
		return
	}
	r.bboxXMin = min(r.bboxXMin, x0, x1)
	r.bboxXMax = max(r.bboxXMax, x0, x1)
	r.bboxYMin = min(r.bboxYMin, y0, y1)
	r.bboxYMax = max(r.bboxYMax, y0, y1)
}

// Coverage accumulation model:
//
// For each pixel, two values are tracked:
//   cover: signed vertical extent of edges crossing this pixel column
//   area:  cover weighted by the distance of the crossing from the right
//          pixel boundary
//
// The coverage of pixel i is accum + area[i], where accum is the sum of
// cover[j] for j < i.

// accumulateEdge adds the contribution of e within scanline y.
// The buffers are indexed by x - bboxXMin.
func accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < bboxXMin {
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		addSegment(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	// The edge crosses several pixel columns: split it at the column
	// boundaries.
	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		segTop := max(min(ya, yb), yTop)
		segBot := min(max(ya, yb), yBot)
		if segBot <= segTop {
			continue
		}
		addSegment(e, segTop, segBot, sign, pix, cover, area, bboxXMin, bboxXMax)
	}
}

// addSegment adds the part of e between yTop and yBot, which lies inside
// pixel column pix.
func addSegment(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	c := sign * float32(yBot-yTop)

	if pix < bboxXMin {
		cover[0] += c
		area[0] += c
		return
	}
	if pix >= bboxXMax {
		return
	}

	yMid := (yTop + yBot) / 2
	xFrac := e.x0 + e.dxdy*(yMid-e.y0) - float64(pix)

	idx := pix - bboxXMin
	cover[idx] += c
	area[idx] += c * float32(1-xFrac)
}

// integrateNonZero converts accumulated cover/area to coverage using the
// nonzero winding rule. The cover slice is overwritten with the result.
func integrateNonZero(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		cover[i] = min(abs32(raw), 1)
	}
}

// integrateEvenOdd converts accumulated cover/area to coverage using the
// even-odd rule. The cover slice is overwritten with the result.
func integrateEvenOdd(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := abs32(accum + area[i])
		accum += cover[i]

		mod := raw - 2*float32(int(raw/2))
		cover[i] = 1 - abs32(1-mod)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros returns the non-zero portion of coverage and its offset,
// or nil if all values are zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// horizontalEdgeThreshold is the minimum vertical extent for an edge to
// contribute to coverage.
const horizontalEdgeThreshold = 1e-10
