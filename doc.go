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

// Package mlaa computes the area lookup table for morphological
// antialiasing.
//
// Morphological antialiasing classifies each pixel on an edge into one of a
// few edge shapes (patterns) and determines how far the edge extends to the
// left and to the right of the pixel.  The lookup table maps the pattern and
// these two search distances to the fraction of the pixel which should be
// blended with its neighbour.  The values are computed analytically, from
// the area of the pixel lying under an idealised straight edge.
//
// The table is stored as an RGBA image, suitable for upload as a texture.
// It must be sampled without filtering.
package mlaa

//go:generate go run ./cmd/export
//go:generate python3 tools/generate_references.py
