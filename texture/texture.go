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

// Package texture holds area lookup tables in texture storage and keeps
// them up to date when the maximal search distance changes.
package texture

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gg"

	"seehuhn.de/go/mlaa"
)

// Filter is the sampling mode of a texture.
type Filter int

const (
	// FilterPoint selects nearest-neighbour sampling.
	FilterPoint Filter = iota

	// FilterBilinear selects bilinear interpolation.
	FilterBilinear
)

func (f Filter) String() string {
	switch f {
	case FilterPoint:
		return "point"
	case FilterBilinear:
		return "bilinear"
	default:
		return fmt.Sprintf("Filter(%d)", int(f))
	}
}

// Errors returned by Texture.Upload.
var (
	ErrNotSquare = errors.New("lookup table is not square")
	ErrFilter    = errors.New("lookup tables require point sampling")
	ErrEmpty     = errors.New("empty image")
)

// Texture is RGBA texture storage for a lookup table.  Storage is
// reallocated only when the size of the uploaded table changes.
//
// The zero value is an empty texture with point sampling.
type Texture struct {
	// Filter is the sampling mode.  Interpolating between entries of a
	// lookup table gives meaningless values, so Upload only accepts
	// FilterPoint.
	Filter Filter

	pm       *gg.Pixmap
	reallocs int
	uploads  int
	logger   *slog.Logger
}

// Upload copies img into the texture.
func (t *Texture) Upload(img *image.RGBA) error {
	if t.Filter != FilterPoint {
		return fmt.Errorf("%w: filter is %s", ErrFilter, t.Filter)
	}
	b := img.Bounds()
	if b.Empty() {
		return ErrEmpty
	}
	if b.Dx() != b.Dy() {
		return fmt.Errorf("%w: %dx%d", ErrNotSquare, b.Dx(), b.Dy())
	}

	size := b.Dx()
	if t.pm == nil || t.pm.Width() != size {
		t.pm = gg.NewPixmap(size, size)
		t.reallocs++
		t.log().Info("lookup texture allocated",
			slog.Int("size", size),
			slog.String("filter", t.Filter.String()))
	}

	dst := t.pm.Data()
	rowLen := 4 * size
	for y := range size {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(dst[y*rowLen:(y+1)*rowLen], src[:rowLen])
	}
	t.uploads++
	return nil
}

// Size returns the side length of the texture, or 0 if nothing has been
// uploaded.
func (t *Texture) Size() int {
	if t.pm == nil {
		return 0
	}
	return t.pm.Width()
}

// Pixmap returns the texture storage, or nil if nothing has been uploaded.
func (t *Texture) Pixmap() *gg.Pixmap {
	return t.pm
}

// Image returns a copy of the texture contents.
func (t *Texture) Image() *image.RGBA {
	if t.pm == nil {
		return nil
	}
	return t.pm.ToImage()
}

// Reallocations returns how often storage was allocated.
func (t *Texture) Reallocations() int {
	return t.reallocs
}

// Uploads returns the number of successful uploads.
func (t *Texture) Uploads() int {
	return t.uploads
}

// Release frees the texture storage.  A later upload allocates new
// storage.
func (t *Texture) Release() {
	t.pm = nil
}

func (t *Texture) log() *slog.Logger {
	if t.logger != nil {
		return t.logger
	}
	return mlaa.Logger()
}
