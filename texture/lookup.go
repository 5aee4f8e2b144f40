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

package texture

import (
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"seehuhn.de/go/mlaa"
)

// Config holds the settings of a Lookup.
type Config struct {
	// MaxDistance is the maximal search distance.  Zero selects
	// mlaa.DefaultMaxDistance, other values below mlaa.MinDistance are
	// raised to mlaa.MinDistance.
	MaxDistance int

	// Logger receives log messages.  If nil, mlaa.Logger() is used.
	Logger *slog.Logger
}

// Lookup owns the texture holding the area lookup table, and regenerates
// it when the maximal search distance changes.
//
// At most one regeneration runs at a time: a call to SetMaxDistance which
// overlaps with a running regeneration is dropped.
type Lookup struct {
	busy atomic.Bool

	mu      sync.Mutex
	tex     Texture
	maxDist int
	logger  *slog.Logger
}

// NewLookup generates the table for cfg.MaxDistance and uploads it.
func NewLookup(cfg Config) (*Lookup, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = mlaa.Logger()
	}
	d := cfg.MaxDistance
	if d == 0 {
		d = mlaa.DefaultMaxDistance
	}

	l := &Lookup{logger: logger}
	l.tex.logger = logger
	if _, err := l.SetMaxDistance(d); err != nil {
		return nil, err
	}
	return l, nil
}

// SetMaxDistance regenerates the table if the clamped distance differs
// from the current one.  The return value reports whether the texture was
// updated.  If another regeneration is in progress, the request is
// dropped and SetMaxDistance returns false.
func (l *Lookup) SetMaxDistance(maxDistance int) (bool, error) {
	if !l.busy.CompareAndSwap(false, true) {
		l.logger.Debug("lookup regeneration already in progress",
			slog.Int("maxDistance", maxDistance))
		return false, nil
	}
	defer l.busy.Store(false)

	d := mlaa.ClampDistance(maxDistance)

	l.mu.Lock()
	current := l.maxDist
	l.mu.Unlock()
	if d == current {
		return false, nil
	}

	img := mlaa.Generate(d)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.tex.Upload(img); err != nil {
		return false, err
	}
	l.maxDist = d
	l.logger.Debug("lookup regenerated", slog.Int("maxDistance", d))
	return true, nil
}

// MaxDistance returns the clamped search distance of the current table.
func (l *Lookup) MaxDistance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.maxDist
}

// Image returns a copy of the current table.
func (l *Lookup) Image() *image.RGBA {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tex.Image()
}

// Texture returns the texture holding the table.  The texture must not be
// used concurrently with SetMaxDistance.
func (l *Lookup) Texture() *Texture {
	return &l.tex
}

// Close releases the texture storage.
func (l *Lookup) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tex.Release()
	l.maxDist = 0
}
