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
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateSize(t *testing.T) {
	for d := -1; d <= 12; d++ {
		img := Generate(d)
		want := max(d, 2) * 5
		if b := img.Bounds(); b != image.Rect(0, 0, want, want) {
			t.Errorf("Generate(%d): bounds %v, want %dx%d", d, b, want, want)
		}
		if Size(d) != want {
			t.Errorf("Size(%d) = %d, want %d", d, Size(d), want)
		}
	}
}

func TestGenerateChannels(t *testing.T) {
	for _, d := range []int{2, 3, 9} {
		img := Generate(d)
		for i := 0; i < len(img.Pix); i += 4 {
			if img.Pix[i+2] != 0 || img.Pix[i+3] != 255 {
				w := img.Stride / 4
				x, y := (i/4)%w, (i/4)/w
				t.Fatalf("Generate(%d): pixel (%d,%d) has blue=%d alpha=%d",
					d, x, y, img.Pix[i+2], img.Pix[i+3])
			}
		}
	}
}

func TestGenerateSymmetry(t *testing.T) {
	for _, d := range []int{2, 5, 9, 16} {
		img := Generate(d)
		size := img.Bounds().Dx()
		for r := range size {
			for c := range size {
				a := img.RGBAAt(c, r)
				b := img.RGBAAt(r, c)
				if a.R != b.R || a.G != b.G {
					t.Fatalf("Generate(%d): (%d,%d)=%v but (%d,%d)=%v", d, c, r, a, r, c, b)
				}
			}
		}
	}
}

func TestGenerateDegenerate(t *testing.T) {
	want := Generate(2)
	for _, d := range []int{-5, 0, 1} {
		got := Generate(d)
		if !bytes.Equal(got.Pix, want.Pix) {
			t.Errorf("Generate(%d) differs from Generate(2)", d)
		}
	}
}

// TestGenerateZ checks one table entry against a hand computation.
func TestGenerateZ(t *testing.T) {
	img := Generate(4)
	if img.Bounds().Dx() != 20 {
		t.Fatalf("wrong size %v", img.Bounds())
	}

	// The Z pattern uses the line from 0.5 to -0.5.  For left=right=0 the
	// span is one pixel, so the heights at the pixel edges are 0.5 and
	// -0.5 and the area is a triangle of 0.5*0.5/2.
	slope := (-0.5 - 0.5) / float64(0+0+1)
	area := PixelCoverage(0.5, 0.5+slope)
	if area != 0.125 {
		t.Fatalf("unexpected area %g", area)
	}
	want := uint8(math.Round(area * 255))

	o := PatternZ.Origin(4)
	if o != image.Pt(12, 4) {
		t.Fatalf("PatternZ.Origin(4) = %v", o)
	}
	got := img.RGBAAt(o.X, o.Y)
	if d := int(got.R) - int(want); d < -1 || d > 1 {
		t.Errorf("Z(0,0): red = %d, want %d", got.R, want)
	}
	if d := int(got.G) - int(want); d < -1 || d > 1 {
		t.Errorf("Z(0,0): green = %d, want %d", got.G, want)
	}
}

// TestGenerateLayout checks that every primary block holds the pattern
// stored there, and that the blocks which are not used by any pattern or
// mirror image stay empty.
func TestGenerateLayout(t *testing.T) {
	const d = 6
	img := Generate(d)

	used := make(map[image.Point]bool)
	for _, p := range Patterns() {
		b := p.Block()
		used[b] = true
		used[image.Pt(b.Y, b.X)] = true

		lines := p.Lines()
		for left := range d {
			for right := range d {
				var a, o float64
				for _, l := range lines {
					v := l.Area(left, right)
					a += v.X
					o += v.Y
				}
				a /= float64(len(lines))
				o /= float64(len(lines))

				got := Sample(img, d, p, left, right)
				if math.Abs(got.X-a) > 1.01/255 || math.Abs(got.Y-o) > 1.01/255 {
					t.Errorf("%s(%d,%d): got %v, want (%g,%g)", p, left, right, got, a, o)
				}
			}
		}
	}

	for by := range 5 {
		for bx := range 5 {
			if used[image.Pt(bx, by)] {
				continue
			}
			for y := by * d; y < (by+1)*d; y++ {
				for x := bx * d; x < (bx+1)*d; x++ {
					if c := img.RGBAAt(x, y); c.R != 0 || c.G != 0 {
						t.Errorf("unused block (%d,%d): pixel (%d,%d) = %v", bx, by, x, y, c)
					}
				}
			}
		}
	}
}

func TestPatterns(t *testing.T) {
	ps := Patterns()
	if len(ps) != 9 {
		t.Fatalf("got %d patterns, want 9", len(ps))
	}

	blocks := make(map[image.Point]Pattern)
	names := make(map[string]bool)
	for _, p := range ps {
		b := p.Block()
		if b.X < 0 || b.X >= 5 || b.Y < 0 || b.Y >= 5 {
			t.Errorf("%s: block %v out of range", p, b)
		}
		if q, dup := blocks[b]; dup {
			t.Errorf("%s and %s share block %v", p, q, b)
		}
		blocks[b] = p
		if names[p.String()] {
			t.Errorf("duplicate name %q", p.String())
		}
		names[p.String()] = true

		n := len(p.Lines())
		if n != 1 && n != 2 {
			t.Errorf("%s: %d lines", p, n)
		}
	}

	// the mirror image of a block must not overwrite a different pattern
	for b, p := range blocks {
		m := image.Pt(b.Y, b.X)
		if q, ok := blocks[m]; ok && q != p {
			t.Errorf("mirror image of %s at %v overlaps %s", p, b, q)
		}
	}

	if s := Pattern(42).String(); s != "Pattern(42)" {
		t.Errorf("Pattern(42).String() = %q", s)
	}
}

func TestPatternOrigin(t *testing.T) {
	cases := []struct {
		p    Pattern
		d    int
		want image.Point
	}{
		{PatternZ, 9, image.Pt(27, 9)},
		{PatternLA, 9, image.Pt(9, 0)},
		{PatternT, 9, image.Pt(0, 36)},
		{PatternTT, 4, image.Pt(16, 16)},
		{PatternUB, 0, image.Pt(6, 6)}, // distance clamped to 2
	}
	for _, tc := range cases {
		if got := tc.p.Origin(tc.d); got != tc.want {
			t.Errorf("%s.Origin(%d) = %v, want %v", tc.p, tc.d, got, tc.want)
		}
	}
}

func TestSampleClamp(t *testing.T) {
	const d = 5
	img := Generate(d)
	for _, p := range Patterns() {
		if got, want := Sample(img, d, p, -3, 2), Sample(img, d, p, 0, 2); got != want {
			t.Errorf("%s: Sample(-3,2) = %v, want %v", p, got, want)
		}
		if got, want := Sample(img, d, p, 1, 99), Sample(img, d, p, 1, d-1); got != want {
			t.Errorf("%s: Sample(1,99) = %v, want %v", p, got, want)
		}
	}
}

func TestQuantize(t *testing.T) {
	cases := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{-0.1, 0},
		{math.NaN(), 0},
		{0.125, 32},
		{0.25, 64},
		{0.5, 128},
		{1, 255},
		{1.5, 255}, // saturates instead of wrapping
		{math.Inf(1), 255},
	}
	for _, tc := range cases {
		if got := quantize(tc.in); got != tc.want {
			t.Errorf("quantize(%g) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestVerify(t *testing.T) {
	for _, d := range []int{2, 4, 9} {
		t.Run(fmt.Sprintf("d%d", d), func(t *testing.T) {
			if err := Verify(Generate(d), d, 1); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestVerifyErrors(t *testing.T) {
	const d = 4
	o := PatternZ.Origin(d)

	cases := []struct {
		name   string
		d      int
		modify func(img *image.RGBA) *image.RGBA
		want   error
	}{
		{"size", 5, func(img *image.RGBA) *image.RGBA { return img }, ErrSize},
		{"alpha", d, func(img *image.RGBA) *image.RGBA {
			img.Pix[img.PixOffset(7, 3)+3] = 128
			return img
		}, ErrChannel},
		{"blue", d, func(img *image.RGBA) *image.RGBA {
			img.Pix[img.PixOffset(0, 19)+2] = 1
			return img
		}, ErrChannel},
		{"symmetry", d, func(img *image.RGBA) *image.RGBA {
			img.Pix[img.PixOffset(o.X+1, o.Y+2)] += 10
			return img
		}, ErrSymmetry},
		{"mismatch", d, func(img *image.RGBA) *image.RGBA {
			img.Pix[img.PixOffset(o.X+1, o.Y+2)] += 10
			img.Pix[img.PixOffset(o.Y+2, o.X+1)] += 10
			return img
		}, ErrMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			img := tc.modify(Generate(d))
			err := Verify(img, tc.d, 1)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

// TestAgainstReference compares the tables with reference images produced
// by tools/generate_references.py.
func TestAgainstReference(t *testing.T) {
	for _, d := range []int{2, 4, 9, 16} {
		name := fmt.Sprintf("area_%d", d)
		t.Run(name, func(t *testing.T) {
			ref, err := loadRGBA(filepath.Join("testdata", "reference", name+".png"))
			if err != nil {
				t.Fatalf("loading reference: %v", err)
			}
			got := Generate(d)
			if ref.Bounds() != got.Bounds() {
				t.Fatalf("reference has size %v, got %v", ref.Bounds(), got.Bounds())
			}

			bad := 0
			for i := range got.Pix {
				diff := int(got.Pix[i]) - int(ref.Pix[i])
				if diff < -1 || diff > 1 {
					bad++
				}
			}
			if bad > 0 {
				_ = writeDiffImage(name, ref, got)
				t.Errorf("%d channel values differ by more than 1", bad)
			}
		})
	}
}

func loadRGBA(path string) (img *image.RGBA, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	src, err := png.Decode(f)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	img = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := range b.Dy() {
		for x := range b.Dx() {
			c := color.RGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}

// writeDiffImage writes a three-panel image (actual, difference, reference)
// to the debug directory.
func writeDiffImage(name string, expected, actual *image.RGBA) (err error) {
	if err := os.MkdirAll("debug", 0755); err != nil {
		return err
	}

	w, h := actual.Bounds().Dx(), actual.Bounds().Dy()
	img := image.NewRGBA(image.Rect(0, 0, w*3, h))
	for y := range h {
		for x := range w {
			a := actual.RGBAAt(x, y)
			e := expected.RGBAAt(x, y)
			img.SetRGBA(x, y, a)
			img.SetRGBA(x+w, y, color.RGBA{
				R: uint8(min(255, 4*absDiff(a.R, e.R))),
				G: uint8(min(255, 4*absDiff(a.G, e.G))),
				A: 255,
			})
			img.SetRGBA(x+2*w, y, e)
		}
	}

	f, err := os.Create(filepath.Join("debug", name+".png"))
	if err != nil {
		return err
	}
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func BenchmarkGenerate(b *testing.B) {
	for _, d := range []int{4, 9, 32} {
		b.Run(fmt.Sprintf("d%d", d), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				Generate(d)
			}
		})
	}
}
