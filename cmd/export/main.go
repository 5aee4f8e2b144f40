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

// Command export writes the pattern catalogue to JSON for the Python
// reference generator.  Run from the module root directory.
package main

import (
	"encoding/json"
	"math"
	"os"

	"seehuhn.de/go/mlaa"
)

func main() {
	var out struct {
		Distances []int         `json:"distances"`
		Patterns  []jsonPattern `json:"patterns"`
	}
	out.Distances = []int{2, 4, 9, 16}
	for _, p := range mlaa.Patterns() {
		out.Patterns = append(out.Patterns, toJSON(p))
	}

	f, err := os.Create("testdata/patterns.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonPattern struct {
	Name  string     `json:"name"`
	Block [2]int     `json:"block"`
	Lines []jsonLine `json:"lines"`
}

// jsonLine omits infinite clamp bounds, since JSON has no infinities.
type jsonLine struct {
	YLeft    float64  `json:"y_left"`
	YRight   float64  `json:"y_right"`
	ClampMin *float64 `json:"clamp_min,omitempty"`
	ClampMax *float64 `json:"clamp_max,omitempty"`
}

func toJSON(p mlaa.Pattern) jsonPattern {
	b := p.Block()
	jp := jsonPattern{
		Name:  p.String(),
		Block: [2]int{b.X, b.Y},
	}
	for _, l := range p.Lines() {
		jp.Lines = append(jp.Lines, jsonLine{
			YLeft:    l.YLeft,
			YRight:   l.YRight,
			ClampMin: finite(l.ClampMin),
			ClampMax: finite(l.ClampMax),
		})
	}
	return jp
}

func finite(x float64) *float64 {
	if math.IsInf(x, 0) {
		return nil
	}
	return &x
}
