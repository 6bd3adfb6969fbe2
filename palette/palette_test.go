// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package palette_test

import (
	"image/color"
	"testing"

	"github.com/js-arias/epigeo/palette"
)

func TestByName(t *testing.T) {
	for _, n := range palette.Names {
		if _, err := palette.ByName(n); err != nil {
			t.Errorf("scheme %q: unexpected error: %v", n, err)
		}
	}
	if _, err := palette.ByName("sepia"); err == nil {
		t.Errorf("scheme %q: expecting error", "sepia")
	}
}

func TestColors(t *testing.T) {
	cs := palette.Colors(palette.Gray{}, 3)
	want := []color.RGBA{
		{200, 200, 200, 255},
		{100, 100, 100, 255},
		{0, 0, 0, 255},
	}
	if len(cs) != len(want) {
		t.Fatalf("colors: got %d, want %d", len(cs), len(want))
	}
	for i, c := range cs {
		if c != want[i] {
			t.Errorf("color %d: got %v, want %v", i, c, want[i])
		}
	}

	if cs := palette.Colors(palette.Rainbow{}, 1); len(cs) != 1 {
		t.Errorf("colors: got %d, want %d", len(cs), 1)
	}
}
