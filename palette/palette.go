// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package palette implements color schemes
// used to draw plots.
package palette

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/js-arias/blind"
)

// Gradienter is an interface for types
// that return a color gradient.
type Gradienter interface {
	Gradient(v float64) color.Color
}

// Gray returns a gray scale
// between 0 (black)
// and 200 (light gray).
type Gray struct{}

func (g Gray) Gradient(v float64) color.Color {
	v = clamp(v)
	c := 200 - uint8(v*200)
	return color.RGBA{c, c, c, 255}
}

// Incandescent is the incandescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_incandescent>.
type Incandescent struct{}

func (i Incandescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Incandescent, clamp(v))
}

// Iridescent is the iridescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_iridescent>.
type Iridescent struct{}

func (i Iridescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Iridescent, clamp(v))
}

// Rainbow is the rainbow color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_rainbow_smooth>
// starting at purple and ending at red.
type Rainbow struct{}

func (r Rainbow) Gradient(v float64) color.Color {
	return blind.Sequential(blind.RainbowPurpleToRed, clamp(v))
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Names are the valid color scheme names.
var Names = []string{
	"gray",
	"incandescent",
	"iridescent",
	"rainbow",
}

// ByName returns a color scheme by its name.
func ByName(name string) (Gradienter, error) {
	switch strings.ToLower(name) {
	case "", "rainbow":
		return Rainbow{}, nil
	case "gray":
		return Gray{}, nil
	case "incandescent":
		return Incandescent{}, nil
	case "iridescent":
		return Iridescent{}, nil
	}
	return nil, fmt.Errorf("unknown color scheme %q", name)
}

// Colors returns n colors
// evenly spaced along a gradient.
func Colors(g Gradienter, n int) []color.Color {
	cs := make([]color.Color, n)
	for i := range cs {
		v := 0.5
		if n > 1 {
			v = float64(i) / float64(n-1)
		}
		cs[i] = g.Gradient(v)
	}
	return cs
}
