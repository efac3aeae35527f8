// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package raster

import (
	"image"
	"image/color"
	"math"
)

// scaledPattern repeats an image starting at origin, in canvas pixels.
// Each image pixel covers scale canvas pixels in both directions.
type scaledPattern struct {
	img    image.Image
	origin image.Point
	scale  float64
}

func (p scaledPattern) ColorAt(x, y int) color.Color {
	b := p.img.Bounds()
	px := wrap(int(math.Floor(float64(x-p.origin.X)/p.scale)), b.Dx())
	py := wrap(int(math.Floor(float64(y-p.origin.Y)/p.scale)), b.Dy())
	return p.img.At(b.Min.X+px, b.Min.Y+py)
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
