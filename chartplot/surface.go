// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartplot

import (
	"horizontalcharts/chartval"
	"image/color"
)

type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis aligned rectangle. Min is included, Max is excluded.
type Rect struct {
	Min, Max Point
}

func (r Rect) Canon() Rect {
	if r.Max.X < r.Min.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Max.Y < r.Min.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

func (r Rect) Dx() float64 {
	return r.Max.X - r.Min.X
}

func (r Rect) Dy() float64 {
	return r.Max.Y - r.Min.Y
}

func (r Rect) Contains(p Point) bool {
	return r.Min.X <= p.X && p.X < r.Max.X &&
		r.Min.Y <= p.Y && p.Y < r.Max.Y
}

func (r Rect) Scale(f float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X * f, Y: r.Min.Y * f},
		Max: Point{X: r.Max.X * f, Y: r.Max.Y * f},
	}
}

// Font describes the text style. Size is in logical pixels.
type Font struct {
	Size   float64
	Family string
	Bold   bool
}

type TextMeasurer interface {
	// MeasureText returns the advance width of s in logical pixels.
	MeasureText(s string, f Font) float64
}

// Surface is a 2D drawing target. All coordinates are logical pixels,
// the surface applies the oversample factor set by Resize.
type Surface interface {
	TextMeasurer
	// LogicalWidth is the visible width, without oversampling.
	LogicalWidth() float64
	// PixelDensity is the environment hint for the oversample factor, if available.
	PixelDensity() (float64, bool)
	// Resize sets the height and the oversample factor, and resets the transformation.
	Resize(logicalHeight float64, oversample float64)
	// Clear erases the surface and fills it with bg.
	Clear(bg color.NRGBA)
	StrokeLine(points []Point, width float64, c color.NRGBA)
	// FillRect fills r, patterns are aligned to r.Min.
	FillRect(r Rect, fill chartval.Fill)
	// FillText draws s with its baseline starting at x, y.
	FillText(s string, x, y float64, f Font, c color.NRGBA)
	// OutlineText draws the outline of s with the given line width.
	OutlineText(s string, x, y float64, f Font, width float64, c color.NRGBA)
}

// Scheduler runs a function with the next display refresh.
type Scheduler interface {
	RequestFrame(f func())
}
