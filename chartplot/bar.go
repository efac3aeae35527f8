// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartplot

import (
	"horizontalcharts/chartval"
	"image/color"
	"math"
)

const (
	valueFontFamily   = "monospace"
	valueFontMargin   = 4
	valueOutlineWidth = 1
)

var (
	valueTextColor    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	valueOutlineColor = color.NRGBA{A: 255}
)

// barLength converts a value to pixels. Samples without value have no length of their own.
func (c *Chart) barLength(l Layout, v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if c.realTime {
		return v / c.cfg.XAxis.XUnitsPerPixel
	}
	return v * l.XScale
}

// drawBar paints a single sample starting at x position start, and returns its end position.
func (c *Chart) drawBar(l Layout, y, start float64, sample chartval.Sample, o chartval.SeriesOptions) float64 {
	end := start + c.barLength(l, sample.Value)
	if c.cfg.MinBarLength > 0 && end-start < c.cfg.MinBarLength {
		end = start + c.cfg.MinBarLength
	}
	g := BarGeometry{
		Start: start,
		End:   end,
		Y:     y,
	}
	// Bars out of the visible area are neither painted nor hoverable.
	if end > l.LogicalWidth {
		c.geometry.Store(sample.ID, g)
		return end
	}
	bar := Rect{Min: Pt(start, y), Max: Pt(end, y+o.BarHeight)}.Canon()
	c.surface.FillRect(bar, sample.Fill)
	shape := bar.Scale(l.Oversample)
	g.Shape = &shape
	c.geometry.Store(sample.ID, g)

	if o.ShowValues && sample.HasValue() {
		c.paintValue(y, start, end, sample.Value, o.BarHeight)
	}
	return end
}

func (c *Chart) paintValue(y, start, end, value, barHeight float64) {
	fontSize := math.Max(barHeight-valueFontMargin, 0)
	if fontSize <= 0 {
		return
	}
	font := Font{Size: fontSize, Family: valueFontFamily, Bold: true}
	valueString := chartval.FormatValue(value)
	textWidth := chartval.Ceil(c.surface.MeasureText(valueString, font))
	if textWidth >= end-start {
		return
	}
	x := math.Round(start + (end-start)/2 - textWidth/2)
	c.surface.FillText(valueString, x, y+fontSize, font, valueTextColor)
	c.surface.OutlineText(valueString, x, y+fontSize, font, valueOutlineWidth, valueOutlineColor)
}
