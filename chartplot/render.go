// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartplot

import (
	"horizontalcharts/chartval"
	"math"
)

const gridLineWidth = 1

func (c *Chart) render() {
	series := c.seriesSnapshot()
	osf := c.calcOversample()
	c.setOversample(osf)
	l := ComputeLayout(series, c.cfg, c.realTime, c.surface.LogicalWidth(), osf, c.surface)
	c.frame.layout = l

	// The height changes if series are enabled or disabled, therefore resize every frame.
	c.surface.Resize(l.CanvasHeight, osf)
	c.surface.Clear(c.cfg.BackgroundColor)

	c.paintAxes(l)
	if c.cfg.GridX.Enabled {
		c.paintGridX(l)
	}
	if l.XLabelSpace > 0 {
		c.paintXLabel(l)
	}
	c.frame.rows = c.frame.rows[:0]
	for _, s := range series {
		if s.Options().Disabled {
			// Hidden rows cannot be hovered.
			c.geometry.Forget(s.Samples())
			continue
		}
		c.frame.rows = append(c.frame.rows, s)
	}
	sortRows(c.frame.rows)
	for i, s := range c.frame.rows {
		c.paintSeries(l, s, i+1)
	}
	clear(c.frame.rows)
}

func (c *Chart) paintAxes(l Layout) {
	axisY := l.AxisY()
	c.frame.points = append(c.frame.points[:0],
		Pt(l.LogicalWidth, axisY),
		Pt(l.Gutter, axisY),
		Pt(l.Gutter, 0),
	)
	c.surface.StrokeLine(c.frame.points, c.cfg.AxesWidth, c.cfg.AxesColor)
}

func (c *Chart) paintGridX(l Layout) {
	bottom := l.CanvasHeight - gridLineWidth/2.0 - l.XLabelSpace
	step := c.cfg.GridX.StepSize
	for xPos := step; c.cfg.XAxis.Max-xPos > 0; xPos += step {
		x := xPos*l.XScale + l.BarStart()
		c.frame.points = append(c.frame.points[:0], Pt(x, bottom), Pt(x, 0))
		c.surface.StrokeLine(c.frame.points, gridLineWidth, c.cfg.GridX.Color)
	}
}

func (c *Chart) paintXLabel(l Layout) {
	font := labelFont(c.cfg.XAxis.Font)
	textWidth := chartval.Ceil(c.surface.MeasureText(c.cfg.XAxis.XLabel, font))
	c.surface.FillText(
		c.cfg.XAxis.XLabel,
		l.PhysicalWidth/(2*l.Oversample)-textWidth/2,
		l.CanvasHeight-l.XLabelSpace/2+c.cfg.XAxis.Font.Size/2,
		font,
		c.cfg.XAxis.Font.Color,
	)
}

func (c *Chart) paintSeries(l Layout, s DataSeries, row int) {
	o := s.Options()
	barY := l.BarOrigin(row)
	if c.cfg.YLabels.Enabled {
		c.surface.FillText(seriesLabel(s, o), 0, l.LabelCenter(row), labelFont(c.cfg.YLabels.Font), c.cfg.YLabels.Font.Color)
	}
	if c.cfg.GridY.Enabled && row > 1 {
		gridY := barY - l.Padding/2
		c.frame.points = append(c.frame.points[:0], Pt(l.Gutter, gridY), Pt(l.LogicalWidth, gridY))
		c.surface.StrokeLine(c.frame.points, gridLineWidth, c.cfg.GridY.Color)
	}

	// Bars are contiguous, each one starts at the end of the previous one.
	samples := s.Samples()
	start := l.BarStart()
	for _, sample := range samples {
		start = c.drawBar(l, barY, start, sample, o)
	}

	// Delete old data that moved off the chart.
	if len(samples) > 1 && c.realTime {
		evicted := s.DropOldData(math.Floor(l.PhysicalWidth/l.Oversample), c.geometry.Extent)
		c.geometry.Forget(evicted)
	}
}
