// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartplot

import (
	"horizontalcharts/chartval"
	"math"
)

// PointerEvent is a pointer position. X and Y are logical pixels relative to the surface,
// PageX and PageY are the position used for the tooltip.
type PointerEvent struct {
	X, Y         float64
	PageX, PageY float64
}

// PointerMove updates the tooltip for the new pointer position.
func (c *Chart) PointerMove(ev PointerEvent) {
	c.hoverMutex.Lock()
	defer c.hoverMutex.Unlock()
	c.hover = true
	c.lastEvent = ev
	if !c.cfg.Tooltip.Enabled {
		return
	}
	tip := c.tooltipLocked()
	tip.X = int(math.Round(ev.PageX))
	tip.Y = int(math.Round(ev.PageY))
	c.updateTooltipLocked()
}

// PointerOut hides the tooltip.
func (c *Chart) PointerOut() {
	c.hoverMutex.Lock()
	defer c.hoverMutex.Unlock()
	c.hover = false
	if c.tooltip != nil {
		c.tooltip.Visible = false
	}
}

// Click is reserved for selecting samples. It only runs the handler set by OnClick.
func (c *Chart) Click(ev PointerEvent) {
	if c.onClick == nil {
		return
	}
	c.onClick(ev, c.HitTest(ev.X, ev.Y))
}

// OnClick sets a handler for clicks, it receives the samples below the pointer.
// Call before Attach.
func (c *Chart) OnClick(f func(ev PointerEvent, matches []chartval.Sample)) {
	c.onClick = f
}

// Hovered returns whether the pointer is above the chart, and its last position.
func (c *Chart) Hovered() (bool, PointerEvent) {
	c.hoverMutex.Lock()
	defer c.hoverMutex.Unlock()
	return c.hover, c.lastEvent
}

// HitTest returns all painted samples containing the logical position x, y.
func (c *Chart) HitTest(x, y float64) []chartval.Sample {
	osf := c.Oversample()
	p := Pt(x*osf, y*osf)
	var matches []chartval.Sample
	for _, s := range c.seriesSnapshot() {
		for _, sample := range s.Samples() {
			g, ok := c.geometry.Load(sample.ID)
			if !ok || g.Shape == nil {
				continue
			}
			if g.Shape.Contains(p) {
				matches = append(matches, sample)
			}
		}
	}
	return matches
}

func (c *Chart) updateTooltipLocked() {
	tip := c.tooltipLocked()
	if !c.hover || !c.cfg.Tooltip.Enabled {
		tip.Visible = false
		return
	}
	var lines []TooltipLine
	for _, sample := range c.HitTest(c.lastEvent.X, c.lastEvent.Y) {
		lines = append(lines, c.describe(sample)...)
	}
	tip.Lines = lines
	tip.Visible = len(lines) > 0
}

func (c *Chart) describe(s chartval.Sample) []TooltipLine {
	var lines []TooltipLine
	if len(s.Description) > 0 {
		lines = append(lines, TooltipLine{Label: s.Description})
	}
	if s.HasTimestamp() {
		lines = append(lines, TooltipLine{Label: "Time:", Text: c.formatTime(s.Timestamp)})
	}
	if s.HasValue() {
		lines = append(lines, TooltipLine{Label: "Value:", Text: chartval.FormatValue(s.Value)})
	}
	return lines
}
