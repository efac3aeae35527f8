// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"horizontalcharts/chartplot"
	"image"
	"sync"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// FrameScheduler runs chart frames while the chart view is laid out.
// Running a frame requests the next window frame, which results in continuous rendering while the chart is attached.
type FrameScheduler struct {
	mutex   sync.Mutex
	pending []func()
}

func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

func (s *FrameScheduler) RequestFrame(f func()) {
	s.mutex.Lock()
	s.pending = append(s.pending, f)
	s.mutex.Unlock()
}

// runPending runs requests made before the call, those requested while running are kept for the next frame.
func (s *FrameScheduler) runPending() int {
	s.mutex.Lock()
	pending := s.pending
	s.pending = nil
	s.mutex.Unlock()
	for _, f := range pending {
		f()
	}
	return len(pending)
}

// ChartView shows a chart and its tooltip, and forwards pointer events to the chart.
type ChartView struct {
	chart     *chartplot.Chart
	surface   *GioSurface
	scheduler *FrameScheduler
	theme     *ChartTheme
	size      image.Point
}

func NewChartView(chart *chartplot.Chart, th *material.Theme, ct *ChartTheme) *ChartView {
	return &ChartView{
		chart:     chart,
		surface:   NewGioSurface(th),
		scheduler: NewFrameScheduler(),
		theme:     ct,
	}
}

// Attach starts rendering the chart with the next layout.
func (v *ChartView) Attach() error {
	return v.chart.Attach(v.surface, v.scheduler)
}

func (v *ChartView) Stop() {
	v.chart.Stop()
}

func (v *ChartView) Chart() *chartplot.Chart {
	return v.chart
}

func (v *ChartView) Update(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: v,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move | pointer.Press,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Enter, pointer.Move:
			v.chart.PointerMove(v.pointerEvent(gtx, e.Position))
		case pointer.Leave, pointer.Cancel:
			v.chart.PointerOut()
		case pointer.Press:
			v.chart.Click(v.pointerEvent(gtx, e.Position))
		}
	}
}

// The chart uses Dp for pointer positions, the tooltip position is relative to the view.
func (v *ChartView) pointerEvent(gtx layout.Context, pos f32.Point) chartplot.PointerEvent {
	scale := gtx.Metric.PxPerDp
	if scale <= 0 {
		scale = 1
	}
	x := float64(pos.X / scale)
	y := float64(pos.Y / scale)
	return chartplot.PointerEvent{X: x, Y: y, PageX: x, PageY: y}
}

func (v *ChartView) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	v.Update(gtx)

	v.surface.Begin(gtx)
	if v.scheduler.runPending() > 0 {
		gtx.Execute(op.InvalidateCmd{})
	}
	dims := v.surface.End()
	if dims.Size.Y > 0 {
		v.size = dims.Size
	}

	area := clip.Rect{Max: v.size}.Push(gtx.Ops)
	event.Op(gtx.Ops, v)
	area.Pop()

	v.layoutTooltip(gtx, th)
	return layout.Dimensions{Size: v.size}
}

func (v *ChartView) layoutTooltip(gtx layout.Context, th *material.Theme) {
	tip := v.chart.Tooltip()
	if !tip.Visible || len(tip.Lines) == 0 {
		return
	}
	origConstraints := gtx.Constraints
	gtx.Constraints.Min = image.Point{}
	macro := op.Record(gtx.Ops)
	f := Frame{
		InnerMargin:     v.theme.TooltipMargin,
		BorderWidth:     v.theme.TooltipBorderWidth,
		BorderColor:     v.theme.TooltipBorderColor,
		BackgroundColor: tip.Background,
	}
	dims := f.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		children := make([]layout.FlexChild, len(tip.Lines))
		for i, line := range tip.Lines {
			line := line
			children[i] = layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return v.layoutTooltipLine(gtx, th, line)
			})
		}
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	})
	call := macro.Stop()
	gtx.Constraints = origConstraints

	offset := v.theme.TooltipOffset.Dp(gtx)
	pos := image.Point{
		X: gtx.Dp(unit.Dp(tip.X)) + offset.X,
		Y: gtx.Dp(unit.Dp(tip.Y)) + offset.Y,
	}
	// Move the tooltip to the left of the pointer if it does not fit.
	if pos.X+dims.Size.X > gtx.Constraints.Max.X {
		pos.X = max(pos.X-2*offset.X-dims.Size.X, 0)
	}
	macro = op.Record(gtx.Ops)
	t := op.Offset(pos).Push(gtx.Ops)
	call.Add(gtx.Ops)
	t.Pop()
	// Deferred, the tooltip is painted above everything and is not clipped by the view.
	op.Defer(gtx.Ops, macro.Stop())
}

func (v *ChartView) layoutTooltipLine(gtx layout.Context, th *material.Theme, line chartplot.TooltipLine) layout.Dimensions {
	lbl := material.Label(th, v.theme.TooltipFontSize, line.Label)
	lbl.Font.Weight = font.Bold
	lbl.Color = v.theme.TooltipTextColor
	if len(line.Text) == 0 {
		return lbl.Layout(gtx)
	}
	txt := material.Label(th, v.theme.TooltipFontSize, " "+line.Text)
	txt.Color = v.theme.TooltipTextColor
	return layout.Flex{Alignment: layout.Baseline}.Layout(gtx,
		layout.Rigid(lbl.Layout),
		layout.Rigid(txt.Layout),
	)
}
