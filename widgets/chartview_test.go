// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"horizontalcharts/chartplot"
	"horizontalcharts/chartval"
	"horizontalcharts/config"
	"horizontalcharts/mock"
	"image"
	"image/color"
	"testing"
	"time"

	"gioui.org/f32"
	"gioui.org/io/input"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"github.com/stretchr/testify/assert"
)

func newTestContext(r *input.Router, scale float32) layout.Context {
	return layout.Context{
		Ops:         new(op.Ops),
		Metric:      unit.Metric{PxPerDp: scale, PxPerSp: scale},
		Constraints: layout.Exact(image.Pt(800, 600)),
		Source:      r.Source(),
		Now:         time.Now(),
	}
}

func TestGioSurfaceSize(t *testing.T) {
	var r input.Router
	gtx := newTestContext(&r, 2)
	s := NewGioSurface(NewLightMaterialTheme())

	s.Begin(gtx)
	s.Resize(57, 2)
	s.Clear(color.NRGBA{R: 255, A: 255})
	s.StrokeLine([]chartplot.Point{chartplot.Pt(400, 56), chartplot.Pt(0, 56), chartplot.Pt(0, 0)}, 2, color.NRGBA{A: 255})
	s.FillRect(chartplot.Rect{Max: chartplot.Pt(10.5, 20)}, chartval.SolidFill(color.NRGBA{B: 255, A: 255}))
	pattern := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	s.FillRect(chartplot.Rect{Min: chartplot.Pt(3, 3), Max: chartplot.Pt(30, 20)}, chartval.PatternFill(pattern))
	s.FillText("12", 20, 15, chartplot.Font{Size: 12, Family: "monospace", Bold: true}, color.NRGBA{A: 255})
	s.OutlineText("12", 20, 15, chartplot.Font{Size: 12, Family: "monospace", Bold: true}, 1, color.NRGBA{A: 255})
	dims := s.End()

	assert.Equal(t, 400.0, s.LogicalWidth())
	d, ok := s.PixelDensity()
	assert.True(t, ok)
	assert.Equal(t, 2.0, d)
	assert.Equal(t, image.Pt(800, 114), dims.Size)
	assert.Equal(t, 1, s.patterns.Len())
}

// stripes is an image value type which cannot be used as a map key.
type stripes struct {
	colors []color.NRGBA
}

func (p stripes) ColorModel() color.Model {
	return color.NRGBAModel
}

func (p stripes) Bounds() image.Rectangle {
	return image.Rect(0, 0, len(p.colors), 1)
}

func (p stripes) At(x, y int) color.Color {
	return p.colors[x%len(p.colors)]
}

func TestGioSurfaceValuePattern(t *testing.T) {
	var r input.Router
	gtx := newTestContext(&r, 1)
	s := NewGioSurface(NewLightMaterialTheme())
	pattern := stripes{colors: []color.NRGBA{{R: 255, A: 255}, {A: 255}}}

	s.Begin(gtx)
	s.Resize(20, 1)
	assert.NotPanics(t, func() {
		s.FillRect(chartplot.Rect{Max: chartplot.Pt(10, 10)}, chartval.PatternFill(pattern))
		s.FillRect(chartplot.Rect{Max: chartplot.Pt(10, 10)}, chartval.PatternFill(pattern))
	})
	s.End()

	assert.Equal(t, 0, s.patterns.Len())
}

func TestGioSurfaceMeasureText(t *testing.T) {
	var r input.Router
	gtx := newTestContext(&r, 1)
	s := NewGioSurface(NewLightMaterialTheme())
	s.Begin(gtx)
	defer s.End()
	f := chartplot.Font{Size: 12, Family: "monospace", Bold: true}

	one := s.MeasureText("W", f)
	two := s.MeasureText("WW", f)

	assert.Greater(t, one, 0.0)
	assert.Greater(t, two, one)
	assert.Equal(t, one, s.MeasureText("W", f))
	assert.Equal(t, 2, s.textWidths.Len())
}

func TestFrameScheduler(t *testing.T) {
	s := NewFrameScheduler()
	var runs int
	var f func()
	f = func() {
		runs++
		s.RequestFrame(f)
	}
	s.RequestFrame(f)

	assert.Equal(t, 1, s.runPending())
	assert.Equal(t, 1, s.runPending())
	assert.Equal(t, 2, runs)
}

func TestChartView(t *testing.T) {
	cfg, err := config.Options{
		CustomOverSampleFactor: config.Ptr(1.0),
		YLabels:                config.YLabelOptions{Enabled: config.Ptr(false)},
		XAxis:                  config.XAxisOptions{XUnitsPerPixel: config.Ptr(1.0)},
	}.Resolve()
	assert.Nil(t, err)
	logger, _ := mock.NewLogger(t)
	chart := chartplot.NewChart(cfg, true, logger)
	o := chartval.NewSeriesOptions()
	o.BarHeight = 20
	s := chartval.NewSeries(1, o)
	s.Append(time.Date(2022, 3, 7, 14, 5, 0, 0, time.UTC), 100, chartval.SolidFill(color.NRGBA{R: 255, A: 255}), "cpu")
	chart.AddSeries(s)
	th := NewLightMaterialTheme()
	v := NewChartView(chart, th, NewLightChartTheme())
	assert.Nil(t, v.Attach())

	var r input.Router
	gtx := newTestContext(&r, 1)
	dims := v.Layout(gtx, th)
	r.Frame(gtx.Ops)

	assert.Equal(t, uint64(1), chart.Frames())
	assert.Equal(t, image.Pt(800, 32), dims.Size)
	assert.Equal(t, 800.0, chart.Layout().LogicalWidth)

	r.Queue(pointer.Event{
		Kind:     pointer.Move,
		Source:   pointer.Mouse,
		Position: f32.Pt(50, 10),
	})
	gtx = newTestContext(&r, 1)
	v.Layout(gtx, th)

	hover, ev := chart.Hovered()
	assert.True(t, hover)
	assert.Equal(t, 50.0, ev.X)
	tip := chart.Tooltip()
	assert.True(t, tip.Visible)
	assert.Equal(t, "cpu", tip.Lines[0].Label)
	assert.Equal(t, uint64(2), chart.Frames())

	v.Stop()
	gtx = newTestContext(&r, 1)
	v.Layout(gtx, th)
	assert.Equal(t, uint64(2), chart.Frames())
}
