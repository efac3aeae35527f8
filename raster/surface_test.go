// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package raster

import (
	"bytes"
	"context"
	"horizontalcharts/chartplot"
	"horizontalcharts/chartval"
	"horizontalcharts/config"
	"horizontalcharts/mock"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

func rgba(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func TestSurfaceResize(t *testing.T) {
	s := NewSurface(100, 2)

	s.Resize(57, 2)
	s.Publish()

	assert.Equal(t, image.Rect(0, 0, 200, 114), s.Snapshot().Bounds())
	d, ok := s.PixelDensity()
	assert.True(t, ok)
	assert.Equal(t, 2.0, d)
	assert.Equal(t, 100.0, s.LogicalWidth())
}

func TestSurfaceFillRect(t *testing.T) {
	s := NewSurface(50, 2)
	s.Resize(50, 2)
	s.Clear(white)

	s.FillRect(chartplot.Rect{Min: chartplot.Pt(10, 10), Max: chartplot.Pt(20, 20)}, chartval.SolidFill(red))
	s.Publish()

	img := s.Snapshot()
	assert.Equal(t, rgba(red), img.RGBAAt(30, 30))
	assert.Equal(t, rgba(red), img.RGBAAt(20, 20))
	assert.Equal(t, rgba(white), img.RGBAAt(50, 50))
	assert.Equal(t, rgba(white), img.RGBAAt(15, 15))
}

func TestSurfacePattern(t *testing.T) {
	pattern := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	pattern.SetNRGBA(0, 0, red)
	pattern.SetNRGBA(1, 0, blue)
	s := NewSurface(10, 1)
	s.Resize(10, 2)
	s.Clear(white)

	// The pattern starts at the top left corner of the rectangle.
	s.FillRect(chartplot.Rect{Min: chartplot.Pt(1, 0), Max: chartplot.Pt(5, 5)}, chartval.PatternFill(pattern))
	s.Publish()

	img := s.Snapshot()
	assert.Equal(t, rgba(white), img.RGBAAt(0, 2))
	assert.Equal(t, rgba(white), img.RGBAAt(1, 2))
	assert.Equal(t, rgba(red), img.RGBAAt(2, 2))
	assert.Equal(t, rgba(red), img.RGBAAt(3, 2))
	assert.Equal(t, rgba(blue), img.RGBAAt(4, 2))
	assert.Equal(t, rgba(blue), img.RGBAAt(5, 2))
	assert.Equal(t, rgba(red), img.RGBAAt(6, 2))
}

func TestSurfaceStrokeLine(t *testing.T) {
	s := NewSurface(20, 1)
	s.Resize(20, 1)
	s.Clear(white)

	s.StrokeLine([]chartplot.Point{chartplot.Pt(0, 10), chartplot.Pt(20, 10)}, 2, red)
	s.Publish()

	img := s.Snapshot()
	assert.Equal(t, rgba(red), img.RGBAAt(5, 9))
	assert.Equal(t, rgba(red), img.RGBAAt(5, 10))
	assert.Equal(t, rgba(white), img.RGBAAt(5, 5))
}

func TestSurfaceMeasureText(t *testing.T) {
	s := NewSurface(100, 2)
	mono := chartplot.Font{Size: 12, Family: "monospace", Bold: true}

	one := s.MeasureText("W", mono)
	two := s.MeasureText("Wi", mono)

	assert.Greater(t, one, 0.0)
	assert.InDelta(t, 2*one, two, 0.5)
	assert.Greater(t, s.MeasureText("W", chartplot.Font{Size: 24, Family: "monospace", Bold: true}), one)
	assert.Greater(t, s.MeasureText("WWW", chartplot.Font{Size: 12, Family: "sans-serif"}), 0.0)
	assert.Equal(t, 0.0, s.MeasureText("", mono))
}

func TestEncodeWithoutFrame(t *testing.T) {
	s := NewSurface(100, 1)
	var b bytes.Buffer

	assert.ErrorIs(t, s.EncodePNG(&b), ErrNoFrame)
}

func newTestChart(t *testing.T) (*chartplot.Chart, *chartval.Series) {
	cfg, err := config.Options{
		BackgroundColor: config.Ptr("white"),
		Grid:            config.GridOptions{X: config.GridStepOptions{Enabled: config.Ptr(true)}},
		XAxis:           config.XAxisOptions{XLabel: config.Ptr("load")},
	}.Resolve()
	assert.Nil(t, err)
	logger, _ := mock.NewLogger(t)
	chart := chartplot.NewChart(cfg, false, logger)
	o := chartval.NewSeriesOptions()
	o.BarHeight = 20
	o.ShowValues = true
	s := chartval.NewSeries(1, o)
	s.Append(time.Date(2022, 3, 7, 14, 5, 0, 0, time.UTC), 50, chartval.SolidFill(red), "")
	chart.AddSeries(s)
	return chart, s
}

func TestRenderPNG(t *testing.T) {
	chart, _ := newTestChart(t)
	s := NewSurface(200, 1)
	var b bytes.Buffer

	err := RenderPNG(chart, s, &b)

	assert.Nil(t, err)
	assert.False(t, chart.Running())
	img, err := png.Decode(&b)
	assert.Nil(t, err)
	// Bar, padding, axis and x label.
	assert.Equal(t, image.Rect(0, 0, 200, 49), img.Bounds())
}

func TestRenderPNGInvalidData(t *testing.T) {
	chart, series := newTestChart(t)
	series.Append(time.Date(2022, 3, 7, 14, 5, 1, 0, time.UTC), chartval.NoValue(), chartval.SolidFill(red), "")
	var b bytes.Buffer

	err := RenderPNG(chart, NewSurface(200, 1), &b)

	assert.ErrorIs(t, err, chartplot.ErrInvalidDataSet)
	assert.Zero(t, b.Len())
}

func TestTickerScheduler(t *testing.T) {
	var published int
	s := NewTickerScheduler(time.Millisecond, func() { published++ })
	ctx, cancel := context.WithCancel(context.Background())
	var runs int
	var f func()
	f = func() {
		runs++
		if runs == 3 {
			cancel()
			return
		}
		s.RequestFrame(f)
	}
	s.RequestFrame(f)

	err := s.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, runs)
	assert.Equal(t, 3, published)
}
