// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartplot

import (
	"horizontalcharts/chartval"
	"horizontalcharts/config"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestSeries(position int, barHeight float64, label string) *chartval.Series {
	o := chartval.NewSeriesOptions()
	o.BarHeight = barHeight
	o.LabelText = label
	return chartval.NewSeries(position, o)
}

func TestLayoutCanvasHeight(t *testing.T) {
	cfg := config.NewChartConfig()
	series := []DataSeries{newTestSeries(1, 20, ""), newTestSeries(2, 20, "")}

	l := ComputeLayout(series, cfg, true, 400, 1, newRecordingSurface(400))

	assert.Equal(t, 2, l.SeriesCount)
	assert.Equal(t, 57.0, l.CanvasHeight)
	assert.Equal(t, 0.0, l.XLabelSpace)
	assert.Equal(t, 27.5, l.RowHeight)
}

func TestLayoutIgnoresDisabledSeries(t *testing.T) {
	cfg := config.NewChartConfig()
	disabled := newTestSeries(3, 50, "a much longer label")
	disabled.SetDisabled(true)
	series := []DataSeries{newTestSeries(1, 20, ""), newTestSeries(2, 20, ""), disabled}

	l := ComputeLayout(series, cfg, true, 400, 1, newRecordingSurface(400))

	assert.Equal(t, 2, l.SeriesCount)
	assert.Equal(t, 57.0, l.CanvasHeight)
	// Label "1" is 6 pixels wide, plus the gutter padding.
	assert.Equal(t, 10.0, l.Gutter)
}

func TestLayoutXLabelSpace(t *testing.T) {
	cfg, err := config.Options{XAxis: config.XAxisOptions{XLabel: config.Ptr("time")}}.Resolve()
	assert.Nil(t, err)
	series := []DataSeries{newTestSeries(1, 20, ""), newTestSeries(2, 20, "")}

	l := ComputeLayout(series, cfg, true, 400, 1, newRecordingSurface(400))

	assert.Equal(t, 17.0, l.XLabelSpace)
	assert.Equal(t, 74.0, l.CanvasHeight)
	assert.Equal(t, 27.5, l.RowHeight)
	assert.Equal(t, 56.0, l.AxisY())
}

func TestLayoutRows(t *testing.T) {
	cfg := config.NewChartConfig()
	series := []DataSeries{newTestSeries(1, 20, ""), newTestSeries(2, 20, "")}

	l := ComputeLayout(series, cfg, true, 400, 1, newRecordingSurface(400))

	assert.Equal(t, 3.0, l.BarOrigin(1))
	assert.Equal(t, 30.0, l.BarOrigin(2))
	assert.Equal(t, 14.0, l.LabelCenter(1))
	assert.Equal(t, 41.0, l.LabelCenter(2))
}

func TestLayoutNoSeries(t *testing.T) {
	cfg := config.NewChartConfig()

	l := ComputeLayout(nil, cfg, false, 400, 2, newRecordingSurface(400))

	assert.Equal(t, 0, l.SeriesCount)
	assert.Equal(t, 7.0, l.CanvasHeight)
	assert.Equal(t, 0.0, l.RowHeight)
	assert.Equal(t, 0.0, l.Gutter)
	assert.False(t, math.IsNaN(l.BarOrigin(1)))
	assert.False(t, math.IsInf(l.LabelCenter(1), 0))
}

func TestLayoutGutter(t *testing.T) {
	cfg := config.NewChartConfig()
	series := []DataSeries{newTestSeries(1, 20, "cpu0"), newTestSeries(2, 20, "")}

	l := ComputeLayout(series, cfg, true, 400, 1, newRecordingSurface(400))

	// "cpu0" is 4 * 12 * 0.5 pixels wide.
	assert.Equal(t, 28.0, l.Gutter)
	assert.Equal(t, 30.0, l.BarStart())
}

func TestLayoutGutterWithoutLabels(t *testing.T) {
	cfg, _ := config.Options{YLabels: config.YLabelOptions{Enabled: config.Ptr(false)}}.Resolve()
	series := []DataSeries{newTestSeries(1, 20, "cpu0")}

	l := ComputeLayout(series, cfg, true, 400, 1, newRecordingSurface(400))

	assert.Equal(t, 0.0, l.Gutter)
	assert.Equal(t, 2.0, l.BarStart())
}

func TestLayoutXScale(t *testing.T) {
	cfg, _ := config.Options{
		YLabels: config.YLabelOptions{Enabled: config.Ptr(false)},
		XAxis:   config.XAxisOptions{Max: config.Ptr(100.0)},
	}.Resolve()
	series := []DataSeries{newTestSeries(1, 20, "")}

	static := ComputeLayout(series, cfg, false, 400, 2, newRecordingSurface(400))
	realTime := ComputeLayout(series, cfg, true, 400, 2, newRecordingSurface(400))

	assert.Equal(t, 800.0, static.PhysicalWidth)
	assert.InDelta(t, 3.98, static.XScale, chartval.NearZero)
	assert.Equal(t, 0.0, realTime.XScale)
}

func TestLayoutIsPure(t *testing.T) {
	cfg := config.NewChartConfig()
	s := newTestSeries(1, 20, "label")
	s.Append(newTestTime(0), 10, testFill, "")
	series := []DataSeries{s, newTestSeries(2, 30, "")}
	surface := newRecordingSurface(400)

	first := ComputeLayout(series, cfg, false, 400, 2, surface)
	second := ComputeLayout(series, cfg, false, 400, 2, surface)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.Len())
	assert.Empty(t, surface.calls)
}
