// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartplot

import (
	"cmp"
	"horizontalcharts/chartval"
	"horizontalcharts/config"
	"math"
	"strconv"

	"golang.org/x/exp/slices"
)

const (
	labelGutterPadding = 4
	xLabelMargin       = 5
)

// Layout holds the dimensions of a single frame.
type Layout struct {
	SeriesCount   int
	CanvasHeight  float64
	XLabelSpace   float64
	Gutter        float64
	AxesWidth     float64
	Padding       float64
	XScale        float64
	RowHeight     float64
	LogicalWidth  float64
	PhysicalWidth float64
	Oversample    float64
}

// ComputeLayout calculates the frame dimensions. It does not modify any of its inputs.
// XScale is only calculated for static charts, real-time charts use a fixed scale.
func ComputeLayout(series []DataSeries, cfg config.ChartConfig, realTime bool, logicalWidth float64, oversample float64,
	m TextMeasurer) Layout {
	l := Layout{
		AxesWidth:     cfg.AxesWidth,
		Padding:       cfg.Padding,
		LogicalWidth:  logicalWidth,
		PhysicalWidth: math.Floor(logicalWidth * oversample),
		Oversample:    oversample,
	}
	var barHeightSum float64
	var labelsMaxWidth float64
	labelFont := labelFont(cfg.YLabels.Font)
	for _, s := range series {
		o := s.Options()
		if o.Disabled {
			continue
		}
		l.SeriesCount++
		barHeightSum += o.BarHeight
		if cfg.YLabels.Enabled {
			labelsMaxWidth = chartval.MaxOf(labelsMaxWidth, chartval.Ceil(m.MeasureText(seriesLabel(s, o), labelFont)))
		}
	}
	if labelsMaxWidth > 0 {
		labelsMaxWidth += labelGutterPadding
	}
	l.Gutter = labelsMaxWidth
	if len(cfg.XAxis.XLabel) > 0 {
		l.XLabelSpace = cfg.XAxis.Font.Size + xLabelMargin
	}
	l.CanvasHeight = barHeightSum + float64(l.SeriesCount+1)*cfg.Padding + cfg.AxesWidth + l.XLabelSpace
	if !realTime && oversample > 0 && cfg.XAxis.Max > 0 {
		l.XScale = (l.PhysicalWidth - (l.Gutter+cfg.AxesWidth)*oversample) / (oversample * cfg.XAxis.Max)
	}
	if l.SeriesCount > 0 {
		l.RowHeight = (l.CanvasHeight - cfg.AxesWidth - l.XLabelSpace) / float64(l.SeriesCount)
	}
	return l
}

// BarOrigin is the top of the bars of the given row. Rows are numbered
// from 1 and only count enabled series.
func (l Layout) BarOrigin(row int) float64 {
	return math.Round(l.RowHeight*float64(row-1) + l.Padding/2)
}

// LabelCenter is the vertical center of the given row.
func (l Layout) LabelCenter(row int) float64 {
	return math.Round(l.RowHeight*float64(row-1) + l.RowHeight/2)
}

// sortRows orders enabled series by position. A series is drawn in the
// row of its index plus one, so disabled series and gaps in the positions
// do not leave empty rows.
func sortRows(rows []DataSeries) {
	slices.SortStableFunc(rows, func(a, b DataSeries) int {
		return cmp.Compare(a.Position(), b.Position())
	})
}

// BarStart is the x position of the first bar of each row.
func (l Layout) BarStart() float64 {
	return l.Gutter + l.AxesWidth
}

// AxisY is the y position of the x axis line.
func (l Layout) AxisY() float64 {
	return l.CanvasHeight - l.AxesWidth/2 - l.XLabelSpace
}

func labelFont(f config.FontConfig) Font {
	return Font{Size: f.Size, Family: f.Family, Bold: true}
}

func seriesLabel(s DataSeries, o chartval.SeriesOptions) string {
	if len(o.LabelText) > 0 {
		return o.LabelText
	}
	return strconv.Itoa(s.Position())
}
