// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"fmt"
	"image/color"
)

const (
	DefaultXUnitsPerPixel = 10
	DefaultXMax           = 105
)

type FontConfig struct {
	Size   float64
	Family string
	Color  color.NRGBA
}

type GridLineConfig struct {
	Enabled bool
	Color   color.NRGBA
}

type GridStepConfig struct {
	Enabled  bool
	StepSize float64
	Color    color.NRGBA
}

type TooltipConfig struct {
	Enabled         bool
	BackgroundColor color.NRGBA
}

type XAxisConfig struct {
	XUnitsPerPixel float64
	Max            float64
	XLabel         string
	Font           FontConfig
}

type YLabelConfig struct {
	Enabled bool
	Font    FontConfig
}

// ChartConfig is the fully resolved chart configuration.
// It is not modified after streaming started.
type ChartConfig struct {
	CustomOverSampleFactor float64
	BackgroundColor        color.NRGBA
	Padding                float64
	AxesWidth              float64
	AxesColor              color.NRGBA
	GridY                  GridLineConfig
	GridX                  GridStepConfig
	Tooltip                TooltipConfig
	MinBarLength           float64
	XAxis                  XAxisConfig
	YLabels                YLabelConfig
}

// NewChartConfig returns the default configuration.
func NewChartConfig() ChartConfig {
	c, err := Options{}.Resolve()
	if err != nil {
		panic(err)
	}
	return c
}

// Resolve applies the options on top of the defaults.
func (o Options) Resolve() (ChartConfig, error) {
	m := DefaultOptions().Merge(o)
	var err error
	c := ChartConfig{
		CustomOverSampleFactor: *m.CustomOverSampleFactor,
		Padding:                *m.Padding,
		AxesWidth:              *m.AxesWidth,
		GridY: GridLineConfig{
			Enabled: *m.Grid.Y.Enabled,
		},
		GridX: GridStepConfig{
			Enabled:  *m.Grid.X.Enabled,
			StepSize: *m.Grid.X.StepSize,
		},
		Tooltip: TooltipConfig{
			Enabled: *m.Tooltip.Enabled,
		},
		MinBarLength: *m.MinBarLength,
		XAxis: XAxisConfig{
			XUnitsPerPixel: *m.XAxis.XUnitsPerPixel,
			Max:            *m.XAxis.Max,
			XLabel:         *m.XAxis.XLabel,
			Font: FontConfig{
				Size:   *m.XAxis.FontSize,
				Family: *m.XAxis.FontFamily,
			},
		},
		YLabels: YLabelConfig{
			Enabled: *m.YLabels.Enabled,
			Font: FontConfig{
				Size:   *m.YLabels.FontSize,
				Family: *m.YLabels.FontFamily,
			},
		},
	}
	colors := []struct {
		name  string
		value string
		dst   *color.NRGBA
	}{
		{"backgroundColor", *m.BackgroundColor, &c.BackgroundColor},
		{"axesColor", *m.AxesColor, &c.AxesColor},
		{"grid.y.color", *m.Grid.Y.Color, &c.GridY.Color},
		{"grid.x.color", *m.Grid.X.Color, &c.GridX.Color},
		{"tooltip.backgroundColor", *m.Tooltip.BackgroundColor, &c.Tooltip.BackgroundColor},
		{"xAxis.fontColor", *m.XAxis.FontColor, &c.XAxis.Font.Color},
		{"yLabels.fontColor", *m.YLabels.FontColor, &c.YLabels.Font.Color},
	}
	for _, entry := range colors {
		*entry.dst, err = ParseColor(entry.value)
		if err != nil {
			return ChartConfig{}, fmt.Errorf("failed to parse %s: %v", entry.name, err)
		}
	}
	c.Sanitize()
	return c, nil
}

// Sanitize replaces values which would break rendering.
func (c *ChartConfig) Sanitize() {
	if c.CustomOverSampleFactor < 0 {
		c.CustomOverSampleFactor = 0
	}
	if c.Padding < 0 {
		c.Padding = 0
	}
	if c.AxesWidth < 0 {
		c.AxesWidth = 0
	}
	if c.MinBarLength < 0 {
		c.MinBarLength = 0
	}
	if c.XAxis.XUnitsPerPixel <= 0 {
		c.XAxis.XUnitsPerPixel = DefaultXUnitsPerPixel
	}
	if c.XAxis.Max <= 0 {
		c.XAxis.Max = DefaultXMax
	}
	// A grid without step size would never terminate.
	if c.GridX.StepSize <= 0 {
		c.GridX.Enabled = false
	}
	c.XAxis.Font.sanitize()
	c.YLabels.Font.sanitize()
}

func (f *FontConfig) sanitize() {
	if f.Size < 0 {
		f.Size = 0
	}
	if len(f.Family) == 0 {
		f.Family = "monospace"
	}
}
