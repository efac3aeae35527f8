// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"github.com/barkimedes/go-deepcopy"
)

// Options are user overrides for the chart configuration.
// Fields which are nil fall back to the defaults.
type Options struct {
	CustomOverSampleFactor *float64       `yaml:"customOverSampleFactor,omitempty"`
	BackgroundColor        *string        `yaml:"backgroundColor,omitempty"`
	Padding                *float64       `yaml:"padding,omitempty"`
	AxesWidth              *float64       `yaml:"axesWidth,omitempty"`
	AxesColor              *string        `yaml:"axesColor,omitempty"`
	Grid                   GridOptions    `yaml:"grid,omitempty"`
	Tooltip                TooltipOptions `yaml:"tooltip,omitempty"`
	MinBarLength           *float64       `yaml:"minBarLength,omitempty"`
	XAxis                  XAxisOptions   `yaml:"xAxis,omitempty"`
	YLabels                YLabelOptions  `yaml:"yLabels,omitempty"`
}

type GridOptions struct {
	Y GridLineOptions `yaml:"y,omitempty"`
	X GridStepOptions `yaml:"x,omitempty"`
}

type GridLineOptions struct {
	Enabled *bool   `yaml:"enabled,omitempty"`
	Color   *string `yaml:"color,omitempty"`
}

type GridStepOptions struct {
	Enabled  *bool    `yaml:"enabled,omitempty"`
	StepSize *float64 `yaml:"stepSize,omitempty"`
	Color    *string  `yaml:"color,omitempty"`
}

type TooltipOptions struct {
	Enabled         *bool   `yaml:"enabled,omitempty"`
	BackgroundColor *string `yaml:"backgroundColor,omitempty"`
}

type XAxisOptions struct {
	XUnitsPerPixel *float64 `yaml:"xUnitsPerPixel,omitempty"`
	Max            *float64 `yaml:"max,omitempty"`
	XLabel         *string  `yaml:"xLabel,omitempty"`
	FontSize       *float64 `yaml:"fontSize,omitempty"`
	FontFamily     *string  `yaml:"fontFamily,omitempty"`
	FontColor      *string  `yaml:"fontColor,omitempty"`
}

type YLabelOptions struct {
	Enabled    *bool    `yaml:"enabled,omitempty"`
	FontSize   *float64 `yaml:"fontSize,omitempty"`
	FontFamily *string  `yaml:"fontFamily,omitempty"`
	FontColor  *string  `yaml:"fontColor,omitempty"`
}

// Ptr returns a pointer to a copy of v, for building options.
func Ptr[T any](v T) *T {
	return &v
}

// override sets dst to a copy of src, if src is set.
func override[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// clearIfEqual removes v if it has the value of def.
func clearIfEqual[T comparable](v **T, def *T) {
	if *v != nil && def != nil && **v == *def {
		*v = nil
	}
}

// DefaultOptions returns options with every field set.
func DefaultOptions() Options {
	return Options{
		CustomOverSampleFactor: Ptr(0.0),
		BackgroundColor:        Ptr("#00000000"),
		Padding:                Ptr(5.0),
		AxesWidth:              Ptr(2.0),
		AxesColor:              Ptr("#000000"),
		Grid: GridOptions{
			Y: GridLineOptions{
				Enabled: Ptr(false),
				Color:   Ptr("#000000"),
			},
			X: GridStepOptions{
				Enabled:  Ptr(false),
				StepSize: Ptr(20.0),
				Color:    Ptr("#000000"),
			},
		},
		Tooltip: TooltipOptions{
			Enabled:         Ptr(true),
			BackgroundColor: Ptr("#FFFFFFDD"),
		},
		MinBarLength: Ptr(0.0),
		XAxis: XAxisOptions{
			XUnitsPerPixel: Ptr(10.0),
			Max:            Ptr(105.0),
			XLabel:         Ptr(""),
			FontSize:       Ptr(12.0),
			FontFamily:     Ptr("monospace"),
			FontColor:      Ptr("#000000"),
		},
		YLabels: YLabelOptions{
			Enabled:    Ptr(true),
			FontSize:   Ptr(12.0),
			FontFamily: Ptr("monospace"),
			FontColor:  Ptr("#000000"),
		},
	}
}

// Merge returns a copy of o with all fields set in u applied on top.
// Neither o nor u are modified.
func (o Options) Merge(u Options) Options {
	m := o.deepCopy()
	override(&m.CustomOverSampleFactor, u.CustomOverSampleFactor)
	override(&m.BackgroundColor, u.BackgroundColor)
	override(&m.Padding, u.Padding)
	override(&m.AxesWidth, u.AxesWidth)
	override(&m.AxesColor, u.AxesColor)
	m.Grid = m.Grid.Merge(u.Grid)
	m.Tooltip = m.Tooltip.Merge(u.Tooltip)
	override(&m.MinBarLength, u.MinBarLength)
	m.XAxis = m.XAxis.Merge(u.XAxis)
	m.YLabels = m.YLabels.Merge(u.YLabels)
	return m
}

func (g GridOptions) Merge(u GridOptions) GridOptions {
	g.Y = g.Y.Merge(u.Y)
	g.X = g.X.Merge(u.X)
	return g
}

func (g GridLineOptions) Merge(u GridLineOptions) GridLineOptions {
	override(&g.Enabled, u.Enabled)
	override(&g.Color, u.Color)
	return g
}

func (g GridStepOptions) Merge(u GridStepOptions) GridStepOptions {
	override(&g.Enabled, u.Enabled)
	override(&g.StepSize, u.StepSize)
	override(&g.Color, u.Color)
	return g
}

func (t TooltipOptions) Merge(u TooltipOptions) TooltipOptions {
	override(&t.Enabled, u.Enabled)
	override(&t.BackgroundColor, u.BackgroundColor)
	return t
}

func (x XAxisOptions) Merge(u XAxisOptions) XAxisOptions {
	override(&x.XUnitsPerPixel, u.XUnitsPerPixel)
	override(&x.Max, u.Max)
	override(&x.XLabel, u.XLabel)
	override(&x.FontSize, u.FontSize)
	override(&x.FontFamily, u.FontFamily)
	override(&x.FontColor, u.FontColor)
	return x
}

func (y YLabelOptions) Merge(u YLabelOptions) YLabelOptions {
	override(&y.Enabled, u.Enabled)
	override(&y.FontSize, u.FontSize)
	override(&y.FontFamily, u.FontFamily)
	override(&y.FontColor, u.FontColor)
	return y
}

// RemoveDefaults clears all fields which have the default value,
// so that they are not written to the configuration file.
func (o *Options) RemoveDefaults() {
	def := DefaultOptions()
	clearIfEqual(&o.CustomOverSampleFactor, def.CustomOverSampleFactor)
	clearIfEqual(&o.BackgroundColor, def.BackgroundColor)
	clearIfEqual(&o.Padding, def.Padding)
	clearIfEqual(&o.AxesWidth, def.AxesWidth)
	clearIfEqual(&o.AxesColor, def.AxesColor)
	clearIfEqual(&o.Grid.Y.Enabled, def.Grid.Y.Enabled)
	clearIfEqual(&o.Grid.Y.Color, def.Grid.Y.Color)
	clearIfEqual(&o.Grid.X.Enabled, def.Grid.X.Enabled)
	clearIfEqual(&o.Grid.X.StepSize, def.Grid.X.StepSize)
	clearIfEqual(&o.Grid.X.Color, def.Grid.X.Color)
	clearIfEqual(&o.Tooltip.Enabled, def.Tooltip.Enabled)
	clearIfEqual(&o.Tooltip.BackgroundColor, def.Tooltip.BackgroundColor)
	clearIfEqual(&o.MinBarLength, def.MinBarLength)
	clearIfEqual(&o.XAxis.XUnitsPerPixel, def.XAxis.XUnitsPerPixel)
	clearIfEqual(&o.XAxis.Max, def.XAxis.Max)
	clearIfEqual(&o.XAxis.XLabel, def.XAxis.XLabel)
	clearIfEqual(&o.XAxis.FontSize, def.XAxis.FontSize)
	clearIfEqual(&o.XAxis.FontFamily, def.XAxis.FontFamily)
	clearIfEqual(&o.XAxis.FontColor, def.XAxis.FontColor)
	clearIfEqual(&o.YLabels.Enabled, def.YLabels.Enabled)
	clearIfEqual(&o.YLabels.FontSize, def.YLabels.FontSize)
	clearIfEqual(&o.YLabels.FontFamily, def.YLabels.FontFamily)
	clearIfEqual(&o.YLabels.FontColor, def.YLabels.FontColor)
}

func (o *Options) deepCopy() Options {
	c, err := deepcopy.Anything(o)
	if err != nil {
		panic(err)
	}
	return *c.(*Options)
}
