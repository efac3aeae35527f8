// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"horizontalcharts/chartval"
	"math"

	"github.com/barkimedes/go-deepcopy"
	"golang.org/x/exp/slices"
)

type FeedType string

const (
	FeedWebsocket FeedType = "websocket"
	FeedFile      FeedType = "file"
)

type AppConfig struct {
	RealTime     bool           `yaml:",omitempty"`
	LightTheme   bool           `yaml:",omitempty"`
	Chart        Options        `yaml:",omitempty"`
	Series       []SeriesConfig `yaml:",omitempty"`
	Feeds        []FeedConfig   `yaml:",omitempty"`
	WindowConfig WindowConfig
}

type SeriesConfig struct {
	Name         string
	Position     int     `yaml:",omitempty"`
	BarHeight    float64 `yaml:",omitempty"`
	LabelText    string  `yaml:",omitempty"`
	Disabled     bool    `yaml:",omitempty"`
	ShowValues   bool    `yaml:",omitempty"`
	ReplaceValue bool    `yaml:",omitempty"`
	// Color used for samples which do not specify one.
	Color string `yaml:",omitempty"`
}

type FeedConfig struct {
	Type FeedType
	// Websocket URL, for websocket feeds.
	Url string `yaml:",omitempty"`
	// CSV file which is followed, for file feeds.
	Path string `yaml:",omitempty"`
	// Series used if the data does not name one.
	Series string `yaml:",omitempty"`
}

const DefaultSeriesColor = "#4682B4"

func NewAppConfig() AppConfig {
	return AppConfig{
		RealTime: true,
		Series: []SeriesConfig{
			NewSeriesConfig("default", 1),
		},
		WindowConfig: NewWindowConfig(),
	}
}

func NewSeriesConfig(name string, position int) SeriesConfig {
	return SeriesConfig{
		Name:      name,
		Position:  position,
		BarHeight: chartval.DefaultBarHeight,
		Color:     DefaultSeriesColor,
	}
}

// SeriesOptions converts the stored settings to series options.
func (s SeriesConfig) SeriesOptions() chartval.SeriesOptions {
	return chartval.SeriesOptions{
		BarHeight:    s.BarHeight,
		LabelText:    s.LabelText,
		Disabled:     s.Disabled,
		ShowValues:   s.ShowValues,
		ReplaceValue: s.ReplaceValue,
	}
}

func (a *AppConfig) deepCopy() AppConfig {
	c, err := deepcopy.Anything(a)
	if err != nil {
		panic(err)
	}
	return *c.(*AppConfig)
}

func (a *AppConfig) Sanitize() {
	if len(a.Series) == 0 {
		a.Series = append(a.Series, NewSeriesConfig("default", 1))
	}
	// Positions are unique and dense. Series are ordered by position, series
	// without a position are appended. Duplicate names are dropped.
	names := make(map[string]bool)
	uniqueSeries := a.Series[:0]
	for _, s := range a.Series {
		if names[s.Name] {
			continue
		}
		names[s.Name] = true
		uniqueSeries = append(uniqueSeries, s)
	}
	a.Series = uniqueSeries
	slices.SortStableFunc(a.Series, func(x, y SeriesConfig) int {
		return sortPosition(x.Position) - sortPosition(y.Position)
	})
	for i := range a.Series {
		a.Series[i].Position = i + 1
	}
	validFeeds := a.Feeds[:0]
	for _, f := range a.Feeds {
		if (f.Type == FeedWebsocket && len(f.Url) > 0) || (f.Type == FeedFile && len(f.Path) > 0) {
			validFeeds = append(validFeeds, f)
		}
	}
	a.Feeds = validFeeds
	a.WindowConfig.sanitize()
	a.RestoreDefaults()
}

func sortPosition(p int) int {
	if p <= 0 {
		return math.MaxInt32
	}
	return min(p, math.MaxInt32-1)
}

// We do not want to store default values in the configuration file,
// in order to be able to change them in later releases.
func (a *AppConfig) RemoveDefaults() {
	a.Chart.RemoveDefaults()
	for i, s := range a.Series {
		if s.BarHeight == chartval.DefaultBarHeight {
			s.BarHeight = 0
		}
		if s.Color == DefaultSeriesColor {
			s.Color = ""
		}
		a.Series[i] = s
	}
}

// Restore default values which are not stored in the configuration file.
func (a *AppConfig) RestoreDefaults() {
	for i, s := range a.Series {
		if s.BarHeight <= 0 {
			s.BarHeight = chartval.DefaultBarHeight
		}
		if len(s.Color) == 0 {
			s.Color = DefaultSeriesColor
		}
		a.Series[i] = s
	}
}
