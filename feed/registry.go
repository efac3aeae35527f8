// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"errors"
	"fmt"
	"horizontalcharts/chartval"
	"horizontalcharts/config"
	"sort"

	"github.com/zhangyunhao116/skipmap"
)

var ErrUnknownSeries = errors.New("unknown series")

type registryEntry struct {
	series *chartval.Series
	fill   chartval.Fill
}

// Registry maps series names to series. It is safe for concurrent use.
type Registry struct {
	m *skipmap.StringMap[registryEntry]
}

func NewRegistry() *Registry {
	return &Registry{
		m: skipmap.NewString[registryEntry](),
	}
}

// NewRegistryFromConfig creates a series for each configured one.
func NewRegistryFromConfig(cfgs []config.SeriesConfig) (*Registry, error) {
	r := NewRegistry()
	for _, c := range cfgs {
		col, err := config.ParseColor(c.Color)
		if err != nil {
			return nil, fmt.Errorf("series %s: failed to parse color: %v", c.Name, err)
		}
		if err := r.Register(c.Name, chartval.NewSeries(c.Position, c.SeriesOptions()), chartval.SolidFill(col)); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a series. fill is used for samples without color.
func (r *Registry) Register(name string, s *chartval.Series, fill chartval.Fill) error {
	if _, exists := r.m.LoadOrStore(name, registryEntry{series: s, fill: fill}); exists {
		return fmt.Errorf("series %s is already registered", name)
	}
	return nil
}

func (r *Registry) Lookup(name string) (*chartval.Series, bool) {
	e, ok := r.m.Load(name)
	return e.series, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, r.m.Len())
	r.m.Range(func(name string, _ registryEntry) bool {
		names = append(names, name)
		return true
	})
	return names
}

// Series returns all series, ordered by position.
func (r *Registry) Series() []*chartval.Series {
	series := make([]*chartval.Series, 0, r.m.Len())
	r.m.Range(func(_ string, e registryEntry) bool {
		series = append(series, e.series)
		return true
	})
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Position() < series[j].Position()
	})
	return series
}

// Add appends the message as a sample to its series.
func (r *Registry) Add(msg Message) (chartval.Sample, error) {
	e, ok := r.m.Load(msg.Series)
	if !ok {
		return chartval.Sample{}, fmt.Errorf("series %q: %w", msg.Series, ErrUnknownSeries)
	}
	fill := e.fill
	if len(msg.Color) > 0 {
		col, err := config.ParseColor(msg.Color)
		if err != nil {
			return chartval.Sample{}, fmt.Errorf("series %s: failed to parse color: %v", msg.Series, err)
		}
		fill = chartval.SolidFill(col)
	}
	return e.series.Append(msg.Time(), msg.SampleValue(), fill, msg.Description), nil
}
