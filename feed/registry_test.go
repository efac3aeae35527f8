// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"horizontalcharts/chartval"
	"horizontalcharts/config"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	cpu := config.NewSeriesConfig("cpu", 2)
	mem := config.NewSeriesConfig("mem", 1)
	mem.Color = "#00ff00"
	r, err := NewRegistryFromConfig([]config.SeriesConfig{cpu, mem})
	require.NoError(t, err)
	return r
}

func TestRegistryFromConfig(t *testing.T) {
	r := newTestRegistry(t)
	assert.ElementsMatch(t, []string{"cpu", "mem"}, r.Names())
	series := r.Series()
	require.Len(t, series, 2)
	assert.Equal(t, 1, series[0].Position())
	assert.Equal(t, 2, series[1].Position())

	s, ok := r.Lookup("mem")
	require.True(t, ok)
	assert.Same(t, series[0], s)
	_, ok = r.Lookup("disk")
	assert.False(t, ok)

	bad := config.NewSeriesConfig("bad", 3)
	bad.Color = "green-ish"
	_, err := NewRegistryFromConfig([]config.SeriesConfig{bad})
	assert.Error(t, err)
}

func TestRegistryRegisterTwice(t *testing.T) {
	r := NewRegistry()
	s := chartval.NewSeries(1, chartval.NewSeriesOptions())
	assert.NoError(t, r.Register("cpu", s, chartval.SolidFill(color.NRGBA{A: 255})))
	assert.Error(t, r.Register("cpu", s, chartval.SolidFill(color.NRGBA{A: 255})))
}

func TestRegistryAdd(t *testing.T) {
	r := newTestRegistry(t)
	v := 4.0
	sample, err := r.Add(Message{Series: "mem", Timestamp: 1000, Value: &v, Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, sample.Fill.Color)
	assert.Equal(t, 4.0, sample.Value)
	assert.Equal(t, time.UnixMilli(1000), sample.Timestamp)
	assert.Equal(t, "d", sample.Description)

	sample, err = r.Add(Message{Series: "mem", Color: "#f00"})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, sample.Fill.Color)
	assert.False(t, sample.HasValue())
	assert.False(t, sample.HasTimestamp())

	s, _ := r.Lookup("mem")
	assert.Equal(t, 2, s.Len())

	_, err = r.Add(Message{Series: "mem", Color: "#12"})
	assert.Error(t, err)
	_, err = r.Add(Message{Series: "disk"})
	assert.ErrorIs(t, err, ErrUnknownSeries)
	assert.Equal(t, 2, s.Len())
}
