// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartplot

import (
	"errors"
	"fmt"
	"horizontalcharts/chartval"
	"horizontalcharts/config"
	"log"
	"math"
	"sync"
	"sync/atomic"
)

const DefaultOverSampleFactor = 3

var (
	ErrInvalidDataSet  = errors.New("invalid data set")
	ErrAlreadyAttached = errors.New("chart is already attached")
)

type LoopState int32

const (
	StateDetached LoopState = iota
	StateRunning
)

func (s LoopState) String() string {
	switch s {
	case StateRunning:
		return "running"
	default:
		return "detached"
	}
}

// DataSeries is a row of the chart. It is implemented by chartval.Series.
type DataSeries interface {
	Position() int
	Options() chartval.SeriesOptions
	Label() string
	Samples() []chartval.Sample
	DropOldData(maxLength float64, extent chartval.ExtentFunc) []chartval.Sample
}

// Chart renders horizontal bars of one or more series.
type Chart struct {
	cfg         config.ChartConfig
	realTime    bool
	formatTime  chartval.TimeFormatter
	logger      *log.Logger
	series      []DataSeries
	seriesMutex *sync.RWMutex
	surface     Surface
	scheduler   Scheduler
	state       atomic.Int32
	generation  atomic.Uint64
	oversample  atomic.Uint64
	geometry    *GeometryTable
	hoverMutex  *sync.Mutex
	hover       bool
	lastEvent   PointerEvent
	tooltip     *Tooltip
	onClick     func(ev PointerEvent, matches []chartval.Sample)
	frames      atomic.Uint64
	frame       struct {
		layout Layout
		points []Point
		rows   []DataSeries
	}
}

// NewChart creates a chart. In real-time mode, values are scaled by
// the configured units per pixel and old samples are dropped.
func NewChart(cfg config.ChartConfig, realTime bool, logger *log.Logger) *Chart {
	if logger == nil {
		logger = log.Default()
	}
	c := &Chart{
		cfg:         cfg,
		realTime:    realTime,
		formatTime:  chartval.DefaultTimeFormatter,
		logger:      logger,
		seriesMutex: new(sync.RWMutex),
		geometry:    NewGeometryTable(),
		hoverMutex:  new(sync.Mutex),
	}
	c.setOversample(DefaultOverSampleFactor)
	return c
}

// SetTimeFormatter replaces the formatter used for tooltips. Call before Attach.
func (c *Chart) SetTimeFormatter(f chartval.TimeFormatter) {
	if f != nil {
		c.formatTime = f
	}
}

func (c *Chart) Config() config.ChartConfig {
	return c.cfg
}

func (c *Chart) IsRealTime() bool {
	return c.realTime
}

func (c *Chart) Geometry() *GeometryTable {
	return c.geometry
}

// AddSeries appends series. Rows are ordered by position, series with the same
// position are ordered as they were added.
func (c *Chart) AddSeries(series ...DataSeries) {
	c.seriesMutex.Lock()
	c.series = append(c.series, series...)
	c.seriesMutex.Unlock()
}

func (c *Chart) seriesSnapshot() []DataSeries {
	c.seriesMutex.RLock()
	defer c.seriesMutex.RUnlock()
	s := make([]DataSeries, len(c.series))
	copy(s, c.series)
	return s
}

// Attach validates the data and starts rendering to the surface.
func (c *Chart) Attach(surface Surface, scheduler Scheduler) error {
	for _, s := range c.seriesSnapshot() {
		if !hasConsistentValues(s.Samples()) {
			return fmt.Errorf("series %s: %w", s.Label(), ErrInvalidDataSet)
		}
	}
	if !c.state.CompareAndSwap(int32(StateDetached), int32(StateRunning)) {
		return ErrAlreadyAttached
	}
	c.surface = surface
	c.scheduler = scheduler
	c.logger.Printf("Chart attached, %d series.", len(c.seriesSnapshot()))
	c.requestFrame(c.generation.Add(1))
	return nil
}

// Stop ends rendering. A frame which is already scheduled will not draw,
// even if the chart is attached again before it runs.
func (c *Chart) Stop() {
	if c.state.CompareAndSwap(int32(StateRunning), int32(StateDetached)) {
		c.generation.Add(1)
		c.logger.Printf("Chart detached after %d frames.", c.frames.Load())
	}
}

func (c *Chart) State() LoopState {
	return LoopState(c.state.Load())
}

func (c *Chart) Running() bool {
	return c.State() == StateRunning
}

// Frames returns the number of rendered frames.
func (c *Chart) Frames() uint64 {
	return c.frames.Load()
}

func hasConsistentValues(samples []chartval.Sample) bool {
	for i := 1; i < len(samples); i++ {
		if samples[i].HasValue() != samples[i-1].HasValue() {
			return false
		}
	}
	return true
}

func (c *Chart) setOversample(f float64) {
	c.oversample.Store(math.Float64bits(f))
}

// Oversample returns the factor used for the last frame.
func (c *Chart) Oversample() float64 {
	return math.Float64frombits(c.oversample.Load())
}

func (c *Chart) calcOversample() float64 {
	if c.cfg.CustomOverSampleFactor > 0 {
		return c.cfg.CustomOverSampleFactor
	}
	if d, ok := c.surface.PixelDensity(); ok && d > 0 {
		return d
	}
	return DefaultOverSampleFactor
}

func (c *Chart) requestFrame(gen uint64) {
	c.scheduler.RequestFrame(func() { c.renderFrame(gen) })
}

func (c *Chart) current(gen uint64) bool {
	return c.Running() && c.generation.Load() == gen
}

// renderFrame renders a single frame and schedules the next one while
// the attachment identified by gen is running.
func (c *Chart) renderFrame(gen uint64) {
	if !c.current(gen) {
		return
	}
	c.render()
	c.frames.Add(1)
	if c.current(gen) {
		c.requestFrame(gen)
	}
}

// Layout returns the layout of the last frame.
// Call from the goroutine which runs the scheduler.
func (c *Chart) Layout() Layout {
	return c.frame.layout
}
