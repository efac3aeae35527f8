// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package raster

import (
	"context"
	"horizontalcharts/chartplot"
	"io"
	"sync"
	"time"
)

const DefaultFrameInterval = 100 * time.Millisecond

// TickerScheduler runs frame requests at a fixed interval.
type TickerScheduler struct {
	interval   time.Duration
	afterFrame func()
	mutex      sync.Mutex
	pending    []func()
}

// NewTickerScheduler creates a scheduler. afterFrame is called after requests were run, it may be nil.
func NewTickerScheduler(interval time.Duration, afterFrame func()) *TickerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &TickerScheduler{
		interval:   interval,
		afterFrame: afterFrame,
	}
}

func (s *TickerScheduler) RequestFrame(f func()) {
	s.mutex.Lock()
	s.pending = append(s.pending, f)
	s.mutex.Unlock()
}

// RunPending runs the requests made before the call, and returns their number.
func (s *TickerScheduler) RunPending() int {
	s.mutex.Lock()
	pending := s.pending
	s.pending = nil
	s.mutex.Unlock()
	for _, f := range pending {
		f()
	}
	if len(pending) > 0 && s.afterFrame != nil {
		s.afterFrame()
	}
	return len(pending)
}

// Run runs frame requests until the context is done.
func (s *TickerScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.RunPending()
		}
	}
}

// RenderPNG renders a single frame of the chart and writes it as PNG.
// The chart is detached afterwards.
func RenderPNG(chart *chartplot.Chart, s *Surface, w io.Writer) error {
	scheduler := NewTickerScheduler(0, s.Publish)
	if err := chart.Attach(s, scheduler); err != nil {
		return err
	}
	scheduler.RunPending()
	chart.Stop()
	return s.EncodePNG(w)
}
