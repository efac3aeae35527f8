// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"context"
	"fmt"
	"horizontalcharts/chartplot"
	"horizontalcharts/config"
	"log"

	"golang.org/x/sync/errgroup"
)

// Bars of the demo feed are at most this many pixels long.
const demoBarLength = 40

// Session connects the configured series and feeds to a chart.
type Session struct {
	Chart      *chartplot.Chart
	Registry   *Registry
	Dispatcher *Dispatcher
	Feeds      []Feed
	logger     *log.Logger
}

// NewSession creates the chart, its series and the feeds of the configuration.
// If demo is set and no feed is configured, random samples are generated.
func NewSession(appConfig config.AppConfig, demo bool, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.Default()
	}
	cfg, err := appConfig.Chart.Resolve()
	if err != nil {
		return nil, fmt.Errorf("invalid chart options: %v", err)
	}
	registry, err := NewRegistryFromConfig(appConfig.Series)
	if err != nil {
		return nil, err
	}
	feeds, err := NewFeeds(appConfig.Feeds, logger)
	if err != nil {
		return nil, err
	}
	if demo && len(feeds) == 0 {
		maxValue := demoBarLength * cfg.XAxis.XUnitsPerPixel
		if !appConfig.RealTime {
			maxValue = cfg.XAxis.Max
		}
		feeds = append(feeds, NewRandomFeed(registry.Names(), DefaultRandomInterval, maxValue, logger))
	}
	chart := chartplot.NewChart(cfg, appConfig.RealTime, logger)
	for _, s := range registry.Series() {
		chart.AddSeries(s)
	}
	var defaultSeries string
	if len(appConfig.Series) > 0 {
		defaultSeries = appConfig.Series[0].Name
	}
	return &Session{
		Chart:      chart,
		Registry:   registry,
		Dispatcher: NewDispatcher(registry, defaultSeries, DefaultBufferSize, logger),
		Feeds:      feeds,
		logger:     logger,
	}, nil
}

// Run dispatches samples of all feeds to the chart until the context is done or a feed fails.
// Feeds which end without error do not stop the session.
func (s *Session) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Dispatcher.Run(ctx)
	})
	g.Go(func() error {
		return Run(ctx, s.Feeds, s.Dispatcher)
	})
	err := g.Wait()
	s.Dispatcher.Close()
	return err
}
