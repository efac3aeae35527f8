// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"context"
	"fmt"
	"horizontalcharts/config"
	"log"

	"golang.org/x/sync/errgroup"
)

// Feed delivers samples to a sink until the context is done or the source is exhausted.
type Feed interface {
	Run(ctx context.Context, sink Sink) error
}

// seriesSink fills in the series of messages which do not name one.
type seriesSink struct {
	Sink
	series string
}

func (s seriesSink) Dispatch(msg Message) error {
	if len(msg.Series) == 0 {
		msg.Series = s.series
	}
	return s.Sink.Dispatch(msg)
}

// WithDefaultSeries returns a sink which assigns series to messages without series name.
func WithDefaultSeries(sink Sink, series string) Sink {
	if len(series) == 0 {
		return sink
	}
	return seriesSink{Sink: sink, series: series}
}

type configuredFeed struct {
	feed   Feed
	series string
}

func (c configuredFeed) Run(ctx context.Context, sink Sink) error {
	return c.feed.Run(ctx, WithDefaultSeries(sink, c.series))
}

// NewFeed creates the feed described by the configuration. File feeds are followed.
func NewFeed(c config.FeedConfig, logger *log.Logger) (Feed, error) {
	var f Feed
	switch c.Type {
	case config.FeedWebsocket:
		f = NewWebsocketFeed(c.Url, logger)
	case config.FeedFile:
		f = NewFileFeed(c.Path, true, logger)
	default:
		return nil, fmt.Errorf("unsupported feed type %q", c.Type)
	}
	return configuredFeed{feed: f, series: c.Series}, nil
}

func NewFeeds(cfgs []config.FeedConfig, logger *log.Logger) ([]Feed, error) {
	feeds := make([]Feed, 0, len(cfgs))
	for _, c := range cfgs {
		f, err := NewFeed(c, logger)
		if err != nil {
			return nil, err
		}
		feeds = append(feeds, f)
	}
	return feeds, nil
}

// Run runs all feeds. If one of them fails, the others are stopped and the first error is returned.
func Run(ctx context.Context, feeds []Feed, sink Sink) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, f := range feeds {
		f := f
		g.Go(func() error {
			return f.Run(ctx, sink)
		})
	}
	return g.Wait()
}
