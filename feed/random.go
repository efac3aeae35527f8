// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"context"
	"log"
	"math/rand"
	"time"
)

const DefaultRandomInterval = 500 * time.Millisecond

// RandomFeed generates random samples for the given series, for demonstration purposes.
// Every few samples, one without value is generated.
type RandomFeed struct {
	series   []string
	interval time.Duration
	maxValue float64
	rnd      *rand.Rand
	logger   *log.Logger
}

func NewRandomFeed(series []string, interval time.Duration, maxValue float64, logger *log.Logger) *RandomFeed {
	if interval <= 0 {
		interval = DefaultRandomInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &RandomFeed{
		series:   series,
		interval: interval,
		maxValue: maxValue,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   logger,
	}
}

func (f *RandomFeed) Next(series string, now time.Time) Message {
	msg := Message{
		Series:    series,
		Timestamp: now.UnixMilli(),
	}
	if f.rnd.Intn(8) > 0 {
		v := float64(f.rnd.Intn(int(f.maxValue*100)+1)) / 100
		msg.Value = &v
	}
	return msg
}

func (f *RandomFeed) Run(ctx context.Context, sink Sink) error {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			for _, s := range f.series {
				if err := sink.Dispatch(f.Next(s, now)); err != nil {
					f.logger.Printf("could not dispatch sample: %v", err)
				}
			}
		}
	}
}
