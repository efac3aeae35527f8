// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package mock

import (
	"bufio"
	"horizontalcharts/config"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func NewLogger(t *testing.T) (*log.Logger, *bufio.Scanner) {
	r, w, err := os.Pipe()
	if err != nil {
		assert.Fail(t, "failed to create logger mock: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	t.Cleanup(func() { w.Close() })
	return log.New(w, "", log.LstdFlags), bufio.NewScanner(r)
}

// NewFeedConfig returns a test configuration using the given feeds and series.
func NewFeedConfig(feeds []config.FeedConfig, series ...config.SeriesConfig) config.Config {
	c := config.NewTestConfig()
	appConfig, _ := c.Lock()
	appConfig.Feeds = feeds
	if len(series) > 0 {
		appConfig.Series = series
	}
	appConfig.Sanitize()
	_ = c.Unlock(appConfig, true)
	return c
}
