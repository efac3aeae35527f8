// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval is used to check for new data in case file events are missed.
const DefaultPollInterval = time.Second

var ErrMissingValueColumn = errors.New("csv header does not contain a value column")

// FileFeed reads samples from a CSV file. The header names the columns,
// which are series, ts, value, color and desc. Only value is required.
// Timestamps are milliseconds since epoch or RFC3339.
type FileFeed struct {
	path         string
	follow       bool
	pollInterval time.Duration
	logger       *log.Logger
}

// NewFileFeed creates a file feed. If follow is set, the file is tailed until the context is done.
func NewFileFeed(path string, follow bool, logger *log.Logger) *FileFeed {
	if logger == nil {
		logger = log.Default()
	}
	return &FileFeed{
		path:         path,
		follow:       follow,
		pollInterval: DefaultPollInterval,
		logger:       logger,
	}
}

func (f *FileFeed) Run(ctx context.Context, sink Sink) error {
	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %v", f.path, err)
	}
	defer file.Close()

	var events <-chan fsnotify.Event
	if f.follow {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %v", err)
		}
		defer watcher.Close()
		if err := watcher.Add(f.path); err != nil {
			return fmt.Errorf("failed to watch %s: %v", f.path, err)
		}
		events = watcher.Events
	}
	return f.readCSV(ctx, file, sink, events)
}

type csvColumns struct {
	series, ts, value, color, desc int
}

func parseHeader(rec []string) (csvColumns, error) {
	cols := csvColumns{-1, -1, -1, -1, -1}
	for i, h := range rec {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "series":
			cols.series = i
		case "ts", "timestamp":
			cols.ts = i
		case "value":
			cols.value = i
		case "color":
			cols.color = i
		case "desc", "description":
			cols.desc = i
		}
	}
	if cols.value < 0 {
		return cols, ErrMissingValueColumn
	}
	return cols, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseTimestamp(s string) (int64, error) {
	if len(s) == 0 {
		return 0, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("failed to parse timestamp %q", s)
	}
	return t.UnixMilli(), nil
}

func (c csvColumns) message(rec []string) (Message, error) {
	ts, err := parseTimestamp(field(rec, c.ts))
	if err != nil {
		return Message{}, err
	}
	msg := Message{
		Series:      field(rec, c.series),
		Timestamp:   ts,
		Color:       field(rec, c.color),
		Description: field(rec, c.desc),
	}
	if v := field(rec, c.value); len(v) > 0 {
		value, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Message{}, fmt.Errorf("failed to parse value %q", v)
		}
		msg.Value = &value
	}
	return msg, nil
}

// waitForData blocks until the file was written to. It returns false if reading should stop.
func (f *FileFeed) waitForData(ctx context.Context, events <-chan fsnotify.Event) bool {
	poll := time.NewTimer(f.pollInterval)
	defer poll.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-poll.C:
			return true
		case ev, ok := <-events:
			if !ok {
				return false
			}
			if ev.Has(fsnotify.Write) {
				return true
			}
		}
	}
}

func (f *FileFeed) readCSV(ctx context.Context, r io.Reader, sink Sink, events <-chan fsnotify.Event) error {
	csvReader := csv.NewReader(newLineReader(r))
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	var cols *csvColumns
	for {
		rec, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if events != nil && f.waitForData(ctx, events) {
					continue
				}
				if cols == nil && events == nil {
					return fmt.Errorf("%s: missing csv header", f.path)
				}
				return nil
			}
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				f.logger.Printf("could not parse %s: %v", f.path, err)
				continue
			}
			return fmt.Errorf("failed to read %s: %v", f.path, err)
		}
		if cols == nil {
			header, err := parseHeader(rec)
			if err != nil {
				return fmt.Errorf("%s: %w", f.path, err)
			}
			cols = &header
			continue
		}
		msg, err := cols.message(rec)
		if err != nil {
			f.logger.Printf("could not read %s: %v", f.path, err)
			continue
		}
		if err := sink.Dispatch(msg); err != nil {
			f.logger.Printf("could not dispatch sample: %v", err)
		}
	}
}
