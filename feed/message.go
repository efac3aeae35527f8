// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"horizontalcharts/chartval"
	"math"
	"time"
)

// Message is a single sample as received from a feed.
// Series may be empty to use the default series of the feed.
// Value is nil for samples without value, Timestamp is in milliseconds since epoch and 0 if unknown.
type Message struct {
	Series      string   `json:"series,omitempty"`
	Timestamp   int64    `json:"ts,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	Color       string   `json:"color,omitempty"`
	Description string   `json:"desc,omitempty"`
}

func NewMessage(series string, ts time.Time, value float64, color string, desc string) Message {
	m := Message{
		Series:      series,
		Color:       color,
		Description: desc,
	}
	if !ts.IsZero() {
		m.Timestamp = ts.UnixMilli()
	}
	if !math.IsNaN(value) {
		m.Value = &value
	}
	return m
}

func (m Message) Time() time.Time {
	if m.Timestamp <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(m.Timestamp)
}

func (m Message) SampleValue() float64 {
	if m.Value == nil {
		return chartval.NoValue()
	}
	return *m.Value
}

// decodeMessages accepts a single message or an array of messages.
func decodeMessages(data []byte) ([]Message, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var msgs []Message
		if err := json.Unmarshal(data, &msgs); err != nil {
			return nil, fmt.Errorf("failed to decode messages: %v", err)
		}
		return msgs, nil
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to decode message: %v", err)
	}
	return []Message{msg}, nil
}
