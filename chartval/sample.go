// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartval

import (
	"image"
	"image/color"
	"math"
	"sync/atomic"
	"time"
)

// Fill is either a solid color or a repeating pattern image.
// If Pattern is set, it takes precedence over Color.
type Fill struct {
	Color   color.NRGBA
	Pattern image.Image
}

func SolidFill(c color.NRGBA) Fill {
	return Fill{Color: c}
}

func PatternFill(img image.Image) Fill {
	return Fill{Pattern: img}
}

func (f Fill) IsPattern() bool {
	return f.Pattern != nil
}

type Sample struct {
	ID          uint64
	Timestamp   time.Time
	Fill        Fill
	Value       float64
	Description string
}

var lastSampleId atomic.Uint64

// NoValue returns the sentinel for samples which do not carry a value.
func NoValue() float64 {
	return math.NaN()
}

// NewSample creates a sample with a unique id. Pass NoValue() to omit the value,
// and a zero time to omit the timestamp.
func NewSample(ts time.Time, value float64, fill Fill, desc string) Sample {
	return Sample{
		ID:          lastSampleId.Add(1),
		Timestamp:   ts,
		Fill:        fill,
		Value:       value,
		Description: desc,
	}
}

func (s Sample) HasValue() bool {
	return !math.IsNaN(s.Value)
}

func (s Sample) HasTimestamp() bool {
	return !s.Timestamp.IsZero()
}
