// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartval

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

const DefaultBarHeight = 22

type SeriesOptions struct {
	BarHeight  float64
	LabelText  string
	Disabled   bool
	ShowValues bool
	// Replace a sample if a new one with the same timestamp is added.
	ReplaceValue bool
}

func NewSeriesOptions() SeriesOptions {
	return SeriesOptions{
		BarHeight: DefaultBarHeight,
	}
}

// ExtentFunc reports the drawn length of a sample, if it was drawn.
type ExtentFunc func(s Sample) (float64, bool)

// Series is an ordered, time-ascending set of samples shown in a single chart row.
// Samples may be added from any goroutine.
type Series struct {
	position int
	options  SeriesOptions
	mutex    *sync.RWMutex
	data     []Sample
}

// NewSeries creates a series shown in row position (starting at 1).
func NewSeries(position int, o SeriesOptions) *Series {
	if position < 1 {
		position = 1
	}
	if o.BarHeight < 0 {
		o.BarHeight = 0
	}
	return &Series{
		position: position,
		options:  o,
		mutex:    new(sync.RWMutex),
	}
}

func (s *Series) Position() int {
	return s.position
}

func (s *Series) Options() SeriesOptions {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.options
}

func (s *Series) SetDisabled(disabled bool) {
	s.mutex.Lock()
	s.options.Disabled = disabled
	s.mutex.Unlock()
}

func (s *Series) SetShowValues(show bool) {
	s.mutex.Lock()
	s.options.ShowValues = show
	s.mutex.Unlock()
}

// Label returns the text shown in front of the row, which is the position if no label is set.
func (s *Series) Label() string {
	o := s.Options()
	if len(o.LabelText) > 0 {
		return o.LabelText
	}
	return strconv.Itoa(s.position)
}

// Append creates a new sample and adds it to the series.
func (s *Series) Append(ts time.Time, value float64, fill Fill, desc string) Sample {
	sample := NewSample(ts, value, fill, desc)
	return s.Add(sample)[0]
}

// Add inserts samples according to their timestamp. Samples without timestamp are appended.
// The stored samples are returned, which differ from the input in case of replacement.
func (s *Series) Add(samples ...Sample) []Sample {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	stored := make([]Sample, 0, len(samples))
	for _, sample := range samples {
		stored = append(stored, s.insert(sample))
	}
	return stored
}

func (s *Series) insert(sample Sample) Sample {
	if !sample.HasTimestamp() {
		s.data = append(s.data, sample)
		return sample
	}
	i := sort.Search(len(s.data), func(i int) bool {
		return s.data[i].HasTimestamp() && s.data[i].Timestamp.After(sample.Timestamp)
	})
	if s.options.ReplaceValue && i > 0 && s.data[i-1].Timestamp.Equal(sample.Timestamp) {
		// Keep the id, the drawn geometry is updated with the next frame.
		sample.ID = s.data[i-1].ID
		s.data[i-1] = sample
		return sample
	}
	s.data = append(s.data, Sample{})
	copy(s.data[i+1:], s.data[i:])
	s.data[i] = sample
	return sample
}

// Samples returns a copy of the current samples.
func (s *Series) Samples() []Sample {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	data := make([]Sample, len(s.data))
	copy(data, s.data)
	return data
}

func (s *Series) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// Clear removes all samples and returns them.
func (s *Series) Clear() []Sample {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	removed := s.data
	s.data = nil
	return removed
}

// DropOldData removes the oldest samples which no longer fit into maxLength pixels,
// summing drawn lengths from the newest sample backwards. The newest sample is always kept.
// The removed samples are returned.
func (s *Series) DropOldData(maxLength float64, extent ExtentFunc) []Sample {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	var lengthSum float64
	for i := len(s.data) - 1; i >= 0; i-- {
		if l, ok := extent(s.data[i]); ok {
			lengthSum += l
		}
		if lengthSum > maxLength {
			keepFrom := min(i+1, len(s.data)-1)
			if keepFrom <= 0 {
				return nil
			}
			removed := make([]Sample, keepFrom)
			copy(removed, s.data[:keepFrom])
			s.data = s.data[:copy(s.data, s.data[keepFrom:])]
			return removed
		}
	}
	return nil
}
