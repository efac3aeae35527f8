// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package mock

import "sync"

// ManualScheduler collects frame requests until they are run explicitly.
type ManualScheduler struct {
	mutex   sync.Mutex
	pending []func()
}

func NewScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) RequestFrame(f func()) {
	s.mutex.Lock()
	s.pending = append(s.pending, f)
	s.mutex.Unlock()
}

func (s *ManualScheduler) Pending() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.pending)
}

// RunPending runs the requests which are pending, but not those requested while running.
// It returns the number of requests which were run.
func (s *ManualScheduler) RunPending() int {
	s.mutex.Lock()
	pending := s.pending
	s.pending = nil
	s.mutex.Unlock()
	for _, f := range pending {
		f()
	}
	return len(pending)
}
