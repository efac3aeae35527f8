// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"errors"
	"fmt"
	"sync"

	"github.com/zhangyunhao116/skipmap"
)

const DefaultBufferSize = 1024

var ErrQueueClosed = errors.New("queues are closed")

// ChanMap holds a buffered channel per series. If a channel is full, the oldest entry is dropped.
// Channels are only closed while no data is being added.
type ChanMap[T any] struct {
	sm                    *skipmap.StringMap[chan T]
	bufferSize            int
	pendingCloseList      []chan T
	pendingCloseListMutex *sync.Mutex
	closeMutex            *sync.RWMutex
	closed                bool
}

func NewChanMap[T any](bufferSize int) *ChanMap[T] {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &ChanMap[T]{
		sm:                    skipmap.NewString[chan T](),
		bufferSize:            bufferSize,
		pendingCloseListMutex: new(sync.Mutex),
		closeMutex:            new(sync.RWMutex),
	}
}

func (m *ChanMap[T]) addPendingClose(c chan T) {
	m.pendingCloseListMutex.Lock()
	m.pendingCloseList = append(m.pendingCloseList, c)
	m.pendingCloseListMutex.Unlock()
}

// ClearPendingClose closes the channels of unsubscribed series.
func (m *ChanMap[T]) ClearPendingClose() {
	m.closeMutex.Lock()
	m.clearPendingClose()
	m.closeMutex.Unlock()
}

func (m *ChanMap[T]) clearPendingClose() {
	m.pendingCloseListMutex.Lock()
	for _, c := range m.pendingCloseList {
		close(c)
	}
	m.pendingCloseList = nil
	m.pendingCloseListMutex.Unlock()
}

// Clear closes all channels. Data which is added afterwards is rejected with ErrQueueClosed.
func (m *ChanMap[T]) Clear() {
	m.closeMutex.Lock()
	defer m.closeMutex.Unlock()
	m.closed = true
	m.clearPendingClose()
	m.sm.Range(
		func(k string, c chan T) bool {
			m.sm.Delete(k)
			close(c)
			return true
		},
	)
}

func (m *ChanMap[T]) Subscribe(name string) (<-chan T, error) {
	// Buffered, so that old data can be deleted if processing is too slow.
	c := make(chan T, m.bufferSize)
	if _, exists := m.sm.LoadOrStore(name, c); exists {
		return nil, fmt.Errorf("already subscribed to %s", name)
	}
	return c, nil
}

func (m *ChanMap[T]) Unsubscribe(name string) error {
	c, exists := m.sm.LoadAndDelete(name)
	if !exists {
		return fmt.Errorf("cannot unsubscribe %s: not subscribed", name)
	}
	// Closed by ClearPendingClose, AddNewData may still hold the channel.
	m.addPendingClose(c)
	return nil
}

func (m *ChanMap[T]) IsSubscribed(name string) bool {
	_, exists := m.sm.Load(name)
	return exists
}

// AddNewData queues data for the series. New data is more important than old data,
// therefore the oldest entry is removed if the buffer is full.
func (m *ChanMap[T]) AddNewData(name string, data T) error {
	m.closeMutex.RLock()
	defer m.closeMutex.RUnlock()
	if m.closed {
		return ErrQueueClosed
	}
	c, exists := m.sm.Load(name)
	if !exists {
		// Silently ignored, this may happen while unsubscribing.
		return nil
	}
	select {
	case c <- data:
		return nil
	default:
	}
	select {
	case <-c:
		select {
		case c <- data:
			return fmt.Errorf("series %s: buffer overflow, old data is being removed", name)
		default:
			return fmt.Errorf("series %s: buffer overflow, new data is being dropped", name)
		}
	default:
		return fmt.Errorf("series %s: buffer cannot be read from or written to", name)
	}
}
