// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanMapSubscribe(t *testing.T) {
	m := NewChanMap[int](4)
	c, err := m.Subscribe("cpu")
	require.NoError(t, err)
	assert.True(t, m.IsSubscribed("cpu"))
	_, err = m.Subscribe("cpu")
	assert.Error(t, err)

	assert.NoError(t, m.AddNewData("cpu", 1))
	// Data for unknown series is ignored.
	assert.NoError(t, m.AddNewData("mem", 2))
	assert.Equal(t, 1, <-c)
}

func TestChanMapOverflow(t *testing.T) {
	m := NewChanMap[int](2)
	c, err := m.Subscribe("cpu")
	require.NoError(t, err)
	assert.NoError(t, m.AddNewData("cpu", 1))
	assert.NoError(t, m.AddNewData("cpu", 2))
	assert.Error(t, m.AddNewData("cpu", 3))
	assert.Equal(t, 2, <-c)
	assert.Equal(t, 3, <-c)
}

func TestChanMapUnsubscribe(t *testing.T) {
	m := NewChanMap[int](0)
	c, err := m.Subscribe("cpu")
	require.NoError(t, err)
	require.NoError(t, m.AddNewData("cpu", 1))
	assert.NoError(t, m.Unsubscribe("cpu"))
	assert.False(t, m.IsSubscribed("cpu"))
	assert.Error(t, m.Unsubscribe("cpu"))

	m.ClearPendingClose()
	v, ok := <-c
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = <-c
	assert.False(t, ok)
}

func TestChanMapClear(t *testing.T) {
	m := NewChanMap[int](1)
	c1, _ := m.Subscribe("cpu")
	c2, _ := m.Subscribe("mem")
	m.Clear()
	_, ok := <-c1
	assert.False(t, ok)
	_, ok = <-c2
	assert.False(t, ok)
	assert.False(t, m.IsSubscribed("cpu"))
}

func TestChanMapAddAfterClear(t *testing.T) {
	m := NewChanMap[int](1)
	_, err := m.Subscribe("cpu")
	require.NoError(t, err)
	m.Clear()

	assert.ErrorIs(t, m.AddNewData("cpu", 1), ErrQueueClosed)
}

func TestChanMapClearWhileAdding(t *testing.T) {
	m := NewChanMap[int](4)
	c, err := m.Subscribe("cpu")
	require.NoError(t, err)
	go func() {
		for range c {
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if errors.Is(m.AddNewData("cpu", j), ErrQueueClosed) {
					return
				}
			}
		}()
	}
	m.Clear()
	wg.Wait()

	assert.False(t, m.IsSubscribed("cpu"))
	assert.ErrorIs(t, m.AddNewData("cpu", 1), ErrQueueClosed)
}
