// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"context"
	"errors"
	"horizontalcharts/config"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collectingSink struct {
	mutex sync.Mutex
	msgs  []Message
}

func (s *collectingSink) Dispatch(msg Message) error {
	s.mutex.Lock()
	s.msgs = append(s.msgs, msg)
	s.mutex.Unlock()
	return nil
}

func (s *collectingSink) Messages() []Message {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return append([]Message(nil), s.msgs...)
}

type feedFunc func(ctx context.Context, sink Sink) error

func (f feedFunc) Run(ctx context.Context, sink Sink) error {
	return f(ctx, sink)
}

func TestNewFeeds(t *testing.T) {
	feeds, err := NewFeeds([]config.FeedConfig{
		{Type: config.FeedWebsocket, Url: "ws://localhost:1/"},
		{Type: config.FeedFile, Path: "samples.csv", Series: "cpu"},
	}, nil)
	require.NoError(t, err)
	assert.Len(t, feeds, 2)

	_, err = NewFeeds([]config.FeedConfig{{Type: "pigeon"}}, nil)
	assert.Error(t, err)
}

func TestWithDefaultSeries(t *testing.T) {
	sink := &collectingSink{}
	s := WithDefaultSeries(sink, "cpu")
	assert.NoError(t, s.Dispatch(Message{}))
	assert.NoError(t, s.Dispatch(Message{Series: "mem"}))
	msgs := sink.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "cpu", msgs[0].Series)
	assert.Equal(t, "mem", msgs[1].Series)

	assert.Same(t, sink, WithDefaultSeries(sink, ""))
}

func TestRunStopsOnError(t *testing.T) {
	errFailed := errors.New("failed")
	stopped := make(chan struct{})
	feeds := []Feed{
		feedFunc(func(ctx context.Context, sink Sink) error {
			<-ctx.Done()
			close(stopped)
			return nil
		}),
		feedFunc(func(ctx context.Context, sink Sink) error {
			return errFailed
		}),
	}
	err := Run(context.Background(), feeds, &collectingSink{})
	assert.ErrorIs(t, err, errFailed)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		assert.Fail(t, "feed was not stopped")
	}
}

func TestRandomFeed(t *testing.T) {
	f := NewRandomFeed([]string{"cpu", "mem"}, 5*time.Millisecond, 10, nil)
	now := time.Now()
	for i := 0; i < 100; i++ {
		msg := f.Next("cpu", now)
		assert.Equal(t, "cpu", msg.Series)
		assert.Equal(t, now.UnixMilli(), msg.Timestamp)
		if msg.Value != nil {
			assert.GreaterOrEqual(t, *msg.Value, 0.0)
			assert.LessOrEqual(t, *msg.Value, 10.0)
		}
	}

	sink := &collectingSink{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- f.Run(ctx, sink) }()
	assert.Eventually(t, func() bool { return len(sink.Messages()) >= 4 }, time.Second, time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}
