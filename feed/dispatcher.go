// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
)

// Sink receives the messages of a feed.
type Sink interface {
	Dispatch(msg Message) error
}

// Dispatcher queues messages per series, and appends them to the series of the registry.
// Messages are kept in order per series. Slow consumers lose old messages.
type Dispatcher struct {
	registry      *Registry
	chans         *ChanMap[Message]
	subscriptions map[string]<-chan Message
	defaultSeries string
	logger        *log.Logger
}

// NewDispatcher creates a dispatcher for the series of the registry.
// Messages without series name are added to defaultSeries.
func NewDispatcher(registry *Registry, defaultSeries string, bufferSize int, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	d := &Dispatcher{
		registry:      registry,
		chans:         NewChanMap[Message](bufferSize),
		subscriptions: make(map[string]<-chan Message),
		defaultSeries: defaultSeries,
		logger:        logger,
	}
	for _, name := range registry.Names() {
		// Names are unique, subscribing cannot fail.
		c, _ := d.chans.Subscribe(name)
		d.subscriptions[name] = c
	}
	return d
}

func (d *Dispatcher) resolve(msg Message) (Message, error) {
	if len(msg.Series) == 0 {
		msg.Series = d.defaultSeries
	}
	if _, ok := d.registry.Lookup(msg.Series); !ok {
		return msg, fmt.Errorf("series %q: %w", msg.Series, ErrUnknownSeries)
	}
	return msg, nil
}

// Dispatch queues a message. Messages for unknown series are rejected.
func (d *Dispatcher) Dispatch(msg Message) error {
	msg, err := d.resolve(msg)
	if err != nil {
		return err
	}
	return d.chans.AddNewData(msg.Series, msg)
}

// Run appends queued messages until the context is done. It must only be called once.
func (d *Dispatcher) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, c := range d.subscriptions {
		c := c
		g.Go(func() error {
			return d.consume(ctx, c)
		})
	}
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close closes the message queues. Messages dispatched afterwards are rejected.
func (d *Dispatcher) Close() {
	d.chans.Clear()
}

func (d *Dispatcher) consume(ctx context.Context, c <-chan Message) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-c:
			if !ok {
				return nil
			}
			if _, err := d.registry.Add(msg); err != nil {
				d.logger.Printf("could not add sample: %v", err)
			}
		}
	}
}

// DirectSink adds messages to the registry without queueing, for example when reading a file at once.
type DirectSink struct {
	*Dispatcher
}

func (s DirectSink) Dispatch(msg Message) error {
	msg, err := s.resolve(msg)
	if err != nil {
		return err
	}
	_, err = s.registry.Add(msg)
	return err
}
