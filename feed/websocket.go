// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// WebsocketFeed connects to a websocket server which sends json messages,
// either a single sample or an array of samples per message.
type WebsocketFeed struct {
	url    string
	dialer *websocket.Dialer
	logger *log.Logger
}

func NewWebsocketFeed(url string, logger *log.Logger) *WebsocketFeed {
	if logger == nil {
		logger = log.Default()
	}
	return &WebsocketFeed{
		url:    url,
		dialer: websocket.DefaultDialer,
		logger: logger,
	}
}

func (f *WebsocketFeed) Run(ctx context.Context, sink Sink) error {
	f.logger.Printf("establishing websocket connection to %s.", f.url)
	conn, _, err := f.dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return fmt.Errorf("could not connect to %s: %v", f.url, err)
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				f.logger.Printf("websocket connection to %s was closed.", f.url)
				return nil
			}
			return fmt.Errorf("websocket connection to %s was terminated: %v", f.url, err)
		}
		if messageType != websocket.TextMessage {
			continue
		}
		dispatchAll(data, sink, f.logger)
	}
}

func dispatchAll(data []byte, sink Sink, logger *log.Logger) {
	msgs, err := decodeMessages(data)
	if err != nil {
		logger.Println(err)
		return
	}
	for _, msg := range msgs {
		if err := sink.Dispatch(msg); err != nil {
			logger.Printf("could not dispatch sample: %v", err)
		}
	}
}

// IngestHandler accepts websocket connections and dispatches the received samples.
type IngestHandler struct {
	upgrader websocket.Upgrader
	sink     Sink
	logger   *log.Logger
}

func NewIngestHandler(sink Sink, logger *log.Logger) *IngestHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &IngestHandler{
		sink:   sink,
		logger: logger,
	}
}

func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Upgrade writes an error response on failure.
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("could not upgrade ingest connection: %v", err)
		return
	}
	defer conn.Close()
	for {
		messageType, p, err := conn.ReadMessage()
		if err != nil {
			// connection was closed
			return
		}
		if messageType != websocket.TextMessage {
			h.logger.Printf("ignoring binary ingest message.")
			continue
		}
		dispatchAll(p, h.sink, h.logger)
	}
}
