// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"horizontalcharts/chartplot"
	"horizontalcharts/config"
	"horizontalcharts/feed"
	"horizontalcharts/raster"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var (
	addr     string
	interval time.Duration
	demo     bool
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a real-time chart over HTTP",
		Long: `serve renders the configured chart continuously. GET /chart.png returns the latest frame,
GET /tooltip?x=&y= the tooltip at a position, and /samples accepts samples over a websocket.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().DurationVar(&interval, "interval", raster.DefaultFrameInterval, "Frame interval")
	cmd.Flags().BoolVar(&demo, "demo", false, "Generate random samples if no feed is configured")
	return cmd
}

type chartServer struct {
	session      *feed.Session
	surface      *raster.Surface
	tooltipMutex sync.Mutex
	logger       *log.Logger
}

func newChartServer(session *feed.Session, surface *raster.Surface, logger *log.Logger) *chartServer {
	return &chartServer{
		session: session,
		surface: surface,
		logger:  logger,
	}
}

func (s *chartServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/chart.png", s.serveChart)
	mux.HandleFunc("/tooltip", s.serveTooltip)
	mux.Handle("/samples", feed.NewIngestHandler(s.session.Dispatcher, s.logger))
	return mux
}

func (s *chartServer) serveChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var buf bytes.Buffer
	err := s.surface.EncodePNG(&buf)
	if errors.Is(err, raster.ErrNoFrame) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		s.logger.Printf("could not encode chart: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func parseCoordinate(r *http.Request, name string) (float64, error) {
	v, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s coordinate", name)
	}
	return v, nil
}

func (s *chartServer) serveTooltip(w http.ResponseWriter, r *http.Request) {
	x, err := parseCoordinate(r, "x")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	y, err := parseCoordinate(r, "y")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	chart := s.session.Chart
	// The chart keeps a single pointer state.
	s.tooltipMutex.Lock()
	chart.PointerMove(chartplot.PointerEvent{X: x, Y: y, PageX: x, PageY: y})
	tip := chart.Tooltip()
	chart.PointerOut()
	s.tooltipMutex.Unlock()

	if !tip.Visible {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	html, err := tip.HTML()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html.String()))
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	appConfig, err := loadConfig(logger)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return serve(ctx, appConfig, demo, addr, logger)
}

func serve(ctx context.Context, appConfig config.AppConfig, demo bool, addr string, logger *log.Logger) error {
	session, err := feed.NewSession(appConfig, demo, logger)
	if err != nil {
		return err
	}
	surface := raster.NewSurface(width, density)
	scheduler := raster.NewTickerScheduler(interval, surface.Publish)
	if err := session.Chart.Attach(surface, scheduler); err != nil {
		return err
	}
	defer session.Chart.Stop()

	server := &http.Server{
		Addr:    addr,
		Handler: newChartServer(session, surface, logger).Handler(),
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scheduler.Run(ctx)
	})
	g.Go(func() error {
		return session.Run(ctx)
	})
	g.Go(func() error {
		logger.Printf("serving chart on %s.", addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
