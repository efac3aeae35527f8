// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package main

import (
	"context"
	"fmt"
	"horizontalcharts/config"
	"horizontalcharts/feed"
	"horizontalcharts/raster"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputPath string
	realTime   bool
)

func newRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [input.csv]",
		Short: "Render samples of a CSV file to a PNG image",
		Long: `render reads all samples of a CSV file and writes a single frame as PNG.
The CSV header names the columns series, ts, value, color and desc.`,
		Args: cobra.ExactArgs(1),
		RunE: runRender,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&realTime, "realtime", false, "Render in real-time mode instead of scaling to the x axis")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	appConfig, err := loadConfig(logger)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(outputPath) > 0 {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return render(cmd.Context(), appConfig, args[0], out, logger)
}

func render(ctx context.Context, appConfig config.AppConfig, inputPath string, w io.Writer, logger *log.Logger) error {
	appConfig.RealTime = realTime
	appConfig.Feeds = nil
	session, err := feed.NewSession(appConfig, false, logger)
	if err != nil {
		return err
	}
	err = feed.NewFileFeed(inputPath, false, logger).Run(ctx, feed.DirectSink{Dispatcher: session.Dispatcher})
	if err != nil {
		return err
	}
	return raster.RenderPNG(session.Chart, raster.NewSurface(width, density), w)
}
