// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

// Command hcharts renders horizontal bar charts without a window,
// either once from a CSV file or continuously for HTTP clients.
package main

import (
	"fmt"
	"horizontalcharts/config"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	width      float64
	density    float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "hcharts",
		Short:        "Render horizontal bar charts",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (default: user configuration)")
	rootCmd.PersistentFlags().Float64Var(&width, "width", 800, "Chart width in logical pixels")
	rootCmd.PersistentFlags().Float64Var(&density, "density", 1, "Pixel density, used as oversample factor")

	rootCmd.AddCommand(newRenderCommand(), newServeCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(logger *log.Logger) (config.AppConfig, error) {
	var c config.Config
	if len(configPath) > 0 {
		c = config.NewFileConfig(configPath, logger)
	} else {
		var err error
		c, err = config.NewGlobalConfig()
		if err != nil {
			return config.AppConfig{}, err
		}
	}
	appConfig, err := c.Copy(true)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("failed to read configuration: %w", err)
	}
	return appConfig, nil
}
