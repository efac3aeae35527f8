// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package main

import (
	"context"
	"horizontalcharts/chartviz"
	"horizontalcharts/config"
	"log"
	"os"

	"gioui.org/app"
)

func main() {
	c, err := config.NewGlobalConfig()
	if err != nil {
		log.Fatal(err)
	}
	a := chartviz.NewChartApp(c, log.Default())
	if err := a.Initialize(); err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	go func() {
		a.Run(context.Background())
		os.Exit(0)
	}()
	app.Main()
}
