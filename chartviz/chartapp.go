// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartviz

import (
	"context"
	"errors"
	"fmt"
	"horizontalcharts/config"
	"horizontalcharts/feed"
	"horizontalcharts/widgets"
	"log"
	"sync"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// ChartApp shows a single chart window with series toggles.
type ChartApp struct {
	win          *app.Window
	size         widgets.DpPoint
	config       config.Config
	logger       *log.Logger
	session      *feed.Session
	chartView    *widgets.ChartView
	seriesView   *widgets.SeriesView
	messageField *widgets.MessageField
	matTheme     *material.Theme
	chartTheme   *widgets.ChartTheme
	messageMutex *sync.Mutex
	message      string
	widgetStack  []layout.StackChild
}

func NewChartApp(c config.Config, logger *log.Logger) *ChartApp {
	if logger == nil {
		logger = log.Default()
	}
	return &ChartApp{
		config:       c,
		logger:       logger,
		messageMutex: new(sync.Mutex),
	}
}

// Initialize reads the configuration and creates the chart and its feeds.
func (a *ChartApp) Initialize() error {
	appConfig, err := a.config.Copy(true)
	if err != nil {
		return err
	}
	// Themes need to be set up first, because the views use them.
	a.matTheme = widgets.NewMaterialTheme(appConfig.LightTheme)
	if appConfig.LightTheme {
		a.chartTheme = widgets.NewLightChartTheme()
	} else {
		a.chartTheme = widgets.NewDarkChartTheme()
	}
	a.session, err = feed.NewSession(appConfig, true, a.logger)
	if err != nil {
		return err
	}
	a.chartView = widgets.NewChartView(a.session.Chart, a.matTheme, a.chartTheme)
	a.seriesView = widgets.NewSeriesView(a.session.Registry.Series())
	a.messageField = widgets.NewMessageField(a.chartTheme.MessageColor)
	a.size.X = unit.Dp(appConfig.WindowConfig.Size.X)
	a.size.Y = unit.Dp(appConfig.WindowConfig.Size.Y)
	return nil
}

func (a *ChartApp) saveConfiguration() error {
	appConfig, err := a.config.Lock()
	if err != nil {
		return err
	}
	forceWriting := false
	if int(a.size.X) != appConfig.WindowConfig.Size.X || int(a.size.Y) != appConfig.WindowConfig.Size.Y {
		appConfig.WindowConfig.Size.X = int(a.size.X)
		appConfig.WindowConfig.Size.Y = int(a.size.Y)
		forceWriting = true
	}
	return a.config.Unlock(appConfig, forceWriting)
}

func (a *ChartApp) setMessage(msg string) {
	a.messageMutex.Lock()
	a.message = msg
	a.messageMutex.Unlock()
	if a.win != nil {
		a.win.Invalidate()
	}
}

func (a *ChartApp) getMessage() string {
	a.messageMutex.Lock()
	defer a.messageMutex.Unlock()
	return a.message
}

// Run opens the window and blocks until it is closed.
func (a *ChartApp) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.createWindow()
	if err := a.chartView.Attach(); err != nil {
		a.setMessage(fmt.Sprintf("Cannot show chart: %v", err))
	}
	sessionDone := make(chan struct{})
	go func() {
		defer close(sessionDone)
		err := a.session.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Printf("feed failed: %v", err)
			a.setMessage(fmt.Sprintf("Feed failed: %v", err))
		}
	}()

	err := a.handleEvents()
	if err != nil {
		a.logger.Printf("terminating with error: %v", err)
	}
	a.chartView.Stop()
	cancel()
	<-sessionDone
	a.terminate()
}

func (a *ChartApp) createWindow() {
	a.win = app.NewWindow(
		app.Title(a.config.GetAppName()),
		app.Size(a.size.X, a.size.Y),
	)
}

func (a *ChartApp) handleEvents() error {
	var ops op.Ops
	for {
		switch e := a.win.NextEvent().(type) {
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			paint.Fill(gtx.Ops, a.matTheme.Bg)
			a.layout(gtx)
			a.size.X = unit.Dp(float32(e.Size.X) / e.Metric.PxPerDp)
			a.size.Y = unit.Dp(float32(e.Size.Y) / e.Metric.PxPerDp)
			e.Frame(gtx.Ops)
		case app.DestroyEvent:
			return e.Err
		}
	}
}

func (a *ChartApp) layout(gtx layout.Context) layout.Dimensions {
	a.widgetStack = a.widgetStack[:0]
	a.widgetStack = append(
		a.widgetStack,
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{
				Axis:    layout.Vertical,
				Spacing: layout.SpaceEnd,
			}.Layout(
				gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(a.chartTheme.ChartMargin).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return a.chartView.Layout(gtx, a.matTheme)
					})
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return a.seriesView.Layout(gtx, a.matTheme)
				}),
			)
		}),
	)
	if msg := a.getMessage(); len(msg) > 0 {
		a.widgetStack = append(
			a.widgetStack,
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				return a.messageField.Layout(msg, gtx, a.matTheme)
			}),
		)
	}
	return layout.Stack{
		Alignment: layout.S,
	}.Layout(
		gtx,
		a.widgetStack...,
	)
}

func (a *ChartApp) terminate() {
	err := a.saveConfiguration()
	if err != nil {
		a.logger.Printf("error saving configuration: %v", err)
	}
}
