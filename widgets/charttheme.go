// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/unit"
)

type DpPoint struct {
	X unit.Dp
	Y unit.Dp
}

func (p *DpPoint) Dp(gtx layout.Context) image.Point {
	return image.Point{
		X: gtx.Dp(p.X),
		Y: gtx.Dp(p.Y),
	}
}

// ChartTheme contains the colors of the window elements around the chart.
// Chart colors are part of the chart configuration.
type ChartTheme struct {
	ChartMargin        unit.Dp
	TooltipOffset      DpPoint
	TooltipMargin      unit.Dp
	TooltipBorderWidth unit.Dp
	TooltipFontSize    unit.Sp
	TooltipBorderColor color.NRGBA
	TooltipTextColor   color.NRGBA
	MessageColor       color.NRGBA
}

func NewDarkChartTheme() *ChartTheme {
	return &ChartTheme{
		ChartMargin:        DefaultMargin,
		TooltipOffset:      DpPoint{X: 12, Y: 12},
		TooltipMargin:      5,
		TooltipBorderWidth: 1,
		TooltipFontSize:    13,
		TooltipBorderColor: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		TooltipTextColor:   color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		MessageColor:       color.NRGBA{R: 150, G: 0, B: 0, A: 250},
	}
}

func NewLightChartTheme() *ChartTheme {
	return &ChartTheme{
		ChartMargin:        DefaultMargin,
		TooltipOffset:      DpPoint{X: 12, Y: 12},
		TooltipMargin:      5,
		TooltipBorderWidth: 1,
		TooltipFontSize:    13,
		TooltipBorderColor: color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		TooltipTextColor:   color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		MessageColor:       color.NRGBA{R: 150, G: 0, B: 0, A: 250},
	}
}
