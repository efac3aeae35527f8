// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
)

const DefaultMargin = 10

type Frame struct {
	OuterMargin     unit.Dp
	InnerMargin     unit.Dp
	BorderWidth     unit.Dp
	CornerRadius    unit.Dp
	BorderColor     color.NRGBA
	BackgroundColor color.NRGBA
}

// Layout draws w with a border. The background is painted below the inner margin.
func (f Frame) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	return layout.UniformInset(f.OuterMargin).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		border := widget.Border{Color: f.BorderColor, Width: f.BorderWidth, CornerRadius: f.CornerRadius}
		return border.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			if f.BackgroundColor.A == 0 {
				return layout.UniformInset(f.InnerMargin).Layout(gtx, w)
			}
			macro := op.Record(gtx.Ops)
			dims := layout.UniformInset(f.InnerMargin).Layout(gtx, w)
			call := macro.Stop()
			rr := gtx.Dp(f.CornerRadius)
			paint.FillShape(gtx.Ops, f.BackgroundColor, clip.UniformRRect(image.Rectangle{Max: dims.Size}, rr).Op(gtx.Ops))
			call.Add(gtx.Ops)
			return dims
		})
	})
}
