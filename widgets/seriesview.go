// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"horizontalcharts/chartval"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

type seriesToggle struct {
	series  *chartval.Series
	enabled widget.Bool
	values  widget.Bool
}

// SeriesView shows check boxes to hide series and to show their values.
type SeriesView struct {
	toggles  []*seriesToggle
	children []layout.FlexChild
	Margin   unit.Dp
}

func NewSeriesView(series []*chartval.Series) *SeriesView {
	v := &SeriesView{Margin: DefaultMargin}
	for _, s := range series {
		o := s.Options()
		t := &seriesToggle{series: s}
		t.enabled.Value = !o.Disabled
		t.values.Value = o.ShowValues
		v.toggles = append(v.toggles, t)
	}
	return v
}

func (v *SeriesView) Update(gtx layout.Context) {
	for _, t := range v.toggles {
		if t.enabled.Update(gtx) {
			t.series.SetDisabled(!t.enabled.Value)
		}
		if t.values.Update(gtx) {
			t.series.SetShowValues(t.values.Value)
		}
	}
}

func (v *SeriesView) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	v.Update(gtx)
	if len(v.toggles) == 0 {
		return layout.Dimensions{}
	}
	v.children = v.children[:0]
	for _, t := range v.toggles {
		t := t
		v.children = append(v.children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(v.Margin).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(material.CheckBox(th, &t.enabled, t.series.Label()).Layout),
					layout.Rigid(material.CheckBox(th, &t.values, "Values").Layout),
				)
			})
		}))
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(divider(th, v.Margin).Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Left: v.Margin}.Layout(gtx, subHeading(th, "Series").Layout)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{}.Layout(gtx, v.children...)
		}),
	)
}
