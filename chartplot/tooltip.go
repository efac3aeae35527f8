// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartplot

import (
	"image/color"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
)

// TooltipLine is shown as a bold label, followed by an optional text.
type TooltipLine struct {
	Label string
	Text  string
}

func (l TooltipLine) String() string {
	if len(l.Text) == 0 {
		return l.Label
	}
	return l.Label + " " + l.Text
}

// Tooltip describes the overlay for the samples below the pointer.
// X and Y are the page position of the pointer.
type Tooltip struct {
	Visible    bool
	X, Y       int
	Background color.NRGBA
	Lines      []TooltipLine
}

var tooltipTemplate = template.Must(template.New("tooltip").Parse(
	`{{range $i, $l := .}}{{if $i}}<br>{{end}}<span><b>{{$l.Label}}</b>{{with $l.Text}} {{.}}{{end}}</span>{{end}}`,
))

func (t Tooltip) Text() string {
	lines := make([]string, len(t.Lines))
	for i, l := range t.Lines {
		lines[i] = l.String()
	}
	return strings.Join(lines, "\n")
}

// HTML renders the lines separated by line breaks, with escaped content.
func (t Tooltip) HTML() (safehtml.HTML, error) {
	return tooltipTemplate.ExecuteToHTML(t.Lines)
}

// Tooltip returns a copy of the current tooltip state.
func (c *Chart) Tooltip() Tooltip {
	c.hoverMutex.Lock()
	defer c.hoverMutex.Unlock()
	if c.tooltip == nil {
		return Tooltip{Background: c.cfg.Tooltip.BackgroundColor}
	}
	t := *c.tooltip
	t.Lines = append([]TooltipLine(nil), c.tooltip.Lines...)
	return t
}

// The tooltip is created with the first pointer movement.
func (c *Chart) tooltipLocked() *Tooltip {
	if c.tooltip == nil {
		c.tooltip = &Tooltip{Background: c.cfg.Tooltip.BackgroundColor}
	}
	return c.tooltip
}
