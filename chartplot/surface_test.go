// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartplot

import (
	"horizontalcharts/chartval"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testCharWidth = 0.5

type surfaceCall struct {
	Op     string
	Text   string
	Points []Point
	Rect   Rect
	Font   Font
	Color  color.NRGBA
	X, Y   float64
}

// recordingSurface records all drawing calls. Text has a fixed width per character.
type recordingSurface struct {
	width      float64
	height     float64
	oversample float64
	density    float64
	calls      []surfaceCall
}

func newRecordingSurface(width float64) *recordingSurface {
	return &recordingSurface{width: width}
}

func (s *recordingSurface) MeasureText(text string, f Font) float64 {
	return float64(len(text)) * f.Size * testCharWidth
}

func (s *recordingSurface) LogicalWidth() float64 {
	return s.width
}

func (s *recordingSurface) PixelDensity() (float64, bool) {
	return s.density, s.density > 0
}

func (s *recordingSurface) Resize(logicalHeight float64, oversample float64) {
	s.height = logicalHeight
	s.oversample = oversample
	s.calls = append(s.calls, surfaceCall{Op: "resize", Y: logicalHeight, X: oversample})
}

func (s *recordingSurface) Clear(bg color.NRGBA) {
	s.calls = append(s.calls, surfaceCall{Op: "clear", Color: bg})
}

func (s *recordingSurface) StrokeLine(points []Point, width float64, c color.NRGBA) {
	s.calls = append(s.calls, surfaceCall{Op: "line", Points: append([]Point(nil), points...), X: width, Color: c})
}

func (s *recordingSurface) FillRect(r Rect, fill chartval.Fill) {
	s.calls = append(s.calls, surfaceCall{Op: "rect", Rect: r, Color: fill.Color})
}

func (s *recordingSurface) FillText(text string, x, y float64, f Font, c color.NRGBA) {
	s.calls = append(s.calls, surfaceCall{Op: "text", Text: text, X: x, Y: y, Font: f, Color: c})
}

func (s *recordingSurface) OutlineText(text string, x, y float64, f Font, width float64, c color.NRGBA) {
	s.calls = append(s.calls, surfaceCall{Op: "outline", Text: text, X: x, Y: y, Font: f, Color: c})
}

func (s *recordingSurface) ops() []string {
	ops := make([]string, len(s.calls))
	for i, c := range s.calls {
		ops[i] = c.Op
	}
	return ops
}

func (s *recordingSurface) find(op string) []surfaceCall {
	var found []surfaceCall
	for _, c := range s.calls {
		if c.Op == op {
			found = append(found, c)
		}
	}
	return found
}

func (s *recordingSurface) reset() {
	s.calls = nil
}

func TestRectContains(t *testing.T) {
	r := Rect{Min: Pt(1, 1), Max: Pt(3, 2)}

	assert.True(t, r.Contains(Pt(1, 1)))
	assert.True(t, r.Contains(Pt(2.9, 1.9)))
	assert.False(t, r.Contains(Pt(3, 1.5)))
	assert.False(t, r.Contains(Pt(0.9, 1.5)))
	assert.False(t, r.Contains(Pt(2, 2)))
}

func TestRectCanonScale(t *testing.T) {
	r := Rect{Min: Pt(4, 3), Max: Pt(2, 1)}.Canon()

	assert.Equal(t, Rect{Min: Pt(2, 1), Max: Pt(4, 3)}, r)
	assert.Equal(t, Rect{Min: Pt(4, 2), Max: Pt(8, 6)}, r.Scale(2))
	assert.Equal(t, 2.0, r.Dx())
	assert.Equal(t, 2.0, r.Dy())
}
