// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package raster

import (
	"errors"
	"horizontalcharts/chartplot"
	"horizontalcharts/chartval"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

var ErrNoFrame = errors.New("no frame was rendered")

type textOp struct {
	text  string
	x, y  float64
	font  chartplot.Font
	color color.NRGBA
}

// Surface paints a chart into an image. Coordinates are multiplied by the
// oversample factor, there is no transformation on the canvas itself
// because line widths and glyphs would not be scaled consistently.
// Drawing is not thread safe, but Snapshot may be called from any goroutine.
type Surface struct {
	width      float64
	density    float64
	height     float64
	oversample float64
	dc         *gg.Context
	faces      *faceCache
	lastText   *textOp
	mutex      sync.RWMutex
	published  *image.RGBA
}

// NewSurface creates a surface of logicalWidth pixels. The density is reported
// to the chart as pixel density, it is the oversample factor unless the chart overrides it.
func NewSurface(logicalWidth float64, density float64) *Surface {
	if density <= 0 {
		density = 1
	}
	return &Surface{
		width:      math.Max(logicalWidth, 1),
		density:    density,
		oversample: density,
		dc:         gg.NewContext(1, 1),
		faces:      newFaceCache(),
	}
}

func (s *Surface) LogicalWidth() float64 {
	return s.width
}

func (s *Surface) PixelDensity() (float64, bool) {
	return s.density, true
}

func (s *Surface) Resize(logicalHeight float64, oversample float64) {
	s.height = logicalHeight
	s.oversample = oversample
	w := max(int(math.Floor(s.width*oversample)), 1)
	h := max(int(math.Round(logicalHeight*oversample)), 1)
	if s.dc.Width() != w || s.dc.Height() != h {
		s.dc = gg.NewContext(w, h)
	}
	s.lastText = nil
}

func (s *Surface) Clear(bg color.NRGBA) {
	s.dc.SetColor(bg)
	s.dc.Clear()
}

func (s *Surface) StrokeLine(points []chartplot.Point, width float64, c color.NRGBA) {
	if len(points) < 2 || width <= 0 {
		return
	}
	osf := s.oversample
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width * osf)
	s.dc.SetLineCapButt()
	s.dc.MoveTo(points[0].X*osf, points[0].Y*osf)
	for _, p := range points[1:] {
		s.dc.LineTo(p.X*osf, p.Y*osf)
	}
	s.dc.Stroke()
}

func (s *Surface) FillRect(r chartplot.Rect, fill chartval.Fill) {
	r = r.Scale(s.oversample).Canon()
	s.dc.DrawRectangle(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	if fill.IsPattern() && !fill.Pattern.Bounds().Empty() {
		s.dc.SetFillStyle(scaledPattern{
			img:    fill.Pattern,
			origin: image.Pt(int(math.Round(r.Min.X)), int(math.Round(r.Min.Y))),
			scale:  s.oversample,
		})
	} else {
		s.dc.SetColor(fill.Color)
	}
	s.dc.Fill()
}

func (s *Surface) MeasureText(txt string, f chartplot.Font) float64 {
	face := s.faces.face(f, s.oversample)
	return float64(font.MeasureString(face, txt)) / 64 / s.oversample
}

// FillText paints txt with the baseline at y.
func (s *Surface) FillText(txt string, x, y float64, f chartplot.Font, c color.NRGBA) {
	s.paintText(txt, x, y, f, c)
	s.lastText = &textOp{text: txt, x: x, y: y, font: f, color: c}
}

// OutlineText paints copies of the text moved in all directions.
// Text filled at the same position before is painted again on top of the outline.
func (s *Surface) OutlineText(txt string, x, y float64, f chartplot.Font, width float64, c color.NRGBA) {
	for _, dx := range []float64{-width, 0, width} {
		for _, dy := range []float64{-width, 0, width} {
			if dx == 0 && dy == 0 {
				continue
			}
			s.paintText(txt, x+dx, y+dy, f, c)
		}
	}
	if t := s.lastText; t != nil && t.text == txt && t.x == x && t.y == y && t.font == f {
		s.paintText(t.text, t.x, t.y, t.font, t.color)
	}
}

func (s *Surface) paintText(txt string, x, y float64, f chartplot.Font, c color.NRGBA) {
	s.dc.SetFontFace(s.faces.face(f, s.oversample))
	s.dc.SetColor(c)
	s.dc.DrawString(txt, x*s.oversample, y*s.oversample)
}

// Publish copies the current image, which is returned by Snapshot until the next call.
func (s *Surface) Publish() {
	src := s.dc.Image()
	b := src.Bounds()
	img := image.NewRGBA(image.Rectangle{Max: b.Size()})
	draw.Copy(img, image.Point{}, src, b, draw.Src, nil)
	s.mutex.Lock()
	s.published = img
	s.mutex.Unlock()
}

// Snapshot returns the last published image, or nil before the first one.
// The image must not be modified.
func (s *Surface) Snapshot() *image.RGBA {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.published
}

func (s *Surface) EncodePNG(w io.Writer) error {
	img := s.Snapshot()
	if img == nil {
		return ErrNoFrame
	}
	return png.Encode(w, img)
}
