// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package widgets

import (
	"horizontalcharts/chartplot"
	"horizontalcharts/chartval"
	"image"
	"image/color"
	"math"
	"reflect"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/stroke"
	"github.com/hashicorp/golang-lru/simplelru"
)

const (
	textWidthCacheSize = 1024
	patternCacheSize   = 16
	maxTextWidth       = 1 << 16
)

type textKey struct {
	text string
	font chartplot.Font
}

type textOp struct {
	text  string
	x, y  float64
	font  chartplot.Font
	color color.NRGBA
}

// GioSurface paints a chart into the operations of a Gio frame.
// Chart coordinates are Dp, the surface scales them to pixels.
type GioSurface struct {
	th         *material.Theme
	gtx        layout.Context
	width      float64
	height     float64
	oversample float64
	transform  op.TransformStack
	measureOps op.Ops
	segments   []stroke.Segment
	textWidths *simplelru.LRU
	patterns   *simplelru.LRU
	lastText   *textOp
}

func NewGioSurface(th *material.Theme) *GioSurface {
	// Creating a cache only fails for invalid sizes.
	textWidths, _ := simplelru.NewLRU(textWidthCacheSize, nil)
	patterns, _ := simplelru.NewLRU(patternCacheSize, nil)
	return &GioSurface{
		th:         th,
		textWidths: textWidths,
		patterns:   patterns,
	}
}

// Begin starts painting into the frame of gtx, using the full width of the constraints.
func (s *GioSurface) Begin(gtx layout.Context) {
	s.gtx = gtx
	s.width = float64(gtx.Metric.PxToDp(gtx.Constraints.Max.X))
	scale := gtx.Metric.PxPerDp
	if scale <= 0 {
		scale = 1
	}
	s.transform = op.Affine(f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(scale, scale))).Push(gtx.Ops)
}

// End finishes painting and returns the size of the painted area in pixels.
func (s *GioSurface) End() layout.Dimensions {
	s.transform.Pop()
	s.lastText = nil
	scale := math.Max(float64(s.gtx.Metric.PxPerDp), 1)
	return layout.Dimensions{Size: image.Point{
		X: s.gtx.Constraints.Max.X,
		Y: int(math.Ceil(s.height * scale)),
	}}
}

func (s *GioSurface) LogicalWidth() float64 {
	return s.width
}

func (s *GioSurface) PixelDensity() (float64, bool) {
	d := float64(s.gtx.Metric.PxPerDp)
	return d, d > 0
}

func (s *GioSurface) Resize(logicalHeight float64, oversample float64) {
	s.height = logicalHeight
	s.oversample = oversample
}

func (s *GioSurface) Clear(bg color.NRGBA) {
	if bg.A == 0 {
		return
	}
	paint.FillShape(s.gtx.Ops, bg, rectOp(s.gtx.Ops, chartplot.Rect{Max: chartplot.Pt(s.width, s.height)}))
}

func (s *GioSurface) StrokeLine(points []chartplot.Point, width float64, c color.NRGBA) {
	if len(points) < 2 || width <= 0 {
		return
	}
	s.segments = append(s.segments[:0], stroke.MoveTo(toF32(points[0])))
	for _, p := range points[1:] {
		s.segments = append(s.segments, stroke.LineTo(toF32(p)))
	}
	shape := stroke.Stroke{
		Path:  stroke.Path{Segments: s.segments},
		Width: float32(width),
		Cap:   stroke.FlatCap,
	}.Op(s.gtx.Ops)
	paint.FillShape(s.gtx.Ops, c, shape)
}

func (s *GioSurface) FillRect(r chartplot.Rect, fill chartval.Fill) {
	if fill.IsPattern() {
		s.fillPattern(r, fill.Pattern)
		return
	}
	// clip.Rect has integer resolution, bars need fractional positions.
	paint.FillShape(s.gtx.Ops, fill.Color, rectOp(s.gtx.Ops, r))
}

// Patterns repeat starting at the top left corner of r.
func (s *GioSurface) fillPattern(r chartplot.Rect, img image.Image) {
	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	imgOp := s.patternOp(img)
	area := rectOp(s.gtx.Ops, r).Push(s.gtx.Ops)
	defer area.Pop()
	r = r.Canon()
	w, h := float64(size.X), float64(size.Y)
	for y := r.Min.Y; y < r.Max.Y; y += h {
		for x := r.Min.X; x < r.Max.X; x += w {
			t := op.Affine(f32.Affine2D{}.Offset(toF32(chartplot.Pt(x, y)))).Push(s.gtx.Ops)
			imgOp.Add(s.gtx.Ops)
			paint.PaintOp{}.Add(s.gtx.Ops)
			t.Pop()
		}
	}
}

// patternOp caches image ops of pointer images by identity.
// Other image values may not be hashable and are not cached.
func (s *GioSurface) patternOp(img image.Image) paint.ImageOp {
	if reflect.ValueOf(img).Kind() != reflect.Pointer {
		return paint.NewImageOp(img)
	}
	if v, ok := s.patterns.Get(img); ok {
		return v.(paint.ImageOp)
	}
	imgOp := paint.NewImageOp(img)
	s.patterns.Add(img, imgOp)
	return imgOp
}

func (s *GioSurface) MeasureText(txt string, f chartplot.Font) float64 {
	key := textKey{text: txt, font: f}
	if v, ok := s.textWidths.Get(key); ok {
		return v.(float64)
	}
	s.measureOps.Reset()
	dims := s.label(txt, f, color.NRGBA{}).Layout(s.textContext(&s.measureOps))
	width := float64(dims.Size.X)
	s.textWidths.Add(key, width)
	return width
}

// FillText paints txt with the baseline at y.
func (s *GioSurface) FillText(txt string, x, y float64, f chartplot.Font, c color.NRGBA) {
	s.paintText(txt, x, y, f, c)
	s.lastText = &textOp{text: txt, x: x, y: y, font: f, color: c}
}

// OutlineText paints the outline as copies of the text moved in all directions.
// Text filled at the same position before is painted again on top of the outline.
func (s *GioSurface) OutlineText(txt string, x, y float64, f chartplot.Font, width float64, c color.NRGBA) {
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

func (s *GioSurface) paintText(txt string, x, y float64, f chartplot.Font, c color.NRGBA) {
	ops := s.gtx.Ops
	macro := op.Record(ops)
	dims := s.label(txt, f, c).Layout(s.textContext(ops))
	call := macro.Stop()
	ascent := float32(dims.Size.Y - dims.Baseline)
	t := op.Affine(f32.Affine2D{}.Offset(f32.Pt(float32(x), float32(y)-ascent))).Push(ops)
	call.Add(ops)
	t.Pop()
}

// Text is laid out in chart coordinates, the surface transform scales it.
func (s *GioSurface) textContext(ops *op.Ops) layout.Context {
	gtx := s.gtx
	gtx.Ops = ops
	gtx.Metric = unit.Metric{PxPerDp: 1, PxPerSp: 1}
	gtx.Constraints = layout.Constraints{Max: image.Pt(maxTextWidth, maxTextWidth)}
	return gtx
}

func (s *GioSurface) label(txt string, f chartplot.Font, c color.NRGBA) material.LabelStyle {
	lbl := material.Label(s.th, unit.Sp(f.Size), txt)
	lbl.Font = fontFace(f)
	lbl.Color = c
	lbl.MaxLines = 1
	lbl.Alignment = text.Start
	return lbl
}

func fontFace(f chartplot.Font) font.Font {
	face := font.Font{Typeface: "Go"}
	if f.Family == "monospace" {
		face.Typeface = "Go Mono"
	}
	if f.Bold {
		face.Weight = font.Bold
	}
	return face
}

func rectOp(ops *op.Ops, r chartplot.Rect) clip.Op {
	r = r.Canon()
	var p clip.Path
	p.Begin(ops)
	p.MoveTo(f32.Pt(float32(r.Min.X), float32(r.Min.Y)))
	p.LineTo(f32.Pt(float32(r.Max.X), float32(r.Min.Y)))
	p.LineTo(f32.Pt(float32(r.Max.X), float32(r.Max.Y)))
	p.LineTo(f32.Pt(float32(r.Min.X), float32(r.Max.Y)))
	p.Close()
	return clip.Outline{Path: p.End()}.Op()
}

func toF32(p chartplot.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}
