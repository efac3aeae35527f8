// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartplot

import (
	"horizontalcharts/chartval"

	"github.com/zhangyunhao116/skipmap"
)

// BarGeometry is the drawn extent of a sample. Start, End and Y are logical pixels.
// Shape is the painted rectangle in oversampled pixels, it is nil if the bar was not painted.
type BarGeometry struct {
	Start float64
	End   float64
	Y     float64
	Shape *Rect
}

// GeometryTable maps sample ids to the geometry of the last frame.
// It is written while rendering and read by hit testing.
type GeometryTable struct {
	m *skipmap.Uint64Map[BarGeometry]
}

func NewGeometryTable() *GeometryTable {
	return &GeometryTable{
		m: skipmap.NewUint64[BarGeometry](),
	}
}

func (g *GeometryTable) Store(id uint64, b BarGeometry) {
	g.m.Store(id, b)
}

func (g *GeometryTable) Load(id uint64) (BarGeometry, bool) {
	return g.m.Load(id)
}

// Forget removes the geometry of the given samples.
func (g *GeometryTable) Forget(samples []chartval.Sample) {
	for _, s := range samples {
		g.m.Delete(s.ID)
	}
}

// Extent returns the drawn length of a sample.
func (g *GeometryTable) Extent(s chartval.Sample) (float64, bool) {
	b, ok := g.m.Load(s.ID)
	if !ok {
		return 0, false
	}
	return b.End - b.Start, true
}

func (g *GeometryTable) Len() int {
	return g.m.Len()
}
