// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package raster

import (
	"horizontalcharts/chartplot"
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const faceCacheSize = 32

type faceKey struct {
	mono bool
	bold bool
	size float64
}

// faceCache creates font faces on demand. Faces are not safe for concurrent use,
// but the cache is.
type faceCache struct {
	mutex sync.Mutex
	lru   *simplelru.LRU
	fonts map[faceKey]*opentype.Font
}

func newFaceCache() *faceCache {
	// Creating a cache only fails for invalid sizes.
	lru, _ := simplelru.NewLRU(faceCacheSize, nil)
	c := &faceCache{
		lru:   lru,
		fonts: make(map[faceKey]*opentype.Font),
	}
	sources := []struct {
		key faceKey
		ttf []byte
	}{
		{faceKey{mono: true, bold: true}, gomonobold.TTF},
		{faceKey{mono: true}, gomono.TTF},
		{faceKey{bold: true}, gobold.TTF},
		{faceKey{}, goregular.TTF},
	}
	for _, src := range sources {
		if f, err := opentype.Parse(src.ttf); err == nil {
			c.fonts[src.key] = f
		}
	}
	return c
}

// face returns the face of f, with its size multiplied by scale.
func (c *faceCache) face(f chartplot.Font, scale float64) font.Face {
	key := faceKey{mono: f.Family == "monospace", bold: f.Bold, size: f.Size * scale}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if v, ok := c.lru.Get(key); ok {
		return v.(font.Face)
	}
	face := c.newFace(key)
	c.lru.Add(key, face)
	return face
}

func (c *faceCache) newFace(key faceKey) font.Face {
	f, ok := c.fonts[faceKey{mono: key.mono, bold: key.bold}]
	if !ok || key.size <= 0 {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}
