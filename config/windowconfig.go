// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"image"
)

// WindowConfig holds the logical window size in dp.
type WindowConfig struct {
	Size image.Point `yaml:",omitempty"`
}

func NewWindowConfig() WindowConfig {
	return WindowConfig{
		Size: image.Point{X: 800, Y: 300},
	}
}

func (w *WindowConfig) sanitize() {
	if w.Size.X <= 0 {
		w.Size.X = 800
	}
	if w.Size.Y <= 0 {
		w.Size.Y = 300
	}
}
