// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses #RGB, #RGBA, #RRGGBB and #RRGGBBAA strings, as well as SVG color names.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	name := strings.ToLower(s)
	if name == "transparent" {
		return color.NRGBA{}, nil
	}
	if c, exists := colornames.Map[name]; exists {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	hex, found := strings.CutPrefix(s, "#")
	if !found {
		return color.NRGBA{}, fmt.Errorf("invalid color \"%s\": missing # prefix", s)
	}
	switch len(hex) {
	case 3, 4:
		// Expand short notation, e.g. #f0c to #ff00cc.
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color \"%s\": unexpected length", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color \"%s\": %v", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// FormatColor returns the #RRGGBBAA representation of c.
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
