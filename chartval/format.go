// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartval

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ericlagergren/decimal"
)

// TimeFormatter converts a sample timestamp to tooltip text.
type TimeFormatter func(t time.Time) string

// DefaultTimeFormatter prints local date and 24h time, followed by milliseconds.
func DefaultTimeFormatter(t time.Time) string {
	return t.Local().Format("1/2/2006, 15:04:05") + "." + strconv.Itoa(t.Nanosecond()/int(time.Millisecond))
}

// FormatValue rounds v to two digits after the decimal point (half away from zero)
// and removes trailing zeros.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 0) {
		if v > 0 {
			return "Infinity"
		}
		return "-Infinity"
	}
	d := ConvertFloatToDecimal(v, 64)
	if d == nil || !d.IsFinite() {
		return trimZeros(strconv.FormatFloat(v, 'f', 2, 64))
	}
	RoundValue(d)
	if !d.IsFinite() {
		return trimZeros(strconv.FormatFloat(v, 'f', 2, 64))
	}
	if d.Sign() == 0 {
		return "0"
	}
	return trimZeros(d.String())
}

// RoundValue rounds z to two digits after decimal point and returns z.
func RoundValue(z *decimal.Big) *decimal.Big {
	// Call Quantize twice, otherwise one digit may be missing, see https://github.com/ericlagergren/decimal/issues/151
	return z.Quantize(2).Quantize(2)
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
