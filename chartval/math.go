// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartval

import (
	"math"
	"strconv"

	"github.com/ericlagergren/decimal"
	"golang.org/x/exp/constraints"
)

const NearZero = 0.000001

// The builtin decimal.Big conversion from float64 is an "exact" conversion, which would round
// 1.005 down. Therefore, convert using string conversion, even though this requires memory allocation.
// See also https://github.com/ericlagergren/decimal/issues/142

// Convert float to string and then to decimal.
func ConvertFloatToDecimal(v float64, bitSize int) *decimal.Big {
	z := new(decimal.Big)
	z.Context = decimal.Context128
	z.Context.RoundingMode = decimal.ToNearestAway
	d, ok := z.SetString(strconv.FormatFloat(v, 'f', -1, bitSize))
	if !ok {
		return nil
	}
	return d
}

func MaxOf[T constraints.Ordered](first T, values ...T) T {
	m := first
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

// Ceil rounds up to the next integer value, tolerating floating point noise.
func Ceil[T constraints.Float](v T) T {
	r := T(math.Round(float64(v)))
	if math.Abs(float64(v-r)) < NearZero {
		return r
	}
	return T(math.Ceil(float64(v)))
}

func Round[T constraints.Float](v T) T {
	return T(math.Round(float64(v)))
}
