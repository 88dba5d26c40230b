// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bwstat

import (
	"fmt"
	"math"
)

// A Scaler formats a throughput. All throughputs of one figure are
// formatted with the same Scaler so they line up.
type Scaler func(float64) string

// NewScaler returns a Scaler giving val about three significant
// digits.
func NewScaler(val float64) Scaler {
	var format string
	switch x := math.Abs(val); {
	case x >= 99.5:
		format = "%.0f"
	case x >= 9.95:
		format = "%.1f"
	case x >= 0.995:
		format = "%.2f"
	default:
		format = "%.3f"
	}
	return func(val float64) string {
		return fmt.Sprintf(format, val)
	}
}

// ScalerFor returns the Scaler for the largest mean throughput in ms.
func ScalerFor(ms []*Metrics) Scaler {
	hi := 0.0
	for _, m := range ms {
		hi = math.Max(hi, m.Mean)
	}
	return NewScaler(hi)
}
