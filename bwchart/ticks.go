// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bwchart

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// An ArithmeticError reports a transfer size that has no base-2
// logarithm.
type ArithmeticError struct {
	Value float64
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("log2 of %v: size must be positive and finite", e.Value)
}

// A TickPlan is a set of axis ticks: Positions[i] is labeled
// Labels[i].
type TickPlan struct {
	Positions []float64
	Labels    []string
}

// PlanTicks picks x-axis ticks for transfer sizes given in bytes.
//
// Only sizes that are even powers of two (1, 4, 16, ..., 1024, 4096,
// ...) get a tick. The tick is placed at the size in kiB and labeled
// with that number in plain decimal. Ticks are returned in the order
// of sizes, duplicates included.
func PlanTicks(sizes []float64) (TickPlan, error) {
	var tp TickPlan
	for _, size := range sizes {
		if !(size > 0) || math.IsInf(size, 0) {
			return TickPlan{}, &ArithmeticError{size}
		}
		e := math.Log2(size)
		if e != math.Trunc(e) || math.Mod(e, 2) != 0 {
			continue
		}
		pos := math.Exp2(e) / 1024
		tp.Positions = append(tp.Positions, pos)
		tp.Labels = append(tp.Labels, strconv.FormatFloat(pos, 'f', -1, 64))
	}
	return tp, nil
}

// Ticks returns tp as plot ticks.
func (tp TickPlan) Ticks() []plot.Tick {
	ticks := make([]plot.Tick, len(tp.Positions))
	for i := range ticks {
		ticks[i] = plot.Tick{Value: tp.Positions[i], Label: tp.Labels[i]}
	}
	return ticks
}

// Len returns the number of ticks in tp.
func (tp TickPlan) Len() int {
	return len(tp.Positions)
}
