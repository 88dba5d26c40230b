// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bwchart

import (
	"github.com/aclements/go-gg/table"
	"gonum.org/v1/plot/plotter"

	"github.com/bwperf/bwperf/bwproc"
)

// ElemSize is the size in bytes of one access in the strided tests.
const ElemSize = 8

// LinearSeries returns the throughput of the stream or random results
// in t against transfer size. Each point is at x = accesses*stride
// bytes, in kiB, and y = bytes transferred per cycle as counted in
// column cycles.
func LinearSeries(t *table.Table, cycles string) (plotter.XYs, error) {
	acc, err := bwproc.Floats(t, bwproc.Accesses)
	if err != nil {
		return nil, err
	}
	stride, err := bwproc.Floats(t, bwproc.Stride)
	if err != nil {
		return nil, err
	}
	bytes := make([]float64, len(acc))
	for i := range acc {
		bytes[i] = acc[i] * stride[i]
	}
	return throughput(t, bytes, cycles)
}

// StridedSeries is like LinearSeries for strided results, whose
// transfer size is accesses*ElemSize regardless of the stride.
func StridedSeries(t *table.Table, cycles string) (plotter.XYs, error) {
	sizes, err := AccessSizes(t)
	if err != nil {
		return nil, err
	}
	return throughput(t, sizes, cycles)
}

// AccessSizes returns accesses*ElemSize for every row of t, the
// sizes ticks are planned from.
func AccessSizes(t *table.Table) ([]float64, error) {
	acc, err := bwproc.Floats(t, bwproc.Accesses)
	if err != nil {
		return nil, err
	}
	sizes := make([]float64, len(acc))
	for i, a := range acc {
		sizes[i] = a * ElemSize
	}
	return sizes, nil
}

func throughput(t *table.Table, bytes []float64, cycles string) (plotter.XYs, error) {
	cyc, err := bwproc.Floats(t, cycles)
	if err != nil {
		return nil, err
	}
	xys := make(plotter.XYs, len(bytes))
	for i, b := range bytes {
		xys[i].X = b / 1024
		xys[i].Y = xys[i].X * 1024 / cyc[i]
	}
	return xys, nil
}
