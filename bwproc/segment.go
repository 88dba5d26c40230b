// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bwproc splits bandwidth results into the subsets that are
// plotted together.
//
// Results are first split by the test_name column into one of the
// categories Stream, Random, or Strided. Strided results are further
// split by their stride, one partition per distinct stride in
// increasing order. Subsets are new go-gg tables over the same values
// and never modify the table they came from; an empty subset is a
// table with the original columns and no rows.
package bwproc

import (
	"fmt"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Test categories, as printed in the test_name column.
const (
	Stream  = "stream"
	Random  = "random"
	Strided = "stride"
)

// A Partition is the set of strided results that share one stride.
type Partition struct {
	Stride float64
	Rows   *table.Table
}

// Label returns the legend label of p, "stride: N".
func (p Partition) Label() string {
	return fmt.Sprintf("stride: %d", int(p.Stride))
}

// Category returns the rows of t whose test_name is exactly name.
func Category(t *table.Table, name string) (*table.Table, error) {
	if _, err := stringColumn(t, TestName); err != nil {
		return nil, err
	}
	return table.Flatten(table.FilterEq(t, TestName, name)), nil
}

// Partitions splits t by its stride column. The result has one
// Partition per distinct stride, ordered by increasing stride, and
// each Partition keeps the relative order of its rows.
func Partitions(t *table.Table) ([]Partition, error) {
	strides, err := Floats(t, Stride)
	if err != nil {
		return nil, err
	}
	if len(strides) == 0 {
		return nil, nil
	}

	// Filter on values of the column's own type so FilterEq's
	// comparison matches.
	keys := reflect.ValueOf(slice.Nub(t.Column(Stride)))
	slice.Sort(keys.Interface())

	parts := make([]Partition, 0, keys.Len())
	for i := 0; i < keys.Len(); i++ {
		key := keys.Index(i)
		parts = append(parts, Partition{
			Stride: toFloat(key),
			Rows:   table.Flatten(table.FilterEq(t, Stride, key.Interface())),
		})
	}
	return parts, nil
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	}
	return float64(v.Int())
}

// StrideSubsets returns the strided results of t together with their
// per-stride partitions.
func StrideSubsets(t *table.Table) (*table.Table, []Partition, error) {
	sub, err := Category(t, Strided)
	if err != nil {
		return nil, nil, err
	}
	parts, err := Partitions(sub)
	if err != nil {
		return nil, nil, err
	}
	return sub, parts, nil
}

// Flatten concatenates the rows of parts in order.
func Flatten(parts []Partition) *table.Table {
	var g table.GroupingBuilder
	for _, p := range parts {
		g.Add(table.RootGroupID.Extend(p.Stride), p.Rows)
	}
	return table.Flatten(g.Done())
}

// A Count is the number of results in one category.
type Count struct {
	Name string
	Rows int
}

// Counts returns the number of rows of t in each test category, in
// order of first appearance.
func Counts(t *table.Table) ([]Count, error) {
	if _, err := stringColumn(t, TestName); err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, nil
	}
	g := table.GroupBy(t, TestName)
	var counts []Count
	for _, gid := range g.Tables() {
		counts = append(counts, Count{fmt.Sprint(gid.Label()), g.Table(gid).Len()})
	}
	return counts, nil
}
