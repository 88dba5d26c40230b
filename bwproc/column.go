// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bwproc

import (
	"fmt"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// Columns of a bandwidth results table.
const (
	TestName    = "test_name"
	Iterations  = "test_iterations"
	Accesses    = "number_of_accesses"
	Stride      = "stride"
	ReadCycles  = "read_cycles"
	WriteCycles = "write_cycles"
)

// A SchemaError reports a column that is absent from a results table
// or does not hold the kind of values a computation needs.
type SchemaError struct {
	Column string
	Msg    string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("column %q: %s", e.Column, e.Msg)
}

// Floats returns column col of t as float64s. Integer columns are
// converted. It returns a *SchemaError if t has no such column or
// the column is not numeric.
func Floats(t *table.Table, col string) ([]float64, error) {
	c := t.Column(col)
	if c == nil {
		return nil, &SchemaError{col, "missing"}
	}
	switch c := c.(type) {
	case []float64:
		return c, nil
	case []string:
		// A header-only file has nothing to coerce, so every
		// column stays []string.
		if len(c) == 0 {
			return []float64{}, nil
		}
	}
	if !isNumeric(reflect.TypeOf(c).Elem().Kind()) {
		return nil, &SchemaError{col, fmt.Sprintf("not numeric (%T)", c)}
	}
	var xs []float64
	slice.Convert(&xs, c)
	return xs, nil
}

// stringColumn returns column col of t, which must hold strings.
func stringColumn(t *table.Table, col string) ([]string, error) {
	c := t.Column(col)
	if c == nil {
		return nil, &SchemaError{col, "missing"}
	}
	s, ok := c.([]string)
	if !ok {
		return nil, &SchemaError{col, fmt.Sprintf("not a string column (%T)", c)}
	}
	return s, nil
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
