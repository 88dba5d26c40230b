// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bwfmt reads bandwidth benchmark results.
//
// The benchmark prints one CSV line per measurement, preceded by a
// header row naming the columns:
//
//	test_name,test_iterations,number_of_accesses,stride,read_cycles,write_cycles
//	stream,1000,32,8,41,37
//	...
//	Done!
//
// Read and Load turn such a file into a go-gg table whose columns keep
// the header's names and order and whose rows keep the file's order.
// Columns whose cells all parse as integers become []int, columns
// whose cells all parse as floats become []float64, and everything else
// stays []string. No schema is imposed: a missing column is only
// noticed by whoever asks for it.
package bwfmt

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aclements/go-gg/table"
)

// A LoadError reports a results file that could not be opened, read,
// or parsed as delimited text with a header row.
type LoadError struct {
	FileName string
	Line     int // 0 if the error is not tied to a line
	Err      error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.FileName, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.FileName, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ErrNoHeader is wrapped by the LoadError returned for an input
// without a header row.
var ErrNoHeader = errors.New("missing header row")

// missing is the cell value used for fields absent from a short row.
// It parses as a float, so padded numeric columns stay numeric.
const missing = "NaN"

var bom = []byte{0xEF, 0xBB, 0xBF}

// Load reads the results file at path.
func Load(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{FileName: path, Err: err}
	}
	defer f.Close()
	return Read(f, path)
}

// Read parses results from r. fileName is used in error messages; it
// is purely diagnostic.
//
// Rows with fewer fields than the header are padded with missing
// values; the benchmark ends its output with such a line. Rows with
// more fields than the header are an error.
func Read(r io.Reader, fileName string) (*table.Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && bytes.Equal(head, bom) {
		br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &LoadError{FileName: fileName, Err: ErrNoHeader}
	} else if err != nil {
		return nil, newLoadError(fileName, err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, newLoadError(fileName, err)
		}
		if len(rec) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, &LoadError{fileName, line, fmt.Errorf("%d fields in a row, header has %d", len(rec), len(header))}
		}
		for len(rec) < len(header) {
			rec = append(rec, missing)
		}
		rows = append(rows, rec)
	}

	return table.TableFromStrings(header, rows, true), nil
}

// newLoadError converts a csv error into a LoadError, keeping the line
// number the csv package found.
func newLoadError(fileName string, err error) *LoadError {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &LoadError{fileName, perr.Line, perr.Err}
	}
	return &LoadError{FileName: fileName, Err: err}
}
