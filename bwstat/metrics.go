// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bwstat summarizes the throughput lines of a bandwidth figure.
package bwstat

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"

	"github.com/bwperf/bwperf/bwchart"
)

// A Metrics holds the throughput measurements of one line of one plot.
type Metrics struct {
	Plot     string    // title of the plot the line is on
	Label    string    // legend label of the line
	Sizes    []float64 // test sizes, kiB
	Values   []float64 // throughput at each size, bytes/cycle
	Min      float64   // min of Values
	Mean     float64   // mean of Values
	Max      float64   // max of Values
	PeakSize float64   // first size at which Max was measured
}

// New returns the metrics of line s of the plot titled plot. It
// returns nil if s has no points.
func New(plot string, s bwchart.Series) *Metrics {
	if len(s.XYs) == 0 {
		return nil
	}
	m := &Metrics{Plot: plot, Label: s.Label}
	for _, xy := range s.XYs {
		m.Sizes = append(m.Sizes, xy.X)
		m.Values = append(m.Values, xy.Y)
	}
	m.computeStats()
	return m
}

// Collect returns the metrics of every non-empty line of f, plot by
// plot in reading order.
func Collect(f *bwchart.Figure) []*Metrics {
	var ms []*Metrics
	for i := range f.Series {
		for j, lines := range f.Series[i] {
			title := f.Plots[i][j].Title.Text
			for _, s := range lines {
				if m := New(title, s); m != nil {
					ms = append(ms, m)
				}
			}
		}
	}
	return ms
}

func (m *Metrics) computeStats() {
	m.Min, m.Max = stats.Bounds(m.Values)
	m.Mean = stats.Mean(m.Values)
	for i, v := range m.Values {
		if v == m.Max {
			m.PeakSize = m.Sizes[i]
			break
		}
	}
}

// FormatDiff computes and formats the percent variation of max and
// min compared to mean. If m.Mean or m.Max is zero, FormatDiff
// returns an empty string.
func (m *Metrics) FormatDiff() string {
	if m.Mean == 0 || m.Max == 0 {
		return ""
	}
	diff := 1 - m.Min/m.Mean
	if d := m.Max/m.Mean - 1; d > diff {
		diff = d
	}
	return fmt.Sprintf("%.0f%%", diff*100.0)
}

// Format returns a one-line summary of m, formatting throughputs with
// scaler.
func (m *Metrics) Format(scaler Scaler) string {
	s := fmt.Sprintf("%s %s: mean %s B/cycle", m.Plot, m.Label, scaler(m.Mean))
	if diff := m.FormatDiff(); diff != "" {
		s += " ±" + diff
	}
	return s + fmt.Sprintf(", peak %s at %v kiB (n=%d)", scaler(m.Max), m.PeakSize, len(m.Values))
}
