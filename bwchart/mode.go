// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bwchart

// A Mode selects where a figure goes.
type Mode int

const (
	Display Mode = iota // show the figure on screen
	PNG                 // write the figure to <input>.png
)

var modeNames = map[string]Mode{
	"display": Display,
	"png":     PNG,
}

// ParseMode returns the Mode named s. It returns Display, false for
// an unknown name.
func ParseMode(s string) (Mode, bool) {
	m, ok := modeNames[s]
	return m, ok
}

func (m Mode) String() string {
	for name, mm := range modeNames {
		if mm == m {
			return name
		}
	}
	return "unknown"
}
