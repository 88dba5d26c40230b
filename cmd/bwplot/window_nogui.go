// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build nogui

package main

import (
	"errors"

	"github.com/bwperf/bwperf/bwchart"
)

func showWindow(fig *bwchart.Figure) error {
	return errors.New("built without window support (nogui); use -http or png output")
}
