// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !nogui

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"

	"github.com/bwperf/bwperf/bwchart"
)

// showWindow shows fig in a window and returns once it is closed.
func showWindow(fig *bwchart.Figure) error {
	a := app.New()
	w := a.NewWindow(fig.Title)

	img := canvas.NewImageFromImage(fig.Image())
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(960, 540))

	w.SetContent(img)
	w.Resize(fyne.NewSize(1440, 810))
	w.ShowAndRun()
	return nil
}
