// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bwchart draws bandwidth benchmark results.
//
// A Figure is a 2×2 grid of throughput-vs-transfer-size plots:
//
//	Linear accesses         | Random accesses
//	Strided read accesses   | Strided write accesses
//
// The top row plots read and write throughput of the stream and random
// tests. The bottom row plots one line per stride of the strided test.
// Every x-axis is logarithmic in kiB with ticks from PlanTicks.
package bwchart

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/aclements/go-gg/table"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/bwperf/bwperf/bwproc"
)

// Figure size and resolution of a rendered image (1920×1080 pixels).
const (
	Width  = 19.2 * vg.Inch
	Height = 10.8 * vg.Inch
	DPI    = 100
)

const (
	xLabel = "Testsize (kiB)"
	yLabel = "Average throughput (bytes/cycle)"
)

// A Figure is a titled 2×2 grid of plots. Ticks[i][j] is the x-axis
// tick plan of Plots[i][j] and Series[i][j] are the lines drawn on it,
// in legend order.
type Figure struct {
	Title  string
	Plots  [2][2]*plot.Plot
	Ticks  [2][2]TickPlan
	Series [2][2][]Series
}

// A Series is one labeled line of throughput (bytes/cycle) against
// test size (kiB).
type Series struct {
	Label string
	XYs   plotter.XYs
}

// Title returns the figure title for the results file at path: the
// path up to its first '.'.
func Title(path string) string {
	name, _, _ := strings.Cut(path, ".")
	return "Bandwidth results for " + name
}

// NewFigure builds the figure for results res.
func NewFigure(res *table.Table, title string) (*Figure, error) {
	f := &Figure{Title: title}

	for j, test := range []struct{ name, title string }{
		{bwproc.Stream, "Linear accesses"},
		{bwproc.Random, "Random accesses"},
	} {
		sub, err := bwproc.Category(res, test.name)
		if err != nil {
			return nil, err
		}
		var lines []Series
		for _, rw := range []struct{ label, cycles string }{
			{"read", bwproc.ReadCycles},
			{"write", bwproc.WriteCycles},
		} {
			xys, err := LinearSeries(sub, rw.cycles)
			if err != nil {
				return nil, err
			}
			lines = append(lines, Series{rw.label, xys})
		}
		sizes, err := AccessSizes(sub)
		if err != nil {
			return nil, err
		}
		tp, err := PlanTicks(sizes)
		if err != nil {
			return nil, fmt.Errorf("%s ticks: %w", test.name, err)
		}
		if f.Plots[0][j], err = newAxes(test.title, lines, tp); err != nil {
			return nil, fmt.Errorf("%s: %w", test.title, err)
		}
		f.Ticks[0][j] = tp
		f.Series[0][j] = lines
	}

	_, parts, err := bwproc.StrideSubsets(res)
	if err != nil {
		return nil, err
	}
	// Both strided plots share the ticks of the first stride; the
	// strides are assumed to cover the same sizes.
	var tp TickPlan
	if len(parts) > 0 {
		sizes, err := AccessSizes(parts[0].Rows)
		if err != nil {
			return nil, err
		}
		if tp, err = PlanTicks(sizes); err != nil {
			return nil, fmt.Errorf("%s ticks: %w", bwproc.Strided, err)
		}
	}
	for j, side := range []struct{ title, cycles string }{
		{"Strided read accesses", bwproc.ReadCycles},
		{"Strided write accesses", bwproc.WriteCycles},
	} {
		var lines []Series
		for _, part := range parts {
			xys, err := StridedSeries(part.Rows, side.cycles)
			if err != nil {
				return nil, err
			}
			lines = append(lines, Series{part.Label(), xys})
		}
		if f.Plots[1][j], err = newAxes(side.title, lines, tp); err != nil {
			return nil, fmt.Errorf("%s: %w", side.title, err)
		}
		f.Ticks[1][j] = tp
		f.Series[1][j] = lines
	}

	return f, nil
}

// newAxes returns a plot of lines with a log-scale x-axis ticked at
// tp and a legend naming each line.
func newAxes(title string, lines []Series, tp TickPlan) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.ConstantTicks(tp.Ticks())
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{0xdd}
	grid.Horizontal.Color = color.Gray{0xdd}
	p.Add(grid)

	colors, err := seriesColors(len(lines))
	if err != nil {
		return nil, err
	}
	points := 0
	thumbs := make([]plot.Thumbnailer, len(lines))
	for i, s := range lines {
		for _, xy := range s.XYs {
			if !(xy.X > 0) {
				return nil, fmt.Errorf("%s: %w", s.Label, &ArithmeticError{xy.X * 1024})
			}
		}
		l, err := plotter.NewLine(s.XYs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Label, err)
		}
		l.LineStyle.Color = colors[i]
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		thumbs[i] = l
		points += len(s.XYs)
	}
	// The legend is filled in only once every line is on the plot.
	for i, s := range lines {
		p.Legend.Add(s.Label, thumbs[i])
	}

	// A log scale needs a positive, non-empty range.
	switch {
	case points == 0:
		p.X.Min, p.X.Max = 0.25, 1024
		p.Y.Min, p.Y.Max = 0, 1
	case p.X.Min == p.X.Max:
		p.X.Min /= 2
		p.X.Max *= 2
	}
	return p, nil
}

// seriesColors returns n distinguishable line colors.
func seriesColors(n int) ([]color.Color, error) {
	// Set1 comes in sizes 3 through 9.
	size := n
	if size < 3 {
		size = 3
	} else if size > 9 {
		size = 9
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", size)
	if err != nil {
		return nil, err
	}
	cs := pal.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = cs[i%len(cs)]
	}
	return out, nil
}

// Draw draws f on dc: the title across the top and the plots below
// it, aligned so that their axes line up.
func (f *Figure) Draw(dc draw.Canvas) {
	pad := vg.Points(10)

	sty := f.Plots[0][0].Title.TextStyle
	sty.Font.Size = vg.Points(18)
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YTop
	dc.FillText(sty, vg.Point{X: dc.Center().X, Y: dc.Max.Y - pad}, f.Title)
	dc.Max.Y -= sty.Rectangle(f.Title).Size().Y + 2*pad

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      2,
		PadX:      vg.Points(30),
		PadY:      vg.Points(30),
		PadLeft:   pad,
		PadRight:  pad,
		PadBottom: pad,
	}
	plots := [][]*plot.Plot{f.Plots[0][:], f.Plots[1][:]}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j, p := range plots[i] {
			p.Draw(canvases[i][j])
		}
	}
}

func (f *Figure) render() *vgimg.Canvas {
	c := vgimg.NewWith(vgimg.UseWH(Width, Height), vgimg.UseDPI(DPI), vgimg.UseBackgroundColor(color.White))
	f.Draw(draw.New(c))
	return c
}

// Image renders f to an image.
func (f *Figure) Image() image.Image {
	return f.render().Image()
}

// WritePNG renders f and writes it to w as a PNG.
func (f *Figure) WritePNG(w io.Writer) error {
	_, err := vgimg.PngCanvas{Canvas: f.render()}.WriteTo(w)
	return err
}

// Save writes f as a PNG file at path.
func (f *Figure) Save(path string) (err error) {
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	return f.WritePNG(w)
}
