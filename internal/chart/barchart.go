// Derived from https://github.com/gonum/plot/blob/v0.16.0/plotter/barchart.go:
// Copyright ©2015 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"errors"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// barChart draws one series of a grouped bar chart. Unlike plotter.BarChart
// its width and offset are in data units along the category axis, so bars
// keep their share of each group however many groups there are.
type barChart struct {
	// The group position (X) and height (Y) of each bar.
	Bars plotter.XYs

	// Labels, if present, are drawn centered above each bar.
	Labels []string

	// Width is the width of the bars in category units.
	Width float64

	// Offset is added to the X location of each bar, in category units.
	// When the Offset is zero, the bars are drawn centered at their X
	// location.
	Offset float64

	// Color is the fill color of the bars.
	Color color.Color

	// LineStyle is the style of the outline of the bars.
	draw.LineStyle

	// LabelStyle is the style of the label text.
	LabelStyle text.Style

	// LabelPad is the gap between the top of a bar and its label.
	LabelPad vg.Length
}

var (
	_ plot.Plotter     = (*barChart)(nil)
	_ plot.DataRanger  = (*barChart)(nil)
	_ plot.GlyphBoxer  = (*barChart)(nil)
	_ plot.Thumbnailer = (*barChart)(nil)
)

// newBarChart returns a new bar chart with a single bar for each value. The
// bars' group positions are specified by their X values and heights by their
// Y values.
func newBarChart(bars plotter.XYer, width float64) (*barChart, error) {
	if width <= 0 {
		return nil, errors.New("bar width was not positive")
	}
	barsCopy, err := plotter.CopyXYs(bars)
	if err != nil {
		return nil, err
	}
	var labelsCopy []string
	if labels, ok := bars.(plotter.Labeller); ok {
		labelsCopy = make([]string, bars.Len())
		for i := range labelsCopy {
			labelsCopy[i] = labels.Label(i)
		}
	}
	return &barChart{
		Bars:      barsCopy,
		Labels:    labelsCopy,
		Width:     width,
		Color:     color.Black,
		LineStyle: plotter.DefaultLineStyle,
		LabelStyle: text.Style{
			Font:    font.From(plotter.DefaultFont, plotter.DefaultFontSize),
			XAlign:  text.XCenter,
			YAlign:  text.YBottom,
			Handler: plot.DefaultTextHandler,
		},
	}, nil
}

// extent returns the left and right edges of the ith bar in category units.
func (b *barChart) extent(i int) (left, right float64) {
	center := b.Bars[i].X + b.Offset
	return center - b.Width/2, center + b.Width/2
}

// Plot implements the plot.Plotter interface.
func (b *barChart) Plot(c draw.Canvas, plt *plot.Plot) {
	trCat, trVal := plt.Transforms(&c)

	for i, bar := range b.Bars {
		left, right := b.extent(i)
		cat := trCat(bar.X + b.Offset)
		if !c.ContainsX(cat) {
			continue
		}
		catMin := trCat(left)
		catMax := trCat(right)
		valMin := trVal(0)
		valMax := trVal(bar.Y)

		pts := []vg.Point{
			{X: catMin, Y: valMin},
			{X: catMin, Y: valMax},
			{X: catMax, Y: valMax},
			{X: catMax, Y: valMin},
		}
		c.FillPolygon(b.Color, c.ClipPolygonY(pts))

		pts = append(pts, vg.Point{X: catMin, Y: valMin})
		c.StrokeLines(b.LineStyle, c.ClipLinesY(pts)...)

		if len(b.Labels) > 0 {
			pt := vg.Point{X: cat, Y: valMax + b.LabelPad}
			c.FillText(b.LabelStyle, pt, b.Labels[i])
		}
	}
}

// DataRange implements the plot.DataRanger interface. The value range always
// includes zero, the base of every bar.
func (b *barChart) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	ymin, ymax = 0, 0
	for i, bar := range b.Bars {
		left, right := b.extent(i)
		xmin = math.Min(xmin, left)
		xmax = math.Max(xmax, right)
		ymin = math.Min(ymin, bar.Y)
		ymax = math.Max(ymax, bar.Y)
	}
	return xmin, xmax, ymin, ymax
}

// GlyphBoxes implements the GlyphBoxer interface so that the plot leaves room
// for the value labels above the tallest bars.
func (b *barChart) GlyphBoxes(plt *plot.Plot) []plot.GlyphBox {
	boxes := make([]plot.GlyphBox, len(b.Labels))
	for i, label := range b.Labels {
		rect := b.LabelStyle.Rectangle(label)
		rect.Min.Y += b.LabelPad
		rect.Max.Y += b.LabelPad
		boxes[i] = plot.GlyphBox{
			X:         plt.X.Norm(b.Bars[i].X + b.Offset),
			Y:         plt.Y.Norm(b.Bars[i].Y),
			Rectangle: rect,
		}
	}
	return boxes
}

// Thumbnail fulfills the plot.Thumbnailer interface.
func (b *barChart) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	poly := c.ClipPolygonY(pts)
	c.FillPolygon(b.Color, poly)

	pts = append(pts, vg.Point{X: c.Min.X, Y: c.Min.Y})
	outline := c.ClipLinesY(pts)
	c.StrokeLines(b.LineStyle, outline...)
}
