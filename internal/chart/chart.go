// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package chart

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/petenewcomb/benchbars/internal/cerr"
	"github.com/petenewcomb/benchbars/internal/results"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type seriesPoints struct {
	plotter.XYs
	Labels []string
}

func (sp seriesPoints) Label(i int) string {
	return sp.Labels[i]
}

var _ plotter.Labeller = &seriesPoints{}

// Chart is a grouped bar chart of serial vs. parallel times, one group per
// dataset row in dataset order.
type Chart struct {
	style  Style
	plot   *plot.Plot
	ticks  []string
	series []*barChart
}

// New lays out a chart for ds. It fails with cerr.ErrEmptyDataset when there
// is nothing to draw and cerr.ErrMalformedRow when ds is inconsistent.
func New(ds results.Dataset, style Style) (*Chart, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if ds.Len() == 0 {
		return nil, cerr.ErrEmptyDataset
	}
	if err := style.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", cerr.ErrRender, err)
	}

	c := &Chart{
		style: style,
		ticks: make([]string, ds.Len()),
	}
	for i, procs := range ds.Procs {
		c.ticks[i] = strconv.Itoa(procs)
	}
	c.plot = setupPlot(c.ticks, &style)

	if err := c.plotBars(
		[]string{style.SerialName, style.ParallelName},
		[]color.Color{style.SerialColor, style.ParallelColor},
		[][]float64{ds.Serial, ds.Parallel},
	); err != nil {
		return nil, fmt.Errorf("%w: %w", cerr.ErrRender, err)
	}
	return c, nil
}

func setupPlot(ticks []string, style *Style) *plot.Plot {
	p := plot.New()

	p.Title.Text = style.Title
	p.Title.TextStyle.Font.Size = style.TitleSize
	p.Title.TextStyle.Font.Weight = style.TitleWeight
	p.Title.Padding = vg.Points(10)

	p.X.Label.Text = style.XAxisLabel
	p.Y.Label.Text = style.YAxisLabel
	p.X.Label.TextStyle.Font.Size = style.AxisLabelSize
	p.Y.Label.TextStyle.Font.Size = style.AxisLabelSize

	xTicks := make([]plot.Tick, len(ticks))
	for i := range ticks {
		t := &xTicks[i]
		t.Label = ticks[i]
		t.Value = float64(i)
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)

	p.Legend.Top = true
	p.Legend.Padding = 1 * vg.Millimeter
	p.Legend.TextStyle.Font.Size = vg.Points(10)

	if style.Grid {
		grid := plotter.NewGrid()
		grid.Vertical.Width = 0
		grid.Horizontal.Color = color.Gray{200}
		p.Add(grid)
	}

	return p
}

func (c *Chart) plotBars(names []string, colors []color.Color, values [][]float64) error {
	style := &c.style
	p := c.plot

	if style.LegendTitle != "" {
		p.Legend.Add(style.LegendTitle)
	}

	// Center to center distance between neighboring bars of a group, and the
	// span of the whole group measured the same way.
	step := style.BarWidth + style.BarGap
	groupWidth := step * float64(len(names)-1)

	for i, name := range names {
		points := seriesPoints{
			XYs:    make(plotter.XYs, len(values[i])),
			Labels: make([]string, len(values[i])),
		}
		for j, v := range values[i] {
			points.XYs[j].X = float64(j)
			points.XYs[j].Y = v
			points.Labels[j] = fmt.Sprintf(style.ValueFormat, v)
		}

		bc, err := newBarChart(points, style.BarWidth)
		if err != nil {
			return err
		}
		bc.Offset = step*float64(i) - groupWidth/2
		bc.Color = colors[i]
		bc.LineStyle.Width = 0
		bc.LabelStyle.Font = p.Y.Tick.Label.Font
		bc.LabelStyle.Color = p.Y.Tick.Label.Color
		bc.LabelPad = style.LabelPad

		p.Add(bc)
		p.Legend.Add(name, bc)
		c.series = append(c.series, bc)
	}

	pad := (p.X.Max - p.X.Min) * style.Margin
	p.X.Min -= pad
	p.X.Max += pad
	p.Y.Max *= style.YAxisGrowFactor

	return nil
}

// TickLabels returns the category axis labels in group order.
func (c *Chart) TickLabels() []string {
	return append([]string(nil), c.ticks...)
}

// Annotations returns the value label of every bar, one slice per series
// (serial first), each in group order.
func (c *Chart) Annotations() [][]string {
	annotations := make([][]string, len(c.series))
	for i, bc := range c.series {
		annotations[i] = append([]string(nil), bc.Labels...)
	}
	return annotations
}
