// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package chart

import (
	"errors"
	"fmt"
	"image/color"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/vg"
)

// Style holds everything about a chart's appearance that is not derived from
// the data. Bar geometry is expressed as a fraction of the distance between
// neighboring groups, which is one category unit.
type Style struct {
	Width  vg.Length
	Height vg.Length
	DPI    int

	Title       string
	TitleSize   vg.Length
	TitleWeight xfont.Weight

	XAxisLabel    string
	YAxisLabel    string
	AxisLabelSize vg.Length

	SerialName    string
	SerialColor   color.Color
	ParallelName  string
	ParallelColor color.Color

	// LegendTitle heads the legend entries. Empty omits it.
	LegendTitle string

	// BarWidth is the width of one bar as a fraction of the group pitch.
	BarWidth float64
	// BarGap separates the two bars of a group, as a fraction of the group
	// pitch. The default is 0.02 of the default bar width.
	BarGap float64

	// ValueFormat is the fmt verb used to annotate each bar with its value.
	ValueFormat string
	LabelPad    vg.Length

	// Margin pads the category axis on each side, as a fraction of the
	// span of the bars.
	Margin float64
	// YAxisGrowFactor scales the top of the value axis to leave headroom
	// for the legend.
	YAxisGrowFactor float64

	Grid bool
}

// DefaultStyle returns the style of the classic serial vs. parallel game of
// life comparison chart: 8x6 inches at 80 DPI, quarter-width bars separated
// by a sliver, translucent black for serial and red-orange for parallel.
func DefaultStyle() Style {
	return Style{
		Width:  8 * vg.Inch,
		Height: 6 * vg.Inch,
		DPI:    80,

		Title:       "GAME OF LIFE",
		TitleSize:   vg.Points(20),
		TitleWeight: xfont.WeightBold,

		XAxisLabel:    "boards (processes)",
		YAxisLabel:    "execution time",
		AxisLabelSize: vg.Points(15),

		SerialName:    "Serial",
		SerialColor:   color.NRGBA{A: 153},
		ParallelName:  "Parallel",
		ParallelColor: color.NRGBA{R: 0xE2, G: 0x4A, B: 0x33, A: 0xFF},

		LegendTitle: "Implementation",

		BarWidth: 0.25,
		BarGap:   0.25 * 0.02,

		ValueFormat: "%.2f",
		LabelPad:    vg.Points(2),

		Margin:          0.05,
		YAxisGrowFactor: 1.2,

		Grid: true,
	}
}

// WithPalette returns a copy of s whose series are colored from the named
// ColorBrewer qualitative palette, such as "Set1" or "Paired".
func (s Style) WithPalette(name string) (Style, error) {
	// Qualitative palettes start at three colors.
	palette, err := brewer.GetPalette(brewer.TypeQualitative, name, 3)
	if err != nil {
		return s, fmt.Errorf("palette %q: %w", name, err)
	}
	colors := palette.Colors()
	s.SerialColor = colors[0]
	s.ParallelColor = colors[1]
	return s, nil
}

// Validate reports style settings that cannot produce a readable chart.
func (s Style) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("image size %vx%v is not positive", s.Width, s.Height)
	case s.DPI <= 0:
		return fmt.Errorf("DPI %d is not positive", s.DPI)
	case s.BarWidth <= 0:
		return errors.New("bar width is not positive")
	case s.BarGap < 0:
		return errors.New("bar gap is negative")
	case 2*s.BarWidth+s.BarGap >= 1:
		return fmt.Errorf("two bars of width %g with gap %g overlap the neighboring group", s.BarWidth, s.BarGap)
	case s.ValueFormat == "":
		return errors.New("value format is empty")
	case s.Margin < 0:
		return errors.New("margin is negative")
	case s.YAxisGrowFactor < 1:
		return fmt.Errorf("y axis grow factor %g would clip bars", s.YAxisGrowFactor)
	}
	return nil
}
