// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package chart

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/petenewcomb/benchbars/internal/cerr"
	"github.com/petenewcomb/benchbars/internal/results"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"pgregory.net/rapid"
)

func exampleDataset() results.Dataset {
	return results.NewDataset([]results.Row{
		{Procs: 1, Serial: 10.00, Parallel: 12.50},
		{Procs: 2, Serial: 5.20, Parallel: 3.10},
		{Procs: 4, Serial: 2.80, Parallel: 1.05},
	})
}

func TestNewExample(t *testing.T) {
	chk := require.New(t)
	c, err := New(exampleDataset(), DefaultStyle())
	chk.NoError(err)

	chk.Equal([]string{"1", "2", "4"}, c.TickLabels())
	chk.Equal([][]string{
		{"10.00", "5.20", "2.80"},
		{"12.50", "3.10", "1.05"},
	}, c.Annotations())

	chk.Equal("GAME OF LIFE", c.plot.Title.Text)
	chk.Equal("boards (processes)", c.plot.X.Label.Text)
	chk.Equal("execution time", c.plot.Y.Label.Text)
}

func TestGroupLayout(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chk := require.New(t)
		n := rapid.IntRange(1, 12).Draw(t, "n")
		rows := make([]results.Row, n)
		for i := range rows {
			rows[i] = results.Row{
				Procs:    rapid.IntRange(1, 256).Draw(t, "procs"),
				Serial:   rapid.Float64Range(0, 100).Draw(t, "serial"),
				Parallel: rapid.Float64Range(0, 100).Draw(t, "parallel"),
			}
		}
		style := DefaultStyle()
		c, err := New(results.NewDataset(rows), style)
		chk.NoError(err)
		chk.Len(c.series, 2)

		wantTicks := make([]string, n)
		wantSerial := make([]string, n)
		wantParallel := make([]string, n)
		for i, r := range rows {
			wantTicks[i] = strconv.Itoa(r.Procs)
			wantSerial[i] = fmt.Sprintf("%.2f", r.Serial)
			wantParallel[i] = fmt.Sprintf("%.2f", r.Parallel)
		}
		chk.Equal(wantTicks, c.TickLabels())
		chk.Equal([][]string{wantSerial, wantParallel}, c.Annotations())

		serial, parallel := c.series[0], c.series[1]
		chk.Len(serial.Bars, n)
		chk.Len(parallel.Bars, n)
		for i := range n {
			chk.Equal(float64(i), serial.Bars[i].X)
			sLeft, sRight := serial.extent(i)
			pLeft, pRight := parallel.extent(i)
			// Serial sits left of parallel with a small positive gap, and the
			// pair stays clear of the neighboring groups.
			chk.InDelta(style.BarGap, pLeft-sRight, 1e-12)
			chk.Greater(pLeft, sRight)
			chk.Greater(sLeft, float64(i)-0.5)
			chk.Less(pRight, float64(i)+0.5)
			chk.InDelta(float64(i), (sLeft+pRight)/2, 1e-12)
		}

		xmin, xmax, ymin, _ := serial.DataRange()
		chk.Less(c.plot.X.Min, xmin)
		chk.Greater(c.plot.X.Max, xmax)
		chk.Equal(0.0, ymin)
	})
}

func TestTicksFollowDatasetOrder(t *testing.T) {
	chk := require.New(t)
	ds := results.NewDataset([]results.Row{
		{Procs: 8, Serial: 1.25, Parallel: 0.40},
		{Procs: 1, Serial: 9.00, Parallel: 9.50},
		{Procs: 4, Serial: 2.10, Parallel: 0.75},
		{Procs: 2, Serial: 4.60, Parallel: 2.30},
	})
	c, err := New(ds, DefaultStyle())
	chk.NoError(err)

	chk.Equal([]string{"8", "1", "4", "2"}, c.TickLabels())
	chk.Equal([][]string{
		{"1.25", "9.00", "2.10", "4.60"},
		{"0.40", "9.50", "0.75", "2.30"},
	}, c.Annotations())

	// Each tick sits under its own group.
	ticks, ok := c.plot.X.Tick.Marker.(plot.ConstantTicks)
	chk.True(ok)
	chk.Len(ticks, 4)
	for i, want := range []string{"8", "1", "4", "2"} {
		chk.Equal(float64(i), ticks[i].Value)
		chk.Equal(want, ticks[i].Label)
		chk.Equal(float64(i), c.series[0].Bars[i].X)
	}
}

func TestNewRejectsEmptyDataset(t *testing.T) {
	chk := require.New(t)
	_, err := New(results.NewDataset(nil), DefaultStyle())
	chk.ErrorIs(err, cerr.ErrEmptyDataset)
}

func TestNewRejectsMismatchedDataset(t *testing.T) {
	chk := require.New(t)
	ds := exampleDataset()
	ds.Parallel = ds.Parallel[:2]
	_, err := New(ds, DefaultStyle())
	chk.ErrorIs(err, cerr.ErrMalformedRow)
}

func TestNewRejectsInvalidStyle(t *testing.T) {
	for name, mutate := range map[string]func(*Style){
		"zero width":        func(s *Style) { s.Width = 0 },
		"zero dpi":          func(s *Style) { s.DPI = 0 },
		"zero bar width":    func(s *Style) { s.BarWidth = 0 },
		"negative gap":      func(s *Style) { s.BarGap = -0.1 },
		"overlapping bars":  func(s *Style) { s.BarWidth = 0.5 },
		"empty format":      func(s *Style) { s.ValueFormat = "" },
		"shrinking y axis":  func(s *Style) { s.YAxisGrowFactor = 0.5 },
		"negative x margin": func(s *Style) { s.Margin = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			chk := require.New(t)
			style := DefaultStyle()
			mutate(&style)
			_, err := New(exampleDataset(), style)
			chk.ErrorIs(err, cerr.ErrRender)
		})
	}
}

func TestWithPalette(t *testing.T) {
	chk := require.New(t)
	style, err := DefaultStyle().WithPalette("Set1")
	chk.NoError(err)
	chk.NotEqual(DefaultStyle().SerialColor, style.SerialColor)
	chk.NotEqual(style.SerialColor, style.ParallelColor)

	_, err = DefaultStyle().WithPalette("NoSuchPalette")
	chk.Error(err)
}

func TestSavePNG(t *testing.T) {
	chk := require.New(t)
	path := filepath.Join(t.TempDir(), "results.png")
	chk.NoError(os.WriteFile(path, []byte("stale"), 0o644))

	c, err := New(exampleDataset(), DefaultStyle())
	chk.NoError(err)
	chk.NoError(c.Save(path))

	f, err := os.Open(path)
	chk.NoError(err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	chk.NoError(err)
	chk.Equal(640, cfg.Width)
	chk.Equal(480, cfg.Height)

	entries, err := os.ReadDir(filepath.Dir(path))
	chk.NoError(err)
	chk.Len(entries, 1, "temporary file left behind")
}

func TestSaveManyRows(t *testing.T) {
	chk := require.New(t)
	var rows []results.Row
	for i := range 7 {
		rows = append(rows, results.Row{Procs: 1 << i, Serial: float64(64 >> i), Parallel: float64(70>>i) / 2})
	}
	c, err := New(results.NewDataset(rows), DefaultStyle())
	chk.NoError(err)
	chk.Equal([]string{"1", "2", "4", "8", "16", "32", "64"}, c.TickLabels())

	path := filepath.Join(t.TempDir(), "many.png")
	chk.NoError(c.Save(path))
	info, err := os.Stat(path)
	chk.NoError(err)
	chk.Positive(info.Size())
}

func TestEncodeSVGContainsAnnotations(t *testing.T) {
	chk := require.New(t)
	c, err := New(exampleDataset(), DefaultStyle())
	chk.NoError(err)

	var buf bytes.Buffer
	chk.NoError(c.Encode(&buf, "svg"))
	svg := buf.String()
	for _, want := range []string{"GAME OF LIFE", "Implementation", "Serial", "Parallel", "10.00", "12.50", "5.20", "3.10", "2.80", "1.05"} {
		chk.True(strings.Contains(svg, want), "missing %q", want)
	}
}

func TestSaveFailureLeavesNoFile(t *testing.T) {
	chk := require.New(t)
	c, err := New(exampleDataset(), DefaultStyle())
	chk.NoError(err)
	dir := t.TempDir()

	err = c.Save(filepath.Join(dir, "missing", "results.png"))
	chk.ErrorIs(err, cerr.ErrRender)

	err = c.Save(filepath.Join(dir, "results.bmp"))
	chk.ErrorIs(err, cerr.ErrRender)

	entries, err := os.ReadDir(dir)
	chk.NoError(err)
	chk.Empty(entries)
}
