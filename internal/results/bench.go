// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package results

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/petenewcomb/benchbars/internal/cerr"
	"go.uber.org/multierr"
	"golang.org/x/perf/benchfmt"
	"golang.org/x/perf/benchmath"
	"golang.org/x/perf/benchproc"
)

const (
	implSerial   = "serial"
	implParallel = "parallel"

	summaryConfidence = 0.95
)

type benchSamples struct {
	procs    int
	serial   []float64
	parallel []float64
}

// LoadBench reads a file of "go test -bench" output from path.
func LoadBench(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cerr.ErrNotFound, err)
	}
	rows, err := ParseBench(bytes.NewReader(data), path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// ParseBench reads benchmark results from r and reduces them to one Row per
// distinct /procs value, in order of first appearance. Each time is the
// median of that (procs, impl) combination's sec/op samples.
func ParseBench(r io.Reader, name string) ([]Row, error) {
	var pp benchproc.ProjectionParser
	procsP, err := pp.Parse("/procs", nil)
	if err != nil {
		return nil, err
	}
	implP, err := pp.Parse("/impl", nil)
	if err != nil {
		return nil, err
	}

	var order []*benchSamples
	byProcs := make(map[int]*benchSamples)
	var errs error

	reader := benchfmt.NewReader(r, name)
	for reader.Scan() {
		var res *benchfmt.Result
		switch rec := reader.Result(); rec := rec.(type) {
		case *benchfmt.Result:
			res = rec
		case *benchfmt.SyntaxError:
			errs = multierr.Append(errs, &RowError{Line: rec.Line, Err: errors.New(rec.Msg)})
			continue
		default:
			// Unit metadata and anything newer carries no timings.
			continue
		}

		benchName := string(res.Name)
		procs, err := parseProcs(procsP.Project(res).Get(procsP.Fields()[0]))
		if err != nil {
			errs = multierr.Append(errs, &RowError{Text: benchName, Err: err})
			continue
		}
		value, ok := secPerOp(res)
		if !ok {
			errs = multierr.Append(errs, &RowError{Text: benchName, Err: errors.New("no sec/op or ns/op measurement")})
			continue
		}

		samples := byProcs[procs]
		if samples == nil {
			samples = &benchSamples{procs: procs}
			byProcs[procs] = samples
			order = append(order, samples)
		}

		switch impl := strings.ToLower(implP.Project(res).Get(implP.Fields()[0])); impl {
		case implSerial:
			samples.serial = append(samples.serial, value)
		case implParallel:
			samples.parallel = append(samples.parallel, value)
		default:
			errs = multierr.Append(errs, &RowError{
				Text: benchName,
				Err:  fmt.Errorf("impl key %q is neither %q nor %q", impl, implSerial, implParallel),
			})
		}
	}
	if err := reader.Err(); err != nil {
		errs = multierr.Append(errs, err)
	}

	rows := make([]Row, 0, len(order))
	for _, samples := range order {
		if len(samples.serial) == 0 || len(samples.parallel) == 0 {
			errs = multierr.Append(errs, &RowError{
				Err: fmt.Errorf("procs=%d needs both %s and %s results", samples.procs, implSerial, implParallel),
			})
			continue
		}
		rows = append(rows, Row{
			Procs:    samples.procs,
			Serial:   center(samples.serial),
			Parallel: center(samples.parallel),
		})
	}

	if errs != nil {
		return nil, errs
	}
	return rows, nil
}

func secPerOp(res *benchfmt.Result) (float64, bool) {
	if v, ok := res.Value("sec/op"); ok {
		return v, true
	}
	if v, ok := res.Value("ns/op"); ok {
		return v / 1e9, true
	}
	return 0, false
}

func center(values []float64) float64 {
	thresholds := benchmath.DefaultThresholds
	sample := benchmath.NewSample(values, &thresholds)
	return benchmath.AssumeNothing.Summary(sample, summaryConfidence).Center
}
