// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command benchbars charts serial vs. parallel execution times per process
// count as a grouped bar chart.
//
// Usage:
//
//	benchbars [flags] <results_filename>.txt
//
// The results file holds one "<procs> <serial time> <parallel time>" row per
// line. The chart is written to results.png unless -o says otherwise.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/petenewcomb/benchbars/internal/cerr"
	"github.com/petenewcomb/benchbars/internal/chart"
	"github.com/petenewcomb/benchbars/internal/results"
	"github.com/petenewcomb/benchbars/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 255
)

const (
	formatTable = "table"
	formatBench = "bench"
)

type options struct {
	input   string
	output  string
	format  string
	style   chart.Style
	verbose bool
	trace   bool
}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	logger := telemetry.NewLogger(stderr, opts.verbose)
	defer func() { _ = logger.Sync() }()

	var tracing *telemetry.Tracing
	if opts.trace {
		tracing, err = telemetry.StartTracing(stderr)
		if err != nil {
			logger.Error("Failed to start tracing", zap.Error(err))
			return exitFailure
		}
		defer func() {
			if err := tracing.Shutdown(ctx); err != nil {
				logger.Warn("Failed to flush traces", zap.Error(err))
			}
		}()
	}

	stage := telemetry.Stage{Logger: logger, Tracer: tracing.Tracer()}
	if err := chartResults(ctx, stage, opts); err != nil {
		logger.Error("Failed to chart results",
			zap.String("input", opts.input),
			zap.String("output", opts.output),
			zap.Error(err))
		return exitFailure
	}

	logger.Info("Chart written", zap.String("output", opts.output))
	return exitOK
}

func parseArgs(args []string, stdout io.Writer) (*options, error) {
	name := "benchbars"
	if len(args) > 0 {
		name = filepath.Base(args[0])
		args = args[1:]
	}

	style := chart.DefaultStyle()
	opts := &options{}
	var palette string

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.Usage = func() {
		fmt.Fprintf(stdout, "Usage: %s [flags] <results_filename>.txt\n", name)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.output, "o", "results.png", "Path of the chart image to write; the extension selects the format")
	fs.StringVar(&opts.format, "format", formatTable, "Input format: table or bench (go test -bench output)")
	fs.StringVar(&style.Title, "title", style.Title, "Chart title")
	fs.StringVar(&palette, "palette", "", "ColorBrewer qualitative palette for the bars, e.g. Set1")
	fs.BoolVar(&opts.verbose, "v", false, "Log each pipeline stage")
	fs.BoolVar(&opts.trace, "trace", false, "Print trace spans to standard error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", cerr.ErrUsage, err)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, fmt.Errorf("%w: expected one results file, got %d arguments", cerr.ErrUsage, fs.NArg())
	}
	opts.input = fs.Arg(0)

	switch opts.format {
	case formatTable, formatBench:
	default:
		fmt.Fprintf(stdout, "unknown input format %q\n", opts.format)
		fs.Usage()
		return nil, fmt.Errorf("%w: unknown input format %q", cerr.ErrUsage, opts.format)
	}

	if palette != "" {
		var err error
		style, err = style.WithPalette(palette)
		if err != nil {
			fmt.Fprintln(stdout, err)
			fs.Usage()
			return nil, fmt.Errorf("%w: %w", cerr.ErrUsage, err)
		}
	}
	opts.style = style

	return opts, nil
}

func chartResults(ctx context.Context, stage telemetry.Stage, opts *options) error {
	var rows []results.Row
	err := stage.Run(ctx, "load", func(ctx context.Context, span trace.Span) error {
		var err error
		switch opts.format {
		case formatBench:
			rows, err = results.LoadBench(opts.input)
		default:
			rows, err = results.Load(opts.input)
		}
		span.SetAttributes(
			attribute.String("input", opts.input),
			attribute.String("format", opts.format),
			attribute.Int("rows", len(rows)),
		)
		return err
	})
	if err != nil {
		return err
	}

	return stage.Run(ctx, "render", func(ctx context.Context, span trace.Span) error {
		c, err := chart.New(results.NewDataset(rows), opts.style)
		if err != nil {
			return err
		}
		stage.Logger.Debug("Chart laid out",
			zap.Strings("ticks", c.TickLabels()),
			zap.Any("annotations", c.Annotations()))
		span.SetAttributes(attribute.String("output", opts.output))
		return c.Save(opts.output)
	})
}
