// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package telemetry builds the logger and tracer used by the benchbars
// command and wraps each pipeline stage with both.
package telemetry

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const tracerName = "benchbars"

// NewLogger returns a console logger writing to w at info level, or at debug
// level when verbose is set.
func NewLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

// Tracing owns a tracer provider that exports finished spans to a writer as
// they end.
type Tracing struct {
	provider *sdktrace.TracerProvider
}

// StartTracing returns a Tracing whose spans are pretty printed to w. Call
// Shutdown to flush it.
func StartTracing(w io.Writer) (*Tracing, error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, err
	}
	return &Tracing{
		provider: sdktrace.NewTracerProvider(
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
			sdktrace.WithSyncer(exporter),
		),
	}, nil
}

// Tracer returns the tracer for pipeline spans. A nil Tracing falls back to
// the global provider, which does nothing unless the embedding program
// installed one.
func (t *Tracing) Tracer() trace.Tracer {
	if t == nil {
		return otel.Tracer(tracerName)
	}
	return t.provider.Tracer(tracerName)
}

func (t *Tracing) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// Stage runs named pipeline steps inside a span and logs their start,
// completion and duration at debug level. Failures are recorded on the span
// but not logged as errors; reporting them is the caller's call.
type Stage struct {
	Logger *zap.Logger
	Tracer trace.Tracer
}

func (s Stage) Run(ctx context.Context, name string, fn func(ctx context.Context, span trace.Span) error) error {
	ctx, span := s.Tracer.Start(ctx, name)
	defer span.End()

	s.Logger.Debug("Starting stage", zap.String("stage", name))

	startTime := time.Now()
	err := fn(ctx, span)
	duration := time.Since(startTime)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.Logger.Debug("Stage failed",
			zap.String("stage", name),
			zap.Duration("duration", duration),
			zap.Error(err))
	} else {
		s.Logger.Debug("Stage completed",
			zap.String("stage", name),
			zap.Duration("duration", duration))
	}
	return err
}
