// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package results

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/petenewcomb/benchbars/internal/cerr"
	"go.uber.org/multierr"
)

const maxLineLength = 1 << 20

// RowError describes why one input line could not become a Row. It matches
// cerr.ErrMalformedRow as well as its underlying cause.
type RowError struct {
	// Line is the 1-based line number, or zero when the input format does not
	// track lines for the failing record.
	Line int
	Text string
	Err  error
}

func (e *RowError) Error() string {
	var sb strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&sb, "line %d: ", e.Line)
	}
	sb.WriteString(cerr.ErrMalformedRow.Error())
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	if e.Text != "" {
		fmt.Fprintf(&sb, " (%q)", e.Text)
	}
	return sb.String()
}

func (e *RowError) Unwrap() []error {
	if e.Err == nil {
		return []error{cerr.ErrMalformedRow}
	}
	return []error{cerr.ErrMalformedRow, e.Err}
}

// Load reads the table-format results file at path. The file is read in full
// and closed before any parsing happens.
func Load(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cerr.ErrNotFound, err)
	}
	rows, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Parse reads table-format rows from r. Blank lines are skipped. Every line
// is parsed even after a failure so that the returned error lists all bad
// rows; in that case no rows are returned.
func Parse(r io.Reader) ([]Row, error) {
	var rows []Row
	var errs error

	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineLength)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		row, err := parseRow(fields)
		if err != nil {
			errs = multierr.Append(errs, &RowError{Line: line, Text: text, Err: err})
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		errs = multierr.Append(errs, &RowError{Line: line + 1, Err: err})
	}

	if errs != nil {
		return nil, errs
	}
	return rows, nil
}

func parseRow(fields []string) (Row, error) {
	if len(fields) < 3 {
		return Row{}, fmt.Errorf("expected at least 3 fields, found %d", len(fields))
	}
	procs, err := parseProcs(fields[0])
	if err != nil {
		return Row{}, err
	}
	serial, err := parseTime("serial time", fields[1])
	if err != nil {
		return Row{}, err
	}
	parallel, err := parseTime("parallel time", fields[2])
	if err != nil {
		return Row{}, err
	}
	return Row{
		Procs:    procs,
		Serial:   serial,
		Parallel: parallel,
	}, nil
}

func parseProcs(s string) (int, error) {
	procs, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("process count: %w", err)
	}
	if procs < 1 {
		return 0, fmt.Errorf("process count %d is less than 1", procs)
	}
	return procs, nil
}

func parseTime(what, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", what, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%s %q is not a finite non-negative number", what, s)
	}
	return v, nil
}
