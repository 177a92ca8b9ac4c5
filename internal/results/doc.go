// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package results loads serial vs. parallel benchmark timings into ordered
// rows, one per process count, and projects them into the parallel slices a
// chart consumes.
//
// Two input formats are understood. The table format has one row per line:
//
//	<procs> <serial seconds> <parallel seconds> [ignored...]
//
// The bench format is the text emitted by "go test -bench", where each
// benchmark name carries /procs=N and /impl=serial or /impl=parallel keys.
//
// Loading is all-or-nothing: any bad row fails the whole file and no rows are
// returned. Failures wrap cerr.ErrNotFound or cerr.ErrMalformedRow.
package results
