// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package cerr defines the constant errors that classify every failure the
// benchbars pipeline can report. Callers match them with errors.Is; the
// errors actually returned wrap one of these with context.
package cerr

type Error string

func (e Error) Error() string {
	return string(e)
}

const ErrUsage = Error("usage error")
const ErrNotFound = Error("results file not found")
const ErrMalformedRow = Error("malformed row")
const ErrEmptyDataset = Error("no rows to render")
const ErrRender = Error("render error")
