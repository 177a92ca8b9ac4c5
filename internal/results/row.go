// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package results

import (
	"fmt"

	"github.com/petenewcomb/benchbars/internal/cerr"
)

// Row is one benchmark measurement: the number of processes used and the
// serial and parallel execution times observed for it.
type Row struct {
	Procs    int
	Serial   float64
	Parallel float64
}

// Dataset holds rows projected into three parallel slices of equal length,
// in the order the rows were loaded.
type Dataset struct {
	Procs    []int
	Serial   []float64
	Parallel []float64
}

func NewDataset(rows []Row) Dataset {
	ds := Dataset{
		Procs:    make([]int, len(rows)),
		Serial:   make([]float64, len(rows)),
		Parallel: make([]float64, len(rows)),
	}
	for i, r := range rows {
		ds.Procs[i] = r.Procs
		ds.Serial[i] = r.Serial
		ds.Parallel[i] = r.Parallel
	}
	return ds
}

func (ds Dataset) Len() int {
	return len(ds.Procs)
}

func (ds Dataset) Row(i int) Row {
	return Row{
		Procs:    ds.Procs[i],
		Serial:   ds.Serial[i],
		Parallel: ds.Parallel[i],
	}
}

// Validate reports whether the three slices line up. Datasets built with
// NewDataset always do; hand-assembled ones might not.
func (ds Dataset) Validate() error {
	if len(ds.Serial) != len(ds.Procs) || len(ds.Parallel) != len(ds.Procs) {
		return fmt.Errorf("%w: dataset has %d process counts, %d serial times and %d parallel times",
			cerr.ErrMalformedRow, len(ds.Procs), len(ds.Serial), len(ds.Parallel))
	}
	return nil
}
