// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package cerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/petenewcomb/benchbars/internal/cerr"
	"github.com/stretchr/testify/require"
)

func TestErrorKindsMatchThroughWrapping(t *testing.T) {
	chk := require.New(t)

	err := fmt.Errorf("loading %q: %w", "results.txt", cerr.ErrNotFound)
	chk.ErrorIs(err, cerr.ErrNotFound)
	chk.NotErrorIs(err, cerr.ErrMalformedRow)
	chk.Equal(`loading "results.txt": results file not found`, err.Error())

	var kind cerr.Error
	chk.True(errors.As(err, &kind))
	chk.Equal(cerr.ErrNotFound, kind)
}
