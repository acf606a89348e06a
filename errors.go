package cbir

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter indicates a caller-supplied parameter that the
	// operation cannot work with: a cluster count outside [1, len(data)],
	// an unknown retrieval mode, or an unparsable numeric argument.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrResourceUnavailable indicates a missing or unreadable input:
	// an image that cannot be decoded, a corpus directory that cannot be
	// opened, or a feature file that cannot be read.
	ErrResourceUnavailable = errors.New("resource unavailable")
)

// ErrDimensionMismatch indicates that two histograms or feature vectors
// with incompatible shapes were compared.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	ExpectedRows, ExpectedCols int
	ActualRows, ActualCols     int
	cause                      error
}

// NewDimensionMismatch builds an ErrDimensionMismatch for two 2-D shapes.
// For plain vectors, pass 1 for both row arguments.
func NewDimensionMismatch(expRows, expCols, actRows, actCols int) *ErrDimensionMismatch {
	return &ErrDimensionMismatch{
		ExpectedRows: expRows,
		ExpectedCols: expCols,
		ActualRows:   actRows,
		ActualCols:   actCols,
	}
}

func (e *ErrDimensionMismatch) Error() string {
	if e.ExpectedRows == 1 && e.ActualRows == 1 {
		return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.ExpectedCols, e.ActualCols)
	}
	return fmt.Sprintf("dimension mismatch: expected %dx%d, got %dx%d",
		e.ExpectedRows, e.ExpectedCols, e.ActualRows, e.ActualCols)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }
