package heating

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter marks a non-positive or non-finite physical input.
	ErrInvalidParameter = errors.New("heating: invalid parameter")

	// ErrNonFinite marks a rate or coefficient that evaluated to NaN or Inf.
	ErrNonFinite = errors.New("heating: non-finite result")
)

// SampleError ties a failure to the grid point that produced it.
type SampleError struct {
	Index       int
	Temperature float64
	Wrapped     error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample %d (T = %g K): %v", e.Index, e.Temperature, e.Wrapped)
}

func (e *SampleError) Unwrap() error {
	return e.Wrapped
}
