package mapreduce

import (
	"errors"
	"fmt"
)

var (
	// ErrUnitFailed is matched by every error a failed unit of work produces.
	ErrUnitFailed = errors.New("unit of work failed")
	ErrPoolClosed = errors.New("pool is closed")
)

// UnitError reports a unit that could not produce its partial result.
type UnitError struct {
	Unit string
	Err  error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("unit %s: %v", e.Unit, e.Err)
}

func (e *UnitError) Unwrap() []error {
	return []error{ErrUnitFailed, e.Err}
}
