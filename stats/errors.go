package stats

import "errors"

var (
	ErrMissingField   = errors.New("missing field")
	ErrInvalidSegment = errors.New("invalid category segment")
	ErrInvalidCapital = errors.New("invalid capital value")
)
