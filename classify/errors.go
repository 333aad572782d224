package classify

import "errors"

var (
	ErrInvalidLabel = errors.New("invalid label")
	ErrMissingField = errors.New("missing field")
)
