package worker

import "errors"

var (
	ErrIncompatibleVersion = errors.New("incompatible worker protocol version")
	ErrNoWorkers           = errors.New("no workers")
)
