package reader

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput        = errors.New("input has no header row")
	ErrDuplicateColumn   = errors.New("duplicate column")
	ErrUnterminatedQuote = errors.New("unterminated quoted field")
	ErrFieldCount        = errors.New("wrong number of fields")
	ErrRowTooLong        = errors.New("row exceeds size limit")
	ErrInvalidBatchSize  = errors.New("invalid batch size")
)

// ParseError describes one logical row that could not be turned into a
// record. It never aborts reading.
type ParseError struct {
	// Line is the 1-based physical line where the row started.
	Line int64
	Raw  string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error on line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
