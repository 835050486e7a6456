package errors

import "fmt"

var (
	ErrInputNotFound     = fmt.Errorf("input not found")
	ErrDimensionMismatch = fmt.Errorf("dimension mismatch")
	ErrEmptyDataset      = fmt.Errorf("empty dataset")
	ErrInvalidLabel      = fmt.Errorf("label must be 0 or 1")
	ErrModelNotFound     = fmt.Errorf("model not found")
	ErrMalformedTriple   = fmt.Errorf("malformed triple")
	ErrCorruptRecord     = fmt.Errorf("corrupt stored record")
)
