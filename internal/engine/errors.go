package engine

import "errors"

var (
	// ErrInvalidArgument is returned when an argument is invalid (e.g. a threshold outside [0, 1)).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTooManyRecords is returned when the input cannot be addressed with 32-bit row ids.
	ErrTooManyRecords = errors.New("too many records")
)
