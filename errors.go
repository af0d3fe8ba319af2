package ppjoin

import (
	"errors"
	"fmt"

	"github.com/hupe1980/ppjoin/internal/engine"
	"github.com/hupe1980/ppjoin/token"
)

var (
	// ErrInvalidThreshold is returned when the similarity threshold is outside [0, 1).
	ErrInvalidThreshold = errors.New("similarity threshold must be in [0, 1)")

	// ErrUncomparableValue is returned when a field value cannot be used as a token
	// (its dynamic type is not comparable, e.g. a slice or map).
	ErrUncomparableValue = errors.New("uncomparable field value")

	// ErrInvalidColumn is returned for negative column positions.
	ErrInvalidColumn = errors.New("invalid column")

	// ErrTooManyRecords is returned when the input exceeds 2^32-1 records.
	ErrTooManyRecords = errors.New("too many records")
)

// ThresholdError indicates an invalid similarity threshold.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ThresholdError struct {
	Threshold float64
	cause     error
}

func (e *ThresholdError) Error() string {
	return fmt.Sprintf("similarity threshold '%v' must be between [0, 1)", e.Threshold)
}

// Is reports ErrInvalidThreshold as a match.
func (e *ThresholdError) Is(target error) bool { return target == ErrInvalidThreshold }

func (e *ThresholdError) Unwrap() error { return e.cause }

// ValueError indicates a field value that cannot be interned as a token.
//
// Record is the position of the record in the joined input. For cross-dataset
// joins Dataset names its source dataset and Record its position there.
type ValueError struct {
	Dataset int
	Record  int
	Column  int
	Type    string
	cause   error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("dataset %d record %d column %d: value of type %s is not comparable", e.Dataset, e.Record, e.Column, e.Type)
}

// Is reports ErrUncomparableValue as a match.
func (e *ValueError) Is(target error) bool { return target == ErrUncomparableValue }

func (e *ValueError) Unwrap() error { return e.cause }

func translateError(err error, threshold float64) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, engine.ErrInvalidArgument) {
		return &ThresholdError{Threshold: threshold, cause: err}
	}
	if errors.Is(err, engine.ErrTooManyRecords) {
		return fmt.Errorf("%w: %w", ErrTooManyRecords, err)
	}

	var ve *token.ValueError
	if errors.As(err, &ve) {
		return &ValueError{Record: ve.Record, Column: ve.Column, Type: ve.Type, cause: err}
	}

	return err
}
