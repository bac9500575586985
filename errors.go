package fcmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when the number of clusters is not positive.
	ErrInvalidK = errors.New("number of clusters must be positive")

	// ErrInvalidIterations is returned when the iteration count is negative.
	ErrInvalidIterations = errors.New("number of iterations cannot be negative")

	// ErrInvalidFuzzifier is returned when the fuzzifier is not a finite value greater than 1.
	ErrInvalidFuzzifier = errors.New("fuzzifier must be greater than 1")

	// ErrInvalidInitRange is returned when the initialization range is empty.
	ErrInvalidInitRange = errors.New("initialization range must satisfy min < max")

	// ErrInvalidWorkers is returned when the worker count is negative.
	ErrInvalidWorkers = errors.New("number of workers cannot be negative")

	// ErrEmptySet is returned when the dataset has no rows or no columns.
	ErrEmptySet = errors.New("empty dataset")
)

// ConfigError reports an invalid configuration parameter.
// The sentinel describing the violated constraint is available via errors.Is.
type ConfigError struct {
	Param string
	Value any
	cause error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %v", e.Param, e.Value, e.cause)
}

func (e *ConfigError) Unwrap() error { return e.cause }

// ErrDimensionMismatch indicates that two matrices that must share a
// dimension do not.
type ErrDimensionMismatch struct {
	What     string
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch (%s): expected %d, got %d", e.What, e.Expected, e.Actual)
}
