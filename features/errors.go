package features

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupted is returned when persisted data fails its checksum or size checks.
	ErrCorrupted = errors.New("features: corrupted data")

	// ErrBadMagic is returned when the input is not a feature matrix file.
	ErrBadMagic = errors.New("features: bad magic")

	// ErrUnsupportedVersion is returned for a file format version this package cannot read.
	ErrUnsupportedVersion = errors.New("features: unsupported format version")

	// ErrSubsetOutOfRange is returned when a subset names rows the matrix does not have.
	ErrSubsetOutOfRange = errors.New("features: subset row out of range")

	// ErrNilComputeFunc is returned by NewComputed without a compute function.
	ErrNilComputeFunc = errors.New("features: nil compute func")
)

// ErrDimensionMismatch indicates a vector or collection with an unexpected
// number of features.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("features: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension indicates a non-positive feature dimension.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("features: invalid dimension: %d", e.Dimension)
}
