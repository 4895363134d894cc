package distance

import (
	"errors"
	"fmt"
)

var (
	// ErrNilFeatures is returned by Setup when a collection is missing.
	ErrNilFeatures = errors.New("distance: nil features")
)

// ErrIncompatibleFeatures indicates two collections that cannot be compared.
//
// The underlying error can be accessed via errors.Unwrap.
type ErrIncompatibleFeatures struct {
	Left  int
	Right int
	cause error
}

func (e *ErrIncompatibleFeatures) Error() string {
	return fmt.Sprintf("distance: incompatible features: left dimension %d, right dimension %d", e.Left, e.Right)
}

func (e *ErrIncompatibleFeatures) Unwrap() error { return e.cause }
