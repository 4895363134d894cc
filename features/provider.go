package features

import "fmt"

// Ownership tells a provider how to take a borrowed vector back.
type Ownership uint8

const (
	// Reference marks data that aliases memory owned by the provider.
	Reference Ownership = iota
	// Owned marks data produced for a single borrower.
	Owned
)

func (o Ownership) String() string {
	switch o {
	case Reference:
		return "Reference"
	case Owned:
		return "Owned"
	default:
		return fmt.Sprintf("Unknown(%d)", o)
	}
}

// Vector is a borrowed, read-only feature vector.
type Vector struct {
	Data      []float64
	Index     int
	Ownership Ownership
}

// Len returns the number of features in the vector.
func (v Vector) Len() int {
	return len(v.Data)
}

// Provider serves feature vectors by index.
//
// Vector panics for an index outside [0, Count()). Release must accept
// vectors of either ownership and is safe to call exactly once per borrow.
type Provider interface {
	Dimension() int
	Count() int
	Vector(idx int) Vector
	Release(v Vector)
}

func checkIndex(idx, count int) {
	if idx < 0 || idx >= count {
		panic(fmt.Errorf("features: index %d out of range [0, %d)", idx, count))
	}
}
