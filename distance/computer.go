package distance

import (
	"errors"
	"reflect"
	"sync/atomic"

	"github.com/hupe1980/vecdist/features"
)

type binding struct {
	lhs features.Provider
	rhs features.Provider
}

// CosineDistance computes cosine distances between the vectors of two bound
// feature collections.
//
// Compute is safe for concurrent use if both providers support concurrent reads.
type CosineDistance struct {
	bound atomic.Pointer[binding]
}

// NewCosineDistance returns an unbound CosineDistance.
func NewCosineDistance() *CosineDistance {
	return &CosineDistance{}
}

// Name returns the name of the distance.
func (c *CosineDistance) Name() string {
	return "CosineDistance"
}

// Setup binds the left and right collections.
// Nil providers, including typed nil pointers, fail with ErrNilFeatures.
// On error the previous binding, if any, is kept.
func (c *CosineDistance) Setup(lhs, rhs features.Provider) error {
	if isNil(lhs) || isNil(rhs) {
		return ErrNilFeatures
	}

	if l, r := lhs.Dimension(), rhs.Dimension(); l != r {
		return &ErrIncompatibleFeatures{
			Left:  l,
			Right: r,
			cause: &features.ErrDimensionMismatch{Expected: l, Actual: r},
		}
	}

	c.bound.Store(&binding{lhs: lhs, rhs: rhs})

	return nil
}

// Cleanup drops the bound collections.
func (c *CosineDistance) Cleanup() {
	c.bound.Store(nil)
}

// NumLHS returns the number of vectors in the left collection, or 0 if unbound.
func (c *CosineDistance) NumLHS() int {
	if b := c.bound.Load(); b != nil {
		return b.lhs.Count()
	}
	return 0
}

// NumRHS returns the number of vectors in the right collection, or 0 if unbound.
func (c *CosineDistance) NumRHS() int {
	if b := c.bound.Load(); b != nil {
		return b.rhs.Count()
	}
	return 0
}

// Compute returns the cosine distance between vector idxA of the left
// collection and vector idxB of the right collection.
//
// Both borrowed vectors are released before Compute returns, including when
// it panics on a length mismatch. Compute panics if the distance is unbound.
func (c *CosineDistance) Compute(idxA, idxB int) float64 {
	b := c.bound.Load()
	if b == nil {
		panic(errors.New("distance: compute on unbound CosineDistance"))
	}

	a := b.lhs.Vector(idxA)
	defer b.lhs.Release(a)

	bv := b.rhs.Vector(idxB)
	defer b.rhs.Release(bv)

	return Cosine(a.Data, bv.Data)
}

// isNil reports whether p is nil or an interface holding a nil pointer.
func isNil(p features.Provider) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
