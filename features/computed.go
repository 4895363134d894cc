package features

import (
	"sync"
)

// ComputeFunc writes the features of vector idx into dst.
// len(dst) equals the provider dimension.
type ComputeFunc func(idx int, dst []float64)

// Computed produces feature vectors on demand instead of storing them.
//
// Every borrow is Owned: the vector is written into a pooled buffer that
// Release hands back to the pool. Computed is safe for concurrent use as long
// as the ComputeFunc is.
type Computed struct {
	dim   int
	count int
	fn    ComputeFunc
	pool  sync.Pool
}

// NewComputed creates a provider of count vectors with dim features each.
func NewComputed(dim, count int, fn ComputeFunc) (*Computed, error) {
	if dim <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dim}
	}
	if fn == nil {
		return nil, ErrNilComputeFunc
	}
	if count < 0 {
		count = 0
	}

	c := &Computed{
		dim:   dim,
		count: count,
		fn:    fn,
	}
	c.pool.New = func() any {
		buf := make([]float64, dim)
		return &buf
	}

	return c, nil
}

// Dimension returns the number of features per vector.
func (c *Computed) Dimension() int {
	return c.dim
}

// Count returns the number of vectors.
func (c *Computed) Count() int {
	return c.count
}

// Vector computes vector idx into a pooled buffer.
// It panics if idx is out of range.
func (c *Computed) Vector(idx int) Vector {
	checkIndex(idx, c.count)

	buf := c.pool.Get().(*[]float64)
	dst := (*buf)[:c.dim]
	clear(dst)
	c.fn(idx, dst)

	return Vector{
		Data:      dst,
		Index:     idx,
		Ownership: Owned,
	}
}

// Release returns owned buffers to the pool. Reference borrows are ignored.
func (c *Computed) Release(v Vector) {
	if v.Ownership != Owned || cap(v.Data) < c.dim {
		return
	}
	buf := v.Data[:c.dim]
	c.pool.Put(&buf)
}

var _ Provider = (*Computed)(nil)
