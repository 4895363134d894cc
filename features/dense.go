package features

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
)

// Dense is an in-memory feature matrix.
//
// Rows are stored contiguously in a single []float64 slice:
// row i = data[i*dim : (i+1)*dim]. Vector returns Reference borrows that
// alias this slice.
//
// Thread safety: concurrent reads are safe; writes require external synchronization.
type Dense struct {
	dim         int
	compression Compression

	// Atomic for lock-free read access
	data   atomic.Pointer[[]float64]
	subset atomic.Pointer[roaring.Bitmap] // nil means every row is visible

	mu sync.Mutex
}

// NewDense creates an empty matrix with the given feature dimension.
func NewDense(dim int) (*Dense, error) {
	if dim <= 0 {
		return nil, &ErrInvalidDimension{Dimension: dim}
	}

	d := &Dense{dim: dim}
	data := make([]float64, 0, 64*dim)
	d.data.Store(&data)

	return d, nil
}

// NewDenseFromRows creates a matrix holding a copy of rows.
func NewDenseFromRows(dim int, rows [][]float64) (*Dense, error) {
	d, err := NewDense(dim)
	if err != nil {
		return nil, err
	}

	data := make([]float64, 0, len(rows)*dim)
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("row %d: %w", i, &ErrDimensionMismatch{Expected: dim, Actual: len(row)})
		}
		data = append(data, row...)
	}
	d.data.Store(&data)

	return d, nil
}

// Dimension returns the number of features per vector.
func (d *Dense) Dimension() int {
	return d.dim
}

// Rows returns the number of stored rows, ignoring any subset.
func (d *Dense) Rows() int {
	return len(*d.data.Load()) / d.dim
}

// Count returns the number of visible vectors.
func (d *Dense) Count() int {
	if sub := d.subset.Load(); sub != nil {
		return int(sub.GetCardinality())
	}
	return d.Rows()
}

// Vector returns the idx-th visible vector as a Reference borrow.
// It panics if idx is out of range.
func (d *Dense) Vector(idx int) Vector {
	data := *d.data.Load()

	row := idx
	if sub := d.subset.Load(); sub != nil {
		checkIndex(idx, int(sub.GetCardinality()))
		r, err := sub.Select(uint32(idx))
		if err != nil {
			panic(fmt.Errorf("features: subset select %d: %w", idx, err))
		}
		row = int(r)
	} else {
		checkIndex(idx, len(data)/d.dim)
	}

	start := row * d.dim
	end := start + d.dim

	return Vector{
		Data:      data[start:end:end],
		Index:     idx,
		Ownership: Reference,
	}
}

// Release is a no-op: Dense never hands out owned buffers.
func (d *Dense) Release(Vector) {}

// Append adds a copy of vec as a new row and returns its row index.
func (d *Dense) Append(vec []float64) (int, error) {
	if len(vec) != d.dim {
		return 0, &ErrDimensionMismatch{Expected: d.dim, Actual: len(vec)}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	current := *d.data.Load()
	row := len(current) / d.dim

	// Write beyond the published length first, then publish the new length,
	// so readers never observe a partially written row.
	grown := append(current, vec...)
	d.data.Store(&grown)

	return row, nil
}

// Set replaces the row at index row.
func (d *Dense) Set(row int, vec []float64) error {
	if len(vec) != d.dim {
		return &ErrDimensionMismatch{Expected: d.dim, Actual: len(vec)}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	data := *d.data.Load()
	if row < 0 || row >= len(data)/d.dim {
		return fmt.Errorf("features: row %d out of range [0, %d)", row, len(data)/d.dim)
	}

	start := row * d.dim
	copy(data[start:start+d.dim], vec)

	return nil
}

// SetSubset restricts the visible vectors to rows. View index i maps to the
// i-th smallest row in the set. A nil bitmap clears the subset.
//
// The bitmap is cloned; later changes to rows have no effect.
func (d *Dense) SetSubset(rows *roaring.Bitmap) error {
	if rows == nil {
		d.ClearSubset()
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !rows.IsEmpty() {
		n := len(*d.data.Load()) / d.dim
		if int(rows.Maximum()) >= n {
			return fmt.Errorf("%w: row %d, rows %d", ErrSubsetOutOfRange, rows.Maximum(), n)
		}
	}

	d.subset.Store(rows.Clone())

	return nil
}

// ClearSubset makes every row visible again.
func (d *Dense) ClearSubset() {
	d.subset.Store(nil)
}

// Subset returns a copy of the active subset, or nil if none is set.
func (d *Dense) Subset() *roaring.Bitmap {
	if sub := d.subset.Load(); sub != nil {
		return sub.Clone()
	}
	return nil
}

// SetCompression selects the payload compression used by WriteTo.
func (d *Dense) SetCompression(c Compression) {
	d.compression = c
}

var _ Provider = (*Dense)(nil)
