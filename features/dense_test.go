package features

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecdist/testutil"
)

func TestNewDense(t *testing.T) {
	t.Run("InvalidDimension", func(t *testing.T) {
		_, err := NewDense(0)
		var id *ErrInvalidDimension
		require.ErrorAs(t, err, &id)
		assert.Equal(t, 0, id.Dimension)
	})

	t.Run("RaggedRows", func(t *testing.T) {
		_, err := NewDenseFromRows(2, [][]float64{{1, 2}, {3}})
		var dm *ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 2, dm.Expected)
		assert.Equal(t, 1, dm.Actual)
		assert.Contains(t, err.Error(), "row 1")
	})

	t.Run("FromRowsCopies", func(t *testing.T) {
		rows := [][]float64{{1, 2}, {3, 4}}
		d, err := NewDenseFromRows(2, rows)
		require.NoError(t, err)

		rows[0][0] = 99
		assert.Equal(t, []float64{1, 2}, d.Vector(0).Data)
		assert.Equal(t, 2, d.Count())
		assert.Equal(t, 2, d.Dimension())
	})
}

func TestDenseVector(t *testing.T) {
	d, err := NewDenseFromRows(3, [][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	v := d.Vector(1)
	assert.Equal(t, []float64{4, 5, 6}, v.Data)
	assert.Equal(t, 1, v.Index)
	assert.Equal(t, Reference, v.Ownership)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 3, cap(v.Data), "borrow must not expose the next row")

	d.Release(v)

	assert.PanicsWithError(t, "features: index 2 out of range [0, 2)", func() { d.Vector(2) })
	assert.Panics(t, func() { d.Vector(-1) })
}

func TestDenseAppendAndSet(t *testing.T) {
	d, err := NewDense(2)
	require.NoError(t, err)

	row, err := d.Append([]float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 0, row)

	row, err = d.Append([]float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, 1, row)

	_, err = d.Append([]float64{1})
	var dm *ErrDimensionMismatch
	assert.ErrorAs(t, err, &dm)

	require.NoError(t, d.Set(0, []float64{5, 6}))
	assert.Equal(t, []float64{5, 6}, d.Vector(0).Data)

	assert.Error(t, d.Set(2, []float64{0, 0}))
	assert.ErrorAs(t, d.Set(0, []float64{0}), &dm)

	assert.Equal(t, 2, d.Rows())
}

func TestDenseAppendRandomRows(t *testing.T) {
	rng := testutil.NewRNG(4711)

	d, err := NewDense(8)
	require.NoError(t, err)

	rows := make([][]float64, 32)
	for i := range rows {
		rows[i] = make([]float64, 8)
		rng.FillUniformRange(rows[i], -10, 10)
		row, err := d.Append(rows[i])
		require.NoError(t, err)
		assert.Equal(t, i, row)
	}

	for i, row := range rows {
		assert.Equal(t, row, d.Vector(i).Data)
	}
}

func TestDenseAppendKeepsBorrowsStable(t *testing.T) {
	d, err := NewDense(1)
	require.NoError(t, err)

	_, err = d.Append([]float64{1})
	require.NoError(t, err)
	v := d.Vector(0)

	for i := range 1000 {
		_, err := d.Append([]float64{float64(i)})
		require.NoError(t, err)
	}

	assert.Equal(t, []float64{1}, v.Data)
	assert.Equal(t, 1001, d.Count())
}

func TestDenseSubset(t *testing.T) {
	d, err := NewDenseFromRows(1, [][]float64{{0}, {10}, {20}, {30}, {40}})
	require.NoError(t, err)

	rows := roaring.BitmapOf(4, 1, 3)
	require.NoError(t, d.SetSubset(rows))
	rows.Add(0) // the subset is cloned

	assert.Equal(t, 3, d.Count())
	assert.Equal(t, 5, d.Rows())
	assert.Equal(t, []float64{10}, d.Vector(0).Data)
	assert.Equal(t, []float64{30}, d.Vector(1).Data)
	assert.Equal(t, []float64{40}, d.Vector(2).Data)
	assert.Equal(t, 2, d.Vector(2).Index)
	assert.Panics(t, func() { d.Vector(3) })

	assert.Equal(t, []uint32{1, 3, 4}, d.Subset().ToArray())

	err = d.SetSubset(roaring.BitmapOf(5))
	assert.ErrorIs(t, err, ErrSubsetOutOfRange)
	assert.Equal(t, 3, d.Count(), "failed SetSubset keeps the previous subset")

	require.NoError(t, d.SetSubset(roaring.New()))
	assert.Equal(t, 0, d.Count())

	require.NoError(t, d.SetSubset(nil))
	assert.Nil(t, d.Subset())
	assert.Equal(t, 5, d.Count())
}
