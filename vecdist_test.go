package vecdist

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecdist/distance"
	"github.com/hupe1980/vecdist/features"
)

func TestNewCosine(t *testing.T) {
	lhs, err := features.NewDenseFromRows(2, [][]float64{{1, 0}, {0, 0}})
	require.NoError(t, err)
	rhs, err := features.NewDenseFromRows(2, [][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)

	cd, err := NewCosine(lhs, rhs)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, cd.Compute(0, 0), 1e-12)
	assert.InDelta(t, 0.0, cd.Compute(0, 1), 1e-12)
	assert.Equal(t, 0.0, cd.Compute(1, 1))
}

func TestNewCosineErrors(t *testing.T) {
	lhs, err := features.NewDense(2)
	require.NoError(t, err)
	rhs, err := features.NewDense(3)
	require.NoError(t, err)

	_, err = NewCosine(lhs, rhs)
	var ife *distance.ErrIncompatibleFeatures
	assert.ErrorAs(t, err, &ife)

	_, err = NewCosine(nil, rhs)
	assert.ErrorIs(t, err, distance.ErrNilFeatures)

	var typedNil *features.Dense
	_, err = NewCosine(lhs, typedNil)
	assert.ErrorIs(t, err, distance.ErrNilFeatures)
}

func TestNewCosineLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	lhs, err := features.NewDenseFromRows(2, [][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	rhs, err := features.NewDense(3)
	require.NoError(t, err)

	_, err = NewCosine(lhs, lhs, WithLogger(logger))
	require.NoError(t, err)

	_, err = NewCosine(lhs, rhs, WithLogger(logger))
	require.Error(t, err)

	var records []map[string]any
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		records = append(records, rec)
	}
	require.Len(t, records, 3)

	assert.Equal(t, "setup completed", records[0]["msg"])
	assert.Equal(t, "CosineDistance", records[0]["distance"])
	assert.Equal(t, float64(2), records[0]["lhs"])

	assert.Equal(t, "cosine distance ready", records[1]["msg"])
	assert.Equal(t, float64(2), records[1]["dimension"])

	assert.Equal(t, "setup failed", records[2]["msg"])
	assert.Equal(t, "ERROR", records[2]["level"])
	assert.Contains(t, records[2]["error"], "incompatible features")
}

func TestLoggers(t *testing.T) {
	assert.NotNil(t, NewLogger(nil))
	assert.NotNil(t, NewJSONLogger(slog.LevelInfo))
	assert.NotNil(t, NewTextLogger(slog.LevelInfo))

	l := NoopLogger()
	assert.False(t, l.Enabled(t.Context(), slog.LevelError))
}

func TestWithLoggerNil(t *testing.T) {
	o := defaultOptions()
	WithLogger(nil)(&o)
	assert.NotNil(t, o.logger)
}
