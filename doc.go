// Package vecdist computes cosine distances between feature vectors.
//
// The numeric primitive lives in the distance package; feature collections
// live in the features package. This package wires them together and adds
// logging.
//
// # Quick Start
//
//	lhs, _ := features.NewDenseFromRows(3, [][]float64{{1, 2, 3}, {0, 1, 0}})
//	rhs, _ := features.NewDenseFromRows(3, [][]float64{{1, 2, 3}})
//
//	cd, err := vecdist.NewCosine(lhs, rhs, vecdist.WithLogger(vecdist.NewTextLogger(slog.LevelDebug)))
//	if err != nil {
//	    return err
//	}
//	d := cd.Compute(0, 0) // 0
//
// # Numeric Policy
//
// A zero vector on either side yields 0, and negative results caused by
// rounding are clamped to 0. Opposite vectors yield 2.
//
// # Feature Collections
//
// Dense stores rows in memory and lends them out by reference. Computed
// produces vectors on demand into pooled buffers. CosineDistance releases
// every borrow through the provider, so both kinds are handled the same way.
//
// Dense matrices can be persisted with WriteTo/ReadFrom, optionally with
// LZ4 or ZSTD compression:
//
//	lhs.SetCompression(features.CompressionZSTD)
//	_, err := lhs.WriteTo(f)
package vecdist
