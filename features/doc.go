// Package features provides feature-vector collections that distances draw
// vectors from by index.
//
// # Borrowing
//
// A Provider hands out vectors as borrows. Every Vector carries an
// Ownership tag decided by the provider:
//
//   - Reference: the data aliases provider memory. Do not modify or retain it.
//   - Owned: the data was produced for the borrower alone.
//
// Borrowers do not inspect the tag. They hand every Vector back through
// Provider.Release, which dispatches on the tag:
//
//	v := p.Vector(i)
//	defer p.Release(v)
//
// # Providers
//
//   - Dense: an in-memory row-major matrix. Returns Reference borrows and
//     supports row subsets backed by a roaring bitmap.
//   - Computed: vectors produced on demand by a ComputeFunc. Returns Owned
//     borrows recycled through a buffer pool.
//
// # Persistence
//
// Dense implements io.WriterTo and io.ReaderFrom using a small binary format:
//
//	+----------------+
//	|   FileHeader   |  32 bytes - magic, version, compression, dimension, count, payload size
//	+----------------+
//	|    Payload     |  count * dim * 8 bytes of float64, optionally LZ4 or ZSTD compressed
//	+----------------+
//	|   Checksum     |  4 bytes - CRC32C of the payload as stored
//	+----------------+
//
// # Concurrency
//
// Both providers are safe for concurrent reads. Dense writes (Append, Set,
// SetSubset, ReadFrom) require external synchronization.
package features
