package features

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"
)

const (
	// FormatMagic identifies a persisted feature matrix ("VDFM" little-endian).
	FormatMagic uint32 = 0x4D464456
	// FormatVersion is the current file format version.
	FormatVersion uint16 = 1
	// HeaderSize is the size of FileHeader on disk.
	HeaderSize = 32
)

// crc32cTable is pre-computed for the CRC32-Castagnoli polynomial.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// FileHeader is the fixed-size header of a persisted feature matrix.
type FileHeader struct {
	Magic       uint32
	Version     uint16
	Compression Compression
	Dimension   uint32
	Count       uint64
	PayloadSize uint64 // stored payload bytes, after compression
}

// RawPayloadSize returns the uncompressed payload size in bytes.
func (h *FileHeader) RawPayloadSize() (int, error) {
	if h.Dimension == 0 {
		return 0, &ErrInvalidDimension{Dimension: 0}
	}
	perRow := uint64(h.Dimension) * 8
	if h.Count > uint64(math.MaxInt)/perRow {
		return 0, fmt.Errorf("%w: %d rows of dimension %d overflow", ErrCorrupted, h.Count, h.Dimension)
	}
	return int(h.Count * perRow), nil
}

// WriteTo writes the header in little-endian byte order.
func (h *FileHeader) WriteTo(w io.Writer) (int64, error) {
	var buf [HeaderSize]byte
	binary.LittleEndian.PutUint32(buf[0:], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:], h.Version)
	buf[6] = byte(h.Compression)
	binary.LittleEndian.PutUint32(buf[8:], h.Dimension)
	binary.LittleEndian.PutUint64(buf[16:], h.Count)
	binary.LittleEndian.PutUint64(buf[24:], h.PayloadSize)

	n, err := w.Write(buf[:])
	return int64(n), err
}

// ReadFrom reads and validates a header.
func (h *FileHeader) ReadFrom(r io.Reader) (int64, error) {
	var buf [HeaderSize]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return int64(n), err
	}

	h.Magic = binary.LittleEndian.Uint32(buf[0:])
	h.Version = binary.LittleEndian.Uint16(buf[4:])
	h.Compression = Compression(buf[6])
	h.Dimension = binary.LittleEndian.Uint32(buf[8:])
	h.Count = binary.LittleEndian.Uint64(buf[16:])
	h.PayloadSize = binary.LittleEndian.Uint64(buf[24:])

	if h.Magic != FormatMagic {
		return int64(n), ErrBadMagic
	}
	if h.Version != FormatVersion {
		return int64(n), fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	return int64(n), nil
}

// WriteTo writes every stored row (ignoring any subset) to w.
func (d *Dense) WriteTo(w io.Writer) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	data := *d.data.Load()

	raw := make([]byte, 0, len(data)*8)
	for _, v := range data {
		raw = binary.LittleEndian.AppendUint64(raw, math.Float64bits(v))
	}

	payload, applied, err := compressPayload(raw, d.compression)
	if err != nil {
		return 0, err
	}

	header := FileHeader{
		Magic:       FormatMagic,
		Version:     FormatVersion,
		Compression: applied,
		Dimension:   uint32(d.dim),
		Count:       uint64(len(data) / d.dim),
		PayloadSize: uint64(len(payload)),
	}

	var written int64

	n, err := header.WriteTo(w)
	written += n
	if err != nil {
		return written, err
	}

	n2, err := w.Write(payload)
	written += int64(n2)
	if err != nil {
		return written, err
	}

	var checksumBuf [4]byte
	binary.LittleEndian.PutUint32(checksumBuf[:], crc32.Checksum(payload, crc32cTable))
	n3, err := w.Write(checksumBuf[:])
	written += int64(n3)

	return written, err
}

// ReadFrom replaces the matrix contents with the data read from r.
// The dimension is taken from the file and any subset is cleared.
func (d *Dense) ReadFrom(r io.Reader) (int64, error) {
	var read int64

	var header FileHeader
	n, err := header.ReadFrom(r)
	read += n
	if err != nil {
		return read, err
	}

	rawSize, err := header.RawPayloadSize()
	if err != nil {
		return read, err
	}
	if err := checkPayloadSize(header.Compression, header.PayloadSize, rawSize); err != nil {
		return read, err
	}

	// The payload grows with the bytes actually present, never with the
	// sizes claimed by the header.
	payload, err := io.ReadAll(io.LimitReader(r, int64(header.PayloadSize)))
	read += int64(len(payload))
	if err != nil {
		return read, err
	}
	if uint64(len(payload)) != header.PayloadSize {
		return read, fmt.Errorf("%w: payload %d of %d bytes: %w", ErrCorrupted, len(payload), header.PayloadSize, io.ErrUnexpectedEOF)
	}

	var checksumBuf [4]byte
	n2, err := io.ReadFull(r, checksumBuf[:])
	read += int64(n2)
	if err != nil {
		return read, err
	}
	if crc32.Checksum(payload, crc32cTable) != binary.LittleEndian.Uint32(checksumBuf[:]) {
		return read, ErrCorrupted
	}

	raw, err := decompressPayload(payload, header.Compression, rawSize)
	if err != nil {
		return read, err
	}

	data := make([]float64, rawSize/8)
	for i := range data {
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.dim = int(header.Dimension)
	d.data.Store(&data)
	d.subset.Store(nil)

	return read, nil
}

var (
	_ io.WriterTo   = (*Dense)(nil)
	_ io.ReaderFrom = (*Dense)(nil)
)
