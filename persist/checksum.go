package persist

import (
	"fmt"
	"hash"
	"hash/crc32"
	"io"
)

// Checksum utilities for snapshot integrity verification.
//
// CRC32 (IEEE polynomial) detects accidental storage corruption cheaply.
// It is NOT cryptographically secure; do not rely on it for tamper
// detection.

// crc32Table is the IEEE polynomial table for checksum computation.
var crc32Table = crc32.MakeTable(crc32.IEEE)

// checksumWriter wraps an io.Writer and computes a running CRC32 checksum.
type checksumWriter struct {
	w    io.Writer
	hash hash.Hash32
}

func newChecksumWriter(w io.Writer) *checksumWriter {
	return &checksumWriter{
		w:    w,
		hash: crc32.New(crc32Table),
	}
}

// Write implements io.Writer.
func (cw *checksumWriter) Write(p []byte) (int, error) {
	if _, err := cw.hash.Write(p); err != nil {
		return 0, err
	}
	return cw.w.Write(p)
}

// Sum returns the current checksum value.
func (cw *checksumWriter) Sum() uint32 {
	return cw.hash.Sum32()
}

// checksumReader wraps an io.Reader and computes a running CRC32 checksum.
type checksumReader struct {
	r    io.Reader
	hash hash.Hash32
}

func newChecksumReader(r io.Reader) *checksumReader {
	return &checksumReader{
		r:    r,
		hash: crc32.New(crc32Table),
	}
}

// Read implements io.Reader.
func (cr *checksumReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		if _, hashErr := cr.hash.Write(p[:n]); hashErr != nil {
			return n, hashErr
		}
	}
	return n, err
}

// Sum returns the current checksum value.
func (cr *checksumReader) Sum() uint32 {
	return cr.hash.Sum32()
}

// Verify checks the computed checksum against the expected footer value.
func (cr *checksumReader) Verify(expected uint32) error {
	if actual := cr.Sum(); actual != expected {
		return fmt.Errorf("%w: expected 0x%08x, got 0x%08x", ErrChecksumMismatch, expected, actual)
	}
	return nil
}
