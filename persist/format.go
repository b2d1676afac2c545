// Package persist provides sectioned binary snapshots of a SlotVec.
//
// Layout:
//
//	header:  magic, version, compression flag, codec name
//	body:    length, element count, occupancy (roaring bitmap),
//	         element payload (codec-encoded, optionally compressed)
//	footer:  CRC32 checksum of the body
//
// Files are self-describing: the header records the codec name and the
// compression used, so Load needs no out-of-band configuration.
package persist

import "errors"

// MagicNumber identifies slotvec snapshot files ("SLTV").
const MagicNumber uint32 = 0x534C5456

// Version is the current snapshot format version.
const Version uint32 = 1

// Compression selects how the element payload is compressed.
type Compression uint8

const (
	// CompressionNone stores the payload as-is.
	CompressionNone Compression = iota

	// CompressionZstd compresses the payload with zstd. The default:
	// good ratio at high speed.
	CompressionZstd

	// CompressionLZ4 compresses the payload with the LZ4 frame format.
	// Faster decompression, lower ratio than zstd.
	CompressionLZ4
)

var (
	// ErrInvalidMagic is returned when the file does not start with the
	// slotvec snapshot magic number.
	ErrInvalidMagic = errors.New("invalid magic number")

	// ErrInvalidVersion is returned when the snapshot format version is
	// not supported.
	ErrInvalidVersion = errors.New("unsupported snapshot version")

	// ErrUnknownCodec is returned when the codec named in the header is
	// not registered.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrUnknownCompression is returned when the compression flag is not
	// recognized.
	ErrUnknownCompression = errors.New("unknown compression")

	// ErrChecksumMismatch is returned when the body checksum does not
	// match the stored footer.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrCorrupted is returned when the sections are internally
	// inconsistent (e.g. occupancy and payload disagree).
	ErrCorrupted = errors.New("corrupted snapshot")
)
