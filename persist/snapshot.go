package persist

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/slotvec"
	"github.com/hupe1980/slotvec/codec"
	"github.com/hupe1980/slotvec/core"
)

var byteOrder = binary.LittleEndian

// Options configures snapshot creation.
type Options struct {
	// Codec encodes the element payload. Nil means codec.Default. The
	// codec name is recorded in the header.
	Codec codec.Codec

	// Compression selects the payload compression. Default zstd.
	Compression Compression
}

// LoadOptions configures snapshot loading.
type LoadOptions[T any] struct {
	// Core selects the backend of the restored SlotVec. Nil means the
	// default bit-tracked core.
	Core core.Core[T]
}

// Save writes a snapshot of sv to w.
//
// Only the logical state is captured: the high-water mark, the occupied
// index set and the elements. Unused capacity is not recorded; a loaded
// snapshot starts with capacity equal to the high-water mark.
func Save[T any](w io.Writer, sv *slotvec.SlotVec[T], optFns ...func(o *Options)) error {
	opts := Options{
		Compression: CompressionZstd,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	c := opts.Codec
	if c == nil {
		c = codec.Default
	}

	// Header, outside the checksummed region.
	if err := binary.Write(w, byteOrder, MagicNumber); err != nil {
		return fmt.Errorf("persist: write magic: %w", err)
	}
	if err := binary.Write(w, byteOrder, Version); err != nil {
		return fmt.Errorf("persist: write version: %w", err)
	}
	if err := binary.Write(w, byteOrder, uint8(opts.Compression)); err != nil {
		return fmt.Errorf("persist: write compression: %w", err)
	}
	if err := writeBytes(w, []byte(c.Name())); err != nil {
		return fmt.Errorf("persist: write codec name: %w", err)
	}

	cw := newChecksumWriter(w)

	if err := binary.Write(cw, byteOrder, uint64(sv.NextPushIndex())); err != nil {
		return fmt.Errorf("persist: write length: %w", err)
	}
	if err := binary.Write(cw, byteOrder, uint64(sv.NumElements())); err != nil {
		return fmt.Errorf("persist: write element count: %w", err)
	}

	occupancy, err := sv.OccupancyBitmap().ToBytes()
	if err != nil {
		return fmt.Errorf("persist: serialize occupancy: %w", err)
	}
	if err := writeBytes(cw, occupancy); err != nil {
		return fmt.Errorf("persist: write occupancy: %w", err)
	}

	elems := make([]T, 0, sv.NumElements())
	for v := range sv.Values() {
		elems = append(elems, v)
	}
	payload, err := c.Marshal(elems)
	if err != nil {
		return fmt.Errorf("persist: encode payload: %w", err)
	}
	payload, err = compress(payload, opts.Compression)
	if err != nil {
		return err
	}
	if err := writeBytes(cw, payload); err != nil {
		return fmt.Errorf("persist: write payload: %w", err)
	}

	// Footer: checksum of the body, outside the checksummed region.
	if err := binary.Write(w, byteOrder, cw.Sum()); err != nil {
		return fmt.Errorf("persist: write checksum: %w", err)
	}

	return nil
}

// Load restores a SlotVec from a snapshot produced by Save. The restored
// container has the same occupied indices, elements and next push index as
// the saved one; capacity equals the high-water mark.
func Load[T any](r io.Reader, optFns ...func(o *LoadOptions[T])) (*slotvec.SlotVec[T], error) {
	opts := LoadOptions[T]{}
	for _, fn := range optFns {
		fn(&opts)
	}

	var magic uint32
	if err := binary.Read(r, byteOrder, &magic); err != nil {
		return nil, fmt.Errorf("persist: read magic: %w", err)
	}
	if magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, magic)
	}

	var version uint32
	if err := binary.Read(r, byteOrder, &version); err != nil {
		return nil, fmt.Errorf("persist: read version: %w", err)
	}
	if version != Version {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, version)
	}

	var compression uint8
	if err := binary.Read(r, byteOrder, &compression); err != nil {
		return nil, fmt.Errorf("persist: read compression: %w", err)
	}

	codecName, err := readBytes(r)
	if err != nil {
		return nil, fmt.Errorf("persist: read codec name: %w", err)
	}
	c, ok := codec.ByName(string(codecName))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	cr := newChecksumReader(r)

	var length, numElems uint64
	if err := binary.Read(cr, byteOrder, &length); err != nil {
		return nil, fmt.Errorf("persist: read length: %w", err)
	}
	if err := binary.Read(cr, byteOrder, &numElems); err != nil {
		return nil, fmt.Errorf("persist: read element count: %w", err)
	}
	if numElems > length || length > math.MaxInt {
		return nil, fmt.Errorf("%w: %d elements above high-water mark %d", ErrCorrupted, numElems, length)
	}

	occupancy, err := readBytes(cr)
	if err != nil {
		return nil, fmt.Errorf("persist: read occupancy: %w", err)
	}
	rb := roaring.New()
	if err := rb.UnmarshalBinary(occupancy); err != nil {
		return nil, fmt.Errorf("persist: decode occupancy: %w", err)
	}
	if rb.GetCardinality() != numElems {
		return nil, fmt.Errorf("%w: occupancy holds %d indices, expected %d", ErrCorrupted, rb.GetCardinality(), numElems)
	}

	payload, err := readBytes(cr)
	if err != nil {
		return nil, fmt.Errorf("persist: read payload: %w", err)
	}

	var footer uint32
	if err := binary.Read(r, byteOrder, &footer); err != nil {
		return nil, fmt.Errorf("persist: read checksum: %w", err)
	}
	if err := cr.Verify(footer); err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}

	payload, err = decompress(payload, Compression(compression))
	if err != nil {
		return nil, err
	}

	var elems []T
	if err := c.Unmarshal(payload, &elems); err != nil {
		return nil, fmt.Errorf("persist: decode payload: %w", err)
	}
	if uint64(len(elems)) != numElems {
		return nil, fmt.Errorf("%w: payload holds %d elements, expected %d", ErrCorrupted, len(elems), numElems)
	}

	svOpts := []func(o *slotvec.Options[T]){slotvec.WithCapacity[T](int(length))}
	if opts.Core != nil {
		svOpts = append(svOpts, slotvec.WithCore[T](opts.Core))
	}
	sv := slotvec.New[T](svOpts...)

	k := 0
	it := rb.Iterator()
	for it.HasNext() {
		idx := int(it.Next())
		if uint64(idx) >= length {
			return nil, fmt.Errorf("%w: occupied index %d above high-water mark %d", ErrCorrupted, idx, length)
		}
		sv.Insert(idx, elems[k])
		k++
	}

	// Restore trailing holes: if the saved high-water mark lies above the
	// last occupied index, touch the top slot and vacate it again so the
	// next push index matches the saved one.
	if length > 0 && !sv.Has(int(length-1)) {
		var zero T
		sv.Insert(int(length-1), zero)
		sv.Remove(int(length - 1))
	}

	return sv, nil
}

// SaveFile writes a snapshot of sv to filename, replacing any existing file.
func SaveFile[T any](filename string, sv *slotvec.SlotVec[T], optFns ...func(o *Options)) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("persist: create %s: %w", filename, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := Save(w, sv, optFns...); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("persist: flush %s: %w", filename, err)
	}
	return f.Sync()
}

// LoadFile restores a SlotVec from a snapshot file.
func LoadFile[T any](filename string, optFns ...func(o *LoadOptions[T])) (*slotvec.SlotVec[T], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("persist: open %s: %w", filename, err)
	}
	defer f.Close()

	return Load(bufio.NewReader(f), optFns...)
}

func compress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("persist: create zstd encoder: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, fmt.Errorf("persist: lz4 compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("persist: lz4 close: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}
}

func decompress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("persist: create zstd decoder: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("persist: zstd decompress: %w", err)
		}
		return out, nil
	case CompressionLZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("persist: lz4 decompress: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}
}

// writeBytes writes a uint32 length prefix followed by the bytes.
func writeBytes(w io.Writer, b []byte) error {
	if len(b) > math.MaxUint32 {
		return fmt.Errorf("persist: section of %d bytes exceeds format limit", len(b))
	}
	if err := binary.Write(w, byteOrder, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// readBytes reads a uint32 length prefix followed by the bytes. The prefix is
// untrusted input (it precedes checksum verification), so the buffer grows
// with the data actually read instead of being allocated upfront: a corrupted
// prefix demanding gigabytes fails with a small read on truncated input.
func readBytes(r io.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, byteOrder, &n); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(n)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
