package persist

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/slotvec"
	"github.com/hupe1980/slotvec/core"
)

func sampleVec(t *testing.T) *slotvec.SlotVec[string] {
	t.Helper()

	sv := slotvec.FromSlice([]string{"a", "b", "c", "d", "e"})
	sv.Remove(1)
	sv.Remove(3)
	return sv
}

func TestSaveLoadRoundtrip(t *testing.T) {
	compressions := map[string]Compression{
		"none": CompressionNone,
		"zstd": CompressionZstd,
		"lz4":  CompressionLZ4,
	}

	for name, compression := range compressions {
		t.Run(name, func(t *testing.T) {
			sv := sampleVec(t)

			var buf bytes.Buffer
			err := Save(&buf, sv, func(o *Options) {
				o.Compression = compression
			})
			require.NoError(t, err)

			loaded, err := Load[string](&buf)
			require.NoError(t, err)

			assert.True(t, slotvec.Equal(sv, loaded))
			assert.Equal(t, sv.NumElements(), loaded.NumElements())
			assert.Equal(t, sv.NextPushIndex(), loaded.NextPushIndex())
		})
	}
}

func TestLoadIntoTaggedCore(t *testing.T) {
	sv := sampleVec(t)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, sv))

	loaded, err := Load(&buf, func(o *LoadOptions[string]) {
		o.Core = core.NewTaggedCore[string]()
	})
	require.NoError(t, err)
	assert.True(t, slotvec.Equal(sv, loaded))
}

func TestRoundtripPreservesTrailingHoles(t *testing.T) {
	sv := slotvec.FromSlice([]int{1, 2, 3})
	sv.Remove(2)
	require.Equal(t, 3, sv.NextPushIndex())

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, sv))

	loaded, err := Load[int](&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.NextPushIndex(), "pushes resume above the saved high-water mark")
	assert.False(t, loaded.Has(2))
	assert.Equal(t, 3, loaded.Push(4))
}

func TestRoundtripEmpty(t *testing.T) {
	sv := slotvec.New[int]()

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, sv))

	loaded, err := Load[int](&buf)
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
	assert.Equal(t, 0, loaded.NextPushIndex())
}

func TestLoadInvalidMagic(t *testing.T) {
	_, err := Load[int](bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 0}))
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestLoadInvalidVersion(t *testing.T) {
	sv := slotvec.FromSlice([]int{1})
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, sv))

	data := buf.Bytes()
	data[4] = 99 // version field follows the 4-byte magic

	_, err := Load[int](bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func TestLoadChecksumMismatch(t *testing.T) {
	sv := sampleVec(t)
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, sv, func(o *Options) {
		o.Compression = CompressionNone
	}))

	// Flip a byte in the body. The header is magic(4), version(4),
	// compression(1) and the length-prefixed codec name.
	data := buf.Bytes()
	data[len(data)-10] ^= 0xff

	_, err := Load[string](bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestLoadTruncated(t *testing.T) {
	sv := sampleVec(t)
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, sv))

	data := buf.Bytes()
	for _, cut := range []int{0, 3, 8, 12, len(data) / 2, len(data) - 1} {
		_, err := Load[string](bytes.NewReader(data[:cut]))
		assert.Error(t, err, "truncated at %d bytes", cut)
	}
}

func TestLoadOversizedSectionPrefix(t *testing.T) {
	sv := sampleVec(t)
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, sv))

	// Corrupt the codec-name length prefix (it follows magic, version and
	// the compression byte) to demand 4 GiB. Load must fail on the
	// truncated input instead of allocating the full claimed size.
	data := buf.Bytes()
	for i := 9; i < 13; i++ {
		data[i] = 0xff
	}

	_, err := Load[string](bytes.NewReader(data))
	assert.Error(t, err)
}

func TestSaveLoadFile(t *testing.T) {
	sv := sampleVec(t)
	filename := filepath.Join(t.TempDir(), "snapshot.svz")

	require.NoError(t, SaveFile(filename, sv))

	loaded, err := LoadFile[string](filename)
	require.NoError(t, err)
	assert.True(t, slotvec.Equal(sv, loaded))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile[int](filepath.Join(t.TempDir(), "nope.svz"))
	assert.Error(t, err)
}

func TestSnapshotStructElements(t *testing.T) {
	type point struct {
		X, Y float64
		Tag  string
	}

	sv := slotvec.New[point]()
	sv.Push(point{X: 1, Y: 2, Tag: "a"})
	idx := sv.Push(point{X: 3, Y: 4, Tag: "b"})
	sv.Push(point{X: 5, Y: 6, Tag: "c"})
	sv.Remove(idx)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, sv))

	loaded, err := Load[point](&buf)
	require.NoError(t, err)

	got, ok := loaded.Get(2)
	require.True(t, ok)
	assert.Equal(t, point{X: 5, Y: 6, Tag: "c"}, got)
	assert.False(t, loaded.Has(1))
}
