package section

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mopaq/errs"
	"github.com/arloliu/mopaq/format"
)

func classicHeader() *ArchiveHeader {
	return &ArchiveHeader{
		Magic:             format.ClassicMagic,
		HeaderSize:        HeaderSize,
		ArchiveSize:       0x1000,
		FormatVersion:     0,
		SectorSizeShift:   3,
		HashTableOffset:   0x200,
		BlockTableOffset:  0x300,
		HashTableEntries:  16,
		BlockTableEntries: 4,
	}
}

func TestArchiveHeader_ParseBytesRoundTrip(t *testing.T) {
	h := classicHeader()

	parsed := &ArchiveHeader{}
	require.NoError(t, parsed.Parse(h.Bytes()))
	require.Equal(t, h.Magic, parsed.Magic)
	require.Equal(t, h.ArchiveSize, parsed.ArchiveSize)
	require.Equal(t, h.SectorSizeShift, parsed.SectorSizeShift)
	require.Equal(t, h.HashTableOffset, parsed.HashTableOffset)
	require.Equal(t, h.BlockTableOffset, parsed.BlockTableOffset)
	require.Equal(t, h.HashTableEntries, parsed.HashTableEntries)
	require.Equal(t, h.BlockTableEntries, parsed.BlockTableEntries)
}

func TestArchiveHeader_SectorSize(t *testing.T) {
	tests := []struct {
		shift    uint16
		expected uint32
	}{
		{shift: 0, expected: 512},
		{shift: 3, expected: 4096},
		{shift: 4, expected: 8192},
	}

	for _, tt := range tests {
		h := &ArchiveHeader{SectorSizeShift: tt.shift}
		require.Equal(t, tt.expected, h.SectorSize())
	}
}

func TestReadArchiveHeader_Classic(t *testing.T) {
	h := classicHeader()

	got, err := ReadArchiveHeader(bytes.NewReader(h.Bytes()))
	require.NoError(t, err)
	require.Equal(t, int64(0), got.BaseOffset)
	require.Nil(t, got.UserData)
	require.Equal(t, uint32(16), got.HashTableEntries)
}

func TestReadArchiveHeader_UserData(t *testing.T) {
	const bodyOffset = 64

	ud := &UserDataHeader{
		Magic:         format.UserDataMagic,
		UserDataSize:  bodyOffset,
		ArchiveOffset: bodyOffset,
		HeaderSize:    8,
		Content:       []byte("replay!!"),
	}

	var file bytes.Buffer
	file.Write(ud.Bytes())
	file.Write(make([]byte, bodyOffset-file.Len())) // pad up to the body
	file.Write(classicHeader().Bytes())

	got, err := ReadArchiveHeader(bytes.NewReader(file.Bytes()))
	require.NoError(t, err)
	require.Equal(t, int64(bodyOffset), got.BaseOffset)
	require.NotNil(t, got.UserData)
	require.Equal(t, []byte("replay!!"), got.UserData.Content)
	require.Equal(t, uint32(0x200), got.HashTableOffset)
}

func TestReadArchiveHeader_V1Extension(t *testing.T) {
	h := classicHeader()
	h.FormatVersion = 1
	h.HashTableOffsetHigh = 1
	h.BlockTableOffsetHigh = 2
	h.ExtendedBlockTableOffset = 0x123456789

	got, err := ReadArchiveHeader(bytes.NewReader(h.Bytes()))
	require.NoError(t, err)
	require.Equal(t, int64(0x200)|int64(1)<<32, got.HashTableOffset64())
	require.Equal(t, int64(0x300)|int64(2)<<32, got.BlockTableOffset64())
	require.Equal(t, int64(0x123456789), got.ExtendedBlockTableOffset)
}

func TestReadArchiveHeader_V0IgnoresHighHalves(t *testing.T) {
	h := classicHeader()

	got, err := ReadArchiveHeader(bytes.NewReader(h.Bytes()))
	require.NoError(t, err)
	require.Equal(t, int64(0x200), got.HashTableOffset64())
	require.Equal(t, int64(0x300), got.BlockTableOffset64())
}

func TestReadArchiveHeader_Failures(t *testing.T) {
	tests := []struct {
		name     string
		data     func() []byte
		expected error
	}{
		{
			name: "bad magic",
			data: func() []byte {
				b := classicHeader().Bytes()
				b[3] = 0x1C
				return b
			},
			expected: errs.ErrInvalidMagic,
		},
		{
			name: "truncated header",
			data: func() []byte {
				return classicHeader().Bytes()[:20]
			},
			expected: errs.ErrTruncatedArchive,
		},
		{
			name: "unsupported version",
			data: func() []byte {
				h := classicHeader()
				h.FormatVersion = 2
				return h.Bytes()
			},
			expected: errs.ErrUnsupportedVersion,
		},
		{
			name: "sector size shift too large",
			data: func() []byte {
				h := classicHeader()
				h.SectorSizeShift = 24
				return h.Bytes()
			},
			expected: errs.ErrInvalidSectorSize,
		},
		{
			name: "v1 missing extension",
			data: func() []byte {
				h := classicHeader()
				b := h.Bytes()
				// Flip the version after serialization so the extension is absent.
				engine.PutUint16(b[12:14], 1)
				return b
			},
			expected: errs.ErrTruncatedArchive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadArchiveHeader(bytes.NewReader(tt.data()))
			require.ErrorIs(t, err, tt.expected)
			require.ErrorIs(t, err, errs.ErrMalformedArchive)
		})
	}
}

func TestHashEntry_ParseBytesRoundTrip(t *testing.T) {
	e := HashEntry{
		HashA:      0xFD657910,
		HashB:      0x4E9B98A7,
		Locale:     0x0409,
		Platform:   0x0001,
		BlockIndex: 7,
	}

	parsed := HashEntry{}
	require.NoError(t, parsed.Parse(e.Bytes()))
	require.Equal(t, e, parsed)
}

func TestHashEntry_Empty(t *testing.T) {
	require.True(t, (&HashEntry{BlockIndex: BlockIndexEmpty}).Empty())
	require.True(t, (&HashEntry{BlockIndex: BlockIndexDeleted}).Empty())
	require.False(t, (&HashEntry{BlockIndex: 0}).Empty())
}

func TestBlockEntry_ParseBytesRoundTrip(t *testing.T) {
	e := BlockEntry{
		Offset:       0x800,
		ArchivedSize: 1234,
		Size:         5000,
		Flags:        format.FlagExists | format.FlagCompress,
	}

	parsed := BlockEntry{}
	require.NoError(t, parsed.Parse(e.Bytes()))
	require.Equal(t, e, parsed)
}

func TestBlockEntry_Exists(t *testing.T) {
	tests := []struct {
		name     string
		entry    BlockEntry
		expected bool
	}{
		{
			name:     "exists with content",
			entry:    BlockEntry{ArchivedSize: 10, Flags: format.FlagExists},
			expected: true,
		},
		{
			name:     "exists flag clear",
			entry:    BlockEntry{ArchivedSize: 10},
			expected: false,
		},
		{
			name:     "zero archived size",
			entry:    BlockEntry{Flags: format.FlagExists},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.entry.Exists())
		})
	}
}

func TestParseTables(t *testing.T) {
	var raw []byte
	raw = append(raw, (&HashEntry{HashA: 1, HashB: 2, BlockIndex: 0}).Bytes()...)
	raw = append(raw, (&HashEntry{BlockIndex: BlockIndexEmpty}).Bytes()...)

	entries, err := ParseHashTable(raw)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, uint32(1), entries[0].HashA)
	require.True(t, entries[1].Empty())

	_, err = ParseHashTable(raw[:HashEntrySize+3])
	require.ErrorIs(t, err, errs.ErrMalformedArchive)

	blocks, err := ParseBlockTable((&BlockEntry{Size: 9, Flags: format.FlagExists}).Bytes())
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Equal(t, uint32(9), blocks[0].Size)

	_, err = ParseBlockTable(make([]byte, 17))
	require.ErrorIs(t, err, errs.ErrMalformedArchive)
}
