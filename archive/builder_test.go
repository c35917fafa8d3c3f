package archive

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/mopaq/crypt"
	"github.com/arloliu/mopaq/format"
	"github.com/arloliu/mopaq/section"
)

// testFile describes one member of a synthetic archive.
type testFile struct {
	name  string
	data  []byte
	flags format.BlockFlags

	// rawSectors overrides the stored sector payloads; data then only
	// provides the declared original size. Used to plant quirk sectors.
	rawSectors [][]byte

	// noExists clears the exists flag; storeNothing keeps the flag but
	// stores zero bytes. Both must read back as not found.
	noExists     bool
	storeNothing bool
}

// testArchive assembles a valid archive image in memory, in the layout
// header | blobs | hash table | block table, optionally wrapped in a
// user-data block.
type testArchive struct {
	sectorShift uint16
	version     uint16
	userDataAt  int // >0: wrap in a user-data block with the body there
	noListfile  bool
	files       []testFile
}

func zlibPack(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

// packSector stores one sector: tagged deflate when that gains at least a
// byte and the file is compressed, raw otherwise.
func packSector(t *testing.T, chunk []byte, compressed bool) []byte {
	t.Helper()

	if !compressed || len(chunk) == 0 {
		return chunk
	}

	packed := append([]byte{byte(format.CodecDeflate)}, zlibPack(t, chunk)...)
	if len(packed) < len(chunk) {
		return packed
	}

	return chunk
}

func (ta *testArchive) listfileData() []byte {
	var buf bytes.Buffer
	for _, f := range ta.files {
		buf.WriteString(f.name)
		buf.WriteString("\r\n")
	}
	// Like real archives, the listfile names itself as its last member.
	buf.WriteString(ListfileName)
	buf.WriteString("\r\n")

	return buf.Bytes()
}

func (ta *testArchive) build(t *testing.T) []byte {
	t.Helper()

	files := ta.files
	if !ta.noListfile {
		files = append(files, testFile{
			name:  ListfileName,
			data:  ta.listfileData(),
			flags: format.FlagSingleUnit,
		})
	}

	headerLen := section.HeaderSize
	if ta.version >= 1 {
		headerLen += section.ExtHeaderSize
	}

	sectorSize := int(section.BaseSectorSize) << ta.sectorShift

	var blobs bytes.Buffer
	blockEntries := make([]section.BlockEntry, 0, len(files))
	hashEntries := make([]section.HashEntry, 0, len(files))

	for i, f := range files {
		offset := uint32(headerLen + blobs.Len())
		size := uint32(len(f.data))

		flags := f.flags | format.FlagExists
		if f.noExists {
			flags &^= format.FlagExists
		}

		var blob []byte
		switch {
		case f.storeNothing:
			blob = nil
		case flags.Has(format.FlagSingleUnit):
			blob = ta.buildSingleUnit(t, f)
		default:
			key := crypt.FileKey(f.name, offset, size, flags)
			blob = ta.buildSectored(t, f, sectorSize, key, flags)
		}

		blockEntries = append(blockEntries, section.BlockEntry{
			Offset:       offset,
			ArchivedSize: uint32(len(blob)),
			Size:         size,
			Flags:        flags,
		})
		hashEntries = append(hashEntries, section.HashEntry{
			HashA:      crypt.HashString(f.name, crypt.HashNameA),
			HashB:      crypt.HashString(f.name, crypt.HashNameB),
			BlockIndex: uint32(i),
		})

		blobs.Write(blob)
	}

	hashTableOffset := uint32(headerLen + blobs.Len())
	var hashRaw []byte
	for i := range hashEntries {
		hashRaw = append(hashRaw, hashEntries[i].Bytes()...)
	}
	crypt.EncryptBytes(hashRaw, crypt.HashString("(hash table)", crypt.HashFileKey))

	blockTableOffset := hashTableOffset + uint32(len(hashRaw))
	var blockRaw []byte
	for i := range blockEntries {
		blockRaw = append(blockRaw, blockEntries[i].Bytes()...)
	}
	crypt.EncryptBytes(blockRaw, crypt.HashString("(block table)", crypt.HashFileKey))

	header := &section.ArchiveHeader{
		Magic:             format.ClassicMagic,
		HeaderSize:        uint32(headerLen),
		ArchiveSize:       blockTableOffset + uint32(len(blockRaw)),
		FormatVersion:     ta.version,
		SectorSizeShift:   ta.sectorShift,
		HashTableOffset:   hashTableOffset,
		BlockTableOffset:  blockTableOffset,
		HashTableEntries:  uint32(len(hashEntries)),
		BlockTableEntries: uint32(len(blockEntries)),
	}

	var body bytes.Buffer
	body.Write(header.Bytes())
	blobs.WriteTo(&body)
	body.Write(hashRaw)
	body.Write(blockRaw)

	if ta.userDataAt == 0 {
		return body.Bytes()
	}

	ud := &section.UserDataHeader{
		Magic:         format.UserDataMagic,
		UserDataSize:  uint32(ta.userDataAt),
		ArchiveOffset: uint32(ta.userDataAt),
		HeaderSize:    8,
		Content:       []byte("userdata"),
	}

	var file bytes.Buffer
	file.Write(ud.Bytes())
	require.LessOrEqual(t, file.Len(), ta.userDataAt, "user data block overruns the body offset")
	file.Write(make([]byte, ta.userDataAt-file.Len()))
	body.WriteTo(&file)

	return file.Bytes()
}

func (ta *testArchive) buildSingleUnit(t *testing.T, f testFile) []byte {
	t.Helper()

	if !f.flags.Has(format.FlagCompress) {
		return f.data
	}

	return append([]byte{byte(format.CodecDeflate)}, zlibPack(t, f.data)...)
}

func (ta *testArchive) buildSectored(t *testing.T, f testFile, sectorSize int, key uint32, flags format.BlockFlags) []byte {
	t.Helper()

	var payloads [][]byte
	if f.rawSectors != nil {
		payloads = f.rawSectors
	} else {
		count := len(f.data)/sectorSize + 1
		for i := 0; i < count; i++ {
			start := i * sectorSize
			end := start + sectorSize
			if start > len(f.data) {
				start = len(f.data)
			}
			if end > len(f.data) {
				end = len(f.data)
			}
			payloads = append(payloads, packSector(t, f.data[start:end], flags.Has(format.FlagCompress)))
		}
	}

	slots := len(payloads)
	if flags.Has(format.FlagSectorCRC) {
		slots++ // the CRC block claims the slot after the data
	}

	nOffsets := slots + 1
	positions := make([]uint32, 0, nOffsets)
	pos := uint32(4 * nOffsets)
	positions = append(positions, pos)
	for _, p := range payloads {
		pos += uint32(len(p))
		positions = append(positions, pos)
	}
	if flags.Has(format.FlagSectorCRC) {
		pos += uint32(4 * len(payloads))
		positions = append(positions, pos)
	}

	var sot []byte
	for _, p := range positions {
		sot = engine.AppendUint32(sot, p)
	}
	if flags.Has(format.FlagEncrypted) {
		crypt.EncryptBytes(sot, key-1)
	}

	var blob bytes.Buffer
	blob.Write(sot)
	for i, p := range payloads {
		stored := make([]byte, len(p))
		copy(stored, p)
		if flags.Has(format.FlagEncrypted) {
			crypt.EncryptBytes(stored, key+uint32(i))
		}
		blob.Write(stored)
	}
	if flags.Has(format.FlagSectorCRC) {
		blob.Write(make([]byte, 4*len(payloads))) // unverified CRC block
	}

	return blob.Bytes()
}

// compressibleData produces data that deflate reliably shrinks.
func compressibleData(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte("abcdefgh"[i%8])
	}

	return data
}

// incompressibleData produces pseudo-random data that deflate cannot shrink.
func incompressibleData(n int) []byte {
	data := make([]byte, n)
	state := uint32(0x9E3779B9)
	for i := range data {
		state = state*1664525 + 1013904223
		data[i] = byte(state >> 24)
	}

	return data
}
