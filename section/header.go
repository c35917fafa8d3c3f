package section

import (
	"fmt"
	"io"

	"github.com/arloliu/mopaq/endian"
	"github.com/arloliu/mopaq/errs"
	"github.com/arloliu/mopaq/format"
)

var engine = endian.GetLittleEndianEngine()

// ArchiveHeader is the unified archive header: the classic 32-byte header,
// the v1 extension when present, and the discovery results (the absolute
// offset of the archive body and the user-data wrapper, if any).
type ArchiveHeader struct {
	Magic             uint32
	HeaderSize        uint32
	ArchiveSize       uint32
	FormatVersion     uint16
	SectorSizeShift   uint16
	HashTableOffset   uint32
	BlockTableOffset  uint32
	HashTableEntries  uint32
	BlockTableEntries uint32

	// v1 extension, zero for format version 0.
	ExtendedBlockTableOffset int64
	HashTableOffsetHigh      int16
	BlockTableOffsetHigh     int16

	// BaseOffset is the absolute file offset of the archive body: zero for
	// the classic layout, the wrapper's archive offset otherwise.
	BaseOffset int64

	// UserData is the wrapper header preceding the body, nil for the
	// classic layout.
	UserData *UserDataHeader
}

// UserDataHeader is the 16-byte wrapper that precedes the archive body in
// the user-data layout, plus its opaque payload.
type UserDataHeader struct {
	Magic         uint32
	UserDataSize  uint32
	ArchiveOffset uint32
	HeaderSize    uint32

	// Content is the opaque user data blob of HeaderSize bytes.
	Content []byte
}

// Parse decodes the classic 32-byte header from data.
func (h *ArchiveHeader) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, have %d", errs.ErrTruncatedArchive, HeaderSize, len(data))
	}

	h.Magic = engine.Uint32(data[0:4])
	h.HeaderSize = engine.Uint32(data[4:8])
	h.ArchiveSize = engine.Uint32(data[8:12])
	h.FormatVersion = engine.Uint16(data[12:14])
	h.SectorSizeShift = engine.Uint16(data[14:16])
	h.HashTableOffset = engine.Uint32(data[16:20])
	h.BlockTableOffset = engine.Uint32(data[20:24])
	h.HashTableEntries = engine.Uint32(data[24:28])
	h.BlockTableEntries = engine.Uint32(data[28:32])

	return nil
}

// ParseExt decodes the 12-byte v1 extension from data and folds it in.
func (h *ArchiveHeader) ParseExt(data []byte) error {
	if len(data) < ExtHeaderSize {
		return fmt.Errorf("%w: extended header needs %d bytes, have %d", errs.ErrTruncatedArchive, ExtHeaderSize, len(data))
	}

	h.ExtendedBlockTableOffset = int64(engine.Uint64(data[0:8]))
	h.HashTableOffsetHigh = int16(engine.Uint16(data[8:10]))
	h.BlockTableOffsetHigh = int16(engine.Uint16(data[10:12]))

	return nil
}

// Bytes serializes the classic header; the v1 extension is appended when
// the format version declares it.
func (h *ArchiveHeader) Bytes() []byte {
	size := HeaderSize
	if h.FormatVersion >= 1 {
		size += ExtHeaderSize
	}

	b := make([]byte, 0, size)
	b = engine.AppendUint32(b, h.Magic)
	b = engine.AppendUint32(b, h.HeaderSize)
	b = engine.AppendUint32(b, h.ArchiveSize)
	b = engine.AppendUint16(b, h.FormatVersion)
	b = engine.AppendUint16(b, h.SectorSizeShift)
	b = engine.AppendUint32(b, h.HashTableOffset)
	b = engine.AppendUint32(b, h.BlockTableOffset)
	b = engine.AppendUint32(b, h.HashTableEntries)
	b = engine.AppendUint32(b, h.BlockTableEntries)

	if h.FormatVersion >= 1 {
		b = engine.AppendUint64(b, uint64(h.ExtendedBlockTableOffset))
		b = engine.AppendUint16(b, uint16(h.HashTableOffsetHigh))
		b = engine.AppendUint16(b, uint16(h.BlockTableOffsetHigh))
	}

	return b
}

// Parse decodes the 16-byte wrapper header from data. Content is read
// separately by the discovery code.
func (u *UserDataHeader) Parse(data []byte) error {
	if len(data) < UserDataHeaderSize {
		return fmt.Errorf("%w: user data header needs %d bytes, have %d", errs.ErrTruncatedArchive, UserDataHeaderSize, len(data))
	}

	u.Magic = engine.Uint32(data[0:4])
	u.UserDataSize = engine.Uint32(data[4:8])
	u.ArchiveOffset = engine.Uint32(data[8:12])
	u.HeaderSize = engine.Uint32(data[12:16])

	return nil
}

// Bytes serializes the wrapper header followed by its content.
func (u *UserDataHeader) Bytes() []byte {
	b := make([]byte, 0, UserDataHeaderSize+len(u.Content))
	b = engine.AppendUint32(b, u.Magic)
	b = engine.AppendUint32(b, u.UserDataSize)
	b = engine.AppendUint32(b, u.ArchiveOffset)
	b = engine.AppendUint32(b, u.HeaderSize)
	b = append(b, u.Content...)

	return b
}

// HashTableOffset64 returns the hash table offset relative to the archive
// body, widened with the v1 high half when present.
func (h *ArchiveHeader) HashTableOffset64() int64 {
	if h.FormatVersion >= 1 {
		return int64(h.HashTableOffset) | int64(uint16(h.HashTableOffsetHigh))<<32
	}

	return int64(h.HashTableOffset)
}

// BlockTableOffset64 returns the block table offset relative to the archive
// body, widened with the v1 high half when present.
func (h *ArchiveHeader) BlockTableOffset64() int64 {
	if h.FormatVersion >= 1 {
		return int64(h.BlockTableOffset) | int64(uint16(h.BlockTableOffsetHigh))<<32
	}

	return int64(h.BlockTableOffset)
}

// SectorSize returns the effective sector size, 512 << SectorSizeShift.
func (h *ArchiveHeader) SectorSize() uint32 {
	return BaseSectorSize << h.SectorSizeShift
}

// ReadArchiveHeader discovers and reads the archive header from r.
//
// The first four bytes select the layout: the classic magic parses the
// header at offset zero, the user-data magic reads the wrapper first and
// parses the header at the wrapper's archive offset. Any other magic fails
// with ErrInvalidMagic.
func ReadArchiveHeader(r io.ReadSeeker) (*ArchiveHeader, error) {
	var magicBuf [4]byte
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek archive start: %w", err)
	}
	if _, err := io.ReadFull(r, magicBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTruncatedArchive, err)
	}

	switch engine.Uint32(magicBuf[:]) {
	case format.ClassicMagic:
		return readHeaderAt(r, 0, nil)

	case format.UserDataMagic:
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek user data header: %w", err)
		}
		udBuf := make([]byte, UserDataHeaderSize)
		if _, err := io.ReadFull(r, udBuf); err != nil {
			return nil, fmt.Errorf("%w: user data header: %v", errs.ErrTruncatedArchive, err)
		}

		ud := &UserDataHeader{}
		if err := ud.Parse(udBuf); err != nil {
			return nil, err
		}

		ud.Content = make([]byte, ud.HeaderSize)
		if _, err := io.ReadFull(r, ud.Content); err != nil {
			return nil, fmt.Errorf("%w: user data content: %v", errs.ErrTruncatedArchive, err)
		}

		return readHeaderAt(r, int64(ud.ArchiveOffset), ud)

	default:
		return nil, fmt.Errorf("%w: %02x %02x %02x %02x",
			errs.ErrInvalidMagic, magicBuf[0], magicBuf[1], magicBuf[2], magicBuf[3])
	}
}

func readHeaderAt(r io.ReadSeeker, offset int64, ud *UserDataHeader) (*ArchiveHeader, error) {
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek archive header: %w", err)
	}

	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("%w: archive header: %v", errs.ErrTruncatedArchive, err)
	}

	h := &ArchiveHeader{BaseOffset: offset, UserData: ud}
	if err := h.Parse(buf); err != nil {
		return nil, err
	}

	if h.Magic != format.ClassicMagic {
		return nil, fmt.Errorf("%w: archive body magic 0x%08X", errs.ErrInvalidMagic, h.Magic)
	}
	if h.FormatVersion > 1 {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, h.FormatVersion)
	}
	if h.SectorSizeShift > MaxSectorSizeShift {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidSectorSize, h.SectorSizeShift)
	}

	if h.FormatVersion == 1 {
		extBuf := make([]byte, ExtHeaderSize)
		if _, err := io.ReadFull(r, extBuf); err != nil {
			return nil, fmt.Errorf("%w: extended header: %v", errs.ErrTruncatedArchive, err)
		}
		if err := h.ParseExt(extBuf); err != nil {
			return nil, err
		}
	}

	return h, nil
}
