package archive

import (
	"fmt"

	"github.com/arloliu/mopaq/crypt"
	"github.com/arloliu/mopaq/endian"
	"github.com/arloliu/mopaq/errs"
	"github.com/arloliu/mopaq/format"
	"github.com/arloliu/mopaq/internal/pool"
	"github.com/arloliu/mopaq/section"
)

var engine = endian.GetLittleEndianEngine()

// ReadFile reads a member back to its original bytes.
//
// The name must match the stored member name (backslash separators, case
// does not matter). Missing members, deleted members and members with
// nothing stored all return errs.ErrFileNotFound.
func (a *Archive) ReadFile(name string) ([]byte, error) {
	return a.readFile(name, a.forceDecompress)
}

// ReadFileForced reads a member, routing every stored piece of a compressed
// file through the codec dispatcher even when its size suggests it was
// stored raw. Members without the compress flag read as with ReadFile.
func (a *Archive) ReadFileForced(name string) ([]byte, error) {
	return a.readFile(name, true)
}

func (a *Archive) readFile(name string, force bool) ([]byte, error) {
	block, err := a.resolve(name)
	if err != nil {
		return nil, err
	}

	blob, err := a.readAt(a.header.BaseOffset+int64(block.Offset), int(block.ArchivedSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	if block.Flags.Has(format.FlagSingleUnit) {
		return a.readSingleUnit(block, blob, force)
	}

	return a.readSectors(name, block, blob, force)
}

// readSingleUnit handles blobs stored as one piece. Compression only
// happens when it gained at least one byte, so an archived size no smaller
// than the original means the blob was stored raw. Single units are not
// sector-encrypted in this layout.
func (a *Archive) readSingleUnit(block *section.BlockEntry, blob []byte, force bool) ([]byte, error) {
	if block.Flags.Has(format.FlagCompress) && (force || block.Size > block.ArchivedSize) {
		return a.decoder.Decode(blob)
	}

	return blob, nil
}

// readSectors reassembles a multi-sector blob: decode the sector offset
// table, then decrypt and decompress each data sector and concatenate.
func (a *Archive) readSectors(name string, block *section.BlockEntry, blob []byte, force bool) ([]byte, error) {
	encrypted := block.Flags.Has(format.FlagEncrypted)

	var key uint32
	if encrypted {
		key = crypt.FileKey(name, block.Offset, block.Size, block.Flags)
	}

	// Always one trailing partial sector, even at an exact multiple; the
	// CRC block, when present, claims one more slot after the data.
	sectorSize := a.header.SectorSize()
	sectors := block.Size/sectorSize + 1
	if block.Flags.Has(format.FlagSectorCRC) {
		sectors++
	}

	nOffsets := int(sectors) + 1
	sotLen := 4 * nOffsets
	if len(blob) < sotLen {
		return nil, fmt.Errorf("%w: %s: offset table needs %d bytes, have %d",
			errs.ErrTruncatedArchive, name, sotLen, len(blob))
	}

	sot := make([]byte, sotLen)
	copy(sot, blob[:sotLen])
	if encrypted {
		crypt.DecryptBytes(sot, key-1)
	}

	positions := make([]uint32, nOffsets)
	for i := range positions {
		positions[i] = engine.Uint32(sot[i*4:])
	}

	// The slot after the last data sector belongs to the CRC block; the
	// read path steps around it and never verifies the values.
	dataSectors := nOffsets - 1
	if block.Flags.Has(format.FlagSectorCRC) {
		dataSectors--
	}

	buf := pool.GetSectorBuffer()
	defer pool.PutSectorBuffer(buf)

	remaining := int64(block.Size)
	for i := 0; i < dataSectors; i++ {
		start, end := positions[i], positions[i+1]
		if start > end || int(end) > len(blob) {
			return nil, fmt.Errorf("%w: %s: sector %d spans [%d, %d) of %d",
				errs.ErrInvalidSectorOffsets, name, i, start, end, len(blob))
		}

		sector := make([]byte, end-start)
		copy(sector, blob[start:end])

		if encrypted {
			crypt.DecryptBytes(sector, key+uint32(i))
		}

		flags := block.Flags
		// Some legacy archives implode sectors without declaring any
		// compression; such sectors start with 0x00 0x06. Route them
		// through the dispatcher as tagged implode payloads.
		if len(sector) >= 2 && sector[0] == 0x00 && sector[1] == 0x06 {
			flags |= format.FlagCompress
			sector = append([]byte{byte(format.CodecImplode)}, sector...)
		}

		// A sector is stored compressed only when that made it strictly
		// shorter than what is left to produce; otherwise it is raw.
		if flags.Has(format.FlagCompress) && (force || remaining > int64(len(sector))) {
			decoded, err := a.decoder.Decode(sector)
			if err != nil {
				return nil, fmt.Errorf("%s: sector %d: %w", name, i, err)
			}
			sector = decoded
		}

		remaining -= int64(len(sector))
		buf.Write(sector)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}
