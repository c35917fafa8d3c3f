package section

import (
	"fmt"

	"github.com/arloliu/mopaq/errs"
	"github.com/arloliu/mopaq/format"
)

// BlockEntry is one 16-byte record of the block table, describing where a
// stored file lives and how it is packed.
type BlockEntry struct {
	// Offset of the stored blob, relative to the archive body.
	Offset uint32
	// ArchivedSize is the on-disk byte count of the blob.
	ArchivedSize uint32
	// Size is the original byte count of the file.
	Size uint32
	// Flags describes packing: compression, encryption, sectoring.
	Flags format.BlockFlags
}

// Parse decodes one entry from data.
func (e *BlockEntry) Parse(data []byte) error {
	if len(data) < BlockEntrySize {
		return fmt.Errorf("%w: block entry needs %d bytes, have %d", errs.ErrTruncatedArchive, BlockEntrySize, len(data))
	}

	e.Offset = engine.Uint32(data[0:4])
	e.ArchivedSize = engine.Uint32(data[4:8])
	e.Size = engine.Uint32(data[8:12])
	e.Flags = format.BlockFlags(engine.Uint32(data[12:16]))

	return nil
}

// Bytes serializes the entry into its 16-byte layout.
func (e *BlockEntry) Bytes() []byte {
	b := make([]byte, 0, BlockEntrySize)
	b = engine.AppendUint32(b, e.Offset)
	b = engine.AppendUint32(b, e.ArchivedSize)
	b = engine.AppendUint32(b, e.Size)
	b = engine.AppendUint32(b, uint32(e.Flags))

	return b
}

// Exists reports whether the entry refers to stored content that can be
// read back: the exists flag is set and the blob is non-empty.
func (e *BlockEntry) Exists() bool {
	return e.Flags.Has(format.FlagExists) && e.ArchivedSize != 0
}

// ParseBlockTable unpacks a decrypted block table into its entries. The
// plaintext length must be a whole number of records.
func ParseBlockTable(data []byte) ([]BlockEntry, error) {
	if len(data)%BlockEntrySize != 0 {
		return nil, fmt.Errorf("%w: block table length %d", errs.ErrTruncatedArchive, len(data))
	}

	entries := make([]BlockEntry, len(data)/BlockEntrySize)
	for i := range entries {
		if err := entries[i].Parse(data[i*BlockEntrySize:]); err != nil {
			return nil, err
		}
	}

	return entries, nil
}
