package section

import (
	"fmt"

	"github.com/arloliu/mopaq/errs"
)

// HashEntry is one 16-byte record of the hash table. The table addresses
// files by the pair of name hashes; BlockIndex points into the block table
// or holds a sentinel for empty and deleted slots.
type HashEntry struct {
	HashA      uint32
	HashB      uint32
	Locale     uint16
	Platform   uint16
	BlockIndex uint32
}

// Parse decodes one entry from data.
func (e *HashEntry) Parse(data []byte) error {
	if len(data) < HashEntrySize {
		return fmt.Errorf("%w: hash entry needs %d bytes, have %d", errs.ErrTruncatedArchive, HashEntrySize, len(data))
	}

	e.HashA = engine.Uint32(data[0:4])
	e.HashB = engine.Uint32(data[4:8])
	e.Locale = engine.Uint16(data[8:10])
	e.Platform = engine.Uint16(data[10:12])
	e.BlockIndex = engine.Uint32(data[12:16])

	return nil
}

// Bytes serializes the entry into its 16-byte layout.
func (e *HashEntry) Bytes() []byte {
	b := make([]byte, 0, HashEntrySize)
	b = engine.AppendUint32(b, e.HashA)
	b = engine.AppendUint32(b, e.HashB)
	b = engine.AppendUint16(b, e.Locale)
	b = engine.AppendUint16(b, e.Platform)
	b = engine.AppendUint32(b, e.BlockIndex)

	return b
}

// Empty reports whether the slot resolves to nothing, either never used or
// deleted.
func (e *HashEntry) Empty() bool {
	return e.BlockIndex == BlockIndexEmpty || e.BlockIndex == BlockIndexDeleted
}

// ParseHashTable unpacks a decrypted hash table into its entries. The
// plaintext length must be a whole number of records.
func ParseHashTable(data []byte) ([]HashEntry, error) {
	if len(data)%HashEntrySize != 0 {
		return nil, fmt.Errorf("%w: hash table length %d", errs.ErrTruncatedArchive, len(data))
	}

	entries := make([]HashEntry, len(data)/HashEntrySize)
	for i := range entries {
		if err := entries[i].Parse(data[i*HashEntrySize:]); err != nil {
			return nil, err
		}
	}

	return entries, nil
}
