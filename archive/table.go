package archive

import (
	"fmt"

	"github.com/arloliu/mopaq/crypt"
	"github.com/arloliu/mopaq/errs"
	"github.com/arloliu/mopaq/section"
)

// readHashTable reads, decrypts and unpacks the hash directory.
func (a *Archive) readHashTable() ([]section.HashEntry, error) {
	data, err := a.readTable(a.header.HashTableOffset64(), a.header.HashTableEntries, "(hash table)")
	if err != nil {
		return nil, fmt.Errorf("hash table: %w", err)
	}

	return section.ParseHashTable(data)
}

// readBlockTable reads, decrypts and unpacks the block directory.
func (a *Archive) readBlockTable() ([]section.BlockEntry, error) {
	data, err := a.readTable(a.header.BlockTableOffset64(), a.header.BlockTableEntries, "(block table)")
	if err != nil {
		return nil, fmt.Errorf("block table: %w", err)
	}

	return section.ParseBlockTable(data)
}

// readTable loads one directory table. The key is the FileKey-purpose hash
// of the table's well-known name; the ciphertext always spans 16 bytes per
// entry.
func (a *Archive) readTable(offset int64, entries uint32, keyName string) ([]byte, error) {
	length := int64(entries) * section.HashEntrySize
	start := a.header.BaseOffset + offset

	if start < 0 || length < 0 || start+length > a.size {
		return nil, fmt.Errorf("%w: %d entries at 0x%X in a %d byte file",
			errs.ErrInvalidTableRange, entries, start, a.size)
	}

	data, err := a.readAt(start, int(length))
	if err != nil {
		return nil, err
	}

	crypt.DecryptBytes(data, crypt.HashString(keyName, crypt.HashFileKey))

	return data, nil
}
