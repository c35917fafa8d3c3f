package archive

import (
	"fmt"

	"github.com/arloliu/mopaq/crypt"
	"github.com/arloliu/mopaq/errs"
	"github.com/arloliu/mopaq/section"
)

// resolve maps a member name to its block entry.
//
// The hash table is scanned linearly for the first entry whose verification
// hashes both match; locale and platform are ignored. Names that resolve to
// an absent block (exists flag clear, or nothing stored) report not found,
// which keeps deleted and zero-byte members indistinguishable from missing
// ones, as the read path requires.
func (a *Archive) resolve(name string) (*section.BlockEntry, error) {
	hashA := crypt.HashString(name, crypt.HashNameA)
	hashB := crypt.HashString(name, crypt.HashNameB)

	for i := range a.hashTable {
		entry := &a.hashTable[i]
		if entry.HashA != hashA || entry.HashB != hashB {
			continue
		}

		if entry.Empty() {
			return nil, fmt.Errorf("%w: %s", errs.ErrFileNotFound, name)
		}

		if int(entry.BlockIndex) >= len(a.blockTable) {
			return nil, fmt.Errorf("%w: hash entry %d points to block %d of %d",
				errs.ErrMalformedArchive, i, entry.BlockIndex, len(a.blockTable))
		}

		block := &a.blockTable[entry.BlockIndex]
		if !block.Exists() {
			return nil, fmt.Errorf("%w: %s", errs.ErrFileNotFound, name)
		}

		return block, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrFileNotFound, name)
}
