package crypt

import (
	"strings"

	"github.com/arloliu/mopaq/format"
)

// FileKey derives the decryption key of a stored file.
//
// The key is the HashFileKey hash of the file's basename. Archive member
// names use backslash separators; they are normalized to a single forward
// slash before the trailing path component is taken.
//
// When the entry carries FlagFixKey the raw key is bound to the file's
// placement: key = (key + offset) ^ size, where offset is the block entry's
// offset relative to the archive body and size is the original file size.
// All arithmetic is 32-bit modular.
func FileKey(name string, offset, size uint32, flags format.BlockFlags) uint32 {
	base := strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}

	key := HashString(base, HashFileKey)
	if flags.Has(format.FlagFixKey) {
		key = (key + offset) ^ size
	}

	return key
}
