package crypt

import (
	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/mopaq/endian"
)

var engine = endian.GetLittleEndianEngine()

// cryptTable is the shared lookup table: 5 logical rows of 256 words,
// addressed flat. Rows 0-3 key the four hash purposes, row 4 feeds the
// cipher state recurrence.
var cryptTable [0x500]uint32

func init() {
	seed := uint32(0x00100001)

	for i := 0; i < 0x100; i++ {
		index := i
		for j := 0; j < 5; j++ {
			seed = (seed*125 + 3) % 0x2AAAAB
			temp1 := (seed & 0xFFFF) << 0x10

			seed = (seed*125 + 3) % 0x2AAAAB
			temp2 := seed & 0xFFFF

			cryptTable[index] = temp1 | temp2
			index += 0x100
		}
	}
}

// TableBytes returns the little-endian serialization of the crypt table.
// It is intended for integrity checks; mutating the result has no effect on
// the table itself.
func TableBytes() []byte {
	buf := make([]byte, 0, len(cryptTable)*4)
	for _, v := range cryptTable {
		buf = engine.AppendUint32(buf, v)
	}

	return buf
}

// TableDigest returns the xxHash64 fingerprint of the crypt table's
// little-endian serialization.
func TableDigest() uint64 {
	return xxhash.Sum64(TableBytes())
}
