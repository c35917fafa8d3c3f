package format

type (
	// CodecType is the one-byte codec tag prefixed to every compressed
	// payload inside an archive.
	CodecType uint8

	// BlockFlags is the flags bitfield of a block table entry.
	BlockFlags uint32
)

const (
	CodecNone        CodecType = 0x00 // CodecNone leaves the payload unchanged.
	CodecDeflate     CodecType = 0x02 // CodecDeflate is a zlib stream (window size 15).
	CodecImplode     CodecType = 0x08 // CodecImplode is a PKWare DCL imploded stream.
	CodecBzip2       CodecType = 0x10 // CodecBzip2 is a bzip2 stream.
	CodecLZMA        CodecType = 0x12 // CodecLZMA is an LZMA stream.
	CodecSparse      CodecType = 0x20 // CodecSparse is sparse/RLE compressed.
	CodecADPCMMono   CodecType = 0x40 // CodecADPCMMono is ADPCM-compressed mono audio.
	CodecADPCMStereo CodecType = 0x80 // CodecADPCMStereo is ADPCM-compressed stereo audio.
)

// Block table entry flags.
const (
	FlagImplode      BlockFlags = 0x00000100 // imploded with the PKWare library
	FlagCompress     BlockFlags = 0x00000200 // compressed, codec tag per sector
	FlagEncrypted    BlockFlags = 0x00010000 // sectors encrypted with the file key
	FlagFixKey       BlockFlags = 0x00020000 // file key adjusted by offset and size
	FlagSingleUnit   BlockFlags = 0x01000000 // stored as one blob, no sector table
	FlagDeleteMarker BlockFlags = 0x02000000 // deletion marker in a patch archive
	FlagSectorCRC    BlockFlags = 0x04000000 // CRC block follows the data sectors
	FlagExists       BlockFlags = 0x80000000 // entry refers to a stored file
)

// Archive signatures, little-endian. ClassicMagic is "MPQ\x1a", the header
// of the archive body; UserDataMagic is "MPQ\x1b", the user-data wrapper
// that precedes the body in some layouts.
const (
	ClassicMagic  uint32 = 0x1A51504D
	UserDataMagic uint32 = 0x1B51504D
)

func (c CodecType) String() string {
	switch c {
	case CodecNone:
		return "None"
	case CodecDeflate:
		return "Deflate"
	case CodecImplode:
		return "Implode"
	case CodecBzip2:
		return "Bzip2"
	case CodecLZMA:
		return "LZMA"
	case CodecSparse:
		return "Sparse"
	case CodecADPCMMono:
		return "ADPCMMono"
	case CodecADPCMStereo:
		return "ADPCMStereo"
	default:
		return "Unknown"
	}
}

// Has reports whether all bits of flag are set.
func (f BlockFlags) Has(flag BlockFlags) bool {
	return f&flag == flag
}
