// Package endian provides the byte order engine used to decode on-disk
// archive structures.
//
// The MPQ format is little-endian throughout, so the engine exists mainly to
// give section parsing a single injection point: every Parse function takes
// byte slices and reads them through the engine returned by
// GetLittleEndianEngine.
package endian

import "encoding/binary"

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for byte order operations.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian, so any code
// written against the standard library interoperates directly.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine. This is the byte
// order of every integer field in the archive format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
