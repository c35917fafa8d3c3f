package crypt

// DecryptBlock decrypts a slice of 32-bit words in place with the given key.
//
// The cipher is stateful: each word folds the plaintext back into the key
// stream, so it is not an involution. EncryptBlock is the paired inverse.
func DecryptBlock(data []uint32, key uint32) {
	seed := uint32(0xEEEEEEEE)

	for i := range data {
		seed += cryptTable[0x400+(key&0xFF)]
		plain := data[i] ^ (key + seed)
		key = ((^key << 0x15) + 0x11111111) | (key >> 0x0B)
		seed = plain + seed + (seed << 5) + 3
		data[i] = plain
	}
}

// EncryptBlock encrypts a slice of 32-bit words in place with the given key.
// It is the inverse of DecryptBlock.
func EncryptBlock(data []uint32, key uint32) {
	seed := uint32(0xEEEEEEEE)

	for i := range data {
		seed += cryptTable[0x400+(key&0xFF)]
		plain := data[i]
		data[i] = plain ^ (key + seed)
		key = ((^key << 0x15) + 0x11111111) | (key >> 0x0B)
		seed = plain + seed + (seed << 5) + 3
	}
}

// DecryptBytes decrypts data in place, interpreting it as little-endian
// 32-bit words. Bytes beyond the last full word pass through unchanged.
func DecryptBytes(data []byte, key uint32) {
	seed := uint32(0xEEEEEEEE)
	words := len(data) / 4

	for i := 0; i < words; i++ {
		seed += cryptTable[0x400+(key&0xFF)]
		plain := engine.Uint32(data[i*4:]) ^ (key + seed)
		key = ((^key << 0x15) + 0x11111111) | (key >> 0x0B)
		seed = plain + seed + (seed << 5) + 3
		engine.PutUint32(data[i*4:], plain)
	}
}

// EncryptBytes encrypts data in place, interpreting it as little-endian
// 32-bit words. Bytes beyond the last full word pass through unchanged.
// It is the inverse of DecryptBytes.
func EncryptBytes(data []byte, key uint32) {
	seed := uint32(0xEEEEEEEE)
	words := len(data) / 4

	for i := 0; i < words; i++ {
		seed += cryptTable[0x400+(key&0xFF)]
		plain := engine.Uint32(data[i*4:])
		engine.PutUint32(data[i*4:], plain^(key+seed))
		key = ((^key << 0x15) + 0x11111111) | (key >> 0x0B)
		seed = plain + seed + (seed << 5) + 3
	}
}
