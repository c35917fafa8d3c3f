// Package compress dispatches the per-sector codec tags of the archive
// format to their decoders.
//
// The first byte of a compressed payload names the codec; the Decoder routes
// the remaining bytes to the registered Decompressor for that tag. Deflate
// and bzip2 decode in process. PKWare implode is delegated to an external
// decoder binary through a replaceable adapter. LZMA, sparse and ADPCM are
// recognized but stubbed: in permissive mode the decoder warns and returns
// the raw payload, in strict mode it fails.
package compress
