// Package section defines the fixed-shape on-disk structures of an archive:
// the archive header with its optional user-data wrapper and v1 extension,
// and the hash and block table entries.
//
// Each structure parses from (and serializes back to) its exact byte layout
// through the little-endian engine; discovery of the header inside a file,
// including the user-data indirection, lives in ReadArchiveHeader.
package section
