// Package mopaq reads MPQ (MoPaQ) archives, the container format of a
// family of legacy game titles.
//
// Opening an archive parses the header (classic, user-data-prefixed, and
// the v1 extended layout), decrypts the hash and block directories with the
// format's table cipher, and by default loads the embedded (listfile) so
// every member can be enumerated. Reading a member resolves its name
// through the hash table, then decrypts and decompresses the stored blob
// sector by sector.
//
// # Basic Usage
//
// Reading one member:
//
//	a, err := mopaq.OpenFile("replay.SC2Replay")
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	data, err := a.ReadFile("replay.details")
//	if err != nil {
//	    return err
//	}
//
// Extracting everything the listfile names:
//
//	files, err := a.Extract()
//	for name, content := range files {
//	    fmt.Printf("%s: %d bytes\n", name, len(content))
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the archive
// package. For fine-grained control (custom codec slots, external
// listfiles, strict codec handling) use the archive package and its
// options directly; the crypt, section and compress packages expose the
// underlying format primitives.
package mopaq

import (
	"io"

	"github.com/arloliu/mopaq/archive"
)

// Archive is an open archive handle; see the archive package for the full
// API surface.
type Archive = archive.Archive

// Option configures how an archive is opened and read.
type Option = archive.Option

// Open opens an archive over src. Ownership of src transfers to the
// returned handle; Close closes it when it implements io.Closer.
func Open(src io.ReadSeeker, opts ...Option) (*Archive, error) {
	return archive.Open(src, opts...)
}

// OpenFile opens the archive at path.
func OpenFile(path string, opts ...Option) (*Archive, error) {
	return archive.OpenFile(path, opts...)
}

// WithoutListfile skips reading the embedded (listfile).
func WithoutListfile() Option {
	return archive.WithoutListfile()
}

// WithForceDecompress routes every sector of a compressed file through the
// codec dispatcher even when its size suggests it was stored raw.
func WithForceDecompress() Option {
	return archive.WithForceDecompress()
}
