package archive

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/mopaq/compress"
	"github.com/arloliu/mopaq/errs"
	"github.com/arloliu/mopaq/section"
)

// Archive is an open MPQ archive handle.
//
// The handle exclusively owns its byte source: callers that pass an open
// source to Open transfer ownership, and Close closes it when it implements
// io.Closer. A handle must be used from one goroutine at a time.
type Archive struct {
	src  io.ReadSeeker
	size int64

	header     *section.ArchiveHeader
	hashTable  []section.HashEntry
	blockTable []section.BlockEntry

	// files holds the listfile members, nil when no listfile was loaded.
	files []string

	decoder         *compress.Decoder
	warn            compress.WarnFunc
	forceDecompress bool
}

// OpenFile opens the archive at path.
func OpenFile(path string, opts ...Option) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	a, err := Open(f, opts...)
	if err != nil {
		f.Close()
		return nil, err
	}

	return a, nil
}

// Open opens an archive over src, which must remain valid for the lifetime
// of the returned handle. Ownership of src transfers to the archive.
//
// Opening reads the header and both directory tables, and loads the
// embedded (listfile) unless disabled via WithoutListfile or replaced via
// WithListfile.
func Open(src io.ReadSeeker, opts ...Option) (*Archive, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("size archive: %w", err)
	}

	header, err := section.ReadArchiveHeader(src)
	if err != nil {
		return nil, err
	}

	cfg.decoderOpts = append(cfg.decoderOpts, compress.WithWarnFunc(cfg.warn))

	a := &Archive{
		src:             src,
		size:            size,
		header:          header,
		decoder:         compress.NewDecoder(cfg.decoderOpts...),
		warn:            cfg.warn,
		forceDecompress: cfg.forceDecompress,
	}

	if a.hashTable, err = a.readHashTable(); err != nil {
		return nil, err
	}
	if a.blockTable, err = a.readBlockTable(); err != nil {
		return nil, err
	}

	switch {
	case cfg.listfile != nil:
		a.files = cfg.listfile
	case cfg.loadListfile:
		a.loadListfile()
	}

	return a, nil
}

// Close releases the archive and closes the underlying source when it
// implements io.Closer.
func (a *Archive) Close() error {
	if c, ok := a.src.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

// Header returns the parsed archive header.
func (a *Archive) Header() *section.ArchiveHeader {
	return a.header
}

// HashTable returns the decrypted hash table entries.
func (a *Archive) HashTable() []section.HashEntry {
	return a.hashTable
}

// BlockTable returns the decrypted block table entries.
func (a *Archive) BlockTable() []section.BlockEntry {
	return a.blockTable
}

// Files returns the member names from the listfile, nil when the archive
// was opened without one.
func (a *Archive) Files() []string {
	return a.files
}

// Has reports whether name resolves to a stored file.
func (a *Archive) Has(name string) bool {
	_, err := a.resolve(name)
	return err == nil
}

// readAt reads length bytes at the absolute offset off.
func (a *Archive) readAt(off int64, length int) ([]byte, error) {
	if _, err := a.src.Seek(off, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek 0x%X: %w", off, err)
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(a.src, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %d bytes at 0x%X", errs.ErrTruncatedArchive, length, off)
		}
		return nil, fmt.Errorf("read %d bytes at 0x%X: %w", length, off, err)
	}

	return buf, nil
}
