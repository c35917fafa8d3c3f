package errs

import (
	"errors"
	"fmt"
)

// Archive structure errors. All of them wrap ErrMalformedArchive so callers
// can match the whole family with errors.Is.
var (
	// ErrMalformedArchive is the root of all structural archive errors.
	ErrMalformedArchive = errors.New("malformed archive")

	// ErrInvalidMagic indicates the file does not start with an MPQ signature.
	ErrInvalidMagic = fmt.Errorf("%w: invalid magic", ErrMalformedArchive)

	// ErrTruncatedArchive indicates a read past the end of the archive.
	ErrTruncatedArchive = fmt.Errorf("%w: truncated", ErrMalformedArchive)

	// ErrInvalidTableRange indicates a hash or block table that does not fit
	// inside the file.
	ErrInvalidTableRange = fmt.Errorf("%w: table out of range", ErrMalformedArchive)

	// ErrInvalidSectorSize indicates a sector size shift above the supported
	// ceiling.
	ErrInvalidSectorSize = fmt.Errorf("%w: invalid sector size shift", ErrMalformedArchive)

	// ErrInvalidSectorOffsets indicates a sector offset table whose positions
	// are not monotonic or point outside the stored blob.
	ErrInvalidSectorOffsets = fmt.Errorf("%w: invalid sector offsets", ErrMalformedArchive)

	// ErrUnsupportedVersion indicates a format version beyond v0/v1.
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported format version", ErrMalformedArchive)
)

// Lookup and facade errors.
var (
	// ErrFileNotFound is returned when a filename does not resolve to a
	// stored file. It is a normal outcome, distinguishable from empty content.
	ErrFileNotFound = errors.New("file not found in archive")

	// ErrNoListfile is returned by Extract when the archive was opened
	// without a listfile and no explicit names were given.
	ErrNoListfile = errors.New("archive has no listfile")

	// ErrEmptyDecoderOutput indicates an external decoder that exited
	// successfully but produced no bytes.
	ErrEmptyDecoderOutput = errors.New("external decoder produced no output")
)

// UnsupportedCodecError reports a codec tag byte outside the recognized set.
// It always aborts the read, in strict and permissive mode alike.
type UnsupportedCodecError struct {
	Tag byte
}

func (e *UnsupportedCodecError) Error() string {
	return fmt.Sprintf("unsupported codec tag 0x%02X", e.Tag)
}

// UnimplementedCodecError reports a recognized codec tag that this build
// cannot decode. In permissive mode it is downgraded to a warning and the
// raw payload is returned instead.
type UnimplementedCodecError struct {
	Tag byte
}

func (e *UnimplementedCodecError) Error() string {
	return fmt.Sprintf("codec 0x%02X not implemented", e.Tag)
}

// ExternalCodecError reports a failed external decoder invocation. Stderr
// carries whatever the decoder printed before exiting.
type ExternalCodecError struct {
	Cmd    string
	Stderr string
	Err    error
}

func (e *ExternalCodecError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("external decoder %s failed: %v: %s", e.Cmd, e.Err, e.Stderr)
	}

	return fmt.Sprintf("external decoder %s failed: %v", e.Cmd, e.Err)
}

func (e *ExternalCodecError) Unwrap() error { return e.Err }
