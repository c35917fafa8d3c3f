package compress

import (
	"errors"
	"fmt"
	"os"

	"github.com/arloliu/mopaq/errs"
	"github.com/arloliu/mopaq/format"
)

// Decompressor turns a compressed payload back into the original bytes.
//
// Implementations receive the payload with its codec tag already stripped.
// The returned slice may share memory with the input (NoOpDecompressor
// returns its input as is); the input slice is not modified.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// WarnFunc receives non-fatal diagnostics: stubbed codecs and external
// decoder failures in permissive mode.
type WarnFunc func(msg string, args ...any)

// StderrWarn is the default WarnFunc. It prints "warning: ..." lines to
// stderr, the behavior of the original extraction tool.
func StderrWarn(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "warning: "+msg+"\n", args...)
}

// Decoder routes tagged payloads to codec implementations.
//
// A Decoder is safe for concurrent use as long as its registered
// Decompressors are; all bundled implementations are stateless.
type Decoder struct {
	strict bool
	warn   WarnFunc
	codecs map[format.CodecType]Decompressor
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithStrict makes stubbed codecs and external decoder failures fatal
// instead of downgrading them to warnings with best-effort bytes.
func WithStrict() Option {
	return func(d *Decoder) { d.strict = true }
}

// WithWarnFunc routes warnings to fn instead of stderr.
func WithWarnFunc(fn WarnFunc) Option {
	return func(d *Decoder) {
		if fn != nil {
			d.warn = fn
		}
	}
}

// WithDecompressor replaces the decoder registered for tag. It is how a
// pure in-process implode implementation slots in over the external
// adapter.
func WithDecompressor(tag format.CodecType, dec Decompressor) Option {
	return func(d *Decoder) { d.codecs[tag] = dec }
}

// WithImploderPath points the external implode adapter at an explicit
// decoder binary instead of searching PATH.
func WithImploderPath(path string) Option {
	return func(d *Decoder) { d.codecs[format.CodecImplode] = NewExternalImploder(path) }
}

// NewDecoder creates a Decoder with the full default codec set.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		warn: StderrWarn,
		codecs: map[format.CodecType]Decompressor{
			format.CodecNone:        NoOpDecompressor{},
			format.CodecDeflate:     DeflateDecompressor{},
			format.CodecBzip2:       Bzip2Decompressor{},
			format.CodecImplode:     NewExternalImploder(""),
			format.CodecLZMA:        StubDecompressor{Tag: format.CodecLZMA},
			format.CodecSparse:      StubDecompressor{Tag: format.CodecSparse},
			format.CodecADPCMMono:   StubDecompressor{Tag: format.CodecADPCMMono},
			format.CodecADPCMStereo: StubDecompressor{Tag: format.CodecADPCMStereo},
		},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Decode reads the codec tag from payload[0] and decompresses the rest.
//
// Unknown tags always abort. Unimplemented codecs and external decoder
// failures abort only in strict mode; otherwise Decode warns and returns
// the raw tail as best-effort bytes.
func (d *Decoder) Decode(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty compressed payload", errs.ErrTruncatedArchive)
	}

	tag := format.CodecType(payload[0])
	tail := payload[1:]

	dec, ok := d.codecs[tag]
	if !ok {
		return nil, &errs.UnsupportedCodecError{Tag: byte(tag)}
	}

	out, err := dec.Decompress(tail)
	if err == nil {
		return out, nil
	}

	var unimplemented *errs.UnimplementedCodecError
	var external *errs.ExternalCodecError
	switch {
	case errors.As(err, &unimplemented):
		if d.strict {
			return nil, err
		}
		d.warn("codec %s (0x%02X) not implemented, returning raw payload", tag, byte(tag))

		return tail, nil

	case errors.As(err, &external):
		if d.strict {
			return nil, err
		}
		d.warn("%v", err)

		return tail, nil

	default:
		return nil, fmt.Errorf("codec %s: %w", tag, err)
	}
}

// NoOpDecompressor handles the empty codec tag: the payload is stored
// verbatim after the tag byte.
type NoOpDecompressor struct{}

var _ Decompressor = NoOpDecompressor{}

// Decompress returns the input unchanged.
func (NoOpDecompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// StubDecompressor stands in for a recognized codec this build cannot
// decode. It always fails with UnimplementedCodecError; the Decoder decides
// whether that is fatal.
type StubDecompressor struct {
	Tag format.CodecType
}

var _ Decompressor = StubDecompressor{}

func (s StubDecompressor) Decompress([]byte) ([]byte, error) {
	return nil, &errs.UnimplementedCodecError{Tag: byte(s.Tag)}
}
