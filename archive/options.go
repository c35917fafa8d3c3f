package archive

import (
	"github.com/arloliu/mopaq/compress"
	"github.com/arloliu/mopaq/format"
)

type config struct {
	loadListfile    bool
	listfile        []string
	forceDecompress bool
	warn            compress.WarnFunc
	decoderOpts     []compress.Option
}

func defaultConfig() config {
	return config{
		loadListfile: true,
		warn:         compress.StderrWarn,
	}
}

// Option configures how an archive is opened and read.
type Option func(*config)

// WithoutListfile skips reading the embedded (listfile). Files() returns
// nil and Extract requires explicit names.
func WithoutListfile() Option {
	return func(c *config) { c.loadListfile = false }
}

// WithListfile supplies member names from an external listfile instead of
// reading the embedded one.
func WithListfile(names []string) Option {
	return func(c *config) {
		c.listfile = names
		c.loadListfile = false
	}
}

// WithForceDecompress routes every sector of a compressed file through the
// codec dispatcher even when its size suggests it was stored raw. Files
// without the compress flag are not affected.
func WithForceDecompress() Option {
	return func(c *config) { c.forceDecompress = true }
}

// WithStrictCodecs makes stubbed codecs and external decoder failures abort
// the read instead of warning and returning best-effort bytes.
func WithStrictCodecs() Option {
	return func(c *config) { c.decoderOpts = append(c.decoderOpts, compress.WithStrict()) }
}

// WithWarnFunc routes warnings (stubbed codecs, an unreadable listfile,
// external decoder output) to fn instead of stderr. An absent listfile is
// not warned about.
func WithWarnFunc(fn compress.WarnFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.warn = fn
		}
	}
}

// WithImploder replaces the PKWare implode slot with an in-process
// decompressor.
func WithImploder(dec compress.Decompressor) Option {
	return func(c *config) {
		c.decoderOpts = append(c.decoderOpts, compress.WithDecompressor(format.CodecImplode, dec))
	}
}

// WithImploderPath points the external implode adapter at an explicit
// decoder binary.
func WithImploderPath(path string) Option {
	return func(c *config) {
		c.decoderOpts = append(c.decoderOpts, compress.WithImploderPath(path))
	}
}
