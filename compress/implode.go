package compress

import (
	"bytes"
	"os"
	"os/exec"

	"github.com/arloliu/mopaq/errs"
)

// DefaultImploderBinary is the PKWare implode decoder searched for on PATH
// when no explicit path is configured.
const DefaultImploderBinary = "ttdecomp"

// ExternalImploder decodes PKWare-imploded payloads by running an external
// decoder binary. The payload is handed over through a scoped temporary
// file that is removed on every exit path; the decoded bytes are captured
// from the decoder's stdout.
//
// The adapter exists because no pure Go implementation of the algorithm is
// bundled. Any in-process Decompressor can replace it through
// WithDecompressor(format.CodecImplode, dec).
type ExternalImploder struct {
	// Path of the decoder binary. Empty means look up
	// DefaultImploderBinary on PATH per invocation.
	Path string
}

var _ Decompressor = ExternalImploder{}

// NewExternalImploder creates the adapter for the given binary path; an
// empty path defers to PATH lookup.
func NewExternalImploder(path string) ExternalImploder {
	return ExternalImploder{Path: path}
}

// Decompress runs the external decoder over data.
func (e ExternalImploder) Decompress(data []byte) ([]byte, error) {
	bin := e.Path
	if bin == "" {
		found, err := exec.LookPath(DefaultImploderBinary)
		if err != nil {
			return nil, &errs.ExternalCodecError{Cmd: DefaultImploderBinary, Err: err}
		}
		bin = found
	}

	tmp, err := os.CreateTemp("", "mopaq_implode_*")
	if err != nil {
		return nil, &errs.ExternalCodecError{Cmd: bin, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, &errs.ExternalCodecError{Cmd: bin, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return nil, &errs.ExternalCodecError{Cmd: bin, Err: err}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(bin, tmpName, "/dev/stdout")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &errs.ExternalCodecError{Cmd: bin, Stderr: stderr.String(), Err: err}
	}
	if stdout.Len() == 0 {
		return nil, &errs.ExternalCodecError{Cmd: bin, Stderr: stderr.String(), Err: errs.ErrEmptyDecoderOutput}
	}

	return stdout.Bytes(), nil
}
