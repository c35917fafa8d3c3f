package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// DeflateDecompressor inflates zlib streams, the most common codec in
// archives of this family. The default 32KiB window (size 15) matches what
// the archive tools produce.
type DeflateDecompressor struct{}

var _ Decompressor = DeflateDecompressor{}

// Decompress inflates a zlib stream.
func (DeflateDecompressor) Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}

	return out, nil
}
