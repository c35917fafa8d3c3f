package compress

import (
	"bytes"
	"compress/bzip2"
	"fmt"
	"io"
)

// Bzip2Decompressor decodes bzip2 streams via the standard library, which
// ships a decompressor only; that is all the read path needs.
type Bzip2Decompressor struct{}

var _ Decompressor = Bzip2Decompressor{}

// Decompress decodes a bzip2 stream.
func (Bzip2Decompressor) Decompress(data []byte) ([]byte, error) {
	out, err := io.ReadAll(bzip2.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("bzip2: %w", err)
	}

	return out, nil
}
