package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/mopaq/errs"
)

// Extract reads the named members into memory. With no names it extracts
// every listfile member; that requires a listfile and fails with
// ErrNoListfile otherwise.
//
// Names that do not resolve map to a nil entry rather than aborting the
// whole extraction.
func (a *Archive) Extract(names ...string) (map[string][]byte, error) {
	if len(names) == 0 {
		if a.files == nil {
			return nil, fmt.Errorf("%w: cannot extract whole archive", errs.ErrNoListfile)
		}
		names = a.files
	}

	out := make(map[string][]byte, len(names))
	for _, name := range names {
		data, err := a.ReadFile(name)
		if err != nil {
			if errors.Is(err, errs.ErrFileNotFound) {
				out[name] = nil
				continue
			}
			return nil, err
		}
		out[name] = data
	}

	return out, nil
}

// ExtractToDir extracts members into dir, flattened to their basenames the
// way the legacy tool wrote them. Missing members produce empty files.
func (a *Archive) ExtractToDir(dir string, names ...string) error {
	files, err := a.Extract(names...)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create extraction dir: %w", err)
	}

	for name, data := range files {
		base := strings.ReplaceAll(name, "\\", "/")
		if i := strings.LastIndexByte(base, '/'); i >= 0 {
			base = base[i+1:]
		}

		if err := os.WriteFile(filepath.Join(dir, base), data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", base, err)
		}
	}

	return nil
}

// Digest returns the xxHash64 fingerprint of a member's content, a cheap
// way to compare members across archives without holding both in memory.
func (a *Archive) Digest(name string) (uint64, error) {
	data, err := a.ReadFile(name)
	if err != nil {
		return 0, err
	}

	return xxhash.Sum64(data), nil
}
