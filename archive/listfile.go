package archive

import (
	"errors"
	"strings"

	"github.com/arloliu/mopaq/errs"
)

// ListfileName is the member that enumerates the archive's contents.
const ListfileName = "(listfile)"

// loadListfile reads and parses the embedded listfile. Archives without one
// are left with no file enumeration; that only becomes an error when a
// caller asks for a whole-archive operation.
func (a *Archive) loadListfile() {
	data, err := a.ReadFile(ListfileName)
	if err != nil {
		if !errors.Is(err, errs.ErrFileNotFound) {
			a.warn("listfile unreadable: %v", err)
		}
		return
	}

	a.files = splitListfile(data)
}

// splitListfile splits listfile content into member names, dropping blank
// lines. Both CRLF and LF terminators occur in the wild.
func splitListfile(data []byte) []string {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	files := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}

	return files
}
