package calendar

import (
	"github.com/google/renameio/v2"
)

// WriteFile replaces path with data. The content is written to a temp file and renamed
// over path, so on failure the previous file is left as it was. The directory must exist.
func WriteFile(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, 0o644, renameio.IgnoreUmask()); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
