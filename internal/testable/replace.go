package testable

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ReplaceFile writes data to a temporary sibling of path and renames it
// over path, creating the parent directory with dirPerm. Readers see the
// old content or the new one, never a partial write.
func ReplaceFile(fsys FileSystem, path string, data []byte, perm, dirPerm os.FileMode) error {
	if err := fsys.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		if rmErr := fsys.Remove(tmp); rmErr != nil {
			slog.Warn("failed to remove temporary file", "path", tmp, "error", rmErr)
		}
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
