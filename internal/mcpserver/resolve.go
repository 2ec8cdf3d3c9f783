// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes labtrack's read-only views as tools over stdio transport.
package mcpserver

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/davetashner/labtrack/internal/testable"
)

// FS is the file system used to inspect data file paths.
var FS testable.FileSystem = testable.DefaultFS

// ResolveDataFile resolves the data file a tool should read to an absolute,
// symlink-resolved path. An empty path selects fallback. A file that does
// not exist yet is allowed; a directory is not.
func ResolveDataFile(path, fallback string) (string, error) {
	if path == "" {
		path = fallback
	}
	if path == "" {
		return "", fmt.Errorf("no data file configured")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	info, err := FS.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return absPath, nil
		}
		return "", fmt.Errorf("cannot access %q: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%q is a directory, not a data file", path)
	}

	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}
	return absPath, nil
}
