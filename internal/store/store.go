// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

// Package store persists the parameter catalog and the report list as a
// single JSON document and exposes the Book session that mutates them.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/davetashner/labtrack/internal/catalog"
	"github.com/davetashner/labtrack/internal/testable"
)

// FS is the file system implementation used by this package.
// Override in tests with a testable.MockFileSystem.
var FS testable.FileSystem = testable.DefaultFS

// NewID generates report identifiers.
var NewID = uuid.NewString

// dataFile is the file name inside the data directory.
const dataFile = "data.json"

// DefaultPath returns $XDG_DATA_HOME/labtrack/data.json, falling back to
// ~/.local/share/labtrack/data.json.
func DefaultPath() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return dataFile
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "labtrack", dataFile)
}

// Load reads the data file at path. A missing file yields a Book seeded
// with the default catalog and no reports.
func Load(path string) (*Book, error) {
	data, err := FS.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no data file, using default catalog", "path", path)
			return NewBook(catalog.Default(), nil), nil
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return FromDocument(doc), nil
}

// Save writes b to path. Readers see either the old or the new catalog
// and reports, never a mix.
func Save(path string, b *Book) error {
	data, err := b.Document().Encode()
	if err != nil {
		return err
	}
	if err := testable.ReplaceFile(FS, path, data, 0o600, 0o750); err != nil {
		return fmt.Errorf("save data file: %w", err)
	}
	slog.Debug("saved data file", "path", path, "parameters", b.Catalog.Len(), "reports", len(b.Reports))
	return nil
}
