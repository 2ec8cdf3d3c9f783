// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/labtrack/internal/exam"
	"github.com/davetashner/labtrack/internal/testable"
)

func TestLoad_MissingFileSeedsDefaults(t *testing.T) {
	b, err := Load(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	assert.Equal(t, 8, b.Catalog.Len())
	assert.Empty(t, b.Reports)

	_, ok := b.Catalog.Lookup("glucosio")
	assert.True(t, ok)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	b, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, b)
}

func TestLoad_MissingArrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":3,"dict":[]}`), 0o600))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")

	b, err := Load(path)
	require.NoError(t, err)
	r, err := b.AddReport(Draft{
		Date:     "2024-03-01",
		Location: "Lab",
		Entries:  exam.EntryList{{Param: "glucosio", Value: "65,5"}},
	})
	require.NoError(t, err)
	require.NoError(t, Save(path, b))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file is renamed away")

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded.Reports, 1)
	assert.Equal(t, r.ID, loaded.Reports[0].ID)
	assert.Equal(t, "GLUCOSIO", loaded.Reports[0].Exams[0].Param)
	assert.Equal(t, exam.Value("65.5"), loaded.Reports[0].Exams[0].Value)
	assert.Equal(t, b.Catalog.All(), loaded.Catalog.All())
}

func TestLoad_LegacyDocumentIsMigrated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	legacy := `{
  "dict": [{"name": "FERRITINA", "unit": "ng/mL", "min": "30", "max": "", "legacy": true}],
  "reports": [{"date": "2023-05-02", "location": "Lab", "exams": [{"param": "ferritina", "val": "45"}]}]
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	b, err := Load(path)
	require.NoError(t, err)

	cfg, ok := b.Catalog.Lookup("FERRITINA")
	require.True(t, ok)
	assert.Equal(t, 1, cfg.Precision())
	assert.Equal(t, exam.DefaultCategory, cfg.Category)
	assert.Equal(t, 30.0, *cfg.Min)
	assert.Nil(t, cfg.Max)
	assert.Contains(t, cfg.Extra, "legacy")

	require.Len(t, b.Reports, 1)
	assert.NotEmpty(t, b.Reports[0].ID, "missing ids are assigned")
}

func TestLoad_NonScalarValuesAreNoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	doc := `{"version":3,
		"dict":[{"name":"GLUCOSIO","unit":"mg/dL","min":70,"max":100,"category":5}],
		"reports":[{"id":"r1","date":"2024-01-01","location":"Lab","exams":[
			{"param":"GLUCOSIO","val":true},
			{"param":"GLUCOSIO","val":{}},
			{"param":"GLUCOSIO","val":[1]},
			{"param":"GLUCOSIO","val":"88"}
		]}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	b, err := Load(path)
	require.NoError(t, err)
	require.Len(t, b.Reports, 1)
	exams := b.Reports[0].Exams
	require.Len(t, exams, 4)
	for _, e := range exams[:3] {
		assert.Nil(t, e.Value.Ptr())
	}
	assert.Equal(t, exam.Value("88"), exams[3].Value)

	cfg, ok := b.Catalog.Lookup("GLUCOSIO")
	require.True(t, ok)
	assert.Equal(t, exam.DefaultCategory, cfg.Category, "non-string category falls back to the default")
}

// --- mock file system tests ---

func TestLoad_MockReadFileError(t *testing.T) {
	oldFS := FS
	defer func() { FS = oldFS }()

	FS = &testable.MockFileSystem{
		ReadFileFn: func(_ string) ([]byte, error) {
			return nil, fmt.Errorf("I/O error")
		},
	}

	b, err := Load("/fake/data.json")
	assert.Error(t, err)
	assert.Nil(t, b)
	assert.Contains(t, err.Error(), "I/O error")
}

func TestSave_MockMkdirAllFailure(t *testing.T) {
	oldFS := FS
	defer func() { FS = oldFS }()

	FS = &testable.MockFileSystem{
		MkdirAllFn: func(_ string, _ os.FileMode) error {
			return fmt.Errorf("permission denied")
		},
	}

	err := Save("/fake/data.json", NewBook(nil, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestSave_MockRenameFailureKeepsOriginal(t *testing.T) {
	oldFS := FS
	defer func() { FS = oldFS }()

	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":3,"dict":[],"reports":[]}`), 0o600))

	var removed string
	FS = &testable.MockFileSystem{
		RenameFn: func(_, _ string) error {
			return fmt.Errorf("cross-device link")
		},
		RemoveFn: func(name string) error {
			removed = name
			return os.Remove(name)
		},
	}

	b, err := Load(path)
	require.NoError(t, err)
	_, err = b.AddReport(Draft{Date: "2024-01-01", Location: "Lab"})
	require.NoError(t, err)

	err = Save(path, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cross-device link")
	assert.Equal(t, path+".tmp", removed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":3,"dict":[],"reports":[]}`, string(data))
}

func TestSave_MockWriteFileFailure(t *testing.T) {
	oldFS := FS
	defer func() { FS = oldFS }()

	FS = &testable.MockFileSystem{
		MkdirAllFn: func(_ string, _ os.FileMode) error { return nil },
		WriteFileFn: func(_ string, _ []byte, _ os.FileMode) error {
			return fmt.Errorf("disk full")
		},
	}

	err := Save("/fake/data.json", NewBook(nil, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	assert.Equal(t, filepath.Join("/xdg/data", "labtrack", "data.json"), DefaultPath())
}
