// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/davetashner/labtrack/internal/exam"
)

// SchemaVersion is the version written into data files and backups.
const SchemaVersion = 3

// ErrInvalidDocument indicates JSON that lacks the dict or reports arrays.
var ErrInvalidDocument = errors.New("not a labtrack data file: dict and reports are required")

// Document is the persisted form of a Book. Backups carry ExportedAt.
type Document struct {
	Version    int                    `json:"version"`
	ExportedAt string                 `json:"exportedAt,omitempty"`
	Dict       []exam.ParameterConfig `json:"dict"`
	Reports    []exam.Report          `json:"reports"`
}

// ParseDocument decodes a data file or backup. Reports without an id are
// assigned one; parameter configurations are defaulted when the Book is
// built.
func ParseDocument(data []byte) (*Document, error) {
	var raw struct {
		Version    int                     `json:"version"`
		ExportedAt string                  `json:"exportedAt"`
		Dict       *[]exam.ParameterConfig `json:"dict"`
		Reports    *[]exam.Report          `json:"reports"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if raw.Dict == nil || raw.Reports == nil {
		return nil, ErrInvalidDocument
	}

	doc := &Document{
		Version:    raw.Version,
		ExportedAt: raw.ExportedAt,
		Dict:       *raw.Dict,
		Reports:    *raw.Reports,
	}
	for i := range doc.Reports {
		if doc.Reports[i].ID == "" {
			doc.Reports[i].ID = NewID()
		}
		if doc.Reports[i].Exams == nil {
			doc.Reports[i].Exams = []exam.Entry{}
		}
	}
	return doc, nil
}

// Encode renders the document as indented JSON.
func (d *Document) Encode() ([]byte, error) {
	if d.Dict == nil {
		d.Dict = []exam.ParameterConfig{}
	}
	if d.Reports == nil {
		d.Reports = []exam.Report{}
	}
	return json.MarshalIndent(d, "", "  ")
}

// Backup builds the export document for b, stamped with now.
func Backup(b *Book, now time.Time) *Document {
	doc := b.Document()
	doc.ExportedAt = now.UTC().Format(time.RFC3339)
	return doc
}
