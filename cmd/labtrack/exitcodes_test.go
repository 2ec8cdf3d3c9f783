package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davetashner/labtrack/internal/analysis"
	"github.com/davetashner/labtrack/internal/catalog"
	"github.com/davetashner/labtrack/internal/store"
)

func TestExitError_DefaultMessages(t *testing.T) {
	assert.Equal(t, "labtrack: name conflict", exitError(ExitConflict, "").Error())
	assert.Equal(t, "labtrack: operation failed", exitError(ExitFailure, "").Error())
	assert.Equal(t, "labtrack: error", exitError(ExitInvalidArgs, "").Error())
	assert.Equal(t, "labtrack: boom 3", exitError(ExitFailure, "labtrack: boom %d", 3).Error())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{&catalog.DuplicateParameterError{Name: "a", Existing: "A"}, ExitConflict},
		{fmt.Errorf("x: %w", catalog.ErrNotFound), ExitInvalidArgs},
		{catalog.ErrEmptyName, ExitInvalidArgs},
		{store.ErrReportNotFound, ExitInvalidArgs},
		{store.ErrInvalidReport, ExitInvalidArgs},
		{store.ErrInvalidDocument, ExitInvalidArgs},
		{analysis.ErrUnknownParameter, ExitInvalidArgs},
		{errors.New("disk full"), ExitFailure},
		{exitError(ExitConflict, "kept"), ExitConflict},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, classify(tt.err).ExitCode(), tt.err.Error())
	}
	assert.Equal(t, "labtrack: disk full", classify(errors.New("disk full")).Error())
}
