// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/labtrack/internal/analysis"
)

// Source tells the tools where the data lives and how to evaluate it.
type Source struct {
	// DataFile is used when a tool call does not name one.
	DataFile string
	Options  analysis.Options
}

// New creates a new MCP server with labtrack's tools registered.
func New(version string, src Source) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "labtrack",
		Title:   "Labtrack Lab Result Tracker",
		Version: version,
	}, nil)

	registerTools(server, &handlers{src: src})
	return server
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, src Source, transport mcp.Transport) error {
	server := New(version, src)
	return server.Run(ctx, transport)
}
