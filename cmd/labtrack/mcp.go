// Copyright 2026 The Labtrack Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/davetashner/labtrack/internal/mcpserver"
)

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running labtrack as an MCP server, exposing read-only dashboard, trend, and parameters tools to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing labtrack's read-only views:
  - dashboard:  Overall state, key metrics and out-of-range parameters
  - trend:      Dated series of one parameter with statistics
  - parameters: The parameter catalog

Every tool call reads the data file afresh; nothing is written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		src := mcpserver.Source{DataFile: s.DataFile, Options: s.Options}
		return mcpserver.Run(cmd.Context(), Version, src, &mcp.StdioTransport{})
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}
