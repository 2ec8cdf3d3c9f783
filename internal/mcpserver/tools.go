package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/labtrack/internal/analysis"
	"github.com/davetashner/labtrack/internal/exam"
	"github.com/davetashner/labtrack/internal/output"
	"github.com/davetashner/labtrack/internal/report"
	"github.com/davetashner/labtrack/internal/store"
	"github.com/davetashner/labtrack/internal/trend"
)

// DashboardInput is the input schema for the dashboard MCP tool.
type DashboardInput struct {
	DataFile string `json:"data_file,omitempty" jsonschema:"Path to the labtrack data file (defaults to the configured one)"`
	Sections string `json:"sections,omitempty" jsonschema:"Comma-separated list of report sections to include"`
	Format   string `json:"format,omitempty" jsonschema:"Output format: json or markdown (default: json)"`
}

// TrendInput is the input schema for the trend MCP tool.
type TrendInput struct {
	DataFile  string `json:"data_file,omitempty" jsonschema:"Path to the labtrack data file (defaults to the configured one)"`
	Parameter string `json:"parameter" jsonschema:"Parameter name, matched case-insensitively (e.g. GLUCOSIO)"`
	Mode      string `json:"mode,omitempty" jsonschema:"Series to plot: values, delta or ma (default: values)"`
}

// ParametersInput is the input schema for the parameters MCP tool.
type ParametersInput struct {
	DataFile string `json:"data_file,omitempty" jsonschema:"Path to the labtrack data file (defaults to the configured one)"`
	Category string `json:"category,omitempty" jsonschema:"Only list parameters in this category"`
}

// now is overridden in tests.
var now = time.Now

type handlers struct {
	src Source
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// registerTools adds all labtrack tools to the MCP server.
func registerTools(server *mcp.Server, h *handlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "dashboard",
		Description: "Summarize lab results: overall state, latest value and change of key parameters, and out-of-range parameters ranked by severity.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, h.handleDashboard)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "trend",
		Description: "Return the dated series of one parameter with status, severity, change and summary statistics.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, h.handleTrend)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "parameters",
		Description: "List configured lab parameters with unit, reference range, category and direction.",
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, h.handleParameters)
}

// load reads a fresh book for one tool call.
func (h *handlers) load(dataFile string) (*store.Book, error) {
	path, err := ResolveDataFile(dataFile, h.src.DataFile)
	if err != nil {
		return nil, err
	}
	b, err := store.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	slog.Debug("mcp: loaded data", "path", path, "reports", len(b.Reports))
	return b, nil
}

func (h *handlers) handleDashboard(_ context.Context, _ *mcp.CallToolRequest, input DashboardInput) (*mcp.CallToolResult, any, error) {
	format := input.Format
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "markdown" {
		return nil, nil, fmt.Errorf("unsupported format %q (supported: json, markdown)", format)
	}

	b, err := h.load(input.DataFile)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	switch format {
	case "json":
		in := &report.Input{Book: b, Options: h.src.Options}
		if err := report.RenderJSON(&buf, in, splitAndTrim(input.Sections), now()); err != nil {
			return nil, nil, fmt.Errorf("rendering failed: %w", err)
		}
	case "markdown":
		formatter, err := output.GetFormatter("markdown")
		if err != nil {
			return nil, nil, err
		}
		ex := output.Export{Book: b, Options: h.src.Options, Now: now()}
		if err := formatter.Format(ex, &buf); err != nil {
			return nil, nil, fmt.Errorf("formatting failed: %w", err)
		}
	}
	return textResult(buf.String()), nil, nil
}

func (h *handlers) handleTrend(_ context.Context, _ *mcp.CallToolRequest, input TrendInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Parameter) == "" {
		return nil, nil, fmt.Errorf("parameter is required")
	}
	mode, err := trend.ParseMode(input.Mode)
	if err != nil {
		return nil, nil, err
	}

	b, err := h.load(input.DataFile)
	if err != nil {
		return nil, nil, err
	}

	v, err := analysis.Trend(b, input.Parameter, mode, h.src.Options)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(v)
}

func (h *handlers) handleParameters(_ context.Context, _ *mcp.CallToolRequest, input ParametersInput) (*mcp.CallToolResult, any, error) {
	b, err := h.load(input.DataFile)
	if err != nil {
		return nil, nil, err
	}

	params := []exam.ParameterConfig{}
	for _, cfg := range b.Catalog.All() {
		if input.Category != "" && !strings.EqualFold(cfg.Category, input.Category) {
			continue
		}
		params = append(params, cfg)
	}
	return jsonResult(params)
}

func textResult(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: s},
		},
	}
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("JSON marshal: %w", err)
	}
	return textResult(string(data)), nil, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace from each element.
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
