package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/davetashner/labtrack/internal/analysis"
	"github.com/davetashner/labtrack/internal/evaluate"
)

func init() {
	RegisterFormatter(NewMarkdownFormatter())
}

// MarkdownFormatter writes the anomaly summary as short share text, one
// bullet per out-of-range parameter, most severe first.
type MarkdownFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*MarkdownFormatter)(nil)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format writes the share text to w.
func (m *MarkdownFormatter) Format(ex Export, w io.Writer) error {
	s := analysis.Dashboard(ex.Book, ex.Options)

	var b strings.Builder
	b.WriteString("**LAB ANOMALY REPORT**\n\n")
	if len(s.Anomalies) == 0 {
		b.WriteString("All parameters are within range (latest value).\n")
	}
	for _, a := range s.Anomalies {
		b.WriteString(anomalyLine(a))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// anomalyLine renders "- NAME: value unit ↑ (Severity) | Δ +d (p%)".
func anomalyLine(a analysis.Anomaly) string {
	decimals := a.Config.Precision()
	v := a.Value

	var b strings.Builder
	fmt.Fprintf(&b, "- %s: %s", a.Parameter, evaluate.FormatValue(&v, decimals))
	if a.Unit != "" {
		b.WriteString(" " + a.Unit)
	}
	switch a.Status {
	case evaluate.High:
		b.WriteString(" ↑")
	case evaluate.Low:
		b.WriteString(" ↓")
	}
	fmt.Fprintf(&b, " (%s)", a.Severity.Label)
	if a.Change.Delta != nil {
		b.WriteString(" | Δ " + evaluate.FormatSigned(a.Change.Delta, decimals))
		if a.Change.Percent != nil {
			fmt.Fprintf(&b, " (%s%%)", evaluate.FormatValue(a.Change.Percent, 1))
		}
	}
	return b.String()
}
