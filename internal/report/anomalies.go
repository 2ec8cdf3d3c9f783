package report

import (
	"fmt"
	"io"

	"github.com/davetashner/labtrack/internal/analysis"
)

func init() {
	Register(&anomaliesSection{})
}

// anomaliesSection lists out-of-range parameters, most severe first.
type anomaliesSection struct {
	anomalies []analysis.Anomaly
}

func (s *anomaliesSection) Name() string        { return "anomalies" }
func (s *anomaliesSection) Description() string { return "Parameters whose latest value is out of range" }

func (s *anomaliesSection) Analyze(in *Input) error {
	s.anomalies = in.Summary().Anomalies
	return nil
}

func (s *anomaliesSection) Render(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Out of Range"))
	_, _ = fmt.Fprintf(w, "------------\n")

	if len(s.anomalies) == 0 {
		_, _ = fmt.Fprintf(w, "  %s No anomalies: every parameter is in range (latest value).\n\n", colorGreen.Sprint("✓"))
		return nil
	}

	tbl := NewTable(
		Column{Header: "Parameter"},
		Column{Header: "Value", Align: AlignRight},
		Column{Header: "Range"},
		Column{Header: "Status", Color: ColorStatus},
		Column{Header: "Severity", Color: ColorSeverity},
		Column{Header: "Change", Align: AlignRight, Color: ColorDelta},
		Column{Header: "Date"},
	)
	for _, a := range s.anomalies {
		v := a.Value
		tbl.AddRow(
			a.Parameter,
			FormatMeasure(&v, a.Config)+" "+Arrow(a.Status),
			a.Range,
			string(a.Status),
			a.Severity.Label,
			FormatChange(a.Change, a.Config),
			string(a.Date),
		)
	}
	if err := tbl.Render(w); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "\n")
	return nil
}
