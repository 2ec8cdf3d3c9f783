package report

import (
	"fmt"
	"io"

	"github.com/davetashner/labtrack/internal/analysis"
)

func init() {
	Register(&overviewSection{})
}

// overviewSection prints the overall state line.
type overviewSection struct {
	summary *analysis.Summary
}

func (s *overviewSection) Name() string        { return "overview" }
func (s *overviewSection) Description() string { return "Overall state from the latest value of each parameter" }

func (s *overviewSection) Analyze(in *Input) error {
	s.summary = in.Summary()
	return nil
}

func (s *overviewSection) Render(w io.Writer) error {
	sum := s.summary
	_, _ = fmt.Fprintf(w, "%s\n", SectionTitle("Overall State"))
	_, _ = fmt.Fprintf(w, "-------------\n")

	detail := "no anomalies detected"
	if n := len(sum.Anomalies); n > 0 {
		detail = plural(n, "anomaly", "anomalies") + " (latest value per parameter)"
	}
	_, _ = fmt.Fprintf(w, "  %s %s  %s\n", Dot(sum.Overall), ColorTone(sum.Overall, sum.OverallLabel), detail)

	last := "none"
	if sum.LastReport != "" {
		last = string(sum.LastReport)
	}
	_, _ = fmt.Fprintf(w, "  %s, %s, last report: %s\n\n",
		plural(sum.Parameters, "parameter", "parameters"),
		plural(sum.Reports, "report", "reports"),
		last)
	return nil
}
