package exporter

import (
	"fmt"
	"strings"
	"time"

	"mrtcli/internal/config"
	"mrtcli/internal/files"
	"mrtcli/pkg/contracts/domain"
)

// DiagnosticsWriter appends one human-readable summary block per processed
// file to today's dated log. The log is purely observational and never read
// back by the pipeline, so writes are best-effort: the caller reports
// failures but does not abort on them.
type DiagnosticsWriter struct {
	files *files.Manager
	paths *config.Paths

	// reportShortfall switches the per-station line from the absolute
	// series length to its shortfall against the time-token count.
	reportShortfall bool

	now func() time.Time
}

// NewDiagnosticsWriter creates a new diagnostics writer instance.
func NewDiagnosticsWriter(manager *files.Manager, paths *config.Paths, reportShortfall bool) *DiagnosticsWriter {
	return &DiagnosticsWriter{
		files:           manager,
		paths:           paths,
		reportShortfall: reportShortfall,
		now:             time.Now,
	}
}

// Append formats the file summary and appends it to the dated diagnostics
// log, creating the log on first use.
func (w *DiagnosticsWriter) Append(summary domain.FileSummary) error {
	path := w.paths.GetDiagnosticsPath(w.now())
	if err := w.files.AppendFile(path, []byte(w.format(summary))); err != nil {
		return fmt.Errorf("failed to append diagnostics for %s: %w", summary.File, err)
	}
	return nil
}

// format renders one fixed-format block. Blocks are separated by a blank
// line so the dated log stays readable as it grows across runs.
func (w *DiagnosticsWriter) format(summary domain.FileSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s Summary\n", summary.File)

	if summary.Skipped {
		fmt.Fprintf(&b, "skipped: %s\n\n", summary.Reason)
		return b.String()
	}

	fmt.Fprintf(&b, "Time element count: %d\n", summary.Times)
	fmt.Fprintf(&b, "Date element count: %d\n", summary.Dates)
	for _, st := range summary.Stations {
		if w.reportShortfall {
			fmt.Fprintf(&b, "Station %s: shortfall %d\n", st.Name, st.Shortfall)
		} else {
			fmt.Fprintf(&b, "Station %s: %d\n", st.Name, st.Length)
		}
	}
	for _, d := range summary.Defects {
		fmt.Fprintf(&b, "Defect column %d: %d values without a label\n", d.Column, d.Values)
	}
	for _, m := range summary.Mismatches {
		fmt.Fprintf(&b, "Mismatch %s: %d of %d\n", m.Station, m.Got, m.Want)
	}

	b.WriteString("\n")
	return b.String()
}
