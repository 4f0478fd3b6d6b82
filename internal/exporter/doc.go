// Package exporter writes the pipeline's two artifacts: the consolidated
// ridership dataset and the per-file diagnostics log.
//
// This package contains two main components:
//
// JSONWriter: Serializes the aggregated dataset as pretty-printed JSON with
// a deterministic key order and overwrites the fixed output path. Failures
// here are fatal to the run.
//
// DiagnosticsWriter: Appends one summary block per processed file to a dated
// text log. The log is observational only, so failures are reported but
// never abort the batch.
//
// Example usage:
//
//	manager := files.NewManager(paths)
//
//	// Export the aggregated dataset
//	writer := exporter.NewJSONWriter(manager)
//	err := writer.WriteDataset(dataset, paths.GetDatasetPath())
//
//	// Record per-file diagnostics
//	diag := exporter.NewDiagnosticsWriter(manager, paths, layout.ReportShortfall)
//	err = diag.Append(domain.NewFileSummary(extract))
package exporter
