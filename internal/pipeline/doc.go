// Package pipeline orchestrates the extraction batch from workbook
// discovery through dataset export.
//
// A Runner owns the full run: it discovers monthly workbooks in the data
// directory, extracts each file against the configured sheet layout,
// aggregates the per-file results in calendar order, records a diagnostics
// block per file, and writes the consolidated dataset.
//
// Core components:
//
// Runner: wires discovery, extraction, aggregation and export from a
// Config and executes the batch. Extraction can run on a fixed worker
// pool; the reduction stage always merges in enumeration order, so the
// worker count never changes the output.
//
// ProgressTracker: thread-safe counter behind the per-file progress
// callback, with elapsed time and a rough ETA.
//
// Result: the outcome of one run, carrying per-file summaries (including
// skipped files and their reasons), the aggregated dataset, and the output
// location.
//
// Example usage:
//
//	runner, err := pipeline.NewRunner(cfg,
//		pipeline.WithProgress(func(done, total int, file string) {
//			fmt.Printf("Processing file %d of %d: %s\n", done, total, file)
//		}))
//	if err != nil {
//		return err
//	}
//	result, err := runner.Run(ctx)
//
// Unreadable workbooks are skipped with a diagnostic and the batch
// continues. Only two failures abort a run: workbook discovery and the
// final dataset write.
package pipeline
