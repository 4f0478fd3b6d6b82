package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"mrtcli/internal/aggregate"
	"mrtcli/internal/config"
	"mrtcli/internal/dataprocessing"
	"mrtcli/internal/errors"
	"mrtcli/internal/exporter"
	"mrtcli/internal/files"
	"mrtcli/internal/infrastructure"
	"mrtcli/pkg/contracts/domain"
)

// ProgressFunc receives a callback after each file finishes extraction.
// With parallel workers the callback still fires once per file, serialized,
// but completion order may differ from enumeration order.
type ProgressFunc func(done, total int, file string)

// Result summarizes one batch run. Per-file defects and mismatches travel
// inside Summaries; they are reported, never corrected.
type Result struct {
	Files      int                  // workbooks discovered
	Processed  int                  // workbooks that produced an extract
	Skipped    int                  // workbooks skipped with a diagnostic
	Summaries  []domain.FileSummary // one per file, in batch order
	Dataset    domain.Dataset       // the aggregated dataset
	OutputPath string               // where the dataset was written
	Elapsed    time.Duration
}

// Runner executes the extraction batch end to end: discover workbooks,
// extract each file, aggregate in enumeration order, record diagnostics,
// and export the consolidated dataset.
type Runner struct {
	cfg         *config.Config
	paths       *config.Paths
	layout      dataprocessing.Layout
	extractor   *dataprocessing.Extractor
	discovery   *files.Discovery
	manager     *files.Manager
	dataset     *exporter.JSONWriter
	diagnostics *exporter.DiagnosticsWriter
	workers     int

	progress   ProgressFunc
	progressMu sync.Mutex
}

// Option customizes a Runner.
type Option func(*Runner)

// WithProgress registers a per-file progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) { r.progress = fn }
}

// WithLayout overrides the layout selected by the configured dataset
// version.
func WithLayout(layout dataprocessing.Layout) Option {
	return func(r *Runner) { r.layout = layout }
}

// WithWorkers overrides the configured worker count.
func WithWorkers(n int) Option {
	return func(r *Runner) { r.workers = n }
}

// NewRunner wires a Runner from configuration.
func NewRunner(cfg *config.Config, opts ...Option) (*Runner, error) {
	paths, err := cfg.BuildPaths()
	if err != nil {
		return nil, errors.NewConfigError("failed to resolve directory layout", err)
	}

	r := &Runner{
		cfg:     cfg,
		paths:   paths,
		workers: cfg.Extraction.Workers,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers < 1 {
		r.workers = 1
	}

	// The zero layout is never valid, so an unset layout means no override
	// was given and the configured dataset version decides.
	if r.layout == (dataprocessing.Layout{}) {
		layout, err := dataprocessing.LayoutForVersion(cfg.Extraction.DatasetVersion)
		if err != nil {
			return nil, err
		}
		r.layout = layout
	}

	extractor, err := dataprocessing.NewExtractor(r.layout)
	if err != nil {
		return nil, err
	}

	manager := files.NewManager(paths)
	r.extractor = extractor
	r.discovery = files.NewDiscovery(paths.DataDir)
	r.manager = manager
	r.dataset = exporter.NewJSONWriter(manager)
	r.diagnostics = exporter.NewDiagnosticsWriter(manager, paths, r.layout.ReportShortfall)

	return r, nil
}

// Run executes the batch once. A file that cannot be read is skipped with a
// diagnostic and the batch continues; failing to write the dataset aborts
// the run. The consolidated dataset is written even when no file survives,
// so downstream consumers always find a current artifact.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	logger := infrastructure.LoggerWithContext(ctx)
	start := time.Now()

	workbooks, err := r.discovery.FindWorkbooks(".")
	if err != nil {
		return nil, fmt.Errorf("failed to discover workbooks: %w", err)
	}

	logger.InfoContext(ctx, "Starting extraction batch",
		slog.Int("files", len(workbooks)),
		slog.String("dataset_version", r.cfg.Extraction.DatasetVersion),
		slog.String("time_field", r.layout.TimeField),
		slog.Int("workers", r.workers),
		slog.String("data_dir", r.paths.DataDir))

	outcomes := r.extractAll(ctx, workbooks)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Reduce sequentially in enumeration order; parallel extraction must
	// never reorder the aggregate.
	agg := aggregate.NewAggregator(r.layout.TimeField)
	result := &Result{
		Files:      len(workbooks),
		OutputPath: r.paths.GetDatasetPath(),
	}

	for i, wb := range workbooks {
		outcome := outcomes[i]
		if outcome.err != nil {
			summary := domain.NewSkippedSummary(wb.Name, outcome.err.Error())
			result.Skipped++
			result.Summaries = append(result.Summaries, summary)
			r.appendDiagnostics(ctx, summary)
			logger.WarnContext(ctx, "Skipped workbook",
				slog.String("file", wb.Name),
				slog.String("reason", outcome.err.Error()))
			continue
		}

		agg.Add(outcome.extract)
		summary := domain.NewFileSummary(outcome.extract)
		result.Processed++
		result.Summaries = append(result.Summaries, summary)
		r.appendDiagnostics(ctx, summary)
	}

	result.Dataset = agg.Dataset()

	if err := r.dataset.WriteDataset(result.Dataset, result.OutputPath); err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(start)
	logger.InfoContext(ctx, "Extraction batch finished",
		slog.Int("files", result.Files),
		slog.Int("processed", result.Processed),
		slog.Int("skipped", result.Skipped),
		slog.Int("observations", agg.Observations()),
		slog.Int("stations", len(result.Dataset.Series)),
		slog.Duration("elapsed", result.Elapsed),
		slog.String("output", result.OutputPath))

	return result, nil
}

type extractOutcome struct {
	extract *domain.WorkbookExtract
	err     error
}

// extractAll extracts every workbook, optionally in parallel, and returns
// outcomes indexed by enumeration position so the reduction stage can keep
// a stable merge order regardless of completion order.
func (r *Runner) extractAll(ctx context.Context, workbooks []files.Workbook) []extractOutcome {
	outcomes := make([]extractOutcome, len(workbooks))
	if len(workbooks) == 0 {
		return outcomes
	}

	tracker := NewProgressTracker(len(workbooks))

	if r.workers <= 1 {
		for i, wb := range workbooks {
			extract, err := r.extractor.Extract(ctx, wb.Path, wb.Label)
			outcomes[i] = extractOutcome{extract: extract, err: err}
			r.reportProgress(ctx, tracker, wb.Name)
			if ctx.Err() != nil {
				return outcomes
			}
		}
		return outcomes
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, wb := range workbooks {
		g.Go(func() error {
			extract, err := r.extractor.Extract(gctx, wb.Path, wb.Label)
			outcomes[i] = extractOutcome{extract: extract, err: err}
			r.reportProgress(gctx, tracker, wb.Name)
			return nil
		})
	}
	// Workers record per-file failures in their slots and never return an
	// error themselves.
	_ = g.Wait()

	return outcomes
}

// reportProgress advances the tracker and fires the caller's callback,
// serialized so parallel workers cannot interleave output.
func (r *Runner) reportProgress(ctx context.Context, tracker *ProgressTracker, file string) {
	done := tracker.Increment(file)
	_, total, _, _ := tracker.Progress()

	infrastructure.LoggerWithContext(ctx).DebugContext(ctx, "File extracted",
		slog.String("file", file),
		slog.Int("done", done),
		slog.Int("total", total),
		slog.String("eta", tracker.ETA()))

	if r.progress == nil {
		return
	}
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.progress(done, total, file)
}

// appendDiagnostics records the per-file block. Diagnostics are best-effort
// and never block the batch, but failures are surfaced in the run log.
func (r *Runner) appendDiagnostics(ctx context.Context, summary domain.FileSummary) {
	if err := r.diagnostics.Append(summary); err != nil {
		infrastructure.LoggerWithContext(ctx).WarnContext(ctx, "Failed to write diagnostics",
			slog.String("file", summary.File),
			slog.String("error", err.Error()))
	}
}
