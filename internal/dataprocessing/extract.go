package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"

	"mrtcli/internal/infrastructure"
	"mrtcli/pkg/contracts/domain"
)

// Extractor turns workbook files into normalized per-file extracts using a
// fixed sheet layout.
type Extractor struct {
	layout Layout
}

// NewExtractor creates a new Extractor after validating the layout.
func NewExtractor(layout Layout) (*Extractor, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{layout: layout}, nil
}

// Layout returns the layout the extractor was built with.
func (e *Extractor) Layout() Layout {
	return e.layout
}

// Extract reads one workbook and produces its normalized extract: aligned
// time and date sequences, one series per station, plus any column defects
// and per-station length mismatches found along the way. Mismatches are
// observed and reported, never corrected. Errors are per-file; the caller
// decides whether to skip the file or abort.
func (e *Extractor) Extract(ctx context.Context, path, label string) (*domain.WorkbookExtract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sheet, err := ReadSheet(path, e.layout)
	if err != nil {
		return nil, err
	}

	times, dates := ExtractRows(sheet, e.layout, label)
	stations, defects := ExtractStations(sheet, e.layout)

	extract := &domain.WorkbookExtract{
		Source:     path,
		Label:      label,
		Times:      times,
		Dates:      dates,
		Stations:   stations,
		Defects:    defects,
		Mismatches: findMismatches(stations, len(times)),
	}

	infrastructure.LoggerWithContext(ctx).DebugContext(ctx, "Extracted workbook",
		slog.String("file", filepath.Base(path)),
		slog.Int("rows", sheet.RowCount()),
		slog.Int("observations", len(times)),
		slog.Int("stations", len(stations)),
		slog.Int("defects", len(defects)),
		slog.Int("mismatches", len(extract.Mismatches)))

	return extract, nil
}

// findMismatches flags stations whose series length differs from the
// qualifying-row count.
func findMismatches(stations []domain.StationSeries, want int) []domain.LengthMismatch {
	var mismatches []domain.LengthMismatch
	for _, st := range stations {
		if len(st.Counts) != want {
			mismatches = append(mismatches, domain.LengthMismatch{
				Station: st.Name,
				Got:     len(st.Counts),
				Want:    want,
			})
		}
	}
	return mismatches
}
