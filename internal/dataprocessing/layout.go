package dataprocessing

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"mrtcli/internal/config"
	"mrtcli/internal/errors"
	"mrtcli/pkg/contracts/domain"
)

// MissingValuePolicy selects how empty cells inside a station column are handled.
type MissingValuePolicy string

const (
	// MissingDrop skips empty cells entirely; the series simply gets shorter.
	MissingDrop MissingValuePolicy = "drop"

	// MissingNeighbor keeps an empty cell as a null placeholder when the cell
	// in the previous sheet column on the same row holds an integer. This
	// preserves row alignment across stations when a single sensor drops a
	// reading. Empty cells whose reference cell is not numeric are dropped.
	MissingNeighbor MissingValuePolicy = "neighbor"
)

// Layout declares the fixed structure of a ridership sheet: which sheet to
// read, where the marker and signal columns sit, and how missing values are
// treated. The two dataset versions differ only in these parameters, so a
// single extraction path serves both.
type Layout struct {
	// SheetName is the worksheet that carries the daily ridership table.
	SheetName string `validate:"required"`

	// MaxColumn bounds the window of columns read from the sheet (1-based,
	// inclusive). Cells beyond it are ignored.
	MaxColumn int `validate:"required,min=2"`

	// LabelColumn holds the per-row time value (1-based).
	LabelColumn int `validate:"required,min=1,ltefield=MaxColumn"`

	// MarkerColumn is scanned for MarkerText to detect day boundaries.
	MarkerColumn int `validate:"required,min=1,ltefield=MaxColumn"`

	// SignalColumn marks real observation rows: a row qualifies only when
	// this column holds an integer.
	SignalColumn int `validate:"required,min=1,ltefield=MaxColumn"`

	// DataStartColumn is the first station column (1-based). Station columns
	// run from here through MaxColumn.
	DataStartColumn int `validate:"required,gtfield=LabelColumn,ltefield=MaxColumn"`

	// MarkerText is the literal cell text that starts a new day block.
	MarkerText string `validate:"required"`

	// ExitLabel is the reserved running-total column label, removed from the
	// published dataset.
	ExitLabel string `validate:"required"`

	// TimeField names the time sequence in the exported document.
	TimeField string `validate:"required,oneof=hour time"`

	// MissingValues selects the empty-cell policy for station columns.
	MissingValues MissingValuePolicy `validate:"required,oneof=drop neighbor"`

	// ReportShortfall switches per-station diagnostics from absolute series
	// lengths to the shortfall against the time-token count.
	ReportShortfall bool
}

var layoutValidator = validator.New()

// Validate checks the layout against its declared constraints.
func (l Layout) Validate() error {
	if err := layoutValidator.Struct(l); err != nil {
		return fmt.Errorf("invalid sheet layout: %w", err)
	}
	return nil
}

// LayoutV1 returns the original pipeline layout: the signal and marker share
// column 2, empty cells are dropped, and the time sequence is named "hour".
func LayoutV1() Layout {
	return Layout{
		SheetName:       config.SheetName,
		MaxColumn:       config.SheetMaxColumn,
		LabelColumn:     1,
		MarkerColumn:    2,
		SignalColumn:    2,
		DataStartColumn: 2,
		MarkerText:      config.MarkerText,
		ExitLabel:       config.ExitLabel,
		TimeField:       domain.TimeFieldHour,
		MissingValues:   MissingDrop,
		ReportShortfall: false,
	}
}

// LayoutV2 returns the revised pipeline layout: the signal moves to column 6,
// empty cells become null placeholders when the neighboring column has a
// reading, and the time sequence is named "time".
func LayoutV2() Layout {
	return Layout{
		SheetName:       config.SheetName,
		MaxColumn:       config.SheetMaxColumn,
		LabelColumn:     1,
		MarkerColumn:    2,
		SignalColumn:    6,
		DataStartColumn: 2,
		MarkerText:      config.MarkerText,
		ExitLabel:       config.ExitLabel,
		TimeField:       domain.TimeFieldTime,
		MissingValues:   MissingNeighbor,
		ReportShortfall: true,
	}
}

// LayoutForVersion resolves a dataset version string to its layout.
func LayoutForVersion(version string) (Layout, error) {
	switch version {
	case config.DatasetVersionV1:
		return LayoutV1(), nil
	case config.DatasetVersionV2:
		return LayoutV2(), nil
	default:
		return Layout{}, errors.NewValidationError(fmt.Sprintf("unknown dataset version %q", version))
	}
}
