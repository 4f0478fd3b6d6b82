package dataprocessing

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"mrtcli/internal/config"
	"mrtcli/internal/errors"
)

// CellKind classifies a sheet cell after normalization.
type CellKind int

const (
	// CellEmpty is a blank cell, including cells beyond a row's used range.
	CellEmpty CellKind = iota

	// CellInt is an integer-valued cell, the only kind that counts as a
	// ridership observation or a qualifying signal.
	CellInt

	// CellText is any non-numeric text, e.g. station labels and day markers.
	CellText

	// CellDash is the literal dash, recorded as a valid zero observation
	// rather than missing data.
	CellDash

	// CellFloat is a fractional numeric value. It is neither an observation
	// nor a label candidate and is ignored by the extractors.
	CellFloat
)

// Cell is a single classified cell. Int is set for CellInt; Text carries the
// trimmed source text for every non-empty kind.
type Cell struct {
	Kind CellKind
	Int  int64
	Text string
}

// classifyCell normalizes one rendered cell value. Formatted counts keep
// their thousands separators in the rendered sheet, so separators are
// stripped before parsing.
func classifyCell(raw string) Cell {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Cell{Kind: CellEmpty}
	}
	if text == config.DashLiteral {
		return Cell{Kind: CellDash, Text: text}
	}
	numeric := strings.ReplaceAll(text, ",", "")
	if n, err := strconv.ParseInt(numeric, 10, 64); err == nil {
		return Cell{Kind: CellInt, Int: n, Text: text}
	}
	if _, err := strconv.ParseFloat(numeric, 64); err == nil {
		return Cell{Kind: CellFloat, Text: text}
	}
	return Cell{Kind: CellText, Text: text}
}

// SheetData is the dense in-memory image of one ridership sheet. Every row
// is padded to the layout's column window, so the row-major and column-major
// views always describe the same cells.
type SheetData struct {
	layout Layout
	grid   [][]Cell
}

// ReadSheet opens the workbook at path and loads the layout's worksheet into
// a classified cell grid. Open and read failures are recoverable parsing
// errors: the caller is expected to skip the file and continue the batch.
func ReadSheet(path string, layout Layout) (*SheetData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to open workbook %s", filepath.Base(path)), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close workbook",
				slog.String("file", path),
				slog.String("error", cerr.Error()))
		}
	}()

	rows, err := f.GetRows(layout.SheetName)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read sheet %q", layout.SheetName), err)
	}

	grid := make([][]Cell, len(rows))
	for i, row := range rows {
		cells := make([]Cell, layout.MaxColumn)
		for j := range cells {
			if j < len(row) {
				cells[j] = classifyCell(row[j])
			}
		}
		grid[i] = cells
	}

	return &SheetData{layout: layout, grid: grid}, nil
}

// RowCount returns the number of rows in the sheet's used range.
func (s *SheetData) RowCount() int {
	return len(s.grid)
}

// Rows returns the row-major view across the full column window.
func (s *SheetData) Rows() [][]Cell {
	return s.grid
}

// Cell returns the cell at 1-based row and column coordinates. Out-of-range
// coordinates read as empty, which the neighbor policy relies on at the grid
// edges.
func (s *SheetData) Cell(row, col int) Cell {
	if row < 1 || row > len(s.grid) || col < 1 || col > s.layout.MaxColumn {
		return Cell{}
	}
	return s.grid[row-1][col-1]
}

// Column is one station-window column at its absolute sheet position.
type Column struct {
	Index int    // 1-based sheet column
	Cells []Cell // top to bottom, padded to the sheet's height
}

// DataColumns returns the column-major view of the station window, from the
// layout's DataStartColumn through MaxColumn.
func (s *SheetData) DataColumns() []Column {
	cols := make([]Column, 0, s.layout.MaxColumn-s.layout.DataStartColumn+1)
	for c := s.layout.DataStartColumn; c <= s.layout.MaxColumn; c++ {
		cells := make([]Cell, len(s.grid))
		for r := range s.grid {
			cells[r] = s.grid[r][c-1]
		}
		cols = append(cols, Column{Index: c, Cells: cells})
	}
	return cols
}
