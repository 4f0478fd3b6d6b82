package dataprocessing

import (
	"mrtcli/pkg/contracts/domain"
)

// ExtractStations walks every column in the station window and produces one
// series per labeled column, in sheet order. The first text cell in a column
// is its station label; integer cells are observations and the literal dash
// is a valid zero observation. A column whose label is the layout's
// ExitLabel carries a running total rather than a station and is dropped. A
// column that holds values but no label violates the sheet contract and is
// reported as a defect instead of producing an unlabeled series. Fully empty
// columns are treated as absent.
//
// A duplicated label keeps its first column position but takes the values of
// the later column, matching the source sheets' last-write-wins behavior.
func ExtractStations(sheet *SheetData, layout Layout) ([]domain.StationSeries, []domain.ColumnDefect) {
	var (
		stations []domain.StationSeries
		defects  []domain.ColumnDefect
	)
	seen := make(map[string]int)

	for _, col := range sheet.DataColumns() {
		label, counts, observed, ok := extractColumn(sheet, layout, col)
		if !ok {
			continue
		}
		if label == "" {
			if observed > 0 {
				defects = append(defects, domain.ColumnDefect{Column: col.Index, Values: observed})
			}
			continue
		}
		if label == layout.ExitLabel {
			continue
		}
		if at, dup := seen[label]; dup {
			stations[at].Counts = counts
			continue
		}
		seen[label] = len(stations)
		stations = append(stations, domain.StationSeries{Name: label, Counts: counts})
	}

	return stations, defects
}

// extractColumn classifies one column's cells into a label and a value
// series. observed counts the integer and dash cells so that defects can
// report how much data an unlabeled column held. ok is false when the column
// has no content at all.
//
// Under the neighbor policy an empty cell is kept as a null placeholder when
// the same row in the previous sheet column holds an integer; the first
// window column has no previous column and never infers.
func extractColumn(sheet *SheetData, layout Layout, col Column) (label string, counts []domain.Count, observed int, ok bool) {
	for i, cell := range col.Cells {
		switch cell.Kind {
		case CellInt:
			counts = append(counts, domain.NewCount(cell.Int))
			observed++
			ok = true
		case CellDash:
			counts = append(counts, domain.NewCount(0))
			observed++
			ok = true
		case CellText:
			if label == "" {
				label = cell.Text
			}
			ok = true
		case CellFloat:
			ok = true
		case CellEmpty:
			if layout.MissingValues != MissingNeighbor || col.Index <= layout.DataStartColumn {
				continue
			}
			if sheet.Cell(i+1, col.Index-1).Kind == CellInt {
				counts = append(counts, domain.MissingCount())
			}
		}
	}
	return label, counts, observed, ok
}
