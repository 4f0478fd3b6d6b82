// Package dataprocessing extracts normalized ridership data from monthly
// workbook files. It turns the semi-structured "Daily" sheet into aligned
// time, date, and per-station value sequences, validating the sheet against
// a declared layout instead of relying on implicit cell positions.
//
// # Architecture
//
// The package is organized around four components:
//
// 1. Layout: declares the sheet structure (marker, signal, and station
// columns) for each dataset version
// 2. Reader: loads the worksheet into a dense, classified cell grid with
// row-major and column-major views
// 3. Column extractor: recovers station labels and value series from the
// station window
// 4. Row extractor: derives time tokens and synthetic dates from marker and
// signal cells
//
// # Usage
//
// Extracting one workbook:
//
//	extractor, err := dataprocessing.NewExtractor(dataprocessing.LayoutV2())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	extract, err := extractor.Extract(ctx, "data/2024-01.xlsx", "2024-01")
//
// Resolving a layout from configuration:
//
//	layout, err := dataprocessing.LayoutForVersion(cfg.Extraction.DatasetVersion)
//
// # Data Flow
//
// The typical flow through this package:
//
//	Workbook → Reader → SheetData → Row/Column Extractors → WorkbookExtract
//
// # Error Handling
//
// Failures split into two classes:
//
//   - Workbook-level failures (unreadable file, missing sheet) surface as
//     parsing errors; callers skip the file and continue the batch
//   - Cell-level contract violations (a column with values but no label,
//     diverging series lengths) are carried inside the extract as defects
//     and mismatches, observed but never corrected
package dataprocessing
