package domain

import (
	"encoding/json"
	"path/filepath"
	"strconv"
)

// Count represents a single ridership observation for one station.
// Valid reports whether the source cell held a usable number; a retained
// missing observation (Valid=false) serializes as JSON null so the series
// keeps its positional alignment with the time and date sequences.
type Count struct {
	Value int64
	Valid bool
}

// NewCount returns a valid observation.
func NewCount(v int64) Count {
	return Count{Value: v, Valid: true}
}

// MissingCount returns the placeholder for a missing observation.
func MissingCount() Count {
	return Count{}
}

// MarshalJSON encodes the observation as a bare number, or null when missing.
func (c Count) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, c.Value, 10), nil
}

// UnmarshalJSON accepts a number or null.
func (c *Count) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Count{}
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*c = Count{Value: v, Valid: true}
	return nil
}

// Token represents a time-of-day cell captured verbatim from the sheet's
// first column. Numeric cells keep their numeric JSON form; anything else
// stays a string.
type Token struct {
	Number  int64
	Text    string
	Numeric bool
}

// NumberToken returns a numeric token.
func NumberToken(n int64) Token {
	return Token{Number: n, Numeric: true}
}

// TextToken returns a textual token.
func TextToken(s string) Token {
	return Token{Text: s}
}

// String renders the token the way it appeared in the sheet.
func (t Token) String() string {
	if t.Numeric {
		return strconv.FormatInt(t.Number, 10)
	}
	return t.Text
}

// MarshalJSON encodes numeric tokens as numbers and textual tokens as strings.
func (t Token) MarshalJSON() ([]byte, error) {
	if t.Numeric {
		return strconv.AppendInt(nil, t.Number, 10), nil
	}
	return json.Marshal(t.Text)
}

// UnmarshalJSON accepts a number or a string.
func (t *Token) UnmarshalJSON(data []byte) error {
	if n, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		*t = Token{Number: n, Numeric: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = Token{Text: s}
	return nil
}

// StationSeries represents one station's observations in sheet column order.
type StationSeries struct {
	Name   string  `json:"name"`
	Counts []Count `json:"counts"`
}

// ColumnDefect records a value-bearing sheet column that carried no text
// label and therefore could not be attributed to a station.
type ColumnDefect struct {
	Column int `json:"column"` // absolute 1-based sheet column
	Values int `json:"values"` // value cells found in the column
}

// LengthMismatch records a station whose series length diverged from the
// file's qualifying-row count. Mismatches are reported, never repaired.
type LengthMismatch struct {
	Station string `json:"station"`
	Got     int    `json:"got"`
	Want    int    `json:"want"`
}

// WorkbookExtract represents the normalized result of a single workbook.
// Times and Dates always have equal length; station series may diverge and
// any divergence is surfaced in Mismatches.
type WorkbookExtract struct {
	Source     string           `json:"source"` // workbook file name
	Label      string           `json:"label"`  // year-month label from the file name stem
	Times      []Token          `json:"times"`
	Dates      []string         `json:"dates"`
	Stations   []StationSeries  `json:"stations"`
	Defects    []ColumnDefect   `json:"defects,omitempty"`
	Mismatches []LengthMismatch `json:"mismatches,omitempty"`
}

// QualifyingRows returns the number of rows that produced a time token.
func (e *WorkbookExtract) QualifyingRows() int {
	return len(e.Times)
}

// Station returns the series for the named station, if present.
func (e *WorkbookExtract) Station(name string) (StationSeries, bool) {
	for _, s := range e.Stations {
		if s.Name == name {
			return s, true
		}
	}
	return StationSeries{}, false
}

// StationNames returns station names in column order.
func (e *WorkbookExtract) StationNames() []string {
	names := make([]string, 0, len(e.Stations))
	for _, s := range e.Stations {
		names = append(names, s.Name)
	}
	return names
}

// StationLength represents one station's series length in a file summary.
// Shortfall is the difference against the qualifying-row count at the time
// the summary was taken.
type StationLength struct {
	Name      string `json:"name"`
	Length    int    `json:"length"`
	Shortfall int    `json:"shortfall"`
}

// FileSummary represents the diagnostics view of one processed workbook.
// Skipped summaries carry the failure reason and no counts.
type FileSummary struct {
	File       string           `json:"file"`
	Times      int              `json:"times"`
	Dates      int              `json:"dates"`
	Stations   []StationLength  `json:"stations,omitempty"`
	Defects    []ColumnDefect   `json:"defects,omitempty"`
	Mismatches []LengthMismatch `json:"mismatches,omitempty"`
	Skipped    bool             `json:"skipped,omitempty"`
	Reason     string           `json:"reason,omitempty"`
}

// NewFileSummary builds the summary for a successfully extracted workbook.
func NewFileSummary(e *WorkbookExtract) FileSummary {
	want := e.QualifyingRows()
	summary := FileSummary{
		File:       filepath.Base(e.Source),
		Times:      len(e.Times),
		Dates:      len(e.Dates),
		Defects:    e.Defects,
		Mismatches: e.Mismatches,
	}
	for _, s := range e.Stations {
		summary.Stations = append(summary.Stations, StationLength{
			Name:      s.Name,
			Length:    len(s.Counts),
			Shortfall: want - len(s.Counts),
		})
	}
	return summary
}

// NewSkippedSummary builds the summary for a workbook that could not be read.
func NewSkippedSummary(file, reason string) FileSummary {
	return FileSummary{File: file, Skipped: true, Reason: reason}
}
