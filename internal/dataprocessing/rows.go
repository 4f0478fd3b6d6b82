package dataprocessing

import (
	"fmt"

	"mrtcli/pkg/contracts/domain"
)

// ExtractRows makes one pass over the row-major view and produces the
// aligned time and date sequences. A row qualifies as an observation when
// its signal column holds an integer; each qualifying row contributes its
// label-column value as a time token and a "{label}-{day}" date token.
//
// The day counter starts at zero and increments whenever the marker column
// equals the layout's marker text. The increment happens before the row's
// signal test, so a row that both starts a day and qualifies is stamped with
// the new day. Both sequences come from the same pass, which keeps them the
// same length by construction.
func ExtractRows(sheet *SheetData, layout Layout, label string) ([]domain.Token, []string) {
	var (
		times []domain.Token
		dates []string
	)
	day := 0

	for _, row := range sheet.Rows() {
		marker := row[layout.MarkerColumn-1]
		if marker.Kind == CellText && marker.Text == layout.MarkerText {
			day++
		}
		if row[layout.SignalColumn-1].Kind != CellInt {
			continue
		}
		times = append(times, timeToken(row[layout.LabelColumn-1]))
		dates = append(dates, fmt.Sprintf("%s-%d", label, day))
	}

	return times, dates
}

// timeToken converts a label-column cell into a time token. Integer cells
// become numeric tokens; everything else keeps its rendered text, so
// formatted clock values survive verbatim.
func timeToken(cell Cell) domain.Token {
	if cell.Kind == CellInt {
		return domain.NumberToken(cell.Int)
	}
	return domain.TextToken(cell.Text)
}
