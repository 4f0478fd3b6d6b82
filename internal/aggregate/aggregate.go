// Package aggregate accumulates per-file workbook extracts into the single
// consolidated ridership dataset.
package aggregate

import (
	"mrtcli/pkg/contracts/domain"
)

// Aggregator merges workbook extracts in the order they are added. Merging
// is append-only and order-sensitive: date and time sequences concatenate,
// station series merge by first-seen key, and nothing is deduplicated or
// reconciled. Adding the same files in a different order yields a different
// dataset, so callers must feed extracts in file enumeration order.
type Aggregator struct {
	timeField string
	dates     []string
	times     []domain.Token
	series    []domain.StationSeries
	index     map[string]int
	files     int
}

// NewAggregator creates a new Aggregator whose dataset uses the given time
// field name.
func NewAggregator(timeField string) *Aggregator {
	return &Aggregator{
		timeField: timeField,
		index:     make(map[string]int),
	}
}

// Add merges one workbook extract into the aggregate. Unseen stations are
// inserted in arrival order with a copy of their values; seen stations get
// the incoming values appended. Series lengths are never reconciled here;
// mismatches travel with the per-file extract instead.
func (a *Aggregator) Add(extract *domain.WorkbookExtract) {
	if extract == nil {
		return
	}

	a.files++
	a.dates = append(a.dates, extract.Dates...)
	a.times = append(a.times, extract.Times...)

	for _, st := range extract.Stations {
		if at, ok := a.index[st.Name]; ok {
			a.series[at].Counts = append(a.series[at].Counts, st.Counts...)
			continue
		}
		a.index[st.Name] = len(a.series)
		a.series = append(a.series, domain.StationSeries{
			Name:   st.Name,
			Counts: append([]domain.Count(nil), st.Counts...),
		})
	}
}

// Files returns how many extracts have been merged.
func (a *Aggregator) Files() int {
	return a.files
}

// Observations returns the number of accumulated qualifying rows.
func (a *Aggregator) Observations() int {
	return len(a.times)
}

// Dataset returns the accumulated dataset. It shares the aggregator's
// backing slices, so finish adding before exporting.
func (a *Aggregator) Dataset() domain.Dataset {
	return domain.Dataset{
		TimeField: a.timeField,
		Dates:     a.dates,
		Times:     a.times,
		Series:    a.series,
	}
}
