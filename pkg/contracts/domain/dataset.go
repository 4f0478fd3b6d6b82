package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Time field names used in the exported document.
const (
	TimeFieldHour = "hour"
	TimeFieldTime = "time"
)

// Dataset represents the cross-file union of extracted workbooks. Dates and
// Times grow by concatenation in file order; Series holds stations in the
// order they were first seen across all files. The zero value is empty and
// ready to marshal.
type Dataset struct {
	TimeField string          `json:"-"` // output key for the time sequence
	Dates     []string        `json:"-"`
	Times     []Token         `json:"-"`
	Series    []StationSeries `json:"-"`
}

// Station returns the series for the named station, if present.
func (d *Dataset) Station(name string) (StationSeries, bool) {
	for _, s := range d.Series {
		if s.Name == name {
			return s, true
		}
	}
	return StationSeries{}, false
}

// Keys returns the document keys in output order: "date", the time field,
// then stations in first-seen order.
func (d *Dataset) Keys() []string {
	keys := []string{"date", d.timeField()}
	for _, s := range d.Series {
		keys = append(keys, s.Name)
	}
	return keys
}

func (d *Dataset) timeField() string {
	if d.TimeField == "" {
		return TimeFieldTime
	}
	return d.TimeField
}

// MarshalJSON encodes the dataset as a single JSON object with a
// deterministic key order: "date" first, the time field second, then one
// key per station in first-seen order. Indentation is left to the caller.
func (d Dataset) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	dates, err := marshalArray(d.Dates)
	if err != nil {
		return nil, fmt.Errorf("failed to encode dates: %w", err)
	}
	writeField(&buf, "date", dates)

	times, err := marshalArray(d.Times)
	if err != nil {
		return nil, fmt.Errorf("failed to encode times: %w", err)
	}
	buf.WriteByte(',')
	writeField(&buf, d.timeField(), times)

	for _, s := range d.Series {
		counts, err := marshalArray(s.Counts)
		if err != nil {
			return nil, fmt.Errorf("failed to encode station %q: %w", s.Name, err)
		}
		buf.WriteByte(',')
		writeField(&buf, s.Name, counts)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key string, value []byte) {
	// json.Marshal on a string cannot fail; invalid UTF-8 is replaced.
	name, _ := json.Marshal(key)
	buf.Write(name)
	buf.WriteByte(':')
	buf.Write(value)
}

// marshalArray encodes a slice, mapping nil to an empty array so every key
// is always present in the document.
func marshalArray[T any](vs []T) ([]byte, error) {
	if vs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(vs)
}
