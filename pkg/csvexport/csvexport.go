// Package csvexport writes ordered key/value records as CSV. The header row is
// taken from the keys of the first record, so every record of one export must
// share the same shape.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Record is an ordered set of column name / value pairs.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]string)}
}

// Set appends a column, or overwrites it in place if already present.
func (r *Record) Set(key string, value any) *Record {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = fmt.Sprint(value)
	return r
}

// Write emits the records as CSV with a header row. An empty record list
// produces no output at all.
func Write(w io.Writer, records []*Record) error {
	if len(records) == 0 {
		return nil
	}
	header := records[0].keys

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	row := make([]string, len(header))
	for _, rec := range records {
		for i, key := range header {
			row[i] = rec.values[key]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
