package report

import (
	"bytes"
	"encoding/csv"
)

// Dataset is a denormalized tabular report: a header row of column names
// plus zero or more data rows, each aligned with Columns.
type Dataset struct {
	Columns []string
	Rows    [][]string
	// RecordCount overrides len(Rows) for audit purposes when set.
	// The performance sheet has many rows but counts as one record.
	RecordCount int
}

// CSV serializes the dataset. Fields containing a comma or double quote
// are wrapped in double quotes with inner quotes doubled; everything else
// passes through unquoted.
func (d *Dataset) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(d.Columns); err != nil {
		return nil, err
	}
	for _, row := range d.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
