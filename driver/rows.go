package driver

import (
	"database/sql/driver"
	"io"

	"github.com/pretenddb/pretenddb/pkg/pretenddb"
)

// Rows implements driver.Rows over a materialized result table.
type Rows struct {
	columns []string
	data    [][]interface{}
	pos     int
}

// newRows wraps table; a nil table yields no columns and no rows.
func newRows(table *pretenddb.ResultTable) *Rows {
	if table == nil {
		return &Rows{}
	}
	return &Rows{columns: table.ColumnNames(), data: table.Rows()}
}

// Columns returns the names of the columns.
func (r *Rows) Columns() []string {
	return r.columns
}

// Close closes the rows iterator. No-op since results are in memory.
func (r *Rows) Close() error {
	return nil
}

// Next populates dest with the values of the next row.
// Returns io.EOF when there are no more rows.
func (r *Rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.data) {
		return io.EOF
	}
	row := r.data[r.pos]
	r.pos++
	for i := range dest {
		if i >= len(row) {
			dest[i] = nil
			continue
		}
		dv, err := toDriverValue(row[i])
		if err != nil {
			return err
		}
		dest[i] = dv
	}
	return nil
}

// Ensure Rows implements driver.Rows.
var _ driver.Rows = &Rows{}
