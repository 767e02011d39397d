package pretenddb

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/pretenddb/pretenddb/internal/QE"
)

// QueryResult is what one statement produced. Table is nil for statements
// that return no rows.
type QueryResult struct {
	Table           *ResultTable
	LastInsertID    int64
	AffectedRows    int64
	CurrentDatabase string
}

// ResultTable holds SELECT output in row order. Column names may repeat, as
// in "SELECT a.id, b.id".
type ResultTable struct {
	columns []string
	rows    [][]interface{}
}

func newResultTable(columns []string) *ResultTable {
	return &ResultTable{columns: columns}
}

func (t *ResultTable) appendRow(values []interface{}) {
	t.rows = append(t.rows, values)
}

func (t *ResultTable) ColumnNames() []string {
	return append([]string(nil), t.columns...)
}

func (t *ResultTable) Len() int {
	return len(t.rows)
}

// Rows returns the values positionally, in column order.
func (t *ResultTable) Rows() [][]interface{} {
	out := make([][]interface{}, len(t.rows))
	for i, r := range t.rows {
		out[i] = append([]interface{}(nil), r...)
	}
	return out
}

// AllRows returns one map per row. For repeated column names the rightmost
// column wins.
func (t *ResultTable) AllRows() []map[string]interface{} {
	out := make([]map[string]interface{}, len(t.rows))
	for i, r := range t.rows {
		m := make(map[string]interface{}, len(t.columns))
		for j, name := range t.columns {
			m[name] = r[j]
		}
		out[i] = m
	}
	return out
}

// Render writes the table in the bordered style of the mysql client.
func (t *ResultTable) Render(w io.Writer) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.columns)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	for _, r := range t.rows {
		cells := make([]string, len(r))
		for i, v := range r {
			cells[i] = QE.ToString(v)
		}
		tw.Append(cells)
	}
	tw.Render()
}
