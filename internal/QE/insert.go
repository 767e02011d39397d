package QE

import (
	"github.com/pretenddb/pretenddb/internal/QP"
)

// EvaluateInsert evaluates every VALUES tuple of q in one context, so
// placeholders are consumed across tuples in source order. defaultFields is
// used when q has no column list. An empty tuple yields an empty row.
func EvaluateInsert(q *QP.InsertQuery, ctx *Context, defaultFields []string) ([]Row, error) {
	fields := q.Fields
	if len(fields) == 0 {
		fields = defaultFields
	}

	rows := make([]Row, 0, len(q.Rows))
	for i, tuple := range q.Rows {
		if len(tuple) == 0 {
			rows = append(rows, Row{})
			continue
		}
		if len(tuple) != len(fields) {
			return nil, &ValueCountError{Row: i + 1, Fields: len(fields), Values: len(tuple)}
		}
		row := make(Row, len(fields))
		for j, e := range tuple {
			v, err := Evaluate(e, ctx)
			if err != nil {
				return nil, err
			}
			row[fields[j]] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
