package pretenddb

import (
	"github.com/pretenddb/pretenddb/internal/DS"
	"github.com/pretenddb/pretenddb/internal/QE"
	"github.com/pretenddb/pretenddb/internal/QP"
)

// source is one table of a FROM clause.
type source struct {
	database string
	ref      QP.TableName
	table    *DS.Table
}

func (s source) name() string {
	return s.ref.AliasOrName()
}

func (s source) nullRow() QE.Row {
	row := make(QE.Row, len(s.table.Columns()))
	for _, c := range s.table.ColumnNames() {
		row[c] = nil
	}
	return row
}

// joinedRow holds one row per source, in FROM order.
type joinedRow []QE.Row

func (x *execution) bind(ctx *QE.Context, sources []source, row joinedRow) *QE.Context {
	for i, r := range row {
		ctx.SetTableRow(sources[i].database, sources[i].name(), r)
	}
	return ctx
}

type outputColumn struct {
	name string
	expr QP.Expr
}

func (x *execution) selectRows(st *QP.SelectStatement) (*QueryResult, error) {
	sources, err := x.sources(st)
	if err != nil {
		return nil, err
	}

	base := x.newContext()
	for _, src := range sources {
		if err := base.AddTableAlias(src.name(), src.ref.Name); err != nil {
			return nil, err
		}
	}

	columns, offset, err := x.outputColumns(st.Items, sources)
	if err != nil {
		return nil, err
	}

	var rows []joinedRow
	if len(sources) == 0 {
		rows = []joinedRow{{}}
	} else {
		for _, r := range sources[0].table.AllRows() {
			rows = append(rows, joinedRow{r})
		}
	}

	for i, join := range st.Joins {
		var on QP.Expr
		if join.OnText != "" {
			var n int
			if on, n, err = x.parse(join.OnText); err != nil {
				return nil, err
			}
			rows, err = x.join(base.WithParams(x.paramsFrom(offset)), sources[:i+1], sources[i+1], join.Type, on, rows)
			offset += n
		} else {
			rows, err = x.join(base, sources[:i+1], sources[i+1], join.Type, nil, rows)
		}
		if err != nil {
			return nil, err
		}
	}

	where, _, err := x.parseWhere(st.WhereFragments)
	if err != nil {
		return nil, err
	}
	whereCtx := base.WithParams(x.paramsFrom(offset))
	var found []joinedRow
	if len(sources) == 1 && len(st.Joins) == 0 {
		matches, err := sources[0].table.FindRowsSatisfyingExpression(where, whereCtx, sources[0].database, sources[0].name())
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			found = append(found, joinedRow{m})
		}
	} else {
		for _, r := range rows {
			v, err := QE.Evaluate(where, x.bind(whereCtx.Clone(), sources, r))
			if err != nil {
				return nil, err
			}
			if QE.IsTrue(v) {
				found = append(found, r)
			}
		}
	}

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.name
	}
	out := newResultTable(names)
	for _, r := range found {
		ctx := x.bind(base.WithParams(x.params), sources, r)
		values := make([]interface{}, len(columns))
		for i, c := range columns {
			if values[i], err = QE.Evaluate(c.expr, ctx); err != nil {
				return nil, err
			}
		}
		out.appendRow(values)
	}
	return &QueryResult{Table: out}, nil
}

// sources resolves the FROM table and every joined table. Joined tables
// without a database default to the FROM table's database.
func (x *execution) sources(st *QP.SelectStatement) ([]source, error) {
	if len(st.From) == 0 {
		return nil, nil
	}
	db, t, err := x.table(st.From[0])
	if err != nil {
		return nil, err
	}
	out := []source{{database: db.Name(), ref: st.From[0], table: t}}
	for _, j := range st.Joins {
		ref := j.Table
		if ref.Database == "" {
			ref.Database = db.Name()
		}
		jdb, jt, err := x.table(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, source{database: jdb.Name(), ref: j.Table, table: jt})
	}
	return out, nil
}

// outputColumns expands stars and parses the select list. It returns the
// number of placeholders the list holds.
func (x *execution) outputColumns(items []QP.SelectItemShape, sources []source) ([]outputColumn, int, error) {
	var (
		columns []outputColumn
		count   int
	)
	for _, item := range items {
		if item.Star {
			expanded, err := starColumns(item, sources)
			if err != nil {
				return nil, 0, err
			}
			columns = append(columns, expanded...)
			continue
		}

		e, n, err := x.parse(item.ExprText)
		if err != nil {
			return nil, 0, err
		}
		count += n
		name := item.Alias
		if name == "" {
			if f, ok := e.(*QP.TableField); ok {
				name = f.Field
			} else {
				name = item.ExprText
			}
		}
		columns = append(columns, outputColumn{name: name, expr: e})
	}
	return columns, count, nil
}

func starColumns(item QP.SelectItemShape, sources []source) ([]outputColumn, error) {
	if len(sources) == 0 {
		return nil, NewError(ER_NO_TABLES_USED, "No tables used")
	}
	var columns []outputColumn
	matched := false
	for _, src := range sources {
		if item.StarTable != "" && src.name() != item.StarTable {
			continue
		}
		matched = true
		for _, c := range src.table.ColumnNames() {
			columns = append(columns, outputColumn{
				name: c,
				expr: &QP.TableField{Field: c, Table: src.name(), Database: src.database},
			})
		}
	}
	if !matched {
		return nil, Errorf(ER_BAD_TABLE_ERROR, "Unknown table '%s'", item.StarTable)
	}
	return columns, nil
}

// join extends every row with the matching rows of next. With a LEFT join a
// row that matches nothing is kept once, with next's columns all NULL. A nil
// on matches every row.
func (x *execution) join(ctx *QE.Context, bound []source, next source, typ QP.JoinType, on QP.Expr, rows []joinedRow) ([]joinedRow, error) {
	var out []joinedRow
	for _, r := range rows {
		var matches []QE.Row
		if on == nil {
			matches = next.table.AllRows()
		} else {
			var err error
			matches, err = next.table.FindRowsSatisfyingExpression(on, x.bind(ctx.Clone(), bound, r), next.database, next.name())
			if err != nil {
				return nil, err
			}
		}
		if len(matches) == 0 && typ == QP.JoinLeft {
			matches = []QE.Row{next.nullRow()}
		}
		for _, m := range matches {
			merged := make(joinedRow, len(r), len(r)+1)
			copy(merged, r)
			out = append(out, append(merged, m))
		}
	}
	return out, nil
}
