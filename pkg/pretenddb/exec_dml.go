package pretenddb

import (
	"github.com/pretenddb/pretenddb/internal/QE"
	"github.com/pretenddb/pretenddb/internal/QP"
)

// insert evaluates every VALUES tuple before storing any row. LastInsertID
// is the last id the table generated, or 0 if every row supplied its own.
func (x *execution) insert(st *QP.InsertStatement) (*QueryResult, error) {
	q, err := x.server.parser.ParseInsert(st.RawText)
	if err != nil {
		return nil, err
	}
	_, t, err := x.table(QP.TableName{Database: q.Database, Name: q.Table})
	if err != nil {
		return nil, err
	}
	if err := t.CheckFields(q.Fields); err != nil {
		return nil, err
	}

	rows, err := QE.EvaluateInsert(q, x.newContext(), t.ColumnNames())
	if err != nil {
		return nil, err
	}

	res := &QueryResult{}
	for _, row := range rows {
		id, generated, err := t.InsertRow(row)
		if err != nil {
			return nil, err
		}
		if generated {
			res.LastInsertID = id
		}
		res.AffectedRows++
	}
	return res, nil
}

type assignment struct {
	column string
	expr   QP.Expr
}

// update evaluates the assignments for every matching row before changing
// any. AffectedRows counts rows whose values changed.
func (x *execution) update(st *QP.UpdateStatement) (*QueryResult, error) {
	db, t, err := x.table(st.Table)
	if err != nil {
		return nil, err
	}

	var (
		assignments []assignment
		names       []string
		offset      int
	)
	for _, a := range st.Assignments {
		e, n, err := x.parse(a.ExprText)
		if err != nil {
			return nil, err
		}
		offset += n
		assignments = append(assignments, assignment{column: a.Column, expr: e})
		names = append(names, a.Column)
	}
	if err := t.CheckFields(names); err != nil {
		return nil, err
	}

	where, _, err := x.parseWhere(st.WhereFragments)
	if err != nil {
		return nil, err
	}
	name := st.Table.AliasOrName()
	base := x.newContext()
	if err := base.AddTableAlias(name, st.Table.Name); err != nil {
		return nil, err
	}
	idx, err := t.MatchingRowIndexes(where, base.WithParams(x.paramsFrom(offset)), db.Name(), name)
	if err != nil {
		return nil, err
	}

	all := t.AllRows()
	changes := make([]QE.Row, len(idx))
	for i, n := range idx {
		ctx := base.Clone()
		ctx.SetTableRow(db.Name(), name, all[n])
		changes[i] = make(QE.Row, len(assignments))
		for _, a := range assignments {
			v, err := QE.Evaluate(a.expr, ctx)
			if err != nil {
				return nil, err
			}
			changes[i][a.column] = v
		}
	}

	res := &QueryResult{}
	for i, n := range idx {
		changed, err := t.UpdateRow(n, changes[i])
		if err != nil {
			return nil, err
		}
		if changed {
			res.AffectedRows++
		}
	}
	return res, nil
}

func (x *execution) delete(st *QP.DeleteStatement) (*QueryResult, error) {
	db, t, err := x.table(st.Table)
	if err != nil {
		return nil, err
	}
	where, _, err := x.parseWhere(st.WhereFragments)
	if err != nil {
		return nil, err
	}
	name := st.Table.AliasOrName()
	base := x.newContext()
	if err := base.AddTableAlias(name, st.Table.Name); err != nil {
		return nil, err
	}
	idx, err := t.MatchingRowIndexes(where, base, db.Name(), name)
	if err != nil {
		return nil, err
	}
	return &QueryResult{AffectedRows: int64(t.DeleteRows(idx))}, nil
}
