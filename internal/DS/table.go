package DS

import (
	"errors"
	"fmt"
	"time"

	"github.com/pretenddb/pretenddb/internal/QE"
	"github.com/pretenddb/pretenddb/internal/QP"
	"github.com/pretenddb/pretenddb/internal/SF/util"
)

var (
	ErrNoColumns          = errors.New("a table must have at least one column")
	ErrDuplicateColumn    = errors.New("duplicate column name")
	ErrTooManyAutoColumns = errors.New("there can be only one auto column")
	ErrUnknownColumn      = errors.New("unknown column")
	ErrDuplicatePartition = errors.New("duplicate partition name")
)

// SchemaError reports a request that does not fit a table's definition.
// Err is one of the sentinel errors above; Name is the offending column or
// partition, if any.
type SchemaError struct {
	Table string
	Name  string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("table '%s': %v", e.Table, e.Err)
	}
	return fmt.Sprintf("table '%s': %v '%s'", e.Table, e.Err, e.Name)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

type Partition struct {
	Name  string
	Value string
}

// Table stores rows positionally, in insertion order, against a fixed
// column list.
type Table struct {
	name          string
	columns       []*ColumnMeta
	index         map[string]int
	rows          [][]interface{}
	autoIncrement int64
	partitions    []Partition
	clock         func() time.Time
}

// NewTable validates the column list. A nil clock means time.Now.
func NewTable(name string, columns []*ColumnMeta, clock func() time.Time) (*Table, error) {
	if clock == nil {
		clock = time.Now
	}
	t := &Table{
		name:    name,
		columns: columns,
		index:   make(map[string]int, len(columns)),
		clock:   clock,
	}
	if len(columns) == 0 {
		return nil, &SchemaError{Table: name, Err: ErrNoColumns}
	}
	auto := 0
	for i, c := range columns {
		util.AssertNotNil(c, "column")
		if _, dup := t.index[c.Name]; dup {
			return nil, &SchemaError{Table: name, Name: c.Name, Err: ErrDuplicateColumn}
		}
		t.index[c.Name] = i
		if c.AutoIncrement {
			auto++
		}
	}
	if auto > 1 {
		return nil, &SchemaError{Table: name, Err: ErrTooManyAutoColumns}
	}
	return t, nil
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) Columns() []*ColumnMeta {
	return t.columns
}

func (t *Table) Column(name string) (*ColumnMeta, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

func (t *Table) RowCount() int {
	return len(t.rows)
}

// AutoIncrementValue is the last value handed out or accepted for the
// autoincrement column.
func (t *Table) AutoIncrementValue() int64 {
	return t.autoIncrement
}

func (t *Table) checkFields(fields QE.Row) error {
	for name := range fields {
		if _, ok := t.index[name]; !ok {
			return &SchemaError{Table: t.name, Name: name, Err: ErrUnknownColumn}
		}
	}
	return nil
}

// CheckFields fails if any name is not a column.
func (t *Table) CheckFields(names []string) error {
	for _, name := range names {
		if _, ok := t.index[name]; !ok {
			return &SchemaError{Table: t.name, Name: name, Err: ErrUnknownColumn}
		}
	}
	return nil
}

// isEmptyAutoValue reports whether an autoincrement input asks for a
// generated value: NULL or anything that converts to 0, such as '' or 'abc'.
func isEmptyAutoValue(v interface{}) bool {
	n, _ := QE.ToInt64(v)
	return n == 0
}

// InsertRow stores one row built from fields. Per column, in order: the
// autoincrement column takes a non-empty supplied value (advancing the
// counter to it) or the next counter value; otherwise a supplied non-NULL
// value wins, then the default, then NULL if nullable, else "".
//
// It returns the generated autoincrement value, if one was generated.
func (t *Table) InsertRow(fields QE.Row) (id int64, generated bool, err error) {
	if err := t.checkFields(fields); err != nil {
		return 0, false, err
	}

	values := make([]interface{}, len(t.columns))
	for i, col := range t.columns {
		v, supplied := fields[col.Name]
		switch {
		case col.AutoIncrement:
			if supplied && !isEmptyAutoValue(v) {
				n, _ := QE.ToInt64(v)
				if n > t.autoIncrement {
					t.autoIncrement = n
				}
				values[i] = n
			} else {
				t.autoIncrement++
				values[i] = t.autoIncrement
				id, generated = t.autoIncrement, true
			}
		case supplied && v != nil:
			values[i] = v
		case col.Default != nil:
			values[i] = col.Default.Resolve(t.clock)
		case col.Nullable:
			values[i] = nil
		default:
			values[i] = ""
		}
	}
	t.rows = append(t.rows, values)
	return id, generated, nil
}

func (t *Table) rowMap(i int) QE.Row {
	row := make(QE.Row, len(t.columns))
	for j, c := range t.columns {
		row[c.Name] = t.rows[i][j]
	}
	return row
}

// Rows returns copies of the stored rows in column order.
func (t *Table) Rows() [][]interface{} {
	out := make([][]interface{}, len(t.rows))
	for i, r := range t.rows {
		out[i] = append([]interface{}(nil), r...)
	}
	return out
}

func (t *Table) AllRows() []QE.Row {
	out := make([]QE.Row, len(t.rows))
	for i := range t.rows {
		out[i] = t.rowMap(i)
	}
	return out
}

// MatchingRowIndexes evaluates cond once per row, each time in a fresh clone
// of base with the row bound under database and tableOrAlias.
func (t *Table) MatchingRowIndexes(cond QP.Expr, base *QE.Context, database, tableOrAlias string) ([]int, error) {
	var out []int
	for i := range t.rows {
		ctx := base.Clone()
		ctx.SetTableRow(database, tableOrAlias, t.rowMap(i))
		v, err := QE.Evaluate(cond, ctx)
		if err != nil {
			return nil, err
		}
		if QE.IsTrue(v) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (t *Table) FindRowsSatisfyingExpression(cond QP.Expr, base *QE.Context, database, tableOrAlias string) ([]QE.Row, error) {
	idx, err := t.MatchingRowIndexes(cond, base, database, tableOrAlias)
	if err != nil {
		return nil, err
	}
	out := make([]QE.Row, len(idx))
	for i, n := range idx {
		out[i] = t.rowMap(n)
	}
	return out, nil
}

// UpdateRow applies changes to row i. If any stored value changes, columns
// with an ON UPDATE value that were not assigned get it. It reports whether
// the row changed.
func (t *Table) UpdateRow(i int, changes QE.Row) (bool, error) {
	util.Assert(i >= 0 && i < len(t.rows), "row index %d out of range", i)
	if err := t.checkFields(changes); err != nil {
		return false, err
	}

	row := t.rows[i]
	changed := false
	for name, v := range changes {
		j := t.index[name]
		col := t.columns[j]
		if v == nil && !col.Nullable {
			v = ""
		}
		if col.AutoIncrement {
			if n, ok := QE.ToInt64(v); ok {
				v = n
				if n > t.autoIncrement {
					t.autoIncrement = n
				}
			}
		}
		if row[j] != v {
			row[j] = v
			changed = true
		}
	}
	if !changed {
		return false, nil
	}
	for j, col := range t.columns {
		if _, assigned := changes[col.Name]; !assigned && col.OnUpdate != nil {
			row[j] = col.OnUpdate.Resolve(t.clock)
		}
	}
	return true, nil
}

// DeleteRows removes the rows at the given indexes and returns how many
// were removed.
func (t *Table) DeleteRows(indexes []int) int {
	if len(indexes) == 0 {
		return 0
	}
	drop := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		if i >= 0 && i < len(t.rows) {
			drop[i] = true
		}
	}
	kept := t.rows[:0]
	for i, r := range t.rows {
		if !drop[i] {
			kept = append(kept, r)
		}
	}
	for i := len(kept); i < len(t.rows); i++ {
		t.rows[i] = nil
	}
	t.rows = kept
	return len(drop)
}

// Truncate removes every row and restarts the autoincrement counter.
func (t *Table) Truncate() {
	t.rows = nil
	t.autoIncrement = 0
}

// AddPartition records a LIST partition. Partitions are informational and do
// not affect where rows are stored.
func (t *Table) AddPartition(name, value string) error {
	for _, p := range t.partitions {
		if p.Name == name {
			return &SchemaError{Table: t.name, Name: name, Err: ErrDuplicatePartition}
		}
	}
	t.partitions = append(t.partitions, Partition{Name: name, Value: value})
	return nil
}

func (t *Table) Partitions() []Partition {
	return append([]Partition(nil), t.partitions...)
}
