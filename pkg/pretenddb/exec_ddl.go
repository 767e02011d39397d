package pretenddb

import (
	"fmt"
	"strings"

	"github.com/pretenddb/pretenddb/internal/DS"
	"github.com/pretenddb/pretenddb/internal/QE"
	"github.com/pretenddb/pretenddb/internal/QP"
)

func (x *execution) create(st *QP.CreateStatement) (*QueryResult, error) {
	if st.IsDatabase {
		if st.IfNotExists && x.server.DatabaseExists(st.Name) {
			return &QueryResult{}, nil
		}
		if _, err := x.server.CreateDatabase(st.Name); err != nil {
			return nil, err
		}
		return &QueryResult{AffectedRows: 1}, nil
	}

	if st.Table == "" {
		return nil, NewError(ER_WRONG_TABLE_NAME, "Incorrect table name ''")
	}
	db, err := x.database(st.Database)
	if err != nil {
		return nil, err
	}
	if db.TableExists(st.Table) {
		if st.IfNotExists {
			return &QueryResult{}, nil
		}
		return nil, Errorf(ER_TABLE_EXISTS_ERROR, "Table '%s' already exists", st.Table)
	}

	var columns []*DS.ColumnMeta
	for _, f := range st.Fields {
		if f.Key {
			continue
		}
		col, err := x.columnMeta(f)
		if err != nil {
			return nil, fmt.Errorf("column '%s': %w", f.Name, err)
		}
		columns = append(columns, col)
	}
	if _, err := db.CreateTable(st.Table, columns); err != nil {
		return nil, err
	}
	return &QueryResult{}, nil
}

// columnMeta derives storage metadata from a column definition. Columns are
// nullable unless declared NOT NULL, PRIMARY KEY or AUTO_INCREMENT.
func (x *execution) columnMeta(f QP.FieldShape) (*DS.ColumnMeta, error) {
	o := f.Options
	col := &DS.ColumnMeta{
		Name:          f.Name,
		Type:          o.Type,
		Nullable:      !o.NotNull && !o.PrimaryKey && !o.AutoIncrement,
		AutoIncrement: o.AutoIncrement,
		Comment:       o.Comment,
	}
	var err error
	if o.HasDefault {
		if col.Default, err = x.initValue(o.DefaultText); err != nil {
			return nil, err
		}
	}
	if o.OnUpdateText != "" {
		if col.OnUpdate, err = x.initValue(o.OnUpdateText); err != nil {
			return nil, err
		}
	}
	return col, nil
}

// initValue turns a DEFAULT or ON UPDATE expression into a stored value.
// NULL means no value and CURRENT_TIMESTAMP is resolved at write time; any
// other expression is evaluated once, now.
func (x *execution) initValue(text string) (*DS.InitValue, error) {
	e, err := x.server.parser.ParseExpression(text)
	if err != nil {
		return nil, err
	}
	switch e.(type) {
	case *QP.NullLiteral:
		return nil, nil
	case *QP.CurrentTimestamp:
		return DS.CurrentTimestampValue(), nil
	}
	v, err := QE.Evaluate(e, QE.NewContext(nil).WithClock(x.server.clock))
	if err != nil {
		return nil, err
	}
	return DS.LiteralValue(v), nil
}

// drop checks every name before removing any.
func (x *execution) drop(st *QP.DropStatement) (*QueryResult, error) {
	if st.IsDatabase {
		var names []string
		for _, n := range st.Names {
			if !x.server.DatabaseExists(n.Name) {
				if st.IfExists {
					continue
				}
				return nil, Errorf(ER_DB_DROP_EXISTS, "Can't drop database '%s'; database doesn't exist", n.Name)
			}
			names = append(names, n.Name)
		}
		for _, name := range names {
			if err := x.server.DropDatabase(name); err != nil {
				return nil, err
			}
		}
		return &QueryResult{}, nil
	}

	type target struct {
		db   *DS.Database
		name string
	}
	var targets []target
	var missing []string
	for _, n := range st.Names {
		db, err := x.database(n.Database)
		if err != nil {
			return nil, err
		}
		if !db.TableExists(n.Name) {
			missing = append(missing, db.Name()+"."+n.Name)
			continue
		}
		targets = append(targets, target{db: db, name: n.Name})
	}
	if len(missing) > 0 && !st.IfExists {
		return nil, Errorf(ER_BAD_TABLE_ERROR, "Unknown table '%s'", strings.Join(missing, ","))
	}
	for _, t := range targets {
		if err := t.db.DropTable(t.name); err != nil {
			return nil, err
		}
	}
	return &QueryResult{}, nil
}

// truncate clears the rows and restarts the autoincrement counter.
func (x *execution) truncate(st *QP.TruncateStatement) (*QueryResult, error) {
	_, t, err := x.table(st.Table)
	if err != nil {
		return nil, err
	}
	t.Truncate()
	return &QueryResult{}, nil
}

// alter supports ADD PARTITION only. Every operation is parsed and checked
// before the first partition is added.
func (x *execution) alter(st *QP.AlterStatement) (*QueryResult, error) {
	_, t, err := x.table(st.Table)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, p := range t.Partitions() {
		seen[p.Name] = true
	}
	var added []DS.Partition
	for _, op := range st.Operations {
		parts, err := x.parseAddPartition(op)
		if err != nil {
			return nil, err
		}
		for _, p := range parts {
			if seen[p.Name] {
				return nil, Errorf(ER_SAME_NAME_PARTITION, "Duplicate partition name %s", p.Name)
			}
			seen[p.Name] = true
			added = append(added, p)
		}
	}
	for _, p := range added {
		if err := t.AddPartition(p.Name, p.Value); err != nil {
			return nil, err
		}
	}
	return &QueryResult{}, nil
}

// tokenCursor walks the raw tokens of one ALTER TABLE operation.
type tokenCursor struct {
	query  string
	tokens []QP.Token
	pos    int
}

func (c *tokenCursor) current() QP.Token {
	if c.pos >= len(c.tokens) {
		return QP.Token{Type: QP.TokenInvalid}
	}
	return c.tokens[c.pos]
}

func (c *tokenCursor) word(w string) bool {
	if c.current().IsWord(w) {
		c.pos++
		return true
	}
	return false
}

func (c *tokenCursor) kind(tt QP.TokenType) bool {
	if c.current().Type == tt {
		c.pos++
		return true
	}
	return false
}

// balanced consumes up to the ")" closing an already consumed "(" and returns
// the source text in between.
func (c *tokenCursor) balanced() (string, bool) {
	start := c.pos
	depth := 1
	for ; c.pos < len(c.tokens); c.pos++ {
		switch c.tokens[c.pos].Type {
		case QP.TokenLeftParen:
			depth++
		case QP.TokenRightParen:
			depth--
		}
		if depth == 0 {
			text := ""
			if c.pos > start {
				text = c.query[c.tokens[start].Pos:c.tokens[c.pos-1].End]
			}
			c.pos++
			return text, true
		}
	}
	return "", false
}

// parseAddPartition reads
//
//	ADD PARTITION (PARTITION name VALUES IN (value) [, PARTITION ...])
func (x *execution) parseAddPartition(op QP.AlterOperation) ([]DS.Partition, error) {
	var tokens []QP.Token
	for _, tok := range op.Tokens {
		if tok.Type != QP.TokenComment {
			tokens = append(tokens, tok)
		}
	}
	c := &tokenCursor{query: x.query, tokens: tokens}
	unsupported := func() error {
		return Errorf(ER_NOT_SUPPORTED_YET, "unsupported ALTER TABLE operation: %s", op.Text)
	}

	if !c.word("ADD") || !c.word("PARTITION") {
		return nil, unsupported()
	}
	if !c.kind(QP.TokenLeftParen) {
		return nil, Errorf(ER_PARSE_ERROR, "partition definitions must be enclosed in parentheses: %s", op.Text)
	}

	var parts []DS.Partition
	for {
		if !c.word("PARTITION") {
			return nil, Errorf(ER_PARSE_ERROR, "expected PARTITION in: %s", op.Text)
		}
		name := c.current()
		if name.Type != QP.TokenIdentifier {
			return nil, Errorf(ER_PARSE_ERROR, "expected partition name in: %s", op.Text)
		}
		c.pos++
		if !c.word("VALUES") || !c.word("IN") || !c.kind(QP.TokenLeftParen) {
			return nil, Errorf(ER_PARSE_ERROR, "expected VALUES IN (...) in: %s", op.Text)
		}
		value, ok := c.balanced()
		if !ok || value == "" {
			return nil, Errorf(ER_PARSE_ERROR, "malformed VALUES IN list in: %s", op.Text)
		}
		parts = append(parts, DS.Partition{Name: name.Literal, Value: value})
		if !c.kind(QP.TokenComma) {
			break
		}
	}
	if !c.kind(QP.TokenRightParen) || c.pos != len(c.tokens) {
		return nil, Errorf(ER_PARSE_ERROR, "unexpected text after partition definitions: %s", op.Text)
	}
	return parts, nil
}
