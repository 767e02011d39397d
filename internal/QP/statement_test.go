package QP

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseStatement(t *testing.T, query string) Statement {
	t.Helper()
	stmt, err := NewStatementParser().ParseStatement(query)
	require.NoError(t, err, query)
	return stmt
}

func TestStatementSelect(t *testing.T) {
	stmt := parseStatement(t, "SELECT u.id, u.name AS n, p.title title, 1 + 2 FROM users u "+
		"LEFT JOIN posts AS p ON p.user_id = u.id JOIN db2.tags ON tags.id = p.tag_id WHERE u.id > ? AND p.title IS NOT NULL;")

	sel, ok := stmt.(*SelectStatement)
	require.True(t, ok)
	require.Len(t, sel.Items, 4)
	assert.Equal(t, SelectItemShape{ExprText: "u.id"}, sel.Items[0])
	assert.Equal(t, SelectItemShape{ExprText: "u.name", Alias: "n"}, sel.Items[1])
	assert.Equal(t, SelectItemShape{ExprText: "p.title", Alias: "title"}, sel.Items[2])
	assert.Equal(t, SelectItemShape{ExprText: "1 + 2"}, sel.Items[3])

	assert.Equal(t, []TableName{{Name: "users", Alias: "u"}}, sel.From)
	require.Len(t, sel.Joins, 2)
	assert.Equal(t, JoinShape{Type: JoinLeft, Table: TableName{Name: "posts", Alias: "p"}, OnText: "p.user_id = u.id"}, sel.Joins[0])
	assert.Equal(t, JoinShape{Type: JoinInner, Table: TableName{Database: "db2", Name: "tags"}, OnText: "tags.id = p.tag_id"}, sel.Joins[1])
	assert.Equal(t, []string{"u.id > ? AND p.title IS NOT NULL"}, sel.WhereFragments)
}

func TestStatementSelectStars(t *testing.T) {
	sel := parseStatement(t, "select *, t.* from t, u").(*SelectStatement)
	require.Len(t, sel.Items, 2)
	assert.True(t, sel.Items[0].Star)
	assert.Empty(t, sel.Items[0].StarTable)
	assert.True(t, sel.Items[1].Star)
	assert.Equal(t, "t", sel.Items[1].StarTable)

	require.Len(t, sel.Joins, 1)
	assert.Equal(t, JoinInner, sel.Joins[0].Type)
	assert.Equal(t, "u", sel.Joins[0].Table.Name)
	assert.Empty(t, sel.Joins[0].OnText)
}

func TestStatementSelectWithoutFrom(t *testing.T) {
	sel := parseStatement(t, "SELECT 1").(*SelectStatement)
	assert.Empty(t, sel.From)
	assert.Equal(t, "1", sel.Items[0].ExprText)
}

func TestStatementUnsupportedSelectClauses(t *testing.T) {
	for _, q := range []string{
		"SELECT a FROM t ORDER BY a",
		"SELECT a FROM t LIMIT 1",
		"SELECT a FROM t GROUP BY a",
		"SELECT a FROM t RIGHT JOIN u ON 1",
		"SELECT DISTINCT a FROM t",
	} {
		_, err := NewStatementParser().ParseStatement(q)
		assert.Error(t, err, q)
	}
}

func TestStatementInsert(t *testing.T) {
	stmt := parseStatement(t, "INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y');")
	ins, ok := stmt.(*InsertStatement)
	require.True(t, ok)
	assert.Equal(t, "INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y')", ins.RawText)
}

func TestStatementCreateDatabase(t *testing.T) {
	stmt := parseStatement(t, "CREATE DATABASE IF NOT EXISTS shop DEFAULT CHARACTER SET utf8mb4")
	c, ok := stmt.(*CreateStatement)
	require.True(t, ok)
	assert.True(t, c.IsDatabase)
	assert.True(t, c.IfNotExists)
	assert.Equal(t, "shop", c.Name)

	c = parseStatement(t, "create schema `other`").(*CreateStatement)
	assert.True(t, c.IsDatabase)
	assert.False(t, c.IfNotExists)
	assert.Equal(t, "other", c.Name)
}

func TestStatementCreateTable(t *testing.T) {
	stmt := parseStatement(t, `CREATE TABLE IF NOT EXISTS shop.orders (
		id INT(11) UNSIGNED NOT NULL AUTO_INCREMENT,
		status VARCHAR(20) NOT NULL DEFAULT 'new' COMMENT 'order state',
		note TEXT NULL,
		created DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		amount DECIMAL(10, 2) DEFAULT -1,
		kind ENUM('a', 'b') CHARACTER SET utf8 COLLATE utf8_bin,
		PRIMARY KEY (id),
		KEY idx_status (status, created),
		CONSTRAINT fk FOREIGN KEY (id) REFERENCES other (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8 PARTITION BY LIST (id) (PARTITION p0 VALUES IN (1))`)

	c, ok := stmt.(*CreateStatement)
	require.True(t, ok)
	assert.False(t, c.IsDatabase)
	assert.True(t, c.IfNotExists)
	assert.Equal(t, "shop", c.Database)
	assert.Equal(t, "orders", c.Table)
	require.Len(t, c.Fields, 9)

	id := c.Fields[0]
	assert.Equal(t, "id", id.Name)
	assert.False(t, id.Key)
	assert.Equal(t, "INT(11) UNSIGNED", id.Options.Type)
	assert.True(t, id.Options.NotNull)
	assert.True(t, id.Options.AutoIncrement)

	status := c.Fields[1].Options
	assert.True(t, status.HasDefault)
	assert.Equal(t, "'new'", status.DefaultText)
	assert.Equal(t, "order state", status.Comment)

	assert.True(t, c.Fields[2].Options.Null)

	created := c.Fields[3].Options
	assert.Equal(t, "CURRENT_TIMESTAMP", created.DefaultText)
	assert.Equal(t, "CURRENT_TIMESTAMP", created.OnUpdateText)

	assert.Equal(t, "-1", c.Fields[4].Options.DefaultText)
	assert.Equal(t, "kind", c.Fields[5].Name)

	for _, f := range c.Fields[6:] {
		assert.True(t, f.Key, f.Name)
	}
}

func TestStatementDrop(t *testing.T) {
	d := parseStatement(t, "DROP DATABASE IF EXISTS shop").(*DropStatement)
	assert.True(t, d.IsDatabase)
	assert.True(t, d.IfExists)
	assert.Equal(t, []TableName{{Name: "shop"}}, d.Names)

	d = parseStatement(t, "DROP TABLE a, db.b").(*DropStatement)
	assert.False(t, d.IsDatabase)
	assert.False(t, d.IfExists)
	assert.Equal(t, []TableName{{Name: "a"}, {Database: "db", Name: "b"}}, d.Names)
}

func TestStatementTruncate(t *testing.T) {
	tr := parseStatement(t, "TRUNCATE TABLE db.logs").(*TruncateStatement)
	assert.Equal(t, TableName{Database: "db", Name: "logs"}, tr.Table)

	tr = parseStatement(t, "truncate logs").(*TruncateStatement)
	assert.Equal(t, "logs", tr.Table.Name)
}

func TestStatementAlter(t *testing.T) {
	a := parseStatement(t, "ALTER TABLE t ADD PARTITION (PARTITION p1 VALUES IN (1), PARTITION p2 VALUES IN (2)), ADD COLUMN x INT").(*AlterStatement)
	assert.Equal(t, "t", a.Table.Name)
	require.Len(t, a.Operations, 2)
	assert.Equal(t, "ADD PARTITION (PARTITION p1 VALUES IN (1), PARTITION p2 VALUES IN (2))", a.Operations[0].Text)
	assert.True(t, a.Operations[0].Tokens[0].IsWord("ADD"))
	assert.Equal(t, "ADD COLUMN x INT", a.Operations[1].Text)
}

func TestStatementSet(t *testing.T) {
	s := parseStatement(t, "SET NAMES utf8mb4").(*SetStatement)
	assert.Equal(t, "SET NAMES utf8mb4", s.Text)
}

func TestStatementUpdateAndDelete(t *testing.T) {
	u := parseStatement(t, "UPDATE t SET a = a + 1, t.b = ? WHERE id IN (1, 2)").(*UpdateStatement)
	assert.Equal(t, "t", u.Table.Name)
	assert.Equal(t, []Assignment{{Column: "a", ExprText: "a + 1"}, {Column: "b", ExprText: "?"}}, u.Assignments)
	assert.Equal(t, []string{"id IN (1, 2)"}, u.WhereFragments)

	d := parseStatement(t, "DELETE FROM t").(*DeleteStatement)
	assert.Equal(t, "t", d.Table.Name)
	assert.Empty(t, d.WhereFragments)
}

func TestStatementReservedWordNames(t *testing.T) {
	for _, q := range []string{
		"SELECT * FROM where",
		"SELECT * FROM t AS order",
		"CREATE TABLE t (order INT)",
		"CREATE TABLE from (a INT)",
		"DROP TABLE select",
	} {
		_, err := NewStatementParser().ParseStatement(q)
		assert.Error(t, err, q)
	}

	sel := parseStatement(t, "SELECT * FROM `where`").(*SelectStatement)
	assert.Equal(t, []TableName{{Name: "where"}}, sel.From)

	c := parseStatement(t, "CREATE TABLE t (`order` INT, s SET('a', 'b'))").(*CreateStatement)
	require.Len(t, c.Fields, 2)
	assert.Equal(t, "order", c.Fields[0].Name)
	assert.Equal(t, "SET('A', 'B')", c.Fields[1].Options.Type)
}

func TestStatementUnsupported(t *testing.T) {
	for _, q := range []string{"", "GRANT ALL ON x TO y", "CREATE INDEX i ON t (a)", "DROP VIEW v", "SELECT 1 2"} {
		_, err := NewStatementParser().ParseStatement(q)
		assert.Error(t, err, q)
	}
}
