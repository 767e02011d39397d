package pretenddb

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pretenddb/pretenddb/internal/QE"
	"github.com/pretenddb/pretenddb/internal/log"
)

var testNow = time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestServer() *Server {
	return NewServer(Options{
		Clock:  func() time.Time { return testNow },
		Logger: log.New(io.Discard, log.LevelDebug),
	})
}

// newSession returns a session on database "d".
func newSession(t *testing.T, setup ...string) *Session {
	t.Helper()
	s := newTestServer().Session("")
	mustExec(t, s, "CREATE DATABASE d")
	mustExec(t, s, "USE d")
	for _, q := range setup {
		mustExec(t, s, q)
	}
	return s
}

func mustExec(t *testing.T, s *Session, query string, params ...interface{}) *QueryResult {
	t.Helper()
	res, err := s.Execute(query, params...)
	require.NoError(t, err, query)
	return res
}

func rowsOf(t *testing.T, s *Session, query string, params ...interface{}) [][]interface{} {
	t.Helper()
	res := mustExec(t, s, query, params...)
	require.NotNil(t, res.Table, query)
	return res.Table.Rows()
}

func TestInsertAndSelectByID(t *testing.T) {
	s := newSession(t, "CREATE TABLE t (id INT AUTO_INCREMENT, name VARCHAR(10))")
	assert.Equal(t, "d", s.Database())

	res := mustExec(t, s, "INSERT INTO t (name) VALUES ('a'),('b')")
	assert.Equal(t, int64(2), res.AffectedRows)
	assert.Equal(t, int64(2), res.LastInsertID)

	res = mustExec(t, s, "SELECT * FROM t WHERE id = 1")
	assert.Equal(t, []string{"id", "name"}, res.Table.ColumnNames())
	assert.Equal(t, []map[string]interface{}{{"id": int64(1), "name": "a"}}, res.Table.AllRows())
	assert.Equal(t, "d", res.CurrentDatabase)
}

func TestInsertPlaceholdersInSourceOrder(t *testing.T) {
	s := newSession(t, "CREATE TABLE t (id INT AUTO_INCREMENT, name VARCHAR(10))")

	res := mustExec(t, s, "INSERT INTO t VALUES (?, ?)", 5, "x")
	assert.Equal(t, int64(1), res.AffectedRows)
	assert.Equal(t, int64(0), res.LastInsertID)

	res = mustExec(t, s, "INSERT INTO t (name, id) VALUES (?, ?), (?, NULL)", "y", 0, "z")
	assert.Equal(t, int64(7), res.LastInsertID)

	assert.Equal(t, [][]interface{}{
		{int64(5), "x"},
		{int64(6), "y"},
		{int64(7), "z"},
	}, rowsOf(t, s, "SELECT id, name FROM t"))
}

func TestSelfJoinAmbiguousField(t *testing.T) {
	s := newSession(t,
		"CREATE TABLE u (id INT, name VARCHAR(10))",
		"INSERT INTO u VALUES (1, 'x')",
	)

	_, err := s.Execute("SELECT name FROM u a JOIN u b ON a.id = b.id")
	require.Error(t, err)
	assert.True(t, IsErrorCode(err, ER_NON_UNIQ_ERROR))

	var amb *QE.AmbiguousFieldError
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, []string{"d.a", "d.b"}, amb.Candidates)

	assert.Equal(t, [][]interface{}{{"x", "x"}}, rowsOf(t, s, "SELECT a.name, b.name FROM u AS a JOIN u AS b ON a.id = b.id"))

	_, err = s.Execute("SELECT u.id FROM u JOIN u ON 1")
	assert.True(t, IsErrorCode(err, ER_NONUNIQ_TABLE))
}

func joinSession(t *testing.T) *Session {
	return newSession(t,
		"CREATE TABLE a (k INT, av VARCHAR(5))",
		"CREATE TABLE b (k INT, bv VARCHAR(5))",
		"INSERT INTO a VALUES (1, 'a1'), (2, 'a2'), (3, 'a3')",
		"INSERT INTO b VALUES (1, 'b1'), (1, 'b1x'), (3, 'b3')",
	)
}

func TestLeftJoinKeepsUnmatchedRows(t *testing.T) {
	s := joinSession(t)

	res := mustExec(t, s, "SELECT a.k, bv FROM a LEFT JOIN b ON a.k = b.k")
	assert.Equal(t, []string{"k", "bv"}, res.Table.ColumnNames())
	assert.Equal(t, [][]interface{}{
		{int64(1), "b1"},
		{int64(1), "b1x"},
		{int64(2), nil},
		{int64(3), "b3"},
	}, res.Table.Rows())

	res = mustExec(t, s, "SELECT * FROM a LEFT OUTER JOIN b ON a.k = b.k WHERE b.k IS NULL")
	assert.Equal(t, []string{"k", "av", "k", "bv"}, res.Table.ColumnNames())
	assert.Equal(t, [][]interface{}{{int64(2), "a2", nil, nil}}, res.Table.Rows())
}

func TestInnerAndCommaJoins(t *testing.T) {
	s := joinSession(t)

	assert.Equal(t, [][]interface{}{{"a1", "b1"}, {"a3", "b3"}},
		rowsOf(t, s, "SELECT av, bv FROM a JOIN b ON a.k = b.k WHERE bv != 'b1x'"))

	assert.Equal(t, [][]interface{}{{"a1", "b1"}, {"a1", "b1x"}, {"a3", "b3"}},
		rowsOf(t, s, "SELECT av, bv FROM a, b WHERE a.k = b.k"))

	res := mustExec(t, s, "SELECT b.* FROM a INNER JOIN d.b ON a.k = b.k AND a.k > 1")
	assert.Equal(t, []string{"k", "bv"}, res.Table.ColumnNames())
	assert.Equal(t, [][]interface{}{{int64(3), "b3"}}, res.Table.Rows())

	_, err := s.Execute("SELECT c.* FROM a")
	assert.True(t, IsErrorCode(err, ER_BAD_TABLE_ERROR))
}

func TestPlaceholdersAcrossClauses(t *testing.T) {
	s := joinSession(t)

	rows := rowsOf(t, s, "SELECT ? AS p, bv FROM a JOIN b ON a.k = b.k AND b.bv != ? WHERE a.k > ?", "P", "b1x", 0)
	assert.Equal(t, [][]interface{}{{"P", "b1"}, {"P", "b3"}}, rows)

	rows = rowsOf(t, s, "SELECT av FROM a WHERE k IN (?, ?)", 1, "3")
	assert.Equal(t, [][]interface{}{{"a1"}, {"a3"}}, rows)
}

func TestSelectWithoutFrom(t *testing.T) {
	s := newTestServer().Session("")

	res := mustExec(t, s, "SELECT 1 + 2, UPPER('x') AS u, IF(NULL, 'y', 'n'), 7 / 2")
	assert.Equal(t, []string{"1 + 2", "u", "IF(NULL, 'y', 'n')", "7 / 2"}, res.Table.ColumnNames())
	assert.Equal(t, [][]interface{}{{int64(3), "X", "n", 3.5}}, res.Table.Rows())

	assert.Empty(t, rowsOf(t, s, "SELECT 1 WHERE 0"))

	_, err := s.Execute("SELECT *")
	assert.True(t, IsErrorCode(err, ER_NO_TABLES_USED))
}

func TestDefaultsAndOnUpdate(t *testing.T) {
	now := testNow
	srv := NewServer(Options{
		Clock:  func() time.Time { return now },
		Logger: log.New(io.Discard, log.LevelOff),
	})
	s := srv.Session("")
	mustExec(t, s, "CREATE DATABASE IF NOT EXISTS d")
	mustExec(t, s, "CREATE DATABASE IF NOT EXISTS d")
	mustExec(t, s, "USE `d`;")
	mustExec(t, s, `CREATE TABLE logs (
		id INT NOT NULL AUTO_INCREMENT,
		msg VARCHAR(20) NOT NULL DEFAULT 'none',
		level INT DEFAULT 1 + 1,
		created DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		note TEXT NULL DEFAULT NULL,
		PRIMARY KEY (id)
	) ENGINE=InnoDB`)

	mustExec(t, s, "INSERT INTO logs (note) VALUES (NULL)")
	assert.Equal(t, []map[string]interface{}{{
		"id": int64(1), "msg": "none", "level": int64(2), "created": "2023-06-01 12:00:00", "note": nil,
	}}, mustExec(t, s, "SELECT * FROM logs").Table.AllRows())

	now = now.Add(time.Hour)
	res := mustExec(t, s, "UPDATE logs SET msg = ? WHERE id = ?", "hi", 1)
	assert.Equal(t, int64(1), res.AffectedRows)
	res = mustExec(t, s, "UPDATE logs SET msg = 'hi'")
	assert.Equal(t, int64(0), res.AffectedRows)

	assert.Equal(t, [][]interface{}{{"hi", "2023-06-01 13:00:00"}}, rowsOf(t, s, "SELECT msg, created FROM logs"))

	db, err := srv.GetDatabase("d")
	require.NoError(t, err)
	tbl, err := db.Table("logs")
	require.NoError(t, err)
	col, ok := tbl.Column("id")
	require.True(t, ok)
	assert.False(t, col.Nullable)
	col, _ = tbl.Column("note")
	assert.True(t, col.Nullable)
	assert.Nil(t, col.Default)
}

func TestUpdateUsesCurrentRow(t *testing.T) {
	s := newSession(t,
		"CREATE TABLE c (id INT AUTO_INCREMENT, n INT)",
		"INSERT INTO c (n) VALUES (1), (2), (3)",
	)
	res := mustExec(t, s, "UPDATE c SET n = n * 10 + ? WHERE n >= ?", 1, 2)
	assert.Equal(t, int64(2), res.AffectedRows)
	assert.Equal(t, [][]interface{}{{int64(1)}, {int64(21)}, {int64(31)}}, rowsOf(t, s, "SELECT n FROM c"))

	_, err := s.Execute("UPDATE c SET nope = 1")
	assert.True(t, IsErrorCode(err, ER_BAD_FIELD_ERROR))
}

func TestDelete(t *testing.T) {
	s := newSession(t,
		"CREATE TABLE c (id INT AUTO_INCREMENT, n INT)",
		"INSERT INTO c (n) VALUES (1), (2), (3)",
	)
	res := mustExec(t, s, "DELETE FROM c WHERE id > ?", 1)
	assert.Equal(t, int64(2), res.AffectedRows)
	assert.Equal(t, [][]interface{}{{int64(1), int64(1)}}, rowsOf(t, s, "SELECT * FROM c"))

	res = mustExec(t, s, "DELETE FROM c")
	assert.Equal(t, int64(1), res.AffectedRows)
}

func TestTruncateRestartsAutoIncrement(t *testing.T) {
	s := newSession(t,
		"CREATE TABLE t (id INT AUTO_INCREMENT, name VARCHAR(10))",
		"INSERT INTO t (name) VALUES ('a'), ('b')",
		"TRUNCATE TABLE t",
	)
	assert.Empty(t, rowsOf(t, s, "SELECT * FROM t"))
	res := mustExec(t, s, "INSERT INTO t (name) VALUES ('c')")
	assert.Equal(t, int64(1), res.LastInsertID)
}

func TestFailedInsertStoresNothing(t *testing.T) {
	s := newSession(t, "CREATE TABLE t (id INT AUTO_INCREMENT, name VARCHAR(10))")

	_, err := s.Execute("INSERT INTO t (name) VALUES ('ok'), (FOO())")
	assert.True(t, IsErrorCode(err, ER_SP_DOES_NOT_EXIST))

	_, err = s.Execute("INSERT INTO t (name) VALUES ('ok'), ('a', 'b')")
	assert.True(t, IsErrorCode(err, ER_WRONG_VALUE_COUNT_ON_ROW))

	_, err = s.Execute("INSERT INTO t (nope) VALUES (1)")
	assert.True(t, IsErrorCode(err, ER_BAD_FIELD_ERROR))

	_, err = s.Execute("INSERT INTO t (name) VALUES (?), (?)", "only one")
	assert.True(t, IsErrorCode(err, ER_WRONG_ARGUMENTS))

	assert.Empty(t, rowsOf(t, s, "SELECT * FROM t"))
	assert.Equal(t, int64(1), mustExec(t, s, "INSERT INTO t (name) VALUES ('x')").LastInsertID)
}

func TestDropAndCreate(t *testing.T) {
	srv := newTestServer()
	s := srv.Session("")
	mustExec(t, s, "CREATE DATABASE b")
	mustExec(t, s, "CREATE SCHEMA a")
	assert.Equal(t, []string{"a", "b"}, srv.DatabaseNames())

	_, err := s.Execute("CREATE DATABASE a")
	assert.True(t, IsErrorCode(err, ER_DB_CREATE_EXISTS))

	mustExec(t, s, "CREATE TABLE a.t (id INT)")
	_, err = s.Execute("CREATE TABLE a.t (id INT)")
	assert.True(t, IsErrorCode(err, ER_TABLE_EXISTS_ERROR))
	mustExec(t, s, "CREATE TABLE IF NOT EXISTS a.t (other INT)")

	_, err = s.Execute("DROP TABLE a.t, a.missing")
	assert.True(t, IsErrorCode(err, ER_BAD_TABLE_ERROR))
	assert.True(t, srv.DatabaseExists("a"))
	mustExec(t, s, "DROP TABLE IF EXISTS a.t, a.missing")
	_, err = s.Execute("SELECT * FROM a.t")
	assert.True(t, IsErrorCode(err, ER_NO_SUCH_TABLE))

	_, err = s.Execute("DROP DATABASE a, nope")
	assert.True(t, IsErrorCode(err, ER_DB_DROP_EXISTS))
	assert.True(t, srv.DatabaseExists("a"))

	mustExec(t, s, "DROP DATABASE IF EXISTS nope")
	mustExec(t, s, "DROP DATABASE a")
	assert.Equal(t, []string{"b"}, srv.DatabaseNames())

	_, err = s.Execute("CREATE TABLE t (id INT, id INT)")
	assert.True(t, IsErrorCode(err, ER_NO_DB_ERROR))
	mustExec(t, s, "USE b")
	_, err = s.Execute("CREATE TABLE t (id INT, id INT)")
	assert.True(t, IsErrorCode(err, ER_DUP_FIELDNAME))
}

func TestAlterAddPartition(t *testing.T) {
	s := newSession(t, "CREATE TABLE t (id INT)")
	mustExec(t, s, "ALTER TABLE t ADD PARTITION (PARTITION p1 VALUES IN (1), PARTITION p2 VALUES IN ('a', 'b'))")

	_, err := s.Execute("ALTER TABLE t ADD PARTITION (PARTITION p3 VALUES IN (3)), ADD PARTITION (PARTITION p1 VALUES IN (9))")
	assert.True(t, IsErrorCode(err, ER_SAME_NAME_PARTITION))

	_, err = s.Execute("ALTER TABLE t ADD COLUMN x INT")
	assert.True(t, IsErrorCode(err, ER_NOT_SUPPORTED_YET))

	_, err = s.Execute("ALTER TABLE t ADD PARTITION PARTITION p4 VALUES IN (4)")
	assert.True(t, IsErrorCode(err, ER_PARSE_ERROR))

	db, err := s.Server().GetDatabase("d")
	require.NoError(t, err)
	tbl, err := db.Table("t")
	require.NoError(t, err)
	parts := tbl.Partitions()
	require.Len(t, parts, 2)
	assert.Equal(t, "p1", parts[0].Name)
	assert.Equal(t, "1", parts[0].Value)
	assert.Equal(t, "p2", parts[1].Name)
	assert.Equal(t, "'a', 'b'", parts[1].Value)
}

func TestStatementErrors(t *testing.T) {
	s := newSession(t, "CREATE TABLE t (id INT, name VARCHAR(10))", "INSERT INTO t VALUES (1, 'a')")

	tests := []struct {
		query string
		code  ErrorCode
	}{
		{"USE nope", ER_BAD_DB_ERROR},
		{"SELECT * FROM missing", ER_NO_SUCH_TABLE},
		{"SELECT nope FROM t", ER_BAD_FIELD_ERROR},
		{"SELECT FOO(1)", ER_SP_DOES_NOT_EXIST},
		{"SELECT IF(1, 2)", ER_WRONG_PARAMCOUNT_TO_NATIVE_FCT},
		{"SELECT 1 +", ER_PARSE_ERROR},
		{"SELECT 1 @", ER_PARSE_ERROR},
		{"SELECT id FROM t ORDER BY id", ER_PARSE_ERROR},
		{"SELECT id FROM t WHERE id IN (SELECT id FROM t)", ER_NOT_SUPPORTED_YET},
		{"   ", ER_EMPTY_QUERY},
	}
	for _, tt := range tests {
		_, err := s.Execute(tt.query)
		require.Error(t, err, tt.query)
		assert.Equal(t, tt.code, ErrorCodeOf(err), "%s: %v", tt.query, err)
	}

	_, err := s.Server().ExecuteQuery("SELECT * FROM t", nil, "")
	assert.True(t, IsErrorCode(err, ER_NO_DB_ERROR))
}

func TestErrorCarriesQueryAndCauses(t *testing.T) {
	s := newSession(t, "CREATE TABLE t (id INT)", "INSERT INTO t VALUES (1)")

	_, err := s.Execute("SELECT nope FROM t")
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "SELECT nope FROM t", e.Query)
	assert.Equal(t, "42S22", e.SQLState())
	assert.Contains(t, e.Error(), "Error 1054 (42S22): unknown column 'nope' (known: d.t.id)")
	assert.Contains(t, e.Error(), "[query: SELECT nope FROM t]")
	assert.Equal(t, []string{"*QE.UnknownFieldError: unknown column 'nope' (known: d.t.id)"}, e.CauseChain())

	// Sessions keep their database after a failure.
	assert.Equal(t, "d", s.Database())
}

func TestInsertNonNumericAutoIncrementGeneratesID(t *testing.T) {
	s := newSession(t, "CREATE TABLE t (id INT AUTO_INCREMENT, name VARCHAR(10))")
	mustExec(t, s, "INSERT INTO t (id, name) VALUES (4, 'a')")

	res := mustExec(t, s, "INSERT INTO t (id, name) VALUES ('abc', 'x')")
	assert.Equal(t, int64(5), res.LastInsertID)
	assert.Equal(t, [][]interface{}{
		{int64(4), "a"},
		{int64(5), "x"},
	}, rowsOf(t, s, "SELECT id, name FROM t"))
}

func TestCreateTableWithFailingInitValue(t *testing.T) {
	s := newSession(t)
	for _, q := range []string{
		"CREATE TABLE bad (a INT DEFAULT NOPE())",
		"CREATE TABLE bad (a INT, b INT ON UPDATE NOPE())",
	} {
		_, err := s.Execute(q)
		assert.True(t, IsErrorCode(err, ER_SP_DOES_NOT_EXIST), q)

		_, err = s.Execute("SELECT * FROM bad")
		assert.True(t, IsErrorCode(err, ER_NO_SUCH_TABLE), q)

		db, err := s.server.GetDatabase("d")
		require.NoError(t, err)
		assert.False(t, db.TableExists("bad"), q)
	}
}

func TestUseWithTrailingComment(t *testing.T) {
	s := newSession(t)
	mustExec(t, s, "CREATE DATABASE e")

	res := mustExec(t, s, "USE e -- switch")
	assert.Equal(t, "e", res.CurrentDatabase)
	assert.Equal(t, "e", s.Database())

	mustExec(t, s, "USE `d`; # back\n")
	assert.Equal(t, "d", s.Database())

	_, err := s.Execute("USE nope -- missing")
	assert.True(t, IsErrorCode(err, ER_BAD_DB_ERROR))
	assert.Equal(t, "d", s.Database())
}

func TestSetIsIgnored(t *testing.T) {
	s := newTestServer().Session("")
	res := mustExec(t, s, "SET NAMES utf8mb4")
	assert.Nil(t, res.Table)
}

func TestRender(t *testing.T) {
	s := newSession(t, "CREATE TABLE t (id INT, name VARCHAR(10) NULL)", "INSERT INTO t (id) VALUES (1)")
	var buf bytes.Buffer
	mustExec(t, s, "SELECT id, name FROM t").Table.Render(&buf)
	assert.Contains(t, buf.String(), "| id | name |")
	assert.Contains(t, buf.String(), "NULL")
}

func TestParseCacheReusesFragments(t *testing.T) {
	s := newSession(t, "CREATE TABLE t (id INT AUTO_INCREMENT, v INT)")
	mustExec(t, s, "INSERT INTO t (v) VALUES (10), (20), (30)")

	_, before := s.Server().ParseCacheStats()
	for i, want := range []int64{10, 20, 30} {
		rows := rowsOf(t, s, "SELECT v FROM t WHERE id = ?", i+1)
		assert.Equal(t, [][]interface{}{{want}}, rows)
	}
	hits, misses := s.Server().ParseCacheStats()
	assert.Equal(t, before+2, misses)
	assert.Equal(t, uint64(4), hits)

	off := NewServer(Options{ParseCacheSize: -1, Logger: log.New(io.Discard, log.LevelOff)})
	hits, misses = off.ParseCacheStats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestServerMetrics(t *testing.T) {
	s := newSession(t,
		"CREATE TABLE t (id INT AUTO_INCREMENT, v INT)",
		"INSERT INTO t (v) VALUES (1), (2)",
	)
	m, err := s.Server().Metrics("d")
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalRows)
	require.Len(t, m.Tables, 1)
	assert.Equal(t, int64(2), m.Tables[0].AutoIncrement)

	_, err = s.Server().Metrics("nope")
	assert.True(t, IsErrorCode(err, ER_BAD_DB_ERROR))
}
