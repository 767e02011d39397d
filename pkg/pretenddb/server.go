package pretenddb

import (
	"regexp"
	"strings"
	"time"

	"github.com/pretenddb/pretenddb/internal/DS"
	"github.com/pretenddb/pretenddb/internal/QE"
	"github.com/pretenddb/pretenddb/internal/QP"
	"github.com/pretenddb/pretenddb/internal/log"
)

// Server is an in-memory MySQL server: a set of databases plus the parsers
// that execute statements against them.
//
// A Server does no locking. Hosts that share one between goroutines must
// serialize calls, for example with Registry.Lock.
type Server struct {
	databases  *DS.Catalog[*DS.Database]
	parser     *QP.Parser
	statements StatementParser
	clock      func() time.Time
	logger     *log.Logger
}

func NewServer(opts Options) *Server {
	opts = opts.withDefaults()
	parser := QP.NewParser()
	if opts.ParseCacheSize > 0 {
		parser = parser.WithCache(QP.NewParseCache(opts.ParseCacheSize))
	}
	return &Server{
		databases:  DS.NewCatalog[*DS.Database](),
		parser:     parser,
		statements: opts.StatementParser,
		clock:      opts.Clock,
		logger:     opts.Logger,
	}
}

// Metrics returns a snapshot of the tables of database name.
func (s *Server) Metrics(name string) (DS.DatabaseMetrics, error) {
	db, err := s.GetDatabase(name)
	if err != nil {
		return DS.DatabaseMetrics{}, err
	}
	return DS.CollectMetrics(db), nil
}

// ParseCacheStats reports expression cache hits and misses; both are 0 when
// the cache is disabled.
func (s *Server) ParseCacheStats() (hits, misses uint64) {
	if c := s.parser.Cache(); c != nil {
		return c.Stats()
	}
	return 0, 0
}

func (s *Server) DatabaseExists(name string) bool {
	return s.databases.Has(name)
}

func (s *Server) CreateDatabase(name string) (*DS.Database, error) {
	if name == "" {
		return nil, NewError(ER_WRONG_DB_NAME, "Incorrect database name ''")
	}
	if s.databases.Has(name) {
		return nil, Errorf(ER_DB_CREATE_EXISTS, "Can't create database '%s'; database exists", name)
	}
	db := DS.NewDatabase(name, s.clock)
	s.databases.Put(name, db)
	s.logger.Info("created database '%s'", name)
	return db, nil
}

func (s *Server) GetDatabase(name string) (*DS.Database, error) {
	db, ok := s.databases.Get(name)
	if !ok {
		return nil, Errorf(ER_BAD_DB_ERROR, "Unknown database '%s' (existing: %s)",
			name, strings.Join(s.databases.Names(), ", "))
	}
	return db, nil
}

func (s *Server) DropDatabase(name string) error {
	if !s.databases.Delete(name) {
		return Errorf(ER_DB_DROP_EXISTS, "Can't drop database '%s'; database doesn't exist", name)
	}
	s.logger.Info("dropped database '%s'", name)
	return nil
}

// DatabaseNames returns the database names sorted.
func (s *Server) DatabaseNames() []string {
	return s.databases.Names()
}

// Session returns a connection-like handle whose current database starts at
// database and follows USE statements.
func (s *Server) Session(database string) *Session {
	return &Session{server: s, database: database}
}

var useStatement = regexp.MustCompile("(?i)^\\s*USE\\s+`?([a-z$_][a-z0-9$_]*)`?\\s*;?\\s*(?:--[ \\t][^\\n]*|#[^\\n]*)?\\s*$")

// ExecuteQuery runs one statement. params bind the ? placeholders in source
// order. currentDB qualifies unqualified table names; the returned
// QueryResult carries the current database after the statement, which only
// USE changes.
//
// Failures are returned as *Error. A statement that fails leaves storage as
// it was before the statement.
func (s *Server) ExecuteQuery(query string, params []interface{}, currentDB string) (*QueryResult, error) {
	res, err := s.execute(query, params, currentDB)
	if err != nil {
		e := ToError(err, query)
		s.logger.Warn("%v", e)
		return nil, e
	}
	return res, nil
}

func (s *Server) execute(query string, params []interface{}, currentDB string) (*QueryResult, error) {
	if m := useStatement.FindStringSubmatch(query); m != nil {
		if _, err := s.GetDatabase(m[1]); err != nil {
			return nil, err
		}
		s.logger.Debug("USE %s", m[1])
		return &QueryResult{CurrentDatabase: m[1]}, nil
	}
	if strings.TrimSpace(query) == "" {
		return nil, NewError(ER_EMPTY_QUERY, "Query was empty")
	}

	stmt, err := s.statements.ParseStatement(query)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("%s in '%s': %s", stmt.Kind(), currentDB, query)

	x := &execution{server: s, query: query, params: params, currentDB: currentDB}
	var res *QueryResult
	switch st := stmt.(type) {
	case *QP.SelectStatement:
		res, err = x.selectRows(st)
	case *QP.InsertStatement:
		res, err = x.insert(st)
	case *QP.UpdateStatement:
		res, err = x.update(st)
	case *QP.DeleteStatement:
		res, err = x.delete(st)
	case *QP.CreateStatement:
		res, err = x.create(st)
	case *QP.DropStatement:
		res, err = x.drop(st)
	case *QP.TruncateStatement:
		res, err = x.truncate(st)
	case *QP.AlterStatement:
		res, err = x.alter(st)
	case *QP.SetStatement:
		res = &QueryResult{}
	default:
		return nil, Errorf(ER_NOT_SUPPORTED_YET, "%s statements are not supported", stmt.Kind())
	}
	if err != nil {
		return nil, err
	}
	res.CurrentDatabase = currentDB
	return res, nil
}

// execution is the state of one ExecuteQuery call.
type execution struct {
	server    *Server
	query     string
	params    []interface{}
	currentDB string
}

func (x *execution) database(name string) (*DS.Database, error) {
	if name == "" {
		name = x.currentDB
	}
	if name == "" {
		return nil, NewError(ER_NO_DB_ERROR, "No database selected")
	}
	return x.server.GetDatabase(name)
}

func (x *execution) table(ref QP.TableName) (*DS.Database, *DS.Table, error) {
	db, err := x.database(ref.Database)
	if err != nil {
		return nil, nil, err
	}
	t, err := db.Table(ref.Name)
	if err != nil {
		return nil, nil, err
	}
	return db, t, nil
}

// paramsFrom returns the parameters left after the first offset ones.
func (x *execution) paramsFrom(offset int) []interface{} {
	if offset >= len(x.params) {
		return nil
	}
	return x.params[offset:]
}

func (x *execution) newContext() *QE.Context {
	return QE.NewContext(x.params).WithClock(x.server.clock)
}

// parse parses an expression fragment of the query, counting its
// placeholders.
func (x *execution) parse(text string) (QP.Expr, int, error) {
	e, err := x.server.parser.ParseExpression(text)
	if err != nil {
		return nil, 0, err
	}
	return e, QP.CountPlaceholders(e), nil
}

// parseWhere joins the WHERE fragments; no WHERE matches every row.
func (x *execution) parseWhere(fragments []string) (QP.Expr, int, error) {
	text := strings.TrimSpace(strings.Join(fragments, " "))
	if text == "" {
		text = "1"
	}
	return x.parse(text)
}
