package pretenddb

import (
	"time"

	"github.com/pretenddb/pretenddb/internal/QP"
	"github.com/pretenddb/pretenddb/internal/log"
)

// StatementParser splits a query into its statement shape. *QP.StatementParser
// is the default.
type StatementParser interface {
	ParseStatement(query string) (QP.Statement, error)
}

// Options configures a Server. The zero value is usable.
type Options struct {
	// Clock supplies CURRENT_TIMESTAMP. Defaults to time.Now.
	Clock func() time.Time
	// StatementParser defaults to QP.NewStatementParser().
	StatementParser StatementParser
	// Logger defaults to the process-wide logger.
	Logger *log.Logger
	// ParseCacheSize bounds the cache of parsed expression fragments.
	// 0 selects DefaultParseCacheSize; a negative size disables the cache.
	ParseCacheSize int
}

const DefaultParseCacheSize = 512

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.StatementParser == nil {
		o.StatementParser = QP.NewStatementParser()
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.ParseCacheSize == 0 {
		o.ParseCacheSize = DefaultParseCacheSize
	}
	return o
}
