package driver

import (
	"context"
	"database/sql/driver"
	"sync"

	"github.com/pretenddb/pretenddb/pkg/pretenddb"
)

// Conn implements driver.Conn, driver.ConnBeginTx, driver.ExecerContext,
// driver.QueryerContext and driver.Pinger. It tracks its own current
// database; calls on connections to the same server are serialized.
type Conn struct {
	server   *pretenddb.Server
	mu       *sync.Mutex
	database string
	closed   bool
}

func (c *Conn) execute(ctx context.Context, query string, args []driver.NamedValue) (*pretenddb.QueryResult, error) {
	if c.closed {
		return nil, driver.ErrBadConn
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	params, err := fromNamedValues(args)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	res, err := c.server.ExecuteQuery(query, params, c.database)
	if err != nil {
		return nil, err
	}
	c.database = res.CurrentDatabase
	return res, nil
}

// Prepare returns a prepared statement. Statements are parsed on execution.
func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	if c.closed {
		return nil, driver.ErrBadConn
	}
	return &Stmt{query: query, conn: c}, nil
}

func (c *Conn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.Prepare(query)
}

// Close marks the connection closed. The server and its data stay in the
// registry.
func (c *Conn) Close() error {
	c.closed = true
	return nil
}

// Begin returns a transaction whose statements apply immediately.
func (c *Conn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *Conn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if c.closed {
		return nil, driver.ErrBadConn
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Tx{}, nil
}

// ExecContext executes a statement that returns no rows.
func (c *Conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	res, err := c.execute(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return Result{lastInsertID: res.LastInsertID, rowsAffected: res.AffectedRows}, nil
}

// QueryContext executes a query statement.
func (c *Conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	res, err := c.execute(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return newRows(res.Table), nil
}

func (c *Conn) Ping(ctx context.Context) error {
	if c.closed {
		return driver.ErrBadConn
	}
	return ctx.Err()
}

// Ensure Conn implements required interfaces.
var _ driver.Conn = &Conn{}
var _ driver.ConnBeginTx = &Conn{}
var _ driver.ConnPrepareContext = &Conn{}
var _ driver.ExecerContext = &Conn{}
var _ driver.QueryerContext = &Conn{}
var _ driver.Pinger = &Conn{}
