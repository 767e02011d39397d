// Package driver registers pretenddb as a Go database/sql driver under the
// name "pretenddb".
//
// Data source names use the MySQL driver syntax. The address selects the
// in-memory server, so every connection to the same address sees the same
// databases; the database name becomes the connection's current database:
//
//	import _ "github.com/pretenddb/pretenddb/driver"
//
//	db, err := sql.Open("pretenddb", "tcp(localhost:3306)/app?autocreate=true")
package driver

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/pretenddb/pretenddb/pkg/pretenddb"
)

// DriverName is the name used to register the driver with database/sql.
const DriverName = "pretenddb"

// DefaultRegistry holds the servers of the registered driver.
var DefaultRegistry = pretenddb.NewRegistry(pretenddb.Options{})

func init() {
	sql.Register(DriverName, &Driver{Registry: DefaultRegistry})
}

// Driver implements driver.Driver and driver.DriverContext.
type Driver struct {
	Registry *pretenddb.Registry
}

// Config is the part of a DSN the driver uses.
type Config struct {
	Addr   string
	DBName string
	// AutoCreate creates DBName on connect if it does not exist.
	AutoCreate bool
}

// ParseDSN parses a MySQL-style DSN such as
// "user:pass@tcp(host:3306)/dbname?autocreate=true".
func ParseDSN(dsn string) (*Config, error) {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	cfg := &Config{Addr: mc.Addr, DBName: mc.DBName}
	if v, ok := mc.Params["autocreate"]; ok {
		if cfg.AutoCreate, err = strconv.ParseBool(v); err != nil {
			return nil, pretenddb.Errorf(pretenddb.ER_WRONG_ARGUMENTS, "invalid autocreate value %q", v)
		}
	}
	return cfg, nil
}

// Open opens a new connection to the server named by the DSN.
func (d *Driver) Open(name string) (driver.Conn, error) {
	c, err := d.OpenConnector(name)
	if err != nil {
		return nil, err
	}
	return c.Connect(context.Background())
}

func (d *Driver) OpenConnector(name string) (driver.Connector, error) {
	cfg, err := ParseDSN(name)
	if err != nil {
		return nil, err
	}
	return &Connector{driver: d, cfg: cfg}, nil
}

func (d *Driver) registry() *pretenddb.Registry {
	if d.Registry == nil {
		return DefaultRegistry
	}
	return d.Registry
}

// Connector implements driver.Connector for one parsed DSN.
type Connector struct {
	driver *Driver
	cfg    *Config
}

func (c *Connector) Connect(ctx context.Context) (driver.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reg := c.driver.registry()
	srv := reg.Server(c.cfg.Addr)
	mu := reg.Lock(c.cfg.Addr)

	if c.cfg.DBName != "" {
		mu.Lock()
		var err error
		if c.cfg.AutoCreate && !srv.DatabaseExists(c.cfg.DBName) {
			_, err = srv.CreateDatabase(c.cfg.DBName)
		} else {
			_, err = srv.GetDatabase(c.cfg.DBName)
		}
		mu.Unlock()
		if err != nil {
			return nil, err
		}
	}
	return &Conn{server: srv, mu: mu, database: c.cfg.DBName}, nil
}

func (c *Connector) Driver() driver.Driver {
	return c.driver
}

// Ensure Driver and Connector implement the driver interfaces.
var _ driver.Driver = &Driver{}
var _ driver.DriverContext = &Driver{}
var _ driver.Connector = &Connector{}
