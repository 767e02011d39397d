package DS

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoTable     = errors.New("no such table")
	ErrTableExists = errors.New("table already exists")
)

// Database is a named set of tables.
type Database struct {
	name   string
	tables *Catalog[*Table]
	clock  func() time.Time
}

// NewDatabase creates an empty database. Tables created in it use clock for
// CURRENT_TIMESTAMP values; nil means time.Now.
func NewDatabase(name string, clock func() time.Time) *Database {
	if clock == nil {
		clock = time.Now
	}
	return &Database{name: name, tables: NewCatalog[*Table](), clock: clock}
}

func (d *Database) Name() string {
	return d.name
}

func (d *Database) CreateTable(name string, columns []*ColumnMeta) (*Table, error) {
	if d.tables.Has(name) {
		return nil, fmt.Errorf("%w: '%s.%s'", ErrTableExists, d.name, name)
	}
	t, err := NewTable(name, columns, d.clock)
	if err != nil {
		return nil, err
	}
	d.tables.Put(name, t)
	return t, nil
}

func (d *Database) Table(name string) (*Table, error) {
	t, ok := d.tables.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: '%s.%s'", ErrNoTable, d.name, name)
	}
	return t, nil
}

func (d *Database) TableExists(name string) bool {
	return d.tables.Has(name)
}

func (d *Database) DropTable(name string) error {
	if !d.tables.Delete(name) {
		return fmt.Errorf("%w: '%s.%s'", ErrNoTable, d.name, name)
	}
	return nil
}

// TableNames returns the table names sorted.
func (d *Database) TableNames() []string {
	return d.tables.Names()
}
