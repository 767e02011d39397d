package QE

import (
	"fmt"
	"sort"
	"time"
)

// Row maps column names to values for one table row.
type Row map[string]interface{}

type aliasLink struct {
	alias string
	table string
	next  *aliasLink
}

type rowBinding struct {
	database string
	table    string
	row      Row
	next     *rowBinding
}

// Context carries everything an expression can read: bound parameters,
// table aliases and the rows currently in scope.
//
// Aliases and rows are immutable linked lists, so Clone is a struct copy and
// bindings added to a clone never reach the original.
type Context struct {
	params  []interface{}
	next    int
	aliases *aliasLink
	rows    *rowBinding
	clock   func() time.Time
}

func NewContext(params []interface{}) *Context {
	return &Context{params: params, clock: time.Now}
}

// WithClock replaces the clock used for CURRENT_TIMESTAMP.
func (c *Context) WithClock(clock func() time.Time) *Context {
	if clock != nil {
		c.clock = clock
	}
	return c
}

func (c *Context) Clone() *Context {
	cp := *c
	return &cp
}

// WithParams returns a copy of c that reads params from the start.
func (c *Context) WithParams(params []interface{}) *Context {
	cp := *c
	cp.params = params
	cp.next = 0
	return &cp
}

func (c *Context) Now() time.Time {
	return c.clock()
}

// ExtractOneBoundParam dequeues the next bound parameter.
func (c *Context) ExtractOneBoundParam() (interface{}, bool) {
	if c.next >= len(c.params) {
		return nil, false
	}
	v := c.params[c.next]
	c.next++
	return v, true
}

// AddTableAlias registers alias for table. Aliases are unique per context.
func (c *Context) AddTableAlias(alias, table string) error {
	for l := c.aliases; l != nil; l = l.next {
		if l.alias == alias {
			return &NonUniqueAliasError{Alias: alias}
		}
	}
	c.aliases = &aliasLink{alias: alias, table: table, next: c.aliases}
	return nil
}

func (c *Context) ResolveAlias(alias string) (string, bool) {
	for l := c.aliases; l != nil; l = l.next {
		if l.alias == alias {
			return l.table, true
		}
	}
	return "", false
}

// SetTableRow binds row under database and tableOrAlias. A later binding for
// the same pair replaces the earlier one.
func (c *Context) SetTableRow(database, tableOrAlias string, row Row) {
	c.rows = &rowBinding{database: database, table: tableOrAlias, row: row, next: c.rows}
}

// bindings returns the visible bindings oldest first, dropping shadowed ones.
func (c *Context) bindings() []*rowBinding {
	var newestFirst []*rowBinding
	seen := make(map[[2]string]bool)
	for b := c.rows; b != nil; b = b.next {
		key := [2]string{b.database, b.table}
		if seen[key] {
			continue
		}
		seen[key] = true
		newestFirst = append(newestFirst, b)
	}
	out := make([]*rowBinding, len(newestFirst))
	for i, b := range newestFirst {
		out[len(out)-1-i] = b
	}
	return out
}

// FieldValue resolves a column reference. Empty table or database matches
// any. Exactly one bound row must provide the field.
func (c *Context) FieldValue(field, table, database string) (interface{}, error) {
	var found []*rowBinding
	var known []string
	for _, b := range c.bindings() {
		for name := range b.row {
			known = append(known, fmt.Sprintf("%s.%s.%s", b.database, b.table, name))
		}
		if table != "" && b.table != table {
			continue
		}
		if database != "" && b.database != database {
			continue
		}
		if _, ok := b.row[field]; ok {
			found = append(found, b)
		}
	}

	switch len(found) {
	case 0:
		sort.Strings(known)
		return nil, &UnknownFieldError{Field: field, Table: table, Database: database, Known: known}
	case 1:
		return found[0].row[field], nil
	}
	candidates := make([]string, len(found))
	for i, b := range found {
		candidates[i] = b.database + "." + b.table
	}
	return nil, &AmbiguousFieldError{Field: field, Table: table, Candidates: candidates}
}
