package driver

import "database/sql/driver"

// Tx implements driver.Tx. There are no multi-statement transactions:
// statements inside a Tx take effect as they run and Rollback undoes
// nothing.
type Tx struct{}

func (t *Tx) Commit() error {
	return nil
}

func (t *Tx) Rollback() error {
	return nil
}

// Ensure Tx implements driver.Tx.
var _ driver.Tx = &Tx{}
