package DS

// TableMetrics is a snapshot of one table's contents.
type TableMetrics struct {
	Name       string
	Columns    int
	Rows       int
	Partitions int
	// AutoIncrement is the last value handed out or accepted for the
	// autoincrement column, 0 if none.
	AutoIncrement int64
}

// DatabaseMetrics holds statistics about one database. Tables are sorted by
// name.
type DatabaseMetrics struct {
	Name      string
	Tables    []TableMetrics
	TotalRows int
}

// CollectMetrics builds a DatabaseMetrics snapshot of d.
func CollectMetrics(d *Database) DatabaseMetrics {
	m := DatabaseMetrics{Name: d.Name()}
	for _, name := range d.TableNames() {
		t, err := d.Table(name)
		if err != nil {
			continue
		}
		tm := TableMetrics{
			Name:          name,
			Columns:       len(t.Columns()),
			Rows:          t.RowCount(),
			Partitions:    len(t.Partitions()),
			AutoIncrement: t.AutoIncrementValue(),
		}
		m.Tables = append(m.Tables, tm)
		m.TotalRows += tm.Rows
	}
	return m
}
