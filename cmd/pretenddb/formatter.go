package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pretenddb/pretenddb/internal/QE"
	"github.com/pretenddb/pretenddb/pkg/pretenddb"
)

type OutputMode int

const (
	OutputTable OutputMode = iota
	OutputList
	OutputCSV
)

// Formatter prints result tables in the selected output mode.
type Formatter struct {
	mode OutputMode
}

func NewFormatter() *Formatter {
	return &Formatter{mode: OutputTable}
}

func (f *Formatter) SetMode(mode OutputMode) {
	f.mode = mode
}

func (f *Formatter) Format(w io.Writer, t *pretenddb.ResultTable) {
	switch f.mode {
	case OutputCSV:
		f.formatCSV(w, t)
	case OutputList:
		f.formatList(w, t)
	default:
		t.Render(w)
	}
}

// formatList prints one line per row with values separated by '|'.
func (f *Formatter) formatList(w io.Writer, t *pretenddb.ResultTable) {
	fmt.Fprintln(w, strings.Join(t.ColumnNames(), "|"))
	for _, row := range t.Rows() {
		fmt.Fprintln(w, strings.Join(cells(row), "|"))
	}
}

// formatCSV writes NULL as an empty field.
func (f *Formatter) formatCSV(w io.Writer, t *pretenddb.ResultTable) {
	cw := csv.NewWriter(w)
	cw.Write(t.ColumnNames())
	for _, row := range t.Rows() {
		record := make([]string, len(row))
		for i, v := range row {
			if v != nil {
				record[i] = QE.ToString(v)
			}
		}
		cw.Write(record)
	}
	cw.Flush()
}

func cells(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if v == nil {
			out[i] = "NULL"
		} else {
			out[i] = QE.ToString(v)
		}
	}
	return out
}
