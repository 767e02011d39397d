package QE

import (
	"fmt"
	"strings"
)

// UnknownFieldError reports a column reference no bound row provides.
type UnknownFieldError struct {
	Field    string
	Table    string
	Database string
	// Known lists the database.table.field triples that were bound.
	Known []string
}

func (e *UnknownFieldError) Error() string {
	name := e.Field
	if e.Table != "" {
		name = e.Table + "." + name
	}
	if e.Database != "" {
		name = e.Database + "." + name
	}
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown column '%s'", name)
	}
	return fmt.Sprintf("unknown column '%s' (known: %s)", name, strings.Join(e.Known, ", "))
}

// AmbiguousFieldError reports an unqualified or partially qualified column
// that more than one bound row provides.
type AmbiguousFieldError struct {
	Field string
	Table string
	// Candidates are database.table pairs.
	Candidates []string
}

func (e *AmbiguousFieldError) Error() string {
	name := e.Field
	if e.Table != "" {
		name = e.Table + "." + name
	}
	return fmt.Sprintf("column '%s' is ambiguous (candidates: %s)", name, strings.Join(e.Candidates, ", "))
}

type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("function %s does not exist", strings.ToUpper(e.Name))
}

type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("incorrect parameter count in the call to %s: want %d, got %d", strings.ToUpper(e.Name), e.Want, e.Got)
}

type NonUniqueAliasError struct {
	Alias string
}

func (e *NonUniqueAliasError) Error() string {
	return fmt.Sprintf("not unique table/alias: '%s'", e.Alias)
}

// ValueCountError reports a VALUES tuple whose width differs from the
// column list.
type ValueCountError struct {
	Row    int
	Fields int
	Values int
}

func (e *ValueCountError) Error() string {
	return fmt.Sprintf("column count doesn't match value count at row %d: %d columns, %d values", e.Row, e.Fields, e.Values)
}

// EvaluationError wraps a failure with the source text of the node being
// evaluated.
type EvaluationError struct {
	Source string
	Err    error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluating %q: %v", e.Source, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
