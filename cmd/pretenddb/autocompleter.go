package main

import (
	"strings"

	"github.com/pretenddb/pretenddb/pkg/pretenddb"
)

var keywords = []string{
	"SELECT", "FROM", "WHERE", "INSERT", "INTO", "VALUES", "UPDATE", "SET",
	"DELETE", "CREATE", "DATABASE", "TABLE", "DROP", "TRUNCATE", "ALTER",
	"ADD", "PARTITION", "USE", "JOIN", "LEFT", "INNER", "OUTER", "CROSS",
	"ON", "AND", "OR", "NOT", "IN", "IS", "NULL", "AS", "IF", "EXISTS",
	"DEFAULT", "AUTO_INCREMENT", "PRIMARY", "KEY", "CURRENT_TIMESTAMP",
}

// AutoCompleter completes keywords and the table names of the session's
// current database. It implements readline.AutoCompleter.
type AutoCompleter struct {
	session *pretenddb.Session
}

func newAutoCompleter(session *pretenddb.Session) *AutoCompleter {
	return &AutoCompleter{session: session}
}

func (a *AutoCompleter) tables() []string {
	if a.session.Database() == "" {
		return nil
	}
	db, err := a.session.Server().GetDatabase(a.session.Database())
	if err != nil {
		return nil
	}
	return db.TableNames()
}

// Complete returns the candidates that start with prefix, ignoring case.
func (a *AutoCompleter) Complete(prefix string) []string {
	if prefix == "" {
		return nil
	}
	var suggestions []string
	upperPrefix := strings.ToUpper(prefix)
	for _, kw := range keywords {
		if strings.HasPrefix(kw, upperPrefix) {
			suggestions = append(suggestions, kw)
		}
	}
	for _, table := range a.tables() {
		if strings.HasPrefix(strings.ToUpper(table), upperPrefix) {
			suggestions = append(suggestions, table)
		}
	}
	return suggestions
}

// Do completes the word ending at pos. Candidates are returned as the text
// to append after the typed prefix.
func (a *AutoCompleter) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	var out [][]rune
	for _, c := range a.Complete(prefix) {
		suffix := c[len(prefix):]
		if prefix == strings.ToLower(prefix) && c == strings.ToUpper(c) {
			suffix = strings.ToLower(suffix)
		}
		out = append(out, []rune(suffix+" "))
	}
	return out, len([]rune(prefix))
}

func isWordRune(r rune) bool {
	return r == '_' || r == '$' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
