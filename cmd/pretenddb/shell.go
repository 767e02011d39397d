package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pretenddb/pretenddb/internal/QP"
	"github.com/pretenddb/pretenddb/pkg/pretenddb"
)

// shell buffers input lines until they hold complete statements and runs
// them against a session.
type shell struct {
	session   *pretenddb.Session
	parser    *QP.Parser
	formatter *Formatter
	out       io.Writer
	errOut    io.Writer
	pending   strings.Builder
}

func newShell(session *pretenddb.Session, out, errOut io.Writer) *shell {
	return &shell{
		session:   session,
		parser:    QP.NewParser(),
		formatter: NewFormatter(),
		out:       out,
		errOut:    errOut,
	}
}

func (s *shell) prompt() string {
	if s.pending.Len() > 0 {
		return "      -> "
	}
	if db := s.session.Database(); db != "" {
		return fmt.Sprintf("pretenddb [%s]> ", db)
	}
	return "pretenddb> "
}

func (s *shell) reset() {
	s.pending.Reset()
}

// feed handles one input line. It returns true when the shell should exit.
func (s *shell) feed(line string) bool {
	if s.pending.Len() == 0 {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return false
		}
		if strings.HasPrefix(trimmed, ".") {
			return s.meta(trimmed)
		}
		switch strings.ToLower(strings.TrimSuffix(trimmed, ";")) {
		case "exit", "quit":
			return true
		}
	}

	s.pending.WriteString(line)
	s.pending.WriteString("\n")
	stmts, rest, err := splitStatements(s.pending.String())
	if err != nil {
		// Keep reading an unterminated literal; otherwise report the error.
		if !strings.HasSuffix(strings.TrimSpace(s.pending.String()), ";") {
			return false
		}
		stmts, rest = []string{s.pending.String()}, ""
	}
	s.pending.Reset()
	s.pending.WriteString(rest)
	if strings.TrimSpace(rest) == "" {
		s.pending.Reset()
	}
	for _, stmt := range stmts {
		s.run(stmt)
	}
	return false
}

// run executes one statement and prints its outcome. It reports whether the
// statement succeeded.
func (s *shell) run(stmt string) bool {
	res, err := s.session.Execute(stmt)
	if err != nil {
		fmt.Fprintf(s.errOut, "ERROR %v\n", err)
		return false
	}
	switch {
	case res.Table != nil:
		s.formatter.Format(s.out, res.Table)
		fmt.Fprintf(s.out, "%d row(s) in set\n", res.Table.Len())
	case isUse(stmt):
		fmt.Fprintln(s.out, "Database changed")
	default:
		fmt.Fprintf(s.out, "Query OK, %d row(s) affected", res.AffectedRows)
		if res.LastInsertID != 0 {
			fmt.Fprintf(s.out, ", last insert id %d", res.LastInsertID)
		}
		fmt.Fprintln(s.out)
	}
	return true
}

func isUse(stmt string) bool {
	fields := strings.Fields(stmt)
	return len(fields) > 0 && strings.EqualFold(fields[0], "USE")
}

// runScript executes every statement of text, stopping at the first error.
// A trailing statement without ';' is run too.
func (s *shell) runScript(text string) error {
	stmts, rest, err := splitStatements(text)
	if err != nil {
		fmt.Fprintf(s.errOut, "ERROR %v\n", pretenddb.ToError(err, text))
		return err
	}
	if strings.TrimSpace(rest) != "" {
		stmts = append(stmts, rest)
	}
	for _, stmt := range stmts {
		if !s.run(stmt) {
			return fmt.Errorf("statement failed: %s", stmt)
		}
	}
	return nil
}

// splitStatements cuts text at top-level semicolons. rest is the text after
// the last one. Statements holding only comments are dropped.
func splitStatements(text string) (stmts []string, rest string, err error) {
	ts, err := QP.Tokenize(text)
	if err != nil {
		return nil, text, err
	}
	start, meaningful := 0, false
	for i := 0; i < ts.Len(); i++ {
		tok := ts.Token(i)
		switch tok.Type {
		case QP.TokenSemicolon:
			if meaningful {
				stmts = append(stmts, strings.TrimSpace(text[start:tok.End]))
			}
			start, meaningful = tok.End, false
		case QP.TokenComment:
		default:
			meaningful = true
		}
	}
	return stmts, text[start:], nil
}
