package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/pretenddb/pretenddb/internal/QP"
)

// meta runs a dot command. It returns true to exit the shell.
func (s *shell) meta(line string) bool {
	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))

	switch cmd {
	case ".exit", ".quit":
		return true

	case ".help":
		s.printHelp()

	case ".databases":
		for _, name := range s.session.Server().DatabaseNames() {
			fmt.Fprintln(s.out, name)
		}

	case ".tables":
		s.listTables(args)

	case ".stats":
		s.printStats(args)

	case ".dump":
		if rest == "" {
			fmt.Fprintln(s.errOut, "Usage: .dump EXPR")
			break
		}
		e, err := s.parser.ParseExpression(rest)
		if err != nil {
			fmt.Fprintf(s.errOut, "Error: %v\n", err)
			break
		}
		fmt.Fprintln(s.out, QP.Dump(e, ""))

	case ".tokens":
		ts, err := QP.Tokenize(rest)
		if err != nil {
			fmt.Fprintf(s.errOut, "Error: %v\n", err)
			break
		}
		fmt.Fprintln(s.out, ts.Dump())

	case ".mode":
		s.setMode(args)

	case ".read":
		if len(args) == 0 {
			fmt.Fprintln(s.errOut, "Usage: .read FILE")
			break
		}
		if err := s.executeFile(args[0]); err != nil {
			fmt.Fprintf(s.errOut, "Error: %v\n", err)
		}

	default:
		fmt.Fprintf(s.errOut, "Unknown command: %s (try .help)\n", parts[0])
	}
	return false
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.out, "  .databases            List databases")
	fmt.Fprintln(s.out, "  .tables [DB]          List tables of DB or the current database")
	fmt.Fprintln(s.out, "  .stats [DB]           Show row counts of DB or the current database")
	fmt.Fprintln(s.out, "  .dump EXPR            Show the parse tree of an expression")
	fmt.Fprintln(s.out, "  .tokens TEXT          Show the tokens of TEXT")
	fmt.Fprintln(s.out, "  .mode MODE            Set output mode (table, list, csv)")
	fmt.Fprintln(s.out, "  .read FILE            Execute statements from FILE")
	fmt.Fprintln(s.out, "  .help                 Show this help")
	fmt.Fprintln(s.out, "  .exit, .quit          Exit the shell")
}

func (s *shell) listTables(args []string) {
	name := s.session.Database()
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		fmt.Fprintln(s.errOut, "No database selected")
		return
	}
	db, err := s.session.Server().GetDatabase(name)
	if err != nil {
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
		return
	}
	for _, t := range db.TableNames() {
		fmt.Fprintln(s.out, t)
	}
}

func (s *shell) printStats(args []string) {
	name := s.session.Database()
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		fmt.Fprintln(s.errOut, "No database selected")
		return
	}
	m, err := s.session.Server().Metrics(name)
	if err != nil {
		fmt.Fprintf(s.errOut, "Error: %v\n", err)
		return
	}
	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"table", "columns", "rows", "partitions", "auto_increment"})
	table.SetAutoFormatHeaders(false)
	for _, t := range m.Tables {
		table.Append([]string{
			t.Name,
			strconv.Itoa(t.Columns),
			strconv.Itoa(t.Rows),
			strconv.Itoa(t.Partitions),
			strconv.FormatInt(t.AutoIncrement, 10),
		})
	}
	table.Render()
	hits, misses := s.session.Server().ParseCacheStats()
	fmt.Fprintf(s.out, "%d row(s) in %d table(s); parse cache %d hit(s), %d miss(es)\n",
		m.TotalRows, len(m.Tables), hits, misses)
}

func (s *shell) setMode(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.errOut, "Usage: .mode MODE (table, list, csv)")
		return
	}
	switch strings.ToLower(args[0]) {
	case "table":
		s.formatter.SetMode(OutputTable)
	case "list":
		s.formatter.SetMode(OutputList)
	case "csv":
		s.formatter.SetMode(OutputCSV)
	default:
		fmt.Fprintf(s.errOut, "Unknown mode: %s\n", args[0])
	}
}
