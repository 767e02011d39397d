// Command pretenddb is an interactive shell over an in-memory pretenddb
// server. Statements end with ';' and may span lines; lines starting with
// '.' are shell commands (see .help).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/pretenddb/pretenddb/internal/log"
	"github.com/pretenddb/pretenddb/pkg/pretenddb"
)

var (
	dbName   = flag.String("db", "", "Database to create and use on startup")
	execSQL  = flag.String("e", "", "Execute the given statements and exit")
	history  = flag.String("history", defaultHistoryFile(), "History file; empty disables history")
	logLevel = flag.String("log-level", "warn", "Log level (debug, info, warn, error, off)")
)

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pretenddb_history")
}

func main() {
	flag.Parse()

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	log.SetLevel(level)

	server := pretenddb.NewServer(pretenddb.Options{})
	if *dbName != "" {
		if _, err := server.CreateDatabase(*dbName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	sh := newShell(server.Session(*dbName), os.Stdout, os.Stderr)

	if *execSQL != "" || flag.NArg() > 0 {
		text := *execSQL
		if text == "" {
			text = strings.Join(flag.Args(), " ")
		}
		if err := sh.runScript(text); err != nil {
			os.Exit(1)
		}
		return
	}

	if err := repl(sh); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func repl(sh *shell) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          sh.prompt(),
		HistoryFile:     *history,
		AutoComplete:    newAutoCompleter(sh.session),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintln(sh.out, "pretenddb - in-memory MySQL-like database shell")
	fmt.Fprintln(sh.out, "Statements end with ';'. Type '.help' for help, '.quit' to exit.")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			sh.reset()
			rl.SetPrompt(sh.prompt())
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if sh.feed(line) {
			return nil
		}
		rl.SetPrompt(sh.prompt())
	}
}
