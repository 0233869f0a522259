// Package repl provides the interactive mode of atelier-cli.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Executor runs one tokenized command line.
type Executor func(args []string) error

// Config wires a REPL instance.
type Config struct {
	// Input and Output default to stdin and stdout.
	Input  io.Reader
	Output io.Writer

	// Execute handles each non-empty line. Required.
	Execute Executor

	// HistoryFile overrides the default history location.
	HistoryFile string
}

// REPL is the read-eval-print loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	execute   Executor
	completer *Completer
	history   *History
}

// New creates a REPL.
func New(cfg *Config) *REPL {
	input := cfg.Input
	if input == nil {
		input = os.Stdin
	}
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	return &REPL{
		input:     input,
		output:    output,
		execute:   cfg.Execute,
		completer: NewCompleter(),
		history:   NewHistory(cfg.HistoryFile),
	}
}

// Run reads lines until EOF or an exit command. History is loaded on
// entry and saved on the way out; a history I/O failure never takes
// the session down.
func (r *REPL) Run() error {
	r.history.Load()
	defer r.history.Save()

	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, "atelier> ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.history.Add(line)

		switch line {
		case "exit", "quit":
			return nil
		case "help":
			r.printHelp()
			continue
		}

		if err := r.execute(strings.Fields(line)); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.output, "Commands:")
	for _, cmd := range r.completer.Commands() {
		fmt.Fprintf(r.output, "  %s\n", cmd)
	}
	fmt.Fprintln(r.output, "  help")
	fmt.Fprintln(r.output, "  exit")
}
