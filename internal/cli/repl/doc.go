// Package repl provides the interactive mode of atelier-cli.
//
//   - repl.go: read-eval-print loop and command dispatch
//   - completer.go: prefix completion over the command set
//   - history.go: command history persistence
//
// The loop owns no command logic itself; each line is handed to an
// executor the CLI supplies, so interactive and one-shot invocations
// run exactly the same code.
package repl
