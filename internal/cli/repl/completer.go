// Package repl provides the interactive mode of atelier-cli.
package repl

import "strings"

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over the CLI's command set.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"status",
			"sessions", "sessions list", "sessions revoke",
			"open",
			"config", "config path", "config show",
			"ping",
			"version",
			"help", "exit", "quit",
		},
	}
}

// Commands returns the full command list in declaration order.
func (c *Completer) Commands() []string {
	return c.commands
}

// Complete returns completion suggestions for the given prefix.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
