package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/atelierlabs/atelier-go/internal/cli/repl"
)

// REPLCommand returns the interactive-mode command. Each line typed at
// the prompt runs through the same app as a one-shot invocation, so
// behavior and flags stay identical.
func REPLCommand() *cli.Command {
	return &cli.Command{
		Name:    "repl",
		Aliases: []string{"shell"},
		Usage:   "Start interactive mode",
		Action:  replAction,
	}
}

func replAction(c *cli.Context) error {
	settings := getSettings(c)

	fmt.Println("atelier interactive mode. Type 'help' for commands, 'exit' to leave.")

	loop := repl.New(&repl.Config{
		HistoryFile: settings.HistoryFile,
		Execute: func(lineArgs []string) error {
			if len(lineArgs) > 0 && (lineArgs[0] == "repl" || lineArgs[0] == "shell") {
				return fmt.Errorf("already in interactive mode")
			}
			return c.App.Run(append([]string{os.Args[0]}, lineArgs...))
		},
	})
	return loop.Run()
}
