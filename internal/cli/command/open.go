package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/atelierlabs/atelier-go/internal/cli/output"
	"github.com/atelierlabs/atelier-go/internal/infra/ipc"
	"github.com/atelierlabs/atelier-go/internal/server/args"
)

// OpenCommand returns the open command. It hands paths to the running
// instance the same way "atelier <path>" does from a terminal.
func OpenCommand() *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Open files or folders in the running instance",
		ArgsUsage: "PATH [PATH...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "new-window",
				Aliases: []string{"n"},
				Usage:   "Open targets in a new window",
			},
			&cli.BoolFlag{
				Name:    "reuse-window",
				Aliases: []string{"r"},
				Usage:   "Force opening in the last active window",
			},
		},
		Action: openAction,
	}
}

func openAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one path required")
	}

	set := args.NewArgSet()
	set.Positional = c.Args().Slice()
	set.NewWindow = c.Bool("new-window")
	set.ReuseWindow = c.Bool("reuse-window")

	req, err := ipc.NewOpenRequest(set)
	if err != nil {
		return err
	}

	client, err := instanceSocket(c)
	if err != nil {
		return err
	}

	spin := output.NewSpinner(os.Stderr, "Delegating to the running instance")
	spin.Start()
	if err := client.Open(req); err != nil {
		spin.Fail("instance rejected the open request")
		return err
	}

	spin.Stop()

	total := len(req.Folders) + len(req.Files)
	fmt.Printf("Opened %d target(s) in the running instance.\n", total)
	return nil
}
