package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/atelierlabs/atelier-go/internal/cli/connection"
	"github.com/atelierlabs/atelier-go/internal/cli/output"
)

// PingCommand returns the ping command. Unlike status it goes over the
// public HTTP API, so it verifies the path a browser would take.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:   "ping",
		Usage:  "Check the server's HTTP endpoint",
		Action: pingAction,
	}
}

func pingAction(c *cli.Context) error {
	flags := ParseGlobalFlags(c)
	client := GetConnectionManager(c).HTTP(flags.Server, "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// The spinner goes to stderr so a scripted `ping` still gets a
	// clean result line on stdout.
	spin := output.NewSpinner(os.Stderr, "Contacting "+client.BaseURL())
	spin.Start()
	defer spin.Stop()

	start := time.Now()
	resp, err := client.Get(ctx, "/healthz")
	if err != nil {
		spin.Fail("no answer from " + client.BaseURL())
		return fmt.Errorf("server unreachable: %w", err)
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := connection.ParseResponse(resp, &health); err != nil {
		return err
	}
	spin.Stop()

	fmt.Printf("%s: %s (%s)\n", client.BaseURL(), health.Status, time.Since(start).Round(time.Millisecond))
	return nil
}
