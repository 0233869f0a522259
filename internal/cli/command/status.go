package command

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/atelierlabs/atelier-go/internal/cli/output"
	"github.com/atelierlabs/atelier-go/internal/infra/buildinfo"
)

// statusData mirrors the status payload of the management socket.
type statusData struct {
	Version        string `json:"version"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	SessionsActive int    `json:"sessions_active"`
	Workspaces     int    `json:"workspaces"`
}

// StatusCommand returns the status command.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show the running instance's status",
		Action: statusAction,
	}
}

func statusAction(c *cli.Context) error {
	client, err := instanceSocket(c)
	if err != nil {
		return err
	}

	raw, err := client.Command("status")
	if err != nil {
		return err
	}

	var status statusData
	if err := json.Unmarshal(raw, &status); err != nil {
		return fmt.Errorf("parse status: %w", err)
	}

	flags := ParseGlobalFlags(c)
	if flags.Output == "table" {
		kv := &output.KV{}
		kv.Add("Version", status.Version)
		kv.Add("Uptime", time.Duration(status.UptimeSeconds)*time.Second)
		kv.Add("Active sessions", status.SessionsActive)
		kv.Add("Workspaces", status.Workspaces)
		return kv.Render(os.Stdout)
	}

	f, err := newFormatter(c)
	if err != nil {
		return err
	}
	return f.Format(os.Stdout, status)
}

// VersionCommand returns the version command. It reports the CLI's own
// build and, when an instance is running, the server's too.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show client and server versions",
		Action: versionAction,
	}
}

func versionAction(c *cli.Context) error {
	fmt.Printf("client: %s\n", buildinfo.String())

	client, err := instanceSocket(c)
	if err != nil {
		fmt.Println("server: not running")
		return nil
	}

	raw, err := client.Command("version")
	if err != nil {
		return err
	}

	var info buildinfo.Info
	if err := json.Unmarshal(raw, &info); err != nil {
		return fmt.Errorf("parse version: %w", err)
	}
	fmt.Printf("server: %s (commit %s, built %s)\n", info.Version, info.Commit, info.BuildTime)
	return nil
}
