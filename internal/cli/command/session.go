package command

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/atelierlabs/atelier-go/internal/cli/output"
)

// sessionData mirrors one session in the management socket's listing.
type sessionData struct {
	ID         string `json:"id"`
	IPAddress  string `json:"ip_address"`
	UserAgent  string `json:"user_agent"`
	CreatedAt  int64  `json:"created_at"`
	ExpiresAt  int64  `json:"expires_at"`
	LastActive int64  `json:"last_active"`
}

// SessionCommand returns the sessions subcommand group.
func SessionCommand() *cli.Command {
	return &cli.Command{
		Name:    "sessions",
		Aliases: []string{"sess"},
		Usage:   "Manage login sessions on the running instance",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List active sessions",
				Action: sessionList,
			},
			{
				Name:      "revoke",
				Usage:     "Revoke a session",
				ArgsUsage: "SESSION_ID",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Skip confirmation",
					},
				},
				Action: sessionRevoke,
			},
		},
	}
}

func sessionList(c *cli.Context) error {
	client, err := instanceSocket(c)
	if err != nil {
		return err
	}

	raw, err := client.Command("sessions")
	if err != nil {
		return err
	}

	var sessions []sessionData
	if err := json.Unmarshal(raw, &sessions); err != nil {
		return fmt.Errorf("parse sessions: %w", err)
	}

	flags := ParseGlobalFlags(c)
	if flags.Output != "table" {
		f, err := newFormatter(c)
		if err != nil {
			return err
		}
		return f.Format(os.Stdout, sessions)
	}

	table := &output.Table{
		Headers: []string{"SESSION ID", "IP", "CREATED", "EXPIRES"},
	}
	if flags.Wide {
		table.Headers = append(table.Headers, "LAST ACTIVE", "USER AGENT")
	}
	for _, s := range sessions {
		row := []string{
			output.TruncateID(s.ID),
			s.IPAddress,
			output.Timestamp(s.CreatedAt),
			output.Timestamp(s.ExpiresAt),
		}
		if flags.Wide {
			row = append(row, output.Timestamp(s.LastActive), s.UserAgent)
		}
		table.AddRow(row...)
	}
	if err := table.Render(os.Stdout); err != nil {
		return err
	}
	fmt.Printf("\nTotal: %d sessions\n", len(sessions))
	return nil
}

func sessionRevoke(c *cli.Context) error {
	sessionID := c.Args().First()
	if sessionID == "" {
		return fmt.Errorf("session ID required")
	}

	if !c.Bool("force") {
		fmt.Printf("Are you sure you want to revoke session '%s'? [y/N]: ", output.TruncateID(sessionID))
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "y" && confirm != "Y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	client, err := instanceSocket(c)
	if err != nil {
		return err
	}

	if _, err := client.Command("revoke", sessionID); err != nil {
		return err
	}

	fmt.Printf("Session %s revoked.\n", output.TruncateID(sessionID))
	return nil
}
