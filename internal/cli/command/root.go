package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/atelierlabs/atelier-go/internal/cli/config"
	"github.com/atelierlabs/atelier-go/internal/cli/connection"
	"github.com/atelierlabs/atelier-go/internal/cli/output"
	"github.com/atelierlabs/atelier-go/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "atelier-cli",
		Usage:   "Manage a running atelier instance",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			StatusCommand(),
			SessionCommand(),
			OpenCommand(),
			ConfigCommand(),
			PingCommand(),
			VersionCommand(),
			REPLCommand(),
		},
		Before: func(c *cli.Context) error {
			settings, err := cliconfig.Load(c.String("settings"))
			if err != nil {
				return err
			}
			c.App.Metadata["settings"] = settings
			c.App.Metadata["connMgr"] = connection.NewManager()
			return nil
		},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Server HTTP address (e.g., localhost:8080)",
			EnvVars: []string{"ATELIERCLI_SERVER"},
		},
		&cli.StringFlag{
			Name:    "socket",
			Usage:   "Management socket path (default: discover the running instance)",
			EnvVars: []string{"ATELIERCLI_SOCKET"},
		},
		&cli.StringFlag{
			Name:  "settings",
			Usage: "CLI settings file (default: " + cliconfig.DefaultConfigPath() + ")",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable verbose output",
		},
	}
}

// GlobalFlags holds the effective values of the global flags after the
// CLI settings file has been layered underneath.
type GlobalFlags struct {
	Server  string
	Socket  string
	Output  string
	Wide    bool
	Verbose bool
}

// ParseGlobalFlags resolves flags against the loaded settings: a flag
// given on the command line wins, then the settings file, then the
// built-in default.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	settings := getSettings(c)

	flags := &GlobalFlags{
		Server:  c.String("server"),
		Socket:  c.String("socket"),
		Output:  c.String("output"),
		Wide:    c.Bool("wide"),
		Verbose: c.Bool("verbose"),
	}
	if flags.Server == "" {
		flags.Server = settings.Server
	}
	if flags.Socket == "" {
		flags.Socket = settings.Socket
	}
	if flags.Output == "" {
		flags.Output = settings.Output
	}
	if flags.Output == "" {
		flags.Output = "table"
	}
	return flags
}

func getSettings(c *cli.Context) *cliconfig.CLIConfig {
	if s, ok := c.App.Metadata["settings"].(*cliconfig.CLIConfig); ok {
		return s
	}
	return cliconfig.Default()
}

// GetConnectionManager retrieves the connection manager from context.
func GetConnectionManager(c *cli.Context) *connection.Manager {
	if mgr, ok := c.App.Metadata["connMgr"].(*connection.Manager); ok {
		return mgr
	}
	return nil
}

// instanceSocket locates the running instance's management socket.
func instanceSocket(c *cli.Context) (*connection.SocketClient, error) {
	mgr := GetConnectionManager(c)
	if mgr == nil {
		mgr = connection.NewManager()
	}
	return mgr.Socket(ParseGlobalFlags(c).Socket)
}

// newFormatter builds the machine formatter selected by --output.
// Callers handle the table format themselves before asking for one.
func newFormatter(c *cli.Context) (output.Formatter, error) {
	return output.NewFormatter(output.Format(ParseGlobalFlags(c).Output))
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
