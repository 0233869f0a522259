package command

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/urfave/cli/v2"
	yaml "go.yaml.in/yaml/v3"

	"github.com/atelierlabs/atelier-go/internal/server/args"
)

// secretKeys are config entries whose values never reach a terminal.
var secretKeys = map[string]bool{
	"password":        true,
	"hashed-password": true,
}

// ConfigCommand returns the config subcommand group. It inspects the
// server's YAML configuration; no running instance is needed.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect the server configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: $ATELIER_CONFIG or the user config dir)",
			},
		},
		Subcommands: []*cli.Command{
			{
				Name:   "path",
				Usage:  "Print the effective config file location",
				Action: configPath,
			},
			{
				Name:   "show",
				Usage:  "Print the config file with secrets masked",
				Action: configShow,
			},
		},
	}
}

func configPath(c *cli.Context) error {
	fmt.Println(args.ConfigPath(c.String("file")))
	return nil
}

func configShow(c *cli.Context) error {
	path := args.ConfigPath(c.String("file"))

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no config file at %s (the server writes one on first launch)", path)
	}
	if err != nil {
		return err
	}

	masked, err := maskSecrets(raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	fmt.Printf("# %s\n", path)
	os.Stdout.Write(masked)
	return nil
}

// maskSecrets replaces secret values in a YAML document, keeping the
// rest of the file as the user wrote it structurally.
func maskSecrets(raw []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return raw, nil
	}

	mapping := doc.Content[0]
	if mapping.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(mapping.Content); i += 2 {
			if secretKeys[mapping.Content[i].Value] {
				val := mapping.Content[i+1]
				val.SetString("********")
			}
		}
	}

	return yaml.Marshal(&doc)
}
