package tiny

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"go.minekube.com/tiny/pkg/configs"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Output default or effective configuration file",
		Description: `Output the default configuration file to stdout or a file.
You can redirect to a file or use the --write flag:

	tiny config > config.yml
	tiny config --write              # Writes to config.yml
	tiny config --effective          # Config after applying file, env and flags

Available config types:
  - full (default): Full configuration with all options
  - minimal: Minimal configuration (uses all defaults)`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Config type: full or minimal",
				Value:   "full",
			},
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write config to config.yml instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "effective",
				Aliases: []string{"e"},
				Usage:   "Output the loaded configuration instead of a template",
			},
		},
		Action: func(c *cli.Context) error {
			var configBytes []byte
			if c.Bool("effective") {
				cfg, err := configFrom(c.Context)
				if err != nil {
					return err
				}
				if configBytes, err = yaml.Marshal(cfg); err != nil {
					return fmt.Errorf("error encoding config: %w", err)
				}
			} else {
				switch configType := c.String("type"); configType {
				case "full":
					configBytes = configs.DefaultConfigBytes
				case "minimal":
					configBytes = configs.MinimalConfigBytes
				default:
					return cli.Exit(fmt.Sprintf("unknown config type: %s (valid types: full, minimal)", configType), 1)
				}
			}

			if c.Bool("write") {
				outputFile := defaultConfigFile
				if err := os.WriteFile(outputFile, configBytes, 0644); err != nil {
					return fmt.Errorf("error writing config to %q: %w", outputFile, err)
				}
				_, err := fmt.Fprintf(c.App.Writer, "Configuration written to %s\n", outputFile)
				return err
			}

			if _, err := c.App.Writer.Write(configBytes); err != nil {
				return fmt.Errorf("error writing config: %w", err)
			}
			return nil
		},
	}
}
