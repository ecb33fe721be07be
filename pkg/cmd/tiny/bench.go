package tiny

import (
	"fmt"
	"math"

	"github.com/urfave/cli/v2"

	"go.minekube.com/tiny/pkg/internal/bench"
)

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Time membership lookups in tiny and tree backed sets",
		Description: `Builds two small fixture sets per variant and looks up the needle in both
for the given number of iterations. The result is a rough comparison only,
use go test -bench for precise numbers.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "iterations",
				Aliases:     []string{"n"},
				Usage:       "Lookup rounds per variant",
				DefaultText: fromConfig,
			},
			&cli.UintFlag{
				Name:        "needle",
				Usage:       "Key looked up in every round",
				DefaultText: fromConfig,
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := configFrom(c.Context)
			if err != nil {
				return err
			}
			opts := bench.Options{
				Iterations: cfg.Bench.Iterations,
				Needle:     cfg.Bench.Needle,
			}
			if c.IsSet("iterations") {
				opts.Iterations = c.Int("iterations")
			}
			if c.IsSet("needle") {
				needle := c.Uint("needle")
				if needle > math.MaxUint16 {
					return cli.Exit(fmt.Sprintf("needle %d out of range, use a number <= %d", needle, math.MaxUint16), 1)
				}
				opts.Needle = uint16(needle)
			}

			results, err := bench.Run(c.Context, opts)
			if err != nil {
				return fmt.Errorf("benchmark failed: %w", err)
			}
			for _, r := range results {
				if _, err = fmt.Fprintln(c.App.Writer, r); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
