package tiny

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"go.minekube.com/tiny/pkg/internal/difftest"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Compare the tiny set against a reference set with random operations",
		Description: `Applies random insert, lookup and remove operations to a tiny set of strings
and a hash based reference set in lockstep and fails on the first disagreement.

Flags override the check section of the config file:

	tiny check --rounds 100 --seed 42`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "rounds",
				Usage:       "Number of fresh set pairs to test",
				DefaultText: fromConfig,
			},
			&cli.IntFlag{
				Name:        "ops",
				Usage:       "Random operations applied to each pair",
				DefaultText: fromConfig,
			},
			&cli.IntFlag{
				Name:        "modulo",
				Usage:       "Number of distinct values drawn from",
				DefaultText: fromConfig,
			},
			&cli.Uint64Flag{
				Name:        "seed",
				Usage:       "Seed of the random sources",
				DefaultText: fromConfig,
			},
			&cli.IntFlag{
				Name:        "workers",
				Usage:       "Rounds checked concurrently",
				DefaultText: fromConfig,
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := configFrom(c.Context)
			if err != nil {
				return err
			}
			opts := difftest.Options{
				Rounds:      cfg.Check.Rounds,
				OpsPerRound: cfg.Check.OpsPerRound,
				Modulo:      cfg.Check.Modulo,
				Seed:        cfg.Check.Seed,
				Workers:     cfg.Check.Workers,
			}
			if c.IsSet("rounds") {
				opts.Rounds = c.Int("rounds")
			}
			if c.IsSet("ops") {
				opts.OpsPerRound = c.Int("ops")
			}
			if c.IsSet("modulo") {
				opts.Modulo = c.Int("modulo")
			}
			if c.IsSet("seed") {
				opts.Seed = c.Uint64("seed")
			}
			if c.IsSet("workers") {
				opts.Workers = c.Int("workers")
			}

			report, err := difftest.Run(c.Context, opts)
			if err != nil {
				return fmt.Errorf("differential check failed: %w", err)
			}

			_, err = fmt.Fprintf(c.App.Writer,
				"ok: %d rounds, %d ops (%d inserts, %d lookups, %d removes), %d promotions\n",
				report.Rounds, report.Ops(), report.Inserts, report.Lookups, report.Removes, report.Promotions)
			return err
		},
	}
}
