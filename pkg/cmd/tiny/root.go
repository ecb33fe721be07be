package tiny

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go.minekube.com/tiny/pkg/config"
	"go.minekube.com/tiny/pkg/version"
)

// defaultConfigFile is read if present and no --config flag is given.
const defaultConfigFile = "config.yml"

// fromConfig is the help default of command flags overriding a config key.
const fromConfig = "from config"

func init() {
	// -v is reserved for verbosity (Unix convention), use -V for version.
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Aliases:            []string{"V"},
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

// App returns the tiny command line application.
func App() *cli.App {
	return &cli.App{
		Name:  "tiny",
		Usage: "Check and benchmark inline-first ordered sets.",
		Description: `tiny exercises the sets.Tiny container: a set that keeps up to 4
elements inline and promotes itself to a red-black tree beyond that.`,
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   `config file (default: ./config.yml if present)`,
				EnvVars: []string{config.EnvPrefix + "_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Enable debug mode and highest log verbosity",
				EnvVars: []string{config.EnvPrefix + "_DEBUG"},
			},
			&cli.IntFlag{
				Name:    "verbosity",
				Aliases: []string{"v"},
				Usage:   "The higher the verbosity the more logs are shown",
				EnvVars: []string{config.EnvPrefix + "_VERBOSITY"},
			},
		},
		Before: before,
		Commands: []*cli.Command{
			checkCommand(),
			benchCommand(),
			sizesCommand(),
			configCommand(),
		},
	}
}

// terminationSignals cancel long checks and benchmarks.
var terminationSignals = []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT}

// Execute runs the App with the process arguments and exits non-zero on error.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), terminationSignals...)
	err := App().RunContext(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func before(c *cli.Context) error {
	v := viper.New()
	if path := c.String("config"); path != "" {
		v.SetConfigFile(path)
	} else if _, err := os.Stat(defaultConfigFile); err == nil {
		v.SetConfigFile(defaultConfigFile)
	}
	if c.IsSet("debug") {
		v.Set("debug", c.Bool("debug"))
	}

	cfg, err := config.Read(v)
	if err != nil {
		return err
	}

	verbosity := c.Int("verbosity")
	if cfg.Debug {
		verbosity = 100
	}
	zl, err := newZapLogger(cfg.Debug, verbosity)
	if err != nil {
		return fmt.Errorf("error creating zap logger: %w", err)
	}
	zap.ReplaceGlobals(zl)

	if cfg, err = config.NewValid(cfg); err != nil {
		return fmt.Errorf("error validating config: %w", err)
	}

	log := zapr.NewLogger(zl)
	if cfg.Debug {
		log.Info("running in debug mode")
	}
	if path := v.ConfigFileUsed(); path != "" {
		log.V(1).Info("using config file", "path", path)
	}

	ctx := logr.NewContext(c.Context, log)
	c.Context = withConfig(ctx, cfg)
	return nil
}

func newZapLogger(dev bool, verbosity int) (*zap.Logger, error) {
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-verbosity))
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = !dev

	return cfg.Build()
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

var errNoConfig = errors.New("no config in context")

// configFrom returns the config loaded by the app's Before hook.
func configFrom(ctx context.Context) (*config.Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok {
		return nil, errNoConfig
	}
	return cfg, nil
}
