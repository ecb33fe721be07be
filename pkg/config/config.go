package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"go.minekube.com/tiny/pkg/sets"
)

// Config is the configuration of the tiny command line tool.
type Config struct {
	Debug bool  `yaml:"debug"`
	Check Check `yaml:"check"` // Differential check against a reference set.
	Bench Bench `yaml:"bench"` // Lookup micro benchmark.
}

type (
	Check struct {
		Rounds      int    `yaml:"rounds"`      // Fresh set pairs to test.
		OpsPerRound int    `yaml:"opsPerRound"` // Random operations per pair.
		Modulo      int    `yaml:"modulo"`      // Distinct values drawn from.
		Seed        uint64 `yaml:"seed"`
		Workers     int    `yaml:"workers"` // Rounds checked concurrently.
	}
	Bench struct {
		Iterations int    `yaml:"iterations"`
		Needle     uint16 `yaml:"needle"` // Key looked up in the fixture sets.
	}
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. TINY_CHECK_ROUNDS for check.rounds.
const EnvPrefix = "TINY"

// SetDefault is an interface to abstract setting Viper defaults.
// (e.g. Allows adding a key prefix to every call to SetDefault when used with SetDefaultFunc.)
type SetDefault interface {
	SetDefault(key string, value any)
}

// SetDefaultFunc implements SetDefault.
type SetDefaultFunc func(key string, value any)

// See SetDefault interface.
func (f SetDefaultFunc) SetDefault(key string, value any) {
	if f == nil {
		return
	}
	f(key, value)
}

// SetDefaults sets Config defaults to use with Viper.
func SetDefaults(i SetDefault) {
	i.SetDefault("debug", false)

	i.SetDefault("check.rounds", 1000)
	i.SetDefault("check.opsPerRound", 100)
	i.SetDefault("check.modulo", 10)
	i.SetDefault("check.seed", 1)
	i.SetDefault("check.workers", 4)

	i.SetDefault("bench.iterations", 1_000_000)
	i.SetDefault("bench.needle", 7)
}

// Load reads the config with Read and validates it with NewValid.
func Load(v *viper.Viper) (*Config, error) {
	c, err := Read(v)
	if err != nil {
		return nil, err
	}
	return NewValid(c)
}

// Read reads the config from v's config file (if any) and environment
// variables on top of the defaults without validating it.
func Read(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %q: %w", v.ConfigFileUsed(), err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return &c, nil
}

// NewValid validates c, logs warnings and errors and returns c if it is usable.
func NewValid(c *Config) (*Config, error) {
	if c == nil {
		return nil, errors.New("config must not be nil-pointer")
	}

	warns, errs := c.Validate()
	if len(errs) != 0 {
		for _, err := range errs {
			zap.S().Errorf("Config error: %s", err)
		}

		a, s := "are", "s"
		if len(errs) == 1 {
			a, s = "is", ""
		}
		return nil, fmt.Errorf("there %s %d config validation error%s: %w", a, len(errs), s, errors.Join(errs...))
	}
	for _, err := range warns {
		zap.L().Warn(err.Error())
	}
	return c, nil
}

func (c *Config) Validate() (warns []error, errs []error) {
	e := func(m string, args ...any) { errs = append(errs, fmt.Errorf(m, args...)) }
	w := func(m string, args ...any) { warns = append(warns, fmt.Errorf(m, args...)) }

	if c.Check.Rounds < 1 {
		e("Invalid check rounds %d, use a number >= 1", c.Check.Rounds)
	}
	if c.Check.OpsPerRound < 1 {
		e("Invalid check opsPerRound %d, use a number >= 1", c.Check.OpsPerRound)
	}
	if c.Check.Modulo < 1 {
		e("Invalid check modulo %d, use a number >= 1", c.Check.Modulo)
	} else if c.Check.Modulo <= sets.Capacity {
		w("Check modulo %d never exceeds the inline capacity of %d, promotion will not be exercised.",
			c.Check.Modulo, sets.Capacity)
	}

	if c.Check.Workers < 1 {
		e("Invalid check workers %d, use a number >= 1", c.Check.Workers)
	}

	if c.Bench.Iterations < 1 {
		e("Invalid bench iterations %d, use a number >= 1", c.Bench.Iterations)
	}
	return
}
