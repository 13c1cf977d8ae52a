// Package config loads dctree settings from TOML files.
//
// A config file sets the build parameters and the tree store:
//
//	max_elem_per_part = 200
//	workers = 8
//	refine_passes = 4
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
// Keys that are not set keep their [Default] value. Unknown keys are
// rejected so typos do not go unnoticed.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dctree/pkg/dctree"
	"github.com/matzehuels/dctree/pkg/errors"
	"github.com/matzehuels/dctree/pkg/partition"
	"github.com/matzehuels/dctree/pkg/store"
)

// Config holds the settings of a dctree run.
type Config struct {
	MaxElemPerPart int           `toml:"max_elem_per_part"`
	Workers        int           `toml:"workers"`
	RefinePasses   int           `toml:"refine_passes"`
	Store          store.Options `toml:"store"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxElemPerPart: dctree.DefaultMaxElemPerPart,
		Workers:        runtime.GOMAXPROCS(0),
		RefinePasses:   dctree.DefaultRefinePasses,
		Store: store.Options{
			Backend: store.BackendFile,
			Dir:     DefaultDir(),
		},
	}
}

// DefaultDir returns the directory of the default file store:
// the user cache directory, or the system temp directory without one.
func DefaultDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "dctree")
}

// Load reads the config file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := Parse(string(data), &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Parse decodes TOML into cfg, overwriting only the keys present, and
// validates the result.
func Parse(data string, cfg *Config) error {
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := errors.ValidatePositive("max_elem_per_part", c.MaxElemPerPart); err != nil {
		return err
	}
	if err := errors.ValidatePositive("workers", c.Workers); err != nil {
		return err
	}
	if c.RefinePasses < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "refine_passes must not be negative, got %d", c.RefinePasses)
	}
	switch c.Store.Backend {
	case "", store.BackendFile, store.BackendRedis, store.BackendMongo, store.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	return nil
}

// BuildOptions returns the tree construction options described by c.
func (c Config) BuildOptions() dctree.Options {
	return dctree.Options{
		MaxElemPerPart: c.MaxElemPerPart,
		Workers:        c.Workers,
		Partitioner:    partition.Bisection{RefinePasses: c.RefinePasses},
	}
}
