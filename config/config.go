// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/RBVI/dasp3/internal/pssm"
	"github.com/spf13/viper"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

const (
	// EnvPrefix is the prefix of environment variables that override settings,
	// ex: DASP_WORKERS=8
	EnvPrefix = "DASP"
)

// Config is the root-level settings struct and is a mix
// of settings available in a settings file and those
// available from the command line
type Config struct {
	// Threshold is the combined p-value a sequence has to be below to be reported
	Threshold float64 `mapstructure:"threshold"`

	// Workers is the number of goroutines scoring sequences
	Workers int `mapstructure:"workers"`

	// QueueSize is the number of read sequences waiting for a worker
	QueueSize int `mapstructure:"queue-size"`

	// IncludeX is whether X is scored as a 21st residue
	IncludeX bool `mapstructure:"include-x"`

	// Timeout is the longest a database scan may take
	Timeout time.Duration `mapstructure:"timeout"`

	// Verbose is whether to log progress
	Verbose bool `mapstructure:"verbose"`

	// Background overrides the default amino acid frequencies, keyed by
	// one-letter code
	Background map[string]float64 `mapstructure:"background"`
}

// SetDefaults sets the default of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("threshold", 1e-50)
	v.SetDefault("workers", 2)
	v.SetDefault("queue-size", 1000)
	v.SetDefault("include-x", false)
	v.SetDefault("timeout", 7*24*time.Hour)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load decodes the settings in v and checks them.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %v", err)
	}

	switch {
	case c.Threshold <= 0:
		return nil, fmt.Errorf("threshold must be positive, got %g", c.Threshold)
	case c.Workers < 1:
		return nil, fmt.Errorf("need at least one worker, got %d", c.Workers)
	case c.QueueSize < 1:
		return nil, fmt.Errorf("queue-size must be positive, got %d", c.QueueSize)
	case c.Timeout <= 0:
		return nil, fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	if _, err := c.BackgroundTable(); err != nil {
		return nil, err
	}

	return &c, nil
}

// New returns a new Config struct populated by the global Viper
// settings (either from a settings file, the environment and/or
// command line arguments)
func New() *Config {
	c, err := Load(viper.GetViper())
	if err != nil {
		stderr.Fatal(err)
	}
	return c
}

// ReadSettings merges the YAML settings file at path into v.
func ReadSettings(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("failed to read settings file %s: %v", path, err)
	}
	return nil
}

// BackgroundTable is the default background with the overrides in
// Background applied.
func (c *Config) BackgroundTable() (pssm.Background, error) {
	return pssm.NewBackground(c.Background)
}
