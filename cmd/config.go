package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/etnz/cgt"
	"github.com/pelletier/go-toml/v2"
	"github.com/phuslu/log"
)

// Config is the TOML configuration of the application. All fields are
// optional, a missing file is a valid empty configuration.
//
//	[exempt]
//	"2019-2020" = 12000.0
//	"2026-2027" = 3000.0
type Config struct {
	// Exempt overrides or extends the built-in annual exempt amount table,
	// keyed by tax year label, in sterling.
	Exempt map[string]float64 `toml:"exempt"`
}

// defaultConfigPath returns the config file location when the -config flag
// is not set.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "cgtcalc", "config.toml")
}

// LoadConfig reads the application configuration. A missing file yields the
// empty configuration; a malformed one is an error.
func LoadConfig() (*Config, error) {
	path := *configFile
	if path == "" {
		path = defaultConfigPath()
	}
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("file", path).Msg("no config file, using defaults")
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %q: %w", path, err)
	}
	log.Debug().Str("file", path).Msg("config loaded")
	return cfg, nil
}

// ExemptAmounts returns the built-in exempt amount table overridden by the
// configuration.
func (c *Config) ExemptAmounts() (cgt.ExemptAmounts, error) {
	amounts := cgt.DefaultExemptAmounts()
	for label, amount := range c.Exempt {
		year, err := cgt.ParseTaxYear(label)
		if err != nil {
			return nil, fmt.Errorf("invalid tax year %q in config: %w", label, err)
		}
		if amount < 0 {
			return nil, fmt.Errorf("negative exempt amount for %q in config", label)
		}
		amounts[year] = cgt.GBP(amount)
	}
	return amounts, nil
}
