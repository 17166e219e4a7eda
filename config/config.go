// Package config loads the stm configuration file.
//
// Values are resolved with priority: defaults, then the TOML file, then STM_*
// environment variables, then command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/etnz/statements"
	"github.com/etnz/statements/moex"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	DomesticCurrency string             `toml:"domestic_currency"`
	StatementDirs    []string           `toml:"statement_dirs"`
	Workers          int                `toml:"workers"`
	Venues           VenuesConfig       `toml:"venues"`
	Logging          LoggingConfig      `toml:"logging"`
	MOEX             MOEXConfig         `toml:"moex"`
	Currencies       map[string]string  `toml:"currencies"` // currency -> MOEX secid of its pair with the domestic currency
	Instruments      []InstrumentConfig `toml:"instruments"`
}

// VenuesConfig names the cash flow venues of each market, as printed in the
// statements.
type VenuesConfig struct {
	Equity string `toml:"equity"`
	Fx     string `toml:"fx"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn or error
	Format string `toml:"format"` // console or json
}

// MOEXConfig contains the market data client settings.
type MOEXConfig struct {
	BaseURL  string   `toml:"base_url"`
	Timeout  Duration `toml:"timeout"`
	CacheTTL Duration `toml:"cache_ttl"`
	CacheDir string   `toml:"cache_dir"`
}

// InstrumentConfig maps a security held in the statements to its exchange code.
type InstrumentConfig struct {
	ISIN  string    `toml:"isin"`
	SecID string    `toml:"secid"`
	Kind  moex.Kind `toml:"kind"`
}

// Duration is a time.Duration written as "30s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// DefaultPath returns the configuration file looked up when none is given.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "stm", "config.toml"), nil
}

// Load loads the configuration file at path.
//
// An empty path loads DefaultPath if it exists, or the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			path = ""
		}
	}

	config := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && !explicit:
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// applyEnvOverrides applies STM_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if ccy := os.Getenv("STM_DOMESTIC_CURRENCY"); ccy != "" {
		config.DomesticCurrency = ccy
	}
	if workers := os.Getenv("STM_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil {
			config.Workers = w
		}
	}
	if level := os.Getenv("STM_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("STM_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if url := os.Getenv("STM_MOEX_BASE_URL"); url != "" {
		config.MOEX.BaseURL = url
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	var errs []error
	if err := statements.ValidateCurrency(c.DomesticCurrency); err != nil {
		errs = append(errs, fmt.Errorf("domestic_currency: %w", err))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if _, err := c.Logging.level(); err != nil {
		errs = append(errs, err)
	}
	for ccy := range c.Currencies {
		if err := statements.ValidateCurrency(ccy); err != nil {
			errs = append(errs, fmt.Errorf("currencies: %w", err))
		}
	}
	seen := make(map[string]bool)
	for i, instr := range c.Instruments {
		if instr.ISIN == "" || instr.SecID == "" {
			errs = append(errs, fmt.Errorf("instruments[%d]: isin and secid are required", i))
		}
		if seen[instr.ISIN] {
			errs = append(errs, fmt.Errorf("instruments[%d]: duplicate isin %s", i, instr.ISIN))
		}
		seen[instr.ISIN] = true
		if _, err := moex.ParseKind(string(instr.Kind)); err != nil {
			errs = append(errs, fmt.Errorf("instruments[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// MOEXClient returns the client settings for moex.NewClient.
func (c *Config) MOEXClient() moex.Config {
	return moex.Config{
		BaseURL:  c.MOEX.BaseURL,
		Timeout:  c.MOEX.Timeout.Duration,
		CacheTTL: c.MOEX.CacheTTL.Duration,
		CacheDir: c.MOEX.CacheDir,
	}
}
