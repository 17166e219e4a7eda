package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/statements/moex"
)

// Default creates a configuration with default values.
func Default() *Config {
	cacheDir := ""
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "stm")
	}
	return &Config{
		DomesticCurrency: "RUB",
		StatementDirs:    []string{},
		Workers:          4,
		Venues: VenuesConfig{
			Equity: "Фондовый рынок",
			Fx:     "Валютный рынок",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		MOEX: MOEXConfig{
			BaseURL:  moex.DefaultBaseURL,
			Timeout:  Duration{30 * time.Second},
			CacheTTL: Duration{time.Minute},
			CacheDir: cacheDir,
		},
		Currencies: map[string]string{
			"USD": "USD000UTSTOM",
			"EUR": "EUR_RUB__TOM",
		},
	}
}
