package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the storefront client.
type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL"`
	GoogleClientID string        `env:"GOOGLE_CLIENT_ID"`
	DataFile       string        `env:"DATA_FILE"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	LogLevel       string        `env:"LOG_LEVEL"`
}

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SHOP_"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.GoogleClientID = ""
	c.DataFile = "shopfront.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// Load builds a Config from defaults, the environment, an optional JSON file
// and the flags found in args (os.Args without the program name).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args. It panics on malformed input.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
