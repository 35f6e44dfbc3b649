// Package config handles configuration for the development API: defaults,
// environment (DEVAPI_*, optionally from a dotenv file given with -e), a JSON
// overlay given with -c and finally command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the development API.
//
// Fields:
//   - Addr: bind address of the HTTP listener.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default outside development.
//   - TokenTTL: access token lifetime.
//   - LogLevel: debug, info, warn or error.
//   - Seed: load the demo catalog and demo user at start.
type Config struct {
	Addr      string        `env:"ADDR"`
	SecretKey string        `env:"SECRET_KEY"`
	TokenTTL  time.Duration `env:"TOKEN_TTL"`
	LogLevel  string        `env:"LOG_LEVEL"`
	Seed      bool          `env:"SEED"`
}

const EnvPrefix = "DEVAPI_"

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SecretKey = "secretKey"
	c.TokenTTL = 60 * time.Minute
	c.LogLevel = "info"
	c.Seed = true
}

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
