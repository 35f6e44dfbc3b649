package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/shopfront/internal/flagx"
	"github.com/dmitrijs2005/shopfront/internal/timex"
	"github.com/joho/godotenv"
)

func parseEnv(cfg *Config, args []string) error {
	if path := flagx.EnvFilePath(args); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Seed is a
// pointer so an explicit false can be told apart from a missing field.
type JsonConfig struct {
	Addr      string         `json:"addr"`
	SecretKey string         `json:"secret_key"`
	TokenTTL  timex.Duration `json:"token_ttl"`
	LogLevel  string         `json:"log_level"`
	Seed      *bool          `json:"seed"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.Addr != "" {
		cfg.Addr = jc.Addr
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenTTL.Duration != 0 {
		cfg.TokenTTL = jc.TokenTTL.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.Seed != nil {
		cfg.Seed = *jc.Seed
	}
	return nil
}

// parseFlags handles:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t"})

	fs := flag.NewFlagSet("devapi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	ttl := fs.Int("t", int(cfg.TokenTTL.Minutes()), "access token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.TokenTTL = time.Duration(*ttl) * time.Minute
	return nil
}
