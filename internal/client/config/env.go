package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/shopfront/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with SHOP_* variables. Unset variables leave the
// current value alone. A dotenv file named with -e never overrides
// variables already present in the process environment.
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
