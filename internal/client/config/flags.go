package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/shopfront/internal/flagx"
)

// parseFlags overlays cfg with -a, -d and -t. Other arguments are filtered
// out first so the JSON and env stages can share the command line.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the storefront API")
	fs.StringVar(&cfg.DataFile, "d", cfg.DataFile, "path of the local data file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
