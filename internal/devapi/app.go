// Package devapi runs a development stand-in for the storefront REST API.
package devapi

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/shopfront/internal/common"
	"github.com/dmitrijs2005/shopfront/internal/devapi/auth"
	"github.com/dmitrijs2005/shopfront/internal/devapi/config"
	"github.com/dmitrijs2005/shopfront/internal/devapi/httpapi"
	"github.com/dmitrijs2005/shopfront/internal/devapi/store"
	"github.com/dmitrijs2005/shopfront/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	if c.SecretKey == "" {
		key, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("generate secret key: %w", err)
		}
		c.SecretKey = key
		logger.Warn(context.Background(), "no secret key configured, tokens will not survive a restart")
	}

	s := store.New()
	if c.Seed {
		hash, err := auth.HashPassword(store.DemoPassword)
		if err != nil {
			return nil, fmt.Errorf("hash demo password: %w", err)
		}
		if err := store.Seed(s, hash); err != nil {
			return nil, fmt.Errorf("seed store: %w", err)
		}
	}

	srv := httpapi.NewServer(c.Addr, s, logger, c.SecretKey, c.TokenTTL)

	return &App{config: c, logger: logger, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "seeded", app.config.Seed)
	if app.config.Seed {
		app.logger.Info(ctx, "demo account", "email", store.DemoEmail, "password", store.DemoPassword)
	}

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}
	return nil
}
