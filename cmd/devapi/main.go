package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/shopfront/internal/buildinfo"
	"github.com/dmitrijs2005/shopfront/internal/devapi"
	"github.com/dmitrijs2005/shopfront/internal/devapi/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := devapi.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
