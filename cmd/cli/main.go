package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/pwkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/pwkeeper/internal/client/cli"
	"github.com/dmitrijs2005/pwkeeper/internal/client/config"
	"github.com/dmitrijs2005/pwkeeper/internal/client/storage"
	"github.com/dmitrijs2005/pwkeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	store, closeDB, err := storage.OpenBackend(ctx, cfg.Backend, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer func() {
		if err := closeDB(); err != nil {
			logger.Error(ctx, "failed to close database", "error", err)
		}
	}()

	app, err := cli.NewApp(cfg, store, logger)
	if err != nil {
		logger.Error(ctx, "failed to start", "error", err)
		return
	}

	app.Run(ctx)

}
