package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/studymate/internal/buildinfo"
	"github.com/dmitrijs2005/studymate/internal/cli"
	"github.com/dmitrijs2005/studymate/internal/config"
	"github.com/dmitrijs2005/studymate/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr).With("run_id", uuid.NewString())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, closeDB, err := cli.NewAppFromConfig(ctx, cfg, os.Stdin, os.Stdout, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeDB()

	app.Run(ctx)
}
