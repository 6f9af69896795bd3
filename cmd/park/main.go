package main

import (
	"context"
	"flag"
	"os"

	"github.com/Daniyar8k/park-ledger-system/config"
	"github.com/Daniyar8k/park-ledger-system/internal/app"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
)

var (
	helpFlag   = flag.Bool("help", false, "Show help message")
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
)

func main() {
	flag.Parse()
	if *helpFlag {
		config.PrintHelp()
		return
	}

	ctx := context.Background()

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log := logger.InitLogger("park-ledger", logger.LevelDebug)
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp()
		os.Exit(1)
	}

	// Printing configuration
	config.PrintConfig(cfg)

	log := logger.InitLogger(cfg.ServiceName, cfg.LogLevel)

	// Creating application
	application, err := app.NewApplication(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	// Running the application
	if err = application.Run(ctx); err != nil {
		log.Error(ctx, "application stopped with error", err)
		os.Exit(1)
	}
}
