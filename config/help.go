package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `
park - parking lot ledger service

Usage:
  park [flags]

Flags:
  -config-path string   path to the config yaml file (default "config.yaml")
  -help                 show this message

Configuration is read from the yaml file and overridden by environment
variables (DATABASE_*, RABBITMQ_*, HTTP_*, CACHE_DIR, RECON_*, AUTH_*).
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}

// PrintConfig prints the effective configuration with secrets masked.
func PrintConfig(cfg *Config) {
	fmt.Printf("service:          %s\n", cfg.ServiceName)
	fmt.Printf("log level:        %s\n", cfg.LogLevel)
	fmt.Printf("http:             %s:%s\n", cfg.HTTP.Host, cfg.HTTP.Port)
	fmt.Printf("database:         %s:%s/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	fmt.Printf("rabbitmq:         %s:%s exchange=%s\n", cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.BackupExchange)
	fmt.Printf("cache dir:        %s\n", cfg.Cache.Dir)
	fmt.Printf("auto restore:     %v every %s\n", cfg.Recon.AutoRestore, cfg.Recon.RestoreInterval)
	fmt.Printf("auto sync:        %v every %s\n", cfg.Recon.AutoSync, cfg.Recon.SyncInterval)
	fmt.Printf("exit retry delay: %s\n", cfg.Recon.ExitRetryDelay)
	fmt.Printf("token ttl:        %s\n", cfg.Auth.TokenTTL)
}
