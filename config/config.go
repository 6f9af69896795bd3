package config

import (
	"fmt"
	"time"

	"github.com/Daniyar8k/park-ledger-system/pkg/configparser"
)

// Config contains all configuration variables of the application
type (
	Config struct {
		ServiceName string `env:"SERVICE_NAME" default:"park-ledger"`
		LogLevel    string `env:"LOG_LEVEL" default:"INFO"`

		HTTP     HTTPConfig
		Database DatabaseConfig
		RabbitMQ RabbitMQConfig
		Cache    CacheConfig
		Recon    ReconConfig
		Auth     Auth
	}

	HTTPConfig struct {
		Host string `env:"HTTP_HOST" default:"0.0.0.0"`
		Port string `env:"HTTP_PORT" default:"3000"`
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"park_user"`
		Password string `env:"DATABASE_PASSWORD" default:"park_pass"`
		Database string `env:"DATABASE_DATABASE" default:"park_db"`

		MaxConns        int32         `env:"DATABASE_MAXCONNS" default:"20"`
		MinConns        int32         `env:"DATABASE_MINCONNS" default:"2"`
		MaxConnLifetime time.Duration `env:"DATABASE_MAXCONNLIFETIME" default:"30m"`
		MaxConnIdleTime time.Duration `env:"DATABASE_MAXCONNIDLETIME" default:"5m"`
	}

	RabbitMQConfig struct {
		Host     string `env:"RABBITMQ_HOST" default:"localhost"`
		Port     string `env:"RABBITMQ_PORT" default:"5672"`
		User     string `env:"RABBITMQ_USER" default:"guest"`
		Password string `env:"RABBITMQ_PASSWORD" default:"guest"`

		BackupExchange string `env:"RABBITMQ_BACKUP_EXCHANGE" default:"park.backup"`
	}

	CacheConfig struct {
		Dir string `env:"CACHE_DIR" default:"./data/cache"`
	}

	ReconConfig struct {
		AutoRestore     bool          `env:"RECON_AUTO_RESTORE" default:"true"`
		AutoSync        bool          `env:"RECON_AUTO_SYNC" default:"true"`
		RestoreInterval time.Duration `env:"RECON_RESTORE_INTERVAL" default:"60s"`
		SyncInterval    time.Duration `env:"RECON_SYNC_INTERVAL" default:"120s"`
		ExitRetryDelay  time.Duration `env:"RECON_EXIT_RETRY_DELAY" default:"2s"`
	}

	Auth struct {
		TokenTTL  time.Duration `env:"AUTH_TOKEN_TTL" default:"12h"`
		JWTSecret string        `env:"AUTH_JWT_SECRET" default:"supersecretkey"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	return cfg, nil
}
