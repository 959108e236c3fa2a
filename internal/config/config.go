package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

type Config struct {
	StoreDriver string   `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURL    string   `env:"MONGO_URL"`
	DBName      string   `env:"DB_NAME" envDefault:"quoridor"`
	DBPath      string   `env:"DB_PATH" envDefault:"quoridor.db"`
	ServerPort  string   `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string   `env:"LOG_FORMAT" envDefault:"json"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// set by Load when a .env file was read
	DotEnvLoaded bool `env:"-"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	loaded := godotenv.Load() == nil

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.DotEnvLoaded = loaded

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURL == "" {
			return fmt.Errorf("MONGO_URL is required when STORE_DRIVER is %q", DriverMongo)
		}
		if c.DBName == "" {
			return fmt.Errorf("DB_NAME is required when STORE_DRIVER is %q", DriverMongo)
		}
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required when STORE_DRIVER is %q", DriverSQLite)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("invalid LOG_FORMAT %q", c.LogFormat)
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
	return nil
}

// LogFields writes the non-secret settings to an event. MONGO_URL may carry
// credentials and is left out.
func (c *Config) LogFields(e *zerolog.Event) *zerolog.Event {
	return e.
		Str("store_driver", c.StoreDriver).
		Str("db_name", c.DBName).
		Str("db_path", c.DBPath).
		Str("server_port", c.ServerPort).
		Str("log_level", c.LogLevel).
		Strs("cors_origins", c.CORSOrigins).
		Bool("dotenv_loaded", c.DotEnvLoaded)
}

var Module = fx.Provide(Load)
