package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/blogkeeper/internal/timex"
)

// envConfig mirrors the environment variables understood by the server.
// Variable names follow the original deployment scripts.
type envConfig struct {
	Address            string         `env:"ADDRESS"`
	Port               string         `env:"PORT"`
	Storage            string         `env:"STORAGE"`
	DatabaseDSN        string         `env:"DATABASE_DSN"`
	MongoURI           string         `env:"DB_URI"`
	MongoDatabase      string         `env:"DATABASE_NAME"`
	AccessTokenSecret  string         `env:"JWT_SECRET"`
	RefreshTokenSecret string         `env:"JWT_REFRESH_SECRET"`
	AccessTokenTTL     timex.Duration `env:"JWT_ACCESS_EXPIRATION"`
	RefreshTokenTTL    timex.Duration `env:"JWT_REFRESH_EXPIRATION"`
	LogLevel           string         `env:"LOG_LEVEL"`
	AllowedOrigins     []string       `env:"ALLOWED_ORIGINS" envSeparator:","`
	OTelEndpoint       string         `env:"OTEL_ENDPOINT"`
}

// dotenvFile is loaded into the process environment when present. Variables
// already set in the environment win.
var dotenvFile = ".env"

func parseEnv(config *Config) error {
	// a missing .env file is normal outside local development
	_ = godotenv.Load(dotenvFile)

	var e envConfig
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}

	if e.Port != "" {
		config.EndpointAddrHTTP = ":" + e.Port
	}
	setString(&config.EndpointAddrHTTP, e.Address)
	setString(&config.Storage, e.Storage)
	setString(&config.DatabaseDSN, e.DatabaseDSN)
	setString(&config.MongoURI, e.MongoURI)
	setString(&config.MongoDatabase, e.MongoDatabase)
	setString(&config.AccessTokenSecret, e.AccessTokenSecret)
	setString(&config.RefreshTokenSecret, e.RefreshTokenSecret)
	setDuration(&config.AccessTokenValidityDuration, e.AccessTokenTTL)
	setDuration(&config.RefreshTokenValidityDuration, e.RefreshTokenTTL)
	setString(&config.LogLevel, e.LogLevel)
	if origins := trimAll(e.AllowedOrigins); len(origins) > 0 {
		config.AllowedOrigins = origins
	}
	setString(&config.OTelEndpoint, e.OTelEndpoint)

	return nil
}
