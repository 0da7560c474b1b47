// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store configures the flat-file record store.
type Store struct {
	Dir                string `envconfig:"DIR" default:"data"`
	AccountNumberFloor int    `envconfig:"ACCOUNT_NUMBER_FLOOR" default:"2003"`
}

// Admin configures the bootstrap administrator credential, seeded into the
// credential store when it is empty.
type Admin struct {
	Username string `envconfig:"USERNAME" default:"admin"`
	Password string `envconfig:"PASSWORD" default:"admin123"`
}

// Interest configures the savings accrual.
type Interest struct {
	AnnualRate float64 `envconfig:"ANNUAL_RATE" default:"0.03"`
}

// Log configures the terminal logger.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	Prefix     string `envconfig:"PREFIX" default:"unibank"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"15:04:05"`
}

// App is the root configuration.
type App struct {
	Store    Store    `envconfig:"STORE"`
	Admin    Admin    `envconfig:"ADMIN"`
	Interest Interest `envconfig:"INTEREST"`
	Log      Log      `envconfig:"LOG"`
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load(logger *slog.Logger) (*App, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using system environment variables")
	}
	var cfg App
	if err := envconfig.Process("UNIBANK", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
