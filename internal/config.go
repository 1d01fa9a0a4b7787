package internal

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port            string `env:"PORT" envDefault:"5000"`
	DBUser          string `env:"DB_USER"`
	DBPass          string `env:"DB_PASS"`
	DBHost          string `env:"DB_HOST" envDefault:"localhost:5432"`
	DBName          string `env:"DB_NAME" envDefault:"contesthub"`
	AccessToken     string `env:"ACCESS_TOKEN"`
	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s", c.DBUser, c.DBPass, c.DBHost, c.DBName)
}
