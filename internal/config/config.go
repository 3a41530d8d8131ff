package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Pipeline  Pipeline
	Affiliate Affiliate
	Notifier  Notifier
	Server    Server
	Postgres  Postgres
	Redis     Redis
}

type Server struct {
	ListenAddress        string `env:"LISTEN_ADDRESS" envDefault:":8080"`
	MetricsListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	ProbeListenAddress   string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8081"`
	WebhookVerifyToken   string `env:"WEBHOOK_VERIFY_TOKEN"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
