package config

import "github.com/caarlos0/env/v11"

// Config is the server configuration, loaded from the environment.
type Config struct {
	Port         string `env:"PORT" envDefault:"3000"`
	AllowOrigins string `env:"ALLOW_ORIGINS" envDefault:"http://localhost:5173"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
