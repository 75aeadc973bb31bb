package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	DatabaseURL  string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret    string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`
	FrontendURL  string `envconfig:"FRONTEND_URL"`
}

// Load читает конфигурацию из окружения. У секретов нет значений
// по умолчанию - без DATABASE_URL и JWT_SECRET сервис не стартует.
func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
