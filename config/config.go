package config

import (
	"log"

	"github.com/caarlos0/env/v11"

	"github.com/joho/godotenv"
)

type Config struct {
	Env               string `env:"ENV" envDefault:"development"`
	Port              int    `env:"PORT" envDefault:"8080"`
	Dsn               string `env:"DSN"`
	JwtSecret         string `env:"JWT_SECRET"`
	JwtExpires        string `env:"JWT_EXPIRES" envDefault:"15m"`
	RefreshSecret     string `env:"REFRESH_SECRET"`
	RefreshExpiry     string `env:"REFRESH_EXPIRY" envDefault:"720h"`
	DeletionGraceDays int    `env:"DELETION_GRACE_DAYS" envDefault:"30"`
	SMTPHost          string `env:"SMTP_HOST"`
	SMTPPort          int    `env:"SMTP_PORT"`
	SMTPUser          string `env:"SMTP_USER"`
	SMTPPassword      string `env:"SMTP_PASSWORD"`
	SMTPFrom          string `env:"SMTP_FROM"`
}

func New() *Config {
	if loadErr := godotenv.Load(".env"); loadErr != nil {
		log.Printf("[Env]: unable to load .env file %v", loadErr)
	}

	var cfg Config

	if parseErr := env.Parse(&cfg); parseErr != nil {
		log.Printf("[Env]: failed to parse environment variables: %v", parseErr)
	}

	return &cfg
}

// IsProduction reports whether the server should hide unexpected error
// detail from responses.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
