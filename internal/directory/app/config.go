package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings. Everything is environment-driven with
// sane development defaults; nothing reads the environment outside LoadConfig.
type Config struct {
	Port         int    `env:"PORT"                  envDefault:"8080"`
	DatabaseFile string `env:"DIRECTORY_DATABASE_FILE" envDefault:"directory.db"`
	PepperFile   string `env:"DIRECTORY_PEPPER_FILE"   envDefault:"pepper"`

	// BaseURL is the public frontend origin embedded in invite links.
	BaseURL string `env:"DIRECTORY_BASE_URL" envDefault:"http://localhost:5173"`

	// Session token settings for admin logins.
	JWTSecret string        `env:"DIRECTORY_JWT_SECRET,required"`
	Issuer    string        `env:"DIRECTORY_ISSUER"    envDefault:"carometro-directory"`
	TokenTTL  time.Duration `env:"DIRECTORY_TOKEN_TTL" envDefault:"12h"`

	// Outbound SMTP relay for invite emails.
	SMTPHost     string `env:"DIRECTORY_SMTP_HOST" envDefault:"localhost"`
	SMTPPort     int    `env:"DIRECTORY_SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"DIRECTORY_SMTP_USERNAME"`
	SMTPPassword string `env:"DIRECTORY_SMTP_PASSWORD"`
	SMTPFrom     string `env:"DIRECTORY_SMTP_FROM" envDefault:"no-reply@localhost"`

	Env       string `env:"ENV"        envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}
