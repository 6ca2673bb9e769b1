package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LINEChannelSecret      string        `env:"LINE_CHANNEL_SECRET,required,notEmpty"`
	LINEChannelAccessToken string        `env:"LINE_CHANNEL_ACCESS_TOKEN,required,notEmpty"`
	LINEAPITimeout         time.Duration `env:"LINE_API_TIMEOUT" envDefault:"10s"`

	BaseURL   string `env:"BASE_URL"`
	Port      string `env:"PORT" envDefault:"8080"`
	StaticDir string `env:"STATIC_DIR" envDefault:"static"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	// BatchFailurePolicy decides what happens to the remaining events of a
	// delivery when one fails: "continue" or "abort".
	BatchFailurePolicy string `env:"BATCH_FAILURE_POLICY" envDefault:"continue"`

	WiFiSSID     string `env:"WIFI_SSID"`
	WiFiPassword string `env:"WIFI_PASSWORD"`
	ContactPhone string `env:"CONTACT_PHONE"`
	CoffeePhone  string `env:"COFFEE_PHONE"`
	MapURL       string `env:"MAP_URL"`
}

// Load reads the configuration from the environment. Missing LINE secrets
// are an error; the process must not start without them.
func Load() (*Config, error) {
	// .env is optional; env vars may already be set (e.g. in production)
	_ = godotenv.Load()

	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing env: %w", err)
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://localhost:%s", cfg.Port)
	}

	switch cfg.BatchFailurePolicy {
	case "continue", "abort":
	default:
		return nil, fmt.Errorf("BATCH_FAILURE_POLICY must be continue or abort, got %q", cfg.BatchFailurePolicy)
	}

	if cfg.LINEAPITimeout <= 0 {
		return nil, fmt.Errorf("LINE_API_TIMEOUT must be positive, got %s", cfg.LINEAPITimeout)
	}

	return cfg, nil
}
