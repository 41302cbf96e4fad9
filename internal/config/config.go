package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all settings the server needs, loaded from the environment.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	RedisURL    string `envconfig:"REDIS_URL" required:"true"`

	// BearerToken protects the suggestion endpoints.
	BearerToken string `envconfig:"BEARER_TOKEN" required:"true"`

	AmadeusAPIKey    string `envconfig:"AMADEUS_API_KEY" required:"true"`
	AmadeusAPISecret string `envconfig:"AMADEUS_API_SECRET" required:"true"`
	AmadeusBaseURL   string `envconfig:"AMADEUS_BASE_URL" default:"https://test.api.amadeus.com"`

	PostcodesBaseURL string `envconfig:"POSTCODES_BASE_URL" default:"https://api.postcodes.io"`

	// Outbound rate limit towards Amadeus, shared across all requests.
	AmadeusRatePerSecond float64 `envconfig:"AMADEUS_RATE_PER_SECOND" default:"10"`
	AmadeusRateBurst     int     `envconfig:"AMADEUS_RATE_BURST" default:"20"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}

	return &cfg, nil
}
