package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the service configuration, loaded from environment variables.
type Config struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	AWSRegion      string   `env:"AWS_REGION" envDefault:"us-east-1"`
	S3Bucket       string   `env:"S3_BUCKET_NAME"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	// DemoMatchSeed switches the match policy to the seeded random roll used
	// for demos; zero keeps the production reciprocity policy.
	DemoMatchSeed int64 `env:"DEMO_MATCH_SEED"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
