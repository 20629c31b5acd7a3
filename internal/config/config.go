package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the SDO fetch utility
type Config struct {
	// Output configuration
	OutputDir string `env:"SDO_OUTPUT_DIR,default=sdo_data"`

	// Remote endpoints
	SDOLatestBaseURL   string `env:"SDO_LATEST_BASE_URL,default=https://sdo.gsfc.nasa.gov/assets/img/latest/"`
	HelioviewerBaseURL string `env:"HELIOVIEWER_BASE_URL,default=https://api.helioviewer.org/v2/"`

	// HTTP client configuration
	HTTPTimeoutSeconds int `env:"HTTP_TIMEOUT_SECONDS,default=30"`

	// Helioviewer screenshot resolution in arcseconds per pixel (lower = higher resolution)
	ImageScale float64 `env:"IMAGE_SCALE,default=2.4"`

	// Service configuration
	LogLevel string `env:"LOG_LEVEL,default=info"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
