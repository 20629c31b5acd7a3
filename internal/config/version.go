package config

import (
	"os"
	"strings"
)

const baseVersion = "0.2.0"

// GetVersion returns the version from the APP_VERSION environment variable
// (set by CI/CD) or falls back to the VERSION file, then the compiled-in base.
func GetVersion() string {
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}

	if content, err := os.ReadFile("VERSION"); err == nil {
		if v := strings.TrimSpace(string(content)); v != "" {
			return v
		}
	}

	return baseVersion
}
