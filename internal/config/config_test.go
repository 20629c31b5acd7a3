package config

import (
	"context"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OutputDir != "sdo_data" {
		t.Errorf("OutputDir default = %q, want sdo_data", cfg.OutputDir)
	}
	if cfg.SDOLatestBaseURL != "https://sdo.gsfc.nasa.gov/assets/img/latest/" {
		t.Errorf("Unexpected SDO latest base URL: %q", cfg.SDOLatestBaseURL)
	}
	if cfg.HelioviewerBaseURL != "https://api.helioviewer.org/v2/" {
		t.Errorf("Unexpected Helioviewer base URL: %q", cfg.HelioviewerBaseURL)
	}
	if cfg.HTTPTimeoutSeconds != 30 {
		t.Errorf("HTTPTimeoutSeconds default = %d, want 30", cfg.HTTPTimeoutSeconds)
	}
	if cfg.ImageScale != 2.4 {
		t.Errorf("ImageScale default = %f, want 2.4", cfg.ImageScale)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SDO_OUTPUT_DIR", "/tmp/solar")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "10")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OutputDir != "/tmp/solar" {
		t.Errorf("OutputDir = %q, want /tmp/solar", cfg.OutputDir)
	}
	if cfg.HTTPTimeoutSeconds != 10 {
		t.Errorf("HTTPTimeoutSeconds = %d, want 10", cfg.HTTPTimeoutSeconds)
	}
}

func TestGetVersionFromEnv(t *testing.T) {
	t.Setenv("APP_VERSION", "1.2.3")
	if v := GetVersion(); v != "1.2.3" {
		t.Errorf("GetVersion() = %q, want 1.2.3", v)
	}
}

func TestGetVersionFallback(t *testing.T) {
	t.Setenv("APP_VERSION", "")
	if v := GetVersion(); v == "" {
		t.Error("GetVersion() returned empty string")
	}
}
