package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Retry.Enabled {
		t.Error("Retry.Enabled = false, want true by default")
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.BaseDelay() != 200*time.Millisecond {
		t.Errorf("Retry.BaseDelay() = %v, want 200ms", cfg.Retry.BaseDelay())
	}
	if cfg.Throttle.Enabled {
		t.Error("Throttle.Enabled = true, want false by default")
	}
}

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want default 3", cfg.Retry.MaxAttempts)
	}
}

func TestLoadFrom_ParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
api_key = "sk-or-v1-abc"
provisioning_key = "sk-or-v1-prov"

[retry]
enabled = true
max_attempts = 5
base_delay_ms = 50

[throttle]
enabled = true
delay_ms = 75
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.APIKey != "sk-or-v1-abc" {
		t.Errorf("APIKey = %q, want sk-or-v1-abc", cfg.API.APIKey)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.Retry.MaxAttempts)
	}
	if !cfg.Throttle.Enabled {
		t.Error("Throttle.Enabled = false, want true")
	}
	if cfg.Throttle.Delay() != 75*time.Millisecond {
		t.Errorf("Throttle.Delay() = %v, want 75ms", cfg.Throttle.Delay())
	}
}

func TestGetAPIKey_EnvWins(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-or-env")

	cfg := DefaultConfig()
	cfg.API.APIKey = "sk-or-file"

	if got := GetAPIKey(cfg); got != "sk-or-env" {
		t.Errorf("GetAPIKey = %q, want env value", got)
	}
}

func TestGetProvisioningKey_FallsBackToConfig(t *testing.T) {
	t.Setenv("OPENROUTER_PROVISIONING_KEY", "")

	cfg := DefaultConfig()
	cfg.API.ProvisioningKey = "sk-or-prov"

	if got := GetProvisioningKey(cfg); got != "sk-or-prov" {
		t.Errorf("GetProvisioningKey = %q, want config value", got)
	}
}
