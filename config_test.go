package meteolux_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	meteolux "github.com/sim0nx/meteolux-go"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("METEOLUX_BASE_URL", "https://override.example.com/api")
	t.Setenv("METEOLUX_TIMEOUT", "2s")
	t.Setenv("METEOLUX_USER_AGENT", "env-agent/2.0")

	cfg, err := meteolux.ConfigFromEnv()
	if err != nil {
		t.Fatalf("config from env: %v", err)
	}
	if cfg.BaseURL != "https://override.example.com/api" {
		t.Fatalf("base url: got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 2*time.Second {
		t.Fatalf("timeout: got %v", cfg.Timeout)
	}
	if cfg.UserAgent != "env-agent/2.0" {
		t.Fatalf("user agent: got %q", cfg.UserAgent)
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("METEOLUX_BASE_URL", "")
	t.Setenv("METEOLUX_TIMEOUT", "")
	t.Setenv("METEOLUX_USER_AGENT", "")

	cfg, err := meteolux.ConfigFromEnv()
	if err != nil {
		t.Fatalf("config from env: %v", err)
	}
	if cfg.BaseURL != meteolux.DefaultBaseURL {
		t.Fatalf("base url default: got %q", cfg.BaseURL)
	}
	if cfg.Timeout != meteolux.DefaultTimeout {
		t.Fatalf("timeout default: got %v", cfg.Timeout)
	}
	if cfg.UserAgent != "" {
		t.Fatalf("user agent should stay empty, got %q", cfg.UserAgent)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meteolux.yaml")
	data := "base_url: https://file.example.com/api\ntimeout: 2s\nuser_agent: file-agent/1.0\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := meteolux.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BaseURL != "https://file.example.com/api" {
		t.Fatalf("base url: got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 2*time.Second {
		t.Fatalf("timeout: got %v", cfg.Timeout)
	}
	if cfg.UserAgent != "file-agent/1.0" {
		t.Fatalf("user agent: got %q", cfg.UserAgent)
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meteolux.yaml")
	if err := os.WriteFile(path, []byte("user_agent: partial/1.0\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := meteolux.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BaseURL != meteolux.DefaultBaseURL {
		t.Fatalf("base url default: got %q", cfg.BaseURL)
	}
	if cfg.Timeout != meteolux.DefaultTimeout {
		t.Fatalf("timeout default: got %v", cfg.Timeout)
	}
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meteolux.yaml")
	if err := os.WriteFile(path, []byte("timeout: soon\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := meteolux.LoadConfig(path); err == nil {
		t.Fatalf("expected error for unparsable timeout")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := meteolux.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
