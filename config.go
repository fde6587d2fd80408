package meteolux

import (
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the production MeteoLux API root.
const DefaultBaseURL = "https://metapi.ana.lu/api/v1"

// DefaultTimeout bounds each request when no custom transport is supplied.
const DefaultTimeout = 10 * time.Second

// Config carries client settings loadable from the environment or from a
// YAML file.
type Config struct {
	BaseURL   string        `env:"METEOLUX_BASE_URL,default=https://metapi.ana.lu/api/v1" yaml:"base_url"`
	Timeout   time.Duration `env:"METEOLUX_TIMEOUT,default=10s" yaml:"timeout"`
	UserAgent string        `env:"METEOLUX_USER_AGENT" yaml:"user_agent"`
}

// ConfigFromEnv builds a Config from METEOLUX_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("meteolux: decode environment: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file. Unset values fall back to the same
// defaults the environment path uses; timeout accepts Go duration syntax.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("meteolux: read config: %w", err)
	}
	var file struct {
		BaseURL   string `yaml:"base_url"`
		Timeout   string `yaml:"timeout"`
		UserAgent string `yaml:"user_agent"`
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Config{}, fmt.Errorf("meteolux: parse config %s: %w", path, err)
	}
	cfg := Config{BaseURL: file.BaseURL, Timeout: DefaultTimeout, UserAgent: file.UserAgent}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if file.Timeout != "" {
		d, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("meteolux: parse config %s: timeout: %w", path, err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}
