package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (EAGLEVIEW_*). When no api_key is
// configured, LINEAR_API_KEY is consulted as a fallback.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: EAGLEVIEW_VIEW_ID -> view_id, etc.
	if err := k.Load(env.Provider("EAGLEVIEW_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "EAGLEVIEW_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(APIKeyEnvVar)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path. The API key
// is never written to disk; it stays in the environment.
func (c *Config) Save(path string) error {
	saved := *c
	saved.APIKey = ""
	data, err := yamlv3.Marshal(&saved)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	if len(c.Labels) == 0 && c.ViewID == "" {
		return fmt.Errorf("at least one label or a view_id is required")
	}
	if c.MaxIssues <= 0 {
		return fmt.Errorf("max_issues must be positive")
	}
	if c.PageSize <= 0 || c.PageSize > 250 {
		return fmt.Errorf("page_size must be between 1 and 250")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	if c.Server.RefreshTimeout <= 0 {
		return fmt.Errorf("server.refresh_timeout_seconds must be positive")
	}
	return nil
}
