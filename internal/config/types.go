package config

// Config is the top-level eagleview configuration, corresponding to .eagleview.yml.
type Config struct {
	APIKey       string       `yaml:"api_key" koanf:"api_key"`
	Endpoint     string       `yaml:"endpoint" koanf:"endpoint"`
	ViewID       string       `yaml:"view_id" koanf:"view_id"`
	Labels       []string     `yaml:"labels" koanf:"labels"`
	ExcludeLabel string       `yaml:"exclude_label" koanf:"exclude_label"`
	MaxIssues    int          `yaml:"max_issues" koanf:"max_issues"`
	PageSize     int          `yaml:"page_size" koanf:"page_size"`
	OutputDir    string       `yaml:"output_dir" koanf:"output_dir"`
	Server       ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds dashboard server settings.
type ServerConfig struct {
	Port           int    `yaml:"port" koanf:"port"`
	StaticDir      string `yaml:"static_dir" koanf:"static_dir"`
	AllowAll       bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	RefreshTimeout int    `yaml:"refresh_timeout_seconds" koanf:"refresh_timeout_seconds"`
}
