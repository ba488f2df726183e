package config

// DefaultEndpoint is the Linear GraphQL API endpoint.
const DefaultEndpoint = "https://api.linear.app/graphql"

// APIKeyEnvVar is the conventional environment variable holding the
// Linear API key. It is consulted when the config file carries no key.
const APIKeyEnvVar = "LINEAR_API_KEY"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:  DefaultEndpoint,
		MaxIssues: 1000,
		PageSize:  100,
		OutputDir: "data",
		Server: ServerConfig{
			Port:           8001,
			StaticDir:      "web",
			AllowAll:       false,
			RefreshTimeout: 60,
		},
	}
}
