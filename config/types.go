package config

// Config represents the complete configuration structure
type Config struct {
	Project string        `mapstructure:"project"`
	API     APIConfig     `mapstructure:"api"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds Pub/Sub REST endpoint details. BaseURL is normally
// left empty so the emulator override and the public default apply.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Version string `mapstructure:"version"`
}

// AuthConfig controls how credentials are attached to requests.
// CredentialsFile points at a service account JSON key; when empty,
// Application Default Credentials are used. Disabled skips token
// fetching entirely (useful against an emulator).
type AuthConfig struct {
	Disabled        bool   `mapstructure:"disabled"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
