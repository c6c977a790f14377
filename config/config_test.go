package config

import (
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name:    "missing project",
			mutate:  func(cfg *Config) { cfg.Project = "" },
			wantErr: true,
		},
		{
			name:    "missing api version",
			mutate:  func(cfg *Config) { cfg.API.Version = "" },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "xml" },
			wantErr: true,
		},
		{
			name:    "json logging format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "json" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Project: "my-project",
				API: APIConfig{
					Version: "v1",
				},
				Logging: LoggingConfig{
					Level:  "info",
					Format: "console",
				},
			}
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
