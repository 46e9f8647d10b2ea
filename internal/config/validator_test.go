package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig(t *testing.T) Config {
	return Config{
		InputDir:  t.TempDir(),
		OutputDir: ".",
		LogFormat: "text",
		Charts:    ChartsConfig{Enabled: true, WidthIn: 12, HeightIn: 8},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "Valid Configuration",
			mutate: func(c *Config) {},
		},
		{
			name:   "JSON Log Format",
			mutate: func(c *Config) { c.LogFormat = "json" },
		},
		{
			name:    "Invalid Log Format",
			mutate:  func(c *Config) { c.LogFormat = "xml" },
			wantErr: "log_format must be text or json",
		},
		{
			name:    "Missing Input Dir",
			mutate:  func(c *Config) { c.InputDir = "/nonexistent/rngbench" },
			wantErr: "input_dir is not accessible",
		},
		{
			name:    "Empty Input Dir",
			mutate:  func(c *Config) { c.InputDir = "" },
			wantErr: "input_dir must not be empty",
		},
		{
			name:    "Empty Output Dir",
			mutate:  func(c *Config) { c.OutputDir = "" },
			wantErr: "output_dir must not be empty",
		},
		{
			name:    "Invalid Chart Width",
			mutate:  func(c *Config) { c.Charts.WidthIn = 0 },
			wantErr: "charts.width_in must be positive",
		},
		{
			name:    "Invalid Chart Height",
			mutate:  func(c *Config) { c.Charts.HeightIn = -1 },
			wantErr: "charts.height_in must be positive",
		},
		{
			name: "Chart Size Ignored When Disabled",
			mutate: func(c *Config) {
				c.Charts.Enabled = false
				c.Charts.WidthIn = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.LogFormat = "yaml"
	cfg.Charts.WidthIn = -2

	err := cfg.Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "configuration validation failed")
		assert.Contains(t, err.Error(), "log_format")
		assert.Contains(t, err.Error(), "charts.width_in")
	}
}

func TestValidate_InputDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	cfg.InputDir = "validator_test.go"

	err := cfg.Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "input_dir is not a directory")
	}
}
