package config

import (
	"fmt"
	"os"
	"strings"
)

// Validate checks the configuration and reports every problem at once.
func (c Config) Validate() error {
	var errs []string

	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log_format must be text or json, got: %q", c.LogFormat))
	}

	if c.InputDir == "" {
		errs = append(errs, "input_dir must not be empty")
	} else if info, err := os.Stat(c.InputDir); err != nil {
		errs = append(errs, fmt.Sprintf("input_dir is not accessible: %v", err))
	} else if !info.IsDir() {
		errs = append(errs, fmt.Sprintf("input_dir is not a directory: %s", c.InputDir))
	}

	if c.OutputDir == "" {
		errs = append(errs, "output_dir must not be empty")
	}

	if c.Charts.Enabled {
		if c.Charts.WidthIn <= 0 {
			errs = append(errs, fmt.Sprintf("charts.width_in must be positive, got: %v", c.Charts.WidthIn))
		}
		if c.Charts.HeightIn <= 0 {
			errs = append(errs, fmt.Sprintf("charts.height_in must be positive, got: %v", c.Charts.HeightIn))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
