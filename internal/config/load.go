package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "RNGBENCH"

// Config is the resolved analyzer configuration.
type Config struct {
	InputDir  string `mapstructure:"input_dir"`
	OutputDir string `mapstructure:"output_dir"`
	Verbose   bool   `mapstructure:"verbose"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`

	Charts  ChartsConfig  `mapstructure:"charts"`
	Export  ExportConfig  `mapstructure:"export"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ChartsConfig controls chart rendering. Sizes are in inches.
type ChartsConfig struct {
	Enabled  bool    `mapstructure:"enabled"`
	WidthIn  float64 `mapstructure:"width_in"`
	HeightIn float64 `mapstructure:"height_in"`
}

// ExportConfig enables the optional outputs.
type ExportConfig struct {
	XLSX     bool   `mapstructure:"xlsx"`
	Database string `mapstructure:"database"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// Load initializes the global viper instance from .env, an optional config
// file and RNGBENCH_* environment variables. A missing rngbench.yaml is not an
// error; a malformed file or a missing cfgFile is.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("rngbench")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("input_dir", ".")
	viper.SetDefault("output_dir", ".")
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_format", "text")
	viper.SetDefault("log_file", "")

	viper.SetDefault("charts.enabled", true)
	viper.SetDefault("charts.width_in", 12.0)
	viper.SetDefault("charts.height_in", 8.0)

	viper.SetDefault("export.xlsx", false)
	viper.SetDefault("export.database", "")
	viper.SetDefault("metrics.textfile", "")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

// Current decodes the loaded settings into a Config.
func Current() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
