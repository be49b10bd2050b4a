// Viper-based hierarchical configuration loading: defaults, an optional
// config file, then SPENDSCOPE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/spendscope/spendscope/internal/features"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Analysis struct {
		MinOccurrences    int     `mapstructure:"min_occurrences" yaml:"min_occurrences"`
		MaxAmountVariance float64 `mapstructure:"max_amount_variance" yaml:"max_amount_variance"`
		MaxDaysVariance   float64 `mapstructure:"max_days_variance" yaml:"max_days_variance"`
		GroupByOwner      bool    `mapstructure:"group_by_owner" yaml:"group_by_owner"`
	} `mapstructure:"analysis" yaml:"analysis"`

	Categories struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`

	Report struct {
		Period string `mapstructure:"period" yaml:"period"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.spendscope")
	v.AddConfigPath(".spendscope")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SPENDSCOPE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("analysis.min_occurrences", 3)
	v.SetDefault("analysis.max_amount_variance", 0.1)
	v.SetDefault("analysis.max_days_variance", 5.0)
	v.SetDefault("analysis.group_by_owner", true)

	v.SetDefault("categories.file", "categories.yaml")

	v.SetDefault("report.period", "monthly")
	v.SetDefault("report.format", "text")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Analysis.MinOccurrences < 2 {
		return fmt.Errorf("analysis.min_occurrences must be at least 2, got: %d", config.Analysis.MinOccurrences)
	}
	if config.Analysis.MaxAmountVariance < 0 {
		return fmt.Errorf("analysis.max_amount_variance must not be negative, got: %f", config.Analysis.MaxAmountVariance)
	}
	if config.Analysis.MaxDaysVariance < 0 {
		return fmt.Errorf("analysis.max_days_variance must not be negative, got: %f", config.Analysis.MaxDaysVariance)
	}

	switch config.Report.Period {
	case "daily", "weekly", "monthly":
	default:
		return fmt.Errorf("invalid report period: %s (must be 'daily', 'weekly' or 'monthly')", config.Report.Period)
	}
	if config.Report.Format != "text" && config.Report.Format != "json" {
		return fmt.Errorf("invalid report format: %s (must be 'text' or 'json')", config.Report.Format)
	}

	return nil
}

// DetectorOptions maps the analysis configuration onto detector options.
func (c *Config) DetectorOptions() features.DetectorOptions {
	return features.DetectorOptions{
		MinOccurrences:    c.Analysis.MinOccurrences,
		MaxAmountVariance: c.Analysis.MaxAmountVariance,
		MaxDaysVariance:   c.Analysis.MaxDaysVariance,
		GroupByOwner:      c.Analysis.GroupByOwner,
	}
}

// ConfigureLoggingFromConfig configures a logger from the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
