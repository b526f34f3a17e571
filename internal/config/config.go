package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file and environment variables.
// Unlike a server with built-in defaults, this tool is useless without a
// name list, so a missing configuration source is a fatal error.
func Load(configPath string) (*Config, error) {
	config := GetDefaults()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("$HOME/.anonsum/")

	// Environment variable overrides
	v.SetEnvPrefix("ANONSUM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Use specific config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("configuration file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The API key is usually supplied via the environment, not the file.
	if config.Summarizer.APIKey == "" {
		if key := os.Getenv("ANONSUM_SUMMARIZER_API_KEY"); key != "" {
			config.Summarizer.APIKey = key
		} else {
			config.Summarizer.APIKey = os.Getenv("OPENROUTER_API_KEY")
		}
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.Logging.Level)
	}

	if config.Logging.Format != "json" && config.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", config.Logging.Format)
	}

	if config.Summarizer.Model == "" {
		return fmt.Errorf("summarizer model must not be empty")
	}

	if config.Summarizer.Timeout <= 0 {
		return fmt.Errorf("invalid summarizer timeout: %s", config.Summarizer.Timeout)
	}

	if config.Summarizer.MaxTokens <= 0 {
		return fmt.Errorf("invalid summarizer max_tokens: %d", config.Summarizer.MaxTokens)
	}

	if config.Summarizer.Temperature < 0 || config.Summarizer.Temperature > 2 {
		return fmt.Errorf("invalid summarizer temperature: %g (must be between 0 and 2)", config.Summarizer.Temperature)
	}

	if config.Summarizer.TopP < 0 || config.Summarizer.TopP > 1 {
		return fmt.Errorf("invalid summarizer top_p: %g (must be between 0 and 1)", config.Summarizer.TopP)
	}

	return nil
}
