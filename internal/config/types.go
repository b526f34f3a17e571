package config

import "time"

// Config represents the main configuration structure
type Config struct {
	Anonymize  AnonymizeConfig     `yaml:"anonymize" mapstructure:"anonymize"`
	Repo       map[string][]string `yaml:"repo" mapstructure:"repo"`
	Summarizer SummarizerConfig    `yaml:"summarizer" mapstructure:"summarizer"`
	Logging    LoggingConfig       `yaml:"logging" mapstructure:"logging"`
	Workflow   WorkflowConfig      `yaml:"workflow" mapstructure:"workflow"`
}

// AnonymizeConfig lists the sensitive names to mask, grouped by category.
// Order matters: placeholder indices follow configuration order.
type AnonymizeConfig struct {
	Organizations []string `yaml:"organizations" mapstructure:"organizations"`
	Projects      []string `yaml:"projects" mapstructure:"projects"`
	People        []string `yaml:"people" mapstructure:"people"`
}

// SummarizerConfig contains the OpenRouter client configuration
type SummarizerConfig struct {
	Model       string        `yaml:"model" mapstructure:"model"`
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url"`
	APIKey      string        `yaml:"api_key" mapstructure:"api_key"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens   int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float32       `yaml:"temperature" mapstructure:"temperature"`
	TopP        float32       `yaml:"top_p" mapstructure:"top_p"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string        `yaml:"level" mapstructure:"level"`
	Format string        `yaml:"format" mapstructure:"format"` // json or console
	File   FileLogConfig `yaml:"file" mapstructure:"file"`
}

// FileLogConfig contains file logging configuration
type FileLogConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// WorkflowConfig contains workflow pipeline configuration
type WorkflowConfig struct {
	KeepTemp bool   `yaml:"keep_temp" mapstructure:"keep_temp"`
	TempDir  string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// GetDefaults returns a configuration with sensible defaults
func GetDefaults() *Config {
	return &Config{
		Summarizer: SummarizerConfig{
			Model:       "google/gemini-2.5-flash-preview-05-20",
			BaseURL:     "https://openrouter.ai/api/v1",
			Timeout:     60 * time.Second,
			MaxTokens:   2000,
			Temperature: 0.3,
			TopP:        0.9,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File: FileLogConfig{
				Enabled: false,
				Path:    "logs/anonsum.log",
			},
		},
		Workflow: WorkflowConfig{
			KeepTemp: false,
			TempDir:  "",
		},
	}
}
