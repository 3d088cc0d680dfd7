// Package config handles configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/verdict/internal/model"
)

// Config holds all verdict configuration.
type Config struct {
	Model  ModelConfig  `yaml:"model"`
	Engine EngineConfig `yaml:"engine"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// ModelConfig locates the scoring model and vocabulary files.
type ModelConfig struct {
	OnnxPath  string `envconfig:"VERDICT_MODEL_PATH" yaml:"onnx_path"`
	VocabPath string `envconfig:"VERDICT_VOCAB_PATH" yaml:"vocab_path"`
}

// EngineConfig holds inference and attribution settings.
type EngineConfig struct {
	Maxlen        int           `envconfig:"VERDICT_MAXLEN" yaml:"maxlen"`
	Threshold     float64       `envconfig:"VERDICT_THRESHOLD" yaml:"threshold"`
	TopN          int           `envconfig:"VERDICT_TOP_N" yaml:"top_n"`
	DisplayTokens int           `envconfig:"VERDICT_DISPLAY_TOKENS" yaml:"display_tokens"`
	Workers       int           `envconfig:"VERDICT_WORKERS" yaml:"workers"`
	Timeout       time.Duration `envconfig:"VERDICT_TIMEOUT" yaml:"timeout"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"VERDICT_HOST" yaml:"host"`
	Port            int           `envconfig:"VERDICT_PORT" yaml:"port"`
	ReadTimeout     time.Duration `envconfig:"VERDICT_READ_TIMEOUT" yaml:"read_timeout"`
	WriteTimeout    time.Duration `envconfig:"VERDICT_WRITE_TIMEOUT" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `envconfig:"VERDICT_SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout"`
	RateLimit       float64       `envconfig:"VERDICT_RATE_LIMIT" yaml:"rate_limit"`
	RateBurst       int           `envconfig:"VERDICT_RATE_BURST" yaml:"rate_burst"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"VERDICT_LOG_LEVEL" yaml:"level"`
	Format string `envconfig:"VERDICT_LOG_FORMAT" yaml:"format"` // "text" or "json"
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Model: ModelConfig{
			OnnxPath:  "models/sentiment.onnx",
			VocabPath: "models/word_index.json",
		},
		Engine: EngineConfig{
			Maxlen:        500,
			Threshold:     0.5,
			TopN:          20,
			DisplayTokens: 60,
			Workers:       4,
			Timeout:       30 * time.Second,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       10,
			RateBurst:       20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the effective configuration: defaults, then the optional YAML
// file, then environment variables. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks all ranges. Violations surface as ConfigurationError so
// callers can tell bad settings from runtime failures.
func (c Config) Validate() error {
	if c.Engine.Maxlen < 1 {
		return &model.ConfigurationError{Field: "maxlen", Value: c.Engine.Maxlen, Reason: "must be at least 1"}
	}
	if c.Engine.Threshold < 0 || c.Engine.Threshold > 1 {
		return &model.ConfigurationError{Field: "threshold", Value: c.Engine.Threshold, Reason: "must be in [0,1]"}
	}
	if c.Engine.Workers < 1 {
		return &model.ConfigurationError{Field: "workers", Value: c.Engine.Workers, Reason: "must be at least 1"}
	}
	if c.Engine.TopN < 1 {
		return &model.ConfigurationError{Field: "top_n", Value: c.Engine.TopN, Reason: "must be at least 1"}
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &model.ConfigurationError{Field: "port", Value: c.Server.Port, Reason: "must be in [1,65535]"}
	}
	if c.Server.RateLimit <= 0 {
		return &model.ConfigurationError{Field: "rate_limit", Value: c.Server.RateLimit, Reason: "must be positive"}
	}
	return nil
}
