// Package config loads service configuration from defaults, an optional YAML
// file and environment variables. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileEnv names the environment variable holding an optional config file path.
const FileEnv = "KRUSHIT_CONFIG"

// Config holds every setting the binaries read.
type Config struct {
	Port           string `mapstructure:"port"`
	GRPCHealthPort string `mapstructure:"grpc_health_port"`
	CORSOrigin     string `mapstructure:"cors_origin"`
	LogLevel       string `mapstructure:"log_level"`

	ClassifierURL     string        `mapstructure:"classifier_url"`
	ClassifierTimeout time.Duration `mapstructure:"classifier_timeout"`
	ClassifierRetries int           `mapstructure:"classifier_retries"`
	ClassifierRPS     float64       `mapstructure:"classifier_rps"`

	// RequestRPS limits requests per client IP; 0 disables the limit.
	RequestRPS   float64 `mapstructure:"request_rps"`
	RequestBurst int     `mapstructure:"request_burst"`

	OllamaURL string `mapstructure:"ollama_url"`
	ChatModel string `mapstructure:"chat_model"`

	NATSURL string `mapstructure:"nats_url"`

	Neo4jURL  string `mapstructure:"neo4j_url"`
	Neo4jUser string `mapstructure:"neo4j_user"`
	Neo4jPass string `mapstructure:"neo4j_pass"`
}

var defaults = map[string]any{
	"port":               "8080",
	"grpc_health_port":   "9090",
	"cors_origin":        "*",
	"log_level":          "info",
	"classifier_url":     "http://localhost:8000",
	"classifier_timeout": "30s",
	"classifier_retries": 0,
	"classifier_rps":     0.0,
	"request_rps":        0.0,
	"request_burst":      10,
	"ollama_url":         "",
	"chat_model":         "llama3.2",
	"nats_url":           "",
	"neo4j_url":          "neo4j://localhost:7687",
	"neo4j_user":         "neo4j",
	"neo4j_pass":         "password",
}

// Load reads configuration. path overrides KRUSHIT_CONFIG; both may be empty.
func Load(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
		if err := v.BindEnv(k, strings.ToUpper(k)); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", k, err)
		}
	}

	if path == "" {
		path = os.Getenv(FileEnv)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.ClassifierURL == "" {
		errs = append(errs, errors.New("classifier_url is required"))
	}
	if c.ClassifierTimeout <= 0 {
		errs = append(errs, fmt.Errorf("classifier_timeout must be positive, got %s", c.ClassifierTimeout))
	}
	if c.ClassifierRetries < 0 {
		errs = append(errs, fmt.Errorf("classifier_retries must not be negative, got %d", c.ClassifierRetries))
	}
	if c.ClassifierRPS < 0 || c.RequestRPS < 0 {
		errs = append(errs, errors.New("rate limits must not be negative"))
	}
	for name, p := range map[string]string{"port": c.Port, "grpc_health_port": c.GRPCHealthPort} {
		if n, err := strconv.Atoi(p); err != nil || n < 0 || n > 65535 {
			errs = append(errs, fmt.Errorf("%s must be a port number, got %q", name, p))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to Info.
func (c *Config) SlogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
