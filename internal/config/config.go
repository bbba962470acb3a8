// Package config loads the portbounced configuration: defaults, then an
// optional YAML file, then PORTBOUNCE_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/portbounce/pkg/client"
	"github.com/vitalvas/portbounce/pkg/log"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "PORTBOUNCE"

// PathEnv names the config file when no -config flag is given
const PathEnv = EnvPrefix + "_CONFIG"

// Config holds the service settings. Scalar fields use split_words rather
// than envconfig tags: a tag makes envconfig also read the unprefixed name.
type Config struct {
	ListenAddr      string        `yaml:"listen_addr" split_words:"true"`
	APIVersion      string        `yaml:"api_version" split_words:"true"`
	GinMode         string        `yaml:"gin_mode" split_words:"true"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true"`

	Log     LogConfig     `yaml:"log" envconfig:"LOG"`
	CoA     CoAConfig     `yaml:"coa" envconfig:"COA"`
	Metrics MetricsConfig `yaml:"metrics" envconfig:"METRICS"`
}

// LogConfig selects log level and output format
type LogConfig struct {
	Level  string `yaml:"level" split_words:"true"`
	Format string `yaml:"format" split_words:"true"`
}

// CoAConfig configures the CoA client
type CoAConfig struct {
	Port                 int           `yaml:"port" split_words:"true"`
	Timeout              time.Duration `yaml:"timeout" split_words:"true"`
	MessageAuthenticator bool          `yaml:"message_authenticator" split_words:"true"`
	StrictAck            bool          `yaml:"strict_ack" split_words:"true"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" split_words:"true"`
	Path    string `yaml:"path" split_words:"true"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		ListenAddr:      ":8080",
		APIVersion:      "v1.0",
		GinMode:         "release",
		ShutdownTimeout: 10 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: log.FormatText,
		},
		CoA: CoAConfig{
			Port:    client.DefaultPort,
			Timeout: client.DefaultTimeout,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// ResolvePath returns the config file path from the flag value or PORTBOUNCE_CONFIG
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(PathEnv)
}

// Load builds the configuration. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := cfg.parseYAML(data); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) parseYAML(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(c)
}

// Validate rejects settings the service cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.ListenAddr == "" {
		errs = append(errs, errors.New("listen_addr is required"))
	}

	if c.APIVersion == "" || strings.Contains(c.APIVersion, "/") {
		errs = append(errs, fmt.Errorf("invalid api_version %q", c.APIVersion))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("invalid gin_mode %q", c.GinMode))
	}

	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout))
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Log.Level))
	}

	switch c.Log.Format {
	case log.FormatText, log.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q", c.Log.Format))
	}

	if c.CoA.Port < 1 || c.CoA.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid coa port %d", c.CoA.Port))
	}

	if c.CoA.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("coa timeout must be positive, got %s", c.CoA.Timeout))
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("invalid metrics path %q", c.Metrics.Path))
	}

	return errors.Join(errs...)
}
