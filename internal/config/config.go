// Package config handles configuration loading for canned.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Probe   ProbeConfig   `mapstructure:"probe" yaml:"probe"`
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Host    string `mapstructure:"host" yaml:"host"`
	Port    int    `mapstructure:"port" yaml:"port"`
	Variant string `mapstructure:"variant" yaml:"variant"` // a, b, c
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // text, json
}

// ProbeConfig represents defaults for the probe command.
type ProbeConfig struct {
	URL     string `mapstructure:"url" yaml:"url"`
	Timeout string `mapstructure:"timeout" yaml:"timeout"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load loads the configuration from files and environment variables.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads the configuration from path, or from the default search
// paths when path is empty.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		v.AddConfigPath("./canned")

		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("CANNED")
	v.AutomaticEnv()

	v.BindEnv("server.variant", "CANNED_VARIANT")
	v.BindEnv("server.port", "CANNED_PORT")
	v.BindEnv("logging.level", "CANNED_LOG_LEVEL")
	v.BindEnv("probe.url", "CANNED_PROBE_URL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. With no file and no
// environment the server listens on 0.0.0.0:8080 and serves variant a.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.variant", "a")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("probe.url", "http://127.0.0.1:8080")
	v.SetDefault("probe.timeout", "5s")
}

// Dir returns the user config directory for canned.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "canned"), nil
}

// Path returns the path of the user config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// DefaultFile is the content written by "canned config init".
const DefaultFile = `# canned configuration

# Server settings
server:
  host: 0.0.0.0
  port: 8080
  # a: /1../4 with delays, b: Hello after body end, c: Hello immediately
  variant: a

# Logging settings
logging:
  level: info
  format: text

# Probe settings
probe:
  url: http://127.0.0.1:8080
  timeout: 5s
`
