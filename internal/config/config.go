package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TIMEPRO_"

// Store drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

var (
	defaultFilePath   = "Data/timesheets.json"
	defaultSQLitePath = "Data/timesheets.db"
)

// Config defines process configuration.
type Config struct {
	Server ServerConfig `yaml:"server" envPrefix:"SERVER_"`
	Store  StoreConfig  `yaml:"store" envPrefix:"STORE_"`
	Bridge BridgeConfig `yaml:"bridge" envPrefix:"BRIDGE_"`
	Log    LogConfig    `yaml:"log" envPrefix:"LOG_"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"HOST"`
	Port int    `yaml:"port" env:"PORT"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type StoreConfig struct {
	Driver string `yaml:"driver" env:"DRIVER"`
	Path   string `yaml:"path" env:"PATH"`
}

type BridgeConfig struct {
	APIBase string        `yaml:"api_base" env:"API_BASE"`
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	Path  string `yaml:"path" env:"PATH"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
		},
		Store: StoreConfig{
			Driver: DriverFile,
		},
		Bridge: BridgeConfig{
			APIBase: "http://localhost:5000/api",
			Timeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment
// variables. An empty path falls back to TIMEPRO_CONFIG_PATH.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if cfg.Store.Path == "" {
		cfg.Store.Path = defaultStorePath(cfg.Store.Driver)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port %d", c.Server.Port))
	}
	switch c.Store.Driver {
	case DriverFile, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}
	if c.Store.Path == "" {
		errs = append(errs, errors.New("store path is required"))
	}
	if c.Bridge.APIBase == "" {
		errs = append(errs, errors.New("bridge api base is required"))
	}
	if c.Bridge.Timeout < 0 {
		errs = append(errs, fmt.Errorf("invalid bridge timeout %s", c.Bridge.Timeout))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func defaultStorePath(driver string) string {
	if driver == DriverSQLite {
		return defaultSQLitePath
	}
	return defaultFilePath
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
