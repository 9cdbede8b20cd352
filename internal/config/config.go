package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	mix "MixLab/internal/calc/mix"
)

type Config struct {
	Server    ServerConfig   `yaml:"server"`
	Database  DatabaseConfig `yaml:"database"`
	Auth      AuthConfig     `yaml:"auth"`
	Logging   LoggingConfig  `yaml:"logging"`
	PriceBook mix.PriceBook  `yaml:"price_book"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr"`
	TLSCert string `yaml:"tls_cert"`
	TLSKey  string `yaml:"tls_key"`
}

type DatabaseConfig struct {
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type AuthConfig struct {
	TokenKey  string  `yaml:"token_key"`
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads .env (if present), then the YAML file at path (if any), then
// applies environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr: ":443",
		},
		Database: DatabaseConfig{
			URL:          "user=postgres dbname=postgres password=password sslmode=disable",
			MaxOpenConns: 25,
		},
		Auth: AuthConfig{
			RateLimit: 1,
			RateBurst: 3,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		PriceBook: mix.DefaultPriceBook(),
	}

	if path == "" {
		path = os.Getenv("MIX_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("MIX_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("MIX_TLS_CERT"); v != "" {
		cfg.Server.TLSCert = v
	}
	if v := os.Getenv("MIX_TLS_KEY"); v != "" {
		cfg.Server.TLSKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("TOKEN_KEY"); v != "" {
		cfg.Auth.TokenKey = v
	}
	if v := os.Getenv("MIX_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MIX_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("MIX_RATE_LIMIT: %w", err)
		}
		cfg.Auth.RateLimit = f
	}
	if v := os.Getenv("MIX_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MIX_RATE_BURST: %w", err)
		}
		cfg.Auth.RateBurst = n
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Auth.TokenKey == "" {
		return errors.New("TOKEN_KEY is not set")
	}
	if c.Auth.RateLimit <= 0 || c.Auth.RateBurst <= 0 {
		return errors.New("rate limit and burst must be positive")
	}
	if c.PriceBook.Costs.Negative() || c.PriceBook.CO2.Negative() {
		return errors.New("price book rates must be non-negative")
	}
	return nil
}

// TLS reports whether both a certificate and a key are configured.
func (c *Config) TLS() bool {
	return c.Server.TLSCert != "" && c.Server.TLSKey != ""
}
