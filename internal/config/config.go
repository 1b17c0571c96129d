// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type APIConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type GatewayConfig struct {
	URL            string        `yaml:"url"`
	APIKey         string        `yaml:"api_key"`
	AnalyzeTimeout time.Duration `yaml:"analyze_timeout"`
	HealthTimeout  time.Duration `yaml:"health_timeout"`
	HealthInterval time.Duration `yaml:"health_interval"`
}

type SessionConfig struct {
	Platform     string `yaml:"platform"` // sms|whatsapp|telegram|email|other
	SenderHeader string `yaml:"sender_header"`
	SenderNumber string `yaml:"sender_number"`
	InContacts   bool   `yaml:"in_contacts"`
	Language     string `yaml:"language"`
	Locale       string `yaml:"locale"`
	HoneypotMode bool   `yaml:"honeypot_mode"`
}

type Config struct {
	API     APIConfig     `yaml:"api"`
	Log     LogConfig     `yaml:"log"`
	Gateway GatewayConfig `yaml:"gateway"`
	Session SessionConfig `yaml:"session"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.API.Port <= 0 {
		cfg.API.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Gateway.AnalyzeTimeout <= 0 {
		cfg.Gateway.AnalyzeTimeout = 30 * time.Second
	}
	if cfg.Gateway.HealthTimeout <= 0 {
		cfg.Gateway.HealthTimeout = 5 * time.Second
	}
	if cfg.Gateway.HealthInterval <= 0 {
		cfg.Gateway.HealthInterval = 30 * time.Second
	}
	if cfg.Session.Platform == "" {
		cfg.Session.Platform = "sms"
	}
	if cfg.Session.Language == "" {
		cfg.Session.Language = "en"
	}
	if cfg.Session.Locale == "" {
		cfg.Session.Locale = "en-IN"
	}

	// Secrets may come from the environment instead of the YAML file.
	if v := os.Getenv("HONEYPOT_API_KEY"); v != "" {
		cfg.Gateway.APIKey = v
	}
	if v := os.Getenv("HONEYPOT_GATEWAY_URL"); v != "" {
		cfg.Gateway.URL = v
	}

	// Minimal validation
	if cfg.Gateway.URL == "" && !dev {
		return nil, errors.New("gateway.url is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
