package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config collects the tunables that are awkward as flat env vars. Every
// field has a working default; the yaml file is optional.
type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Reconciler struct {
		IntervalSeconds int `yaml:"interval_seconds"`
	} `yaml:"reconciler"`
}

func defaultConfig() *Config {
	var config Config
	config.Server.Port = getEnv("PORT", "8080")
	config.Server.AllowedOrigins = []string{"*"}
	config.Reconciler.IntervalSeconds = getEnvAsInt("RECONCILE_INTERVAL_SECONDS", 60)
	return &config
}

// loadConfig reads the yaml config at path, falling back to defaults for
// anything it leaves unset.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.Reconciler.IntervalSeconds <= 0 {
		config.Reconciler.IntervalSeconds = 60
	}
	return config, nil
}

func (c *Config) ReconcileInterval() time.Duration {
	return time.Duration(c.Reconciler.IntervalSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
