package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration file. AllowedHosts is the fixed
// allow-list of externally reachable hostnames the UI is served under;
// requests for any other Host are refused.
type Config struct {
	Server struct {
		Port         string   `yaml:"port"`
		StaticDir    string   `yaml:"static_dir"`
		AllowedHosts []string `yaml:"allowed_hosts"`
	} `yaml:"server"`
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

func loadConfig(path string) (*Config, error) {
	var config Config
	config.Server.Port = getEnv("PORT", "8080")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// No file means dev defaults: any host, no static assets
		return &config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if config.Server.Port == "" {
		config.Server.Port = getEnv("PORT", "8080")
	}

	return &config, nil
}

// hostAllowed checks a request Host (with or without port) against the
// configured allow-list. An empty list allows everything.
func (c *Config) hostAllowed(host string) bool {
	if len(c.Server.AllowedHosts) == 0 {
		return true
	}
	for i := len(host) - 1; i >= 0; i-- {
		if host[i] == ':' {
			host = host[:i]
			break
		}
		if host[i] < '0' || host[i] > '9' {
			break
		}
	}
	for _, allowed := range c.Server.AllowedHosts {
		if host == allowed {
			return true
		}
	}
	return false
}
